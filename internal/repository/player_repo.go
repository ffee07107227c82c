package repository

import (
	"context"
	"strings"
	"time"

	"ClubManager/internal/model"

	"gorm.io/gorm"
)

// PlayerFilter narrows player listings. Zero values mean "no filter".
// Name fields match as case-insensitive substrings.
type PlayerFilter struct {
	Category    model.Category
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Position    model.Position
}

// PlayerRepository is the persistence surface for players.
type PlayerRepository interface {
	Create(ctx context.Context, player *model.Player) error
	GetByID(ctx context.Context, id uint64) (*model.Player, error)
	ListByIDs(ctx context.Context, ids []uint64) ([]*model.Player, error)
	List(ctx context.Context, filter PlayerFilter) ([]*model.Player, error)
	Update(ctx context.Context, player *model.Player) error
	Delete(ctx context.Context, id uint64) error
	// ListEligible returns players of a category whose membership window
	// covers the given date. Used to populate roster pickers.
	ListEligible(ctx context.Context, category model.Category, asOf time.Time) ([]*model.Player, error)
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a PlayerRepository backed by GORM.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Create(ctx context.Context, player *model.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

func (r *playerRepository) GetByID(ctx context.Context, id uint64) (*model.Player, error) {
	var p model.Player
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) ListByIDs(ctx context.Context, ids []uint64) ([]*model.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []*model.Player
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *playerRepository) List(ctx context.Context, filter PlayerFilter) ([]*model.Player, error) {
	db := r.db.WithContext(ctx).Model(&model.Player{})
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.FirstName != "" {
		db = db.Where("LOWER(first_name) LIKE ?", "%"+strings.ToLower(filter.FirstName)+"%")
	}
	if filter.LastName != "" {
		db = db.Where("LOWER(last_name) LIKE ?", "%"+strings.ToLower(filter.LastName)+"%")
	}
	if filter.DateOfBirth != nil {
		db = db.Where("date_of_birth = ?", *filter.DateOfBirth)
	}
	if filter.Position != "" {
		db = db.Where("position = ?", filter.Position)
	}
	var list []*model.Player
	if err := db.Order("category, last_name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *playerRepository) Update(ctx context.Context, player *model.Player) error {
	return r.db.WithContext(ctx).Save(player).Error
}

func (r *playerRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Player{}, id).Error
}

func (r *playerRepository) ListEligible(ctx context.Context, category model.Category, asOf time.Time) ([]*model.Player, error) {
	var list []*model.Player
	err := r.db.WithContext(ctx).
		Where("category = ? AND is_active_member = ?", category, true).
		Where("member_until IS NULL OR member_until >= ?", asOf).
		Order("last_name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
