package repository

import (
	"context"

	"ClubManager/internal/model"

	"gorm.io/gorm"
)

// HistoryRepository persists the append-only category and membership logs.
type HistoryRepository interface {
	AppendCategory(ctx context.Context, entry *model.PlayerCategoryHistory) error
	ListCategoryByPlayer(ctx context.Context, playerID uint64) ([]*model.PlayerCategoryHistory, error)
	// CategoriesEverHeld returns the distinct set of categories recorded in
	// the player's history. Monotonicity is enforced against this set, not
	// just the current value, since brackets can be skipped.
	CategoriesEverHeld(ctx context.Context, playerID uint64) ([]model.Category, error)
	AppendMembership(ctx context.Context, entry *model.MembershipHistory) error
	ListMembershipByPlayer(ctx context.Context, playerID uint64) ([]*model.MembershipHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a HistoryRepository backed by GORM.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) AppendCategory(ctx context.Context, entry *model.PlayerCategoryHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepository) ListCategoryByPlayer(ctx context.Context, playerID uint64) ([]*model.PlayerCategoryHistory, error) {
	var list []*model.PlayerCategoryHistory
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("changed_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *historyRepository) CategoriesEverHeld(ctx context.Context, playerID uint64) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).
		Model(&model.PlayerCategoryHistory{}).
		Where("player_id = ?", playerID).
		Distinct("category").
		Pluck("category", &cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *historyRepository) AppendMembership(ctx context.Context, entry *model.MembershipHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepository) ListMembershipByPlayer(ctx context.Context, playerID uint64) ([]*model.MembershipHistory, error) {
	var list []*model.MembershipHistory
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
