package repository

import (
	"context"
	"time"

	"ClubManager/internal/model"

	"gorm.io/gorm"
)

// MatchFilter narrows match listings. Zero values mean "no filter".
type MatchFilter struct {
	Category model.Category
	Date     *time.Time
}

// MatchRepository is the read surface for matches and their event rows.
// All writes go through the match service's transaction.
type MatchRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Match, error)
	GetByUUID(ctx context.Context, matchUUID string) (*model.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]*model.Match, error)
	RosterByMatch(ctx context.Context, matchID uint64) ([]*model.MatchRoster, error)
	GoalsByMatch(ctx context.Context, matchID uint64) ([]*model.MatchGoal, error)
	AssistsByMatch(ctx context.Context, matchID uint64) ([]*model.MatchAssist, error)
	CardsByMatch(ctx context.Context, matchID uint64) ([]*model.MatchCard, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a MatchRepository backed by GORM.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) GetByID(ctx context.Context, id uint64) (*model.Match, error) {
	var m model.Match
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetByUUID(ctx context.Context, matchUUID string) (*model.Match, error) {
	var m model.Match
	if err := r.db.WithContext(ctx).Where("match_uuid = ?", matchUUID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) List(ctx context.Context, filter MatchFilter) ([]*model.Match, error) {
	db := r.db.WithContext(ctx).Model(&model.Match{})
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Date != nil {
		db = db.Where("date = ?", *filter.Date)
	}
	var list []*model.Match
	if err := db.Order("date DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepository) RosterByMatch(ctx context.Context, matchID uint64) ([]*model.MatchRoster, error) {
	var list []*model.MatchRoster
	if err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepository) GoalsByMatch(ctx context.Context, matchID uint64) ([]*model.MatchGoal, error) {
	var list []*model.MatchGoal
	err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Order("minute").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepository) AssistsByMatch(ctx context.Context, matchID uint64) ([]*model.MatchAssist, error) {
	var list []*model.MatchAssist
	err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Order("minute").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepository) CardsByMatch(ctx context.Context, matchID uint64) ([]*model.MatchCard, error) {
	var list []*model.MatchCard
	err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Order("minute").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
