package repository

import (
	"context"
	"time"

	"ClubManager/internal/model"

	"gorm.io/gorm"
)

// PlayerTally is one row of a per-player leaderboard, computed from the
// event tables rather than the cached counters on players.
type PlayerTally struct {
	PlayerID  uint64         `json:"player_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Category  model.Category `json:"category"`
	Total     int            `json:"total"`
}

// MatchTotals aggregates club-level results over a set of matches.
type MatchTotals struct {
	Matches       int64 `json:"matches"`
	Wins          int64 `json:"wins"`
	Draws         int64 `json:"draws"`
	Losses        int64 `json:"losses"`
	GoalsScored   int64 `json:"goals_scored"`
	GoalsConceded int64 `json:"goals_conceded"`
}

// StatsRepository runs read-side aggregations over the match event tables.
type StatsRepository interface {
	TopScorers(ctx context.Context, category model.Category, since *time.Time, limit int) ([]PlayerTally, error)
	TopAssists(ctx context.Context, category model.Category, since *time.Time, limit int) ([]PlayerTally, error)
	TopCards(ctx context.Context, cardType model.CardType, category model.Category, since *time.Time, limit int) ([]PlayerTally, error)
	TopAppearances(ctx context.Context, category model.Category, since *time.Time, limit int) ([]PlayerTally, error)
	Totals(ctx context.Context, category model.Category, since *time.Time) (*MatchTotals, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a StatsRepository backed by GORM.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// tallyFrom groups an event table by player, restricted to matches in the
// requested category and period.
func (r *statsRepository) tallyFrom(ctx context.Context, table string, category model.Category, since *time.Time, limit int, extra func(*gorm.DB) *gorm.DB) ([]PlayerTally, error) {
	db := r.db.WithContext(ctx).Table(table).
		Select("players.id AS player_id, players.first_name, players.last_name, players.category, COUNT(*) AS total").
		Joins("JOIN players ON players.id = "+table+".player_id").
		Joins("JOIN matches ON matches.id = " + table + ".match_id")
	if category != "" {
		db = db.Where("matches.category = ?", category)
	}
	if since != nil {
		db = db.Where("matches.date >= ?", *since)
	}
	if extra != nil {
		db = extra(db)
	}
	var rows []PlayerTally
	err := db.Group("players.id, players.first_name, players.last_name, players.category").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) TopScorers(ctx context.Context, category model.Category, since *time.Time, limit int) ([]PlayerTally, error) {
	return r.tallyFrom(ctx, "match_goals", category, since, limit, nil)
}

func (r *statsRepository) TopAssists(ctx context.Context, category model.Category, since *time.Time, limit int) ([]PlayerTally, error) {
	return r.tallyFrom(ctx, "match_assists", category, since, limit, nil)
}

func (r *statsRepository) TopCards(ctx context.Context, cardType model.CardType, category model.Category, since *time.Time, limit int) ([]PlayerTally, error) {
	return r.tallyFrom(ctx, "match_cards", category, since, limit, func(db *gorm.DB) *gorm.DB {
		return db.Where("match_cards.card_type = ?", cardType)
	})
}

func (r *statsRepository) TopAppearances(ctx context.Context, category model.Category, since *time.Time, limit int) ([]PlayerTally, error) {
	return r.tallyFrom(ctx, "match_rosters", category, since, limit, nil)
}

func (r *statsRepository) Totals(ctx context.Context, category model.Category, since *time.Time) (*MatchTotals, error) {
	scoped := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&model.Match{})
		if category != "" {
			db = db.Where("category = ?", category)
		}
		if since != nil {
			db = db.Where("date >= ?", *since)
		}
		return db
	}

	totals := &MatchTotals{}
	if err := scoped().Count(&totals.Matches).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("home_score > away_score").Count(&totals.Wins).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("home_score = away_score").Count(&totals.Draws).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("home_score < away_score").Count(&totals.Losses).Error; err != nil {
		return nil, err
	}

	// Goals scored come from the event rows (the real values), conceded from
	// the declared away scores.
	goalQuery := r.db.WithContext(ctx).Model(&model.MatchGoal{}).
		Joins("JOIN matches ON matches.id = match_goals.match_id")
	if category != "" {
		goalQuery = goalQuery.Where("matches.category = ?", category)
	}
	if since != nil {
		goalQuery = goalQuery.Where("matches.date >= ?", *since)
	}
	if err := goalQuery.Count(&totals.GoalsScored).Error; err != nil {
		return nil, err
	}

	var conceded *int64
	if err := scoped().Select("SUM(away_score)").Scan(&conceded).Error; err != nil {
		return nil, err
	}
	if conceded != nil {
		totals.GoalsConceded = *conceded
	}
	return totals, nil
}
