package service

import (
	"context"
	"math"
	"time"

	"ClubManager/internal/model"
	"ClubManager/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Leaderboard sizes shown on the dashboard.
const (
	leaderboardLimit = 15
	cardBoardLimit   = 10
)

// Dashboard is the aggregated statistics view, computed on read from the
// event tables so it never drifts from the recorded goals and cards.
type Dashboard struct {
	Period        string                   `json:"period"`
	Category      model.Category           `json:"category,omitempty"`
	TopScorers    []repository.PlayerTally `json:"top_scorers"`
	TopAssists    []repository.PlayerTally `json:"top_assists"`
	Appearances   []repository.PlayerTally `json:"appearances"`
	YellowCards   []repository.PlayerTally `json:"yellow_cards"`
	RedCards      []repository.PlayerTally `json:"red_cards"`
	Club          repository.MatchTotals   `json:"club"`
	WinPercentage float64                  `json:"win_percentage"`
	AvgScored     float64                  `json:"avg_goals_scored"`
	AvgConceded   float64                  `json:"avg_goals_conceded"`
}

// StatsService builds the dashboard.
type StatsService struct {
	stats  repository.StatsRepository
	logger *logrus.Logger
	now    func() time.Time
}

// NewStatsService creates a StatsService.
func NewStatsService(db *gorm.DB, logger *logrus.Logger) *StatsService {
	return &StatsService{
		stats:  repository.NewStatsRepository(db),
		logger: logger,
		now:    time.Now,
	}
}

// periodStart maps a period keyword to a cutoff date. Unknown values mean
// "all time" (nil cutoff).
func (s *StatsService) periodStart(period string) *time.Time {
	switch period {
	case "month":
		t := s.now().AddDate(0, 0, -30)
		return &t
	case "year":
		t := s.now().AddDate(0, 0, -365)
		return &t
	default:
		return nil
	}
}

// BuildDashboard aggregates leaderboards and club totals for the category
// and period. Empty category means the whole club.
func (s *StatsService) BuildDashboard(ctx context.Context, category model.Category, period string) (*Dashboard, error) {
	if category != "" && !category.Valid() {
		return nil, NewValidationError([]Violation{
			violationf(CodeUnknownCategory, "unknown category %q", category),
		})
	}
	since := s.periodStart(period)

	scorers, err := s.stats.TopScorers(ctx, category, since, leaderboardLimit)
	if err != nil {
		return nil, err
	}
	assists, err := s.stats.TopAssists(ctx, category, since, leaderboardLimit)
	if err != nil {
		return nil, err
	}
	appearances, err := s.stats.TopAppearances(ctx, category, since, leaderboardLimit)
	if err != nil {
		return nil, err
	}
	yellows, err := s.stats.TopCards(ctx, model.CardYellow, category, since, cardBoardLimit)
	if err != nil {
		return nil, err
	}
	reds, err := s.stats.TopCards(ctx, model.CardRed, category, since, cardBoardLimit)
	if err != nil {
		return nil, err
	}
	totals, err := s.stats.Totals(ctx, category, since)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Period:      period,
		Category:    category,
		TopScorers:  scorers,
		TopAssists:  assists,
		Appearances: appearances,
		YellowCards: yellows,
		RedCards:    reds,
		Club:        *totals,
	}
	if totals.Matches > 0 {
		d.WinPercentage = round1(float64(totals.Wins) / float64(totals.Matches) * 100)
		d.AvgScored = round2(float64(totals.GoalsScored) / float64(totals.Matches))
		d.AvgConceded = round2(float64(totals.GoalsConceded) / float64(totals.Matches))
	}
	return d, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
