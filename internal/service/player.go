package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ClubManager/internal/model"
	"ClubManager/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlayerInput carries the editable player fields.
type PlayerInput struct {
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	DateOfBirth time.Time      `json:"date_of_birth"`
	Position    model.Position `json:"position"`
	Category    model.Category `json:"category"`
	MemberSince *time.Time     `json:"member_since"`
}

// PlayerDetail is a player with both history logs attached.
type PlayerDetail struct {
	Player            *model.Player                  `json:"player"`
	CategoryHistory   []*model.PlayerCategoryHistory `json:"category_history"`
	MembershipHistory []*model.MembershipHistory     `json:"membership_history"`
}

// PlayerService owns player registration and the player list views.
type PlayerService struct {
	db      *gorm.DB
	logger  *logrus.Logger
	players repository.PlayerRepository
	history repository.HistoryRepository
	now     func() time.Time
}

// NewPlayerService creates a PlayerService.
func NewPlayerService(db *gorm.DB, logger *logrus.Logger) *PlayerService {
	return &PlayerService{
		db:      db,
		logger:  logger,
		players: repository.NewPlayerRepository(db),
		history: repository.NewHistoryRepository(db),
		now:     time.Now,
	}
}

// CreatePlayer registers a player. The initial category assignment is
// recorded in the category history and the initial active membership in the
// membership trail, all in one transaction.
func (s *PlayerService) CreatePlayer(ctx context.Context, in *PlayerInput) (*model.Player, error) {
	var violations []Violation
	if !in.Position.Valid() {
		violations = append(violations, violationf(CodeUnknownPosition,
			"unknown position %q", in.Position))
	}
	if in.Category != "" {
		if !in.Category.Valid() {
			violations = append(violations, violationf(CodeUnknownCategory,
				"unknown category %q", in.Category))
		} else {
			age := (&model.Player{DateOfBirth: in.DateOfBirth}).AgeAt(s.now())
			if age > in.Category.MaxAge() {
				violations = append(violations, violationf(CodeOverAge,
					"%s %s is %d, too old for category %s (max %d)",
					in.FirstName, in.LastName, age, in.Category, in.Category.MaxAge()))
			}
		}
	}
	if len(violations) > 0 {
		return nil, NewValidationError(violations)
	}

	memberSince := dateOnly(s.now())
	if in.MemberSince != nil {
		memberSince = dateOnly(*in.MemberSince)
	}
	player := &model.Player{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DateOfBirth:    in.DateOfBirth,
		Position:       in.Position,
		Category:       in.Category,
		IsActiveMember: true,
		MemberSince:    memberSince,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		players := repository.NewPlayerRepository(tx)
		history := repository.NewHistoryRepository(tx)
		if err := players.Create(ctx, player); err != nil {
			return fmt.Errorf("save player: %w", err)
		}
		if player.Category != "" {
			entry := &model.PlayerCategoryHistory{
				PlayerID:  player.ID,
				Category:  player.Category,
				ChangedAt: s.now(),
			}
			if err := history.AppendCategory(ctx, entry); err != nil {
				return fmt.Errorf("append category history: %w", err)
			}
		}
		membership := &model.MembershipHistory{
			PlayerID: player.ID,
			Action:   model.MembershipActivated,
			DateFrom: memberSince,
			Notes:    "registered",
		}
		if err := history.AppendMembership(ctx, membership); err != nil {
			return fmt.Errorf("append membership history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"player_id": player.ID,
		"category":  player.Category,
	}).Info("player registered")
	return player, nil
}

// GetPlayer returns a player with both history logs.
func (s *PlayerService) GetPlayer(ctx context.Context, id uint64) (*PlayerDetail, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	catHistory, err := s.history.ListCategoryByPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	memHistory, err := s.history.ListMembershipByPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PlayerDetail{
		Player:            player,
		CategoryHistory:   catHistory,
		MembershipHistory: memHistory,
	}, nil
}

// ListPlayers returns players matching the filter, ordered by category and
// last name.
func (s *PlayerService) ListPlayers(ctx context.Context, filter repository.PlayerFilter) ([]*model.Player, error) {
	return s.players.List(ctx, filter)
}

// ListEligible returns players of a category whose membership covers the
// given date. This replaces the source UI's per-request form filtering.
func (s *PlayerService) ListEligible(ctx context.Context, category model.Category, asOf time.Time) ([]*model.Player, error) {
	if !category.Valid() {
		return nil, NewValidationError([]Violation{
			violationf(CodeUnknownCategory, "unknown category %q", category),
		})
	}
	return s.players.ListEligible(ctx, category, asOf)
}

// UpdatePlayer edits the basic fields. Category changes go through
// MembershipService.ChangeCategory and are rejected here.
func (s *PlayerService) UpdatePlayer(ctx context.Context, id uint64, in *PlayerInput) (*model.Player, error) {
	player, err := s.players.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	var violations []Violation
	if !in.Position.Valid() {
		violations = append(violations, violationf(CodeUnknownPosition,
			"unknown position %q", in.Position))
	}
	if in.Category != "" && in.Category != player.Category {
		violations = append(violations, violationf(CodeCategoryRegression,
			"category changes must go through the category endpoint"))
	}
	if len(violations) > 0 {
		return nil, NewValidationError(violations)
	}

	player.FirstName = in.FirstName
	player.LastName = in.LastName
	player.DateOfBirth = in.DateOfBirth
	player.Position = in.Position
	if in.MemberSince != nil {
		player.MemberSince = dateOnly(*in.MemberSince)
	}
	if err := s.players.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("update player: %w", err)
	}
	return player, nil
}

// DeletePlayer removes a player and both history logs.
func (s *PlayerService) DeletePlayer(ctx context.Context, id uint64) error {
	if _, err := s.players.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("player %d: %w", id, ErrNotFound)
		}
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", id).Delete(&model.PlayerCategoryHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("player_id = ?", id).Delete(&model.MembershipHistory{}).Error; err != nil {
			return err
		}
		return repository.NewPlayerRepository(tx).Delete(ctx, id)
	})
}
