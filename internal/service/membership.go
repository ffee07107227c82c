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

// MembershipService owns category transitions and membership flips, and the
// append-only history both produce. now is injectable for tests.
type MembershipService struct {
	db      *gorm.DB
	logger  *logrus.Logger
	players repository.PlayerRepository
	history repository.HistoryRepository
	now     func() time.Time
}

// NewMembershipService creates a MembershipService.
func NewMembershipService(db *gorm.DB, logger *logrus.Logger) *MembershipService {
	return &MembershipService{
		db:      db,
		logger:  logger,
		players: repository.NewPlayerRepository(db),
		history: repository.NewHistoryRepository(db),
		now:     time.Now,
	}
}

// CheckCategoryChange validates a proposed category against the player's
// full history (no moving back to a younger bracket, even a skipped one)
// and the bracket's age ceiling. Returns the violations without applying.
func (s *MembershipService) CheckCategoryChange(ctx context.Context, player *model.Player, newCategory model.Category) ([]Violation, error) {
	var violations []Violation

	if !newCategory.Valid() {
		violations = append(violations, violationf(CodeUnknownCategory,
			"unknown category %q", newCategory))
		return violations, nil
	}

	held, err := s.history.CategoriesEverHeld(ctx, player.ID)
	if err != nil {
		return nil, fmt.Errorf("load category history: %w", err)
	}
	ord := newCategory.Ordinal()
	for _, prev := range held {
		if prev.Ordinal() > ord {
			violations = append(violations, violationf(CodeCategoryRegression,
				"%s cannot move back from %s to %s", player.FullName(), prev, newCategory))
			break
		}
	}

	age := player.AgeAt(s.now())
	if age > newCategory.MaxAge() {
		violations = append(violations, violationf(CodeOverAge,
			"%s is %d, too old for category %s (max %d)", player.FullName(), age, newCategory, newCategory.MaxAge()))
	}

	return violations, nil
}

// ChangeCategory validates and applies a category change, appending a
// history entry in the same transaction. A no-op when the category is
// unchanged.
func (s *MembershipService) ChangeCategory(ctx context.Context, playerID uint64, newCategory model.Category) error {
	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("player %d: %w", playerID, ErrNotFound)
		}
		return err
	}
	if player.Category == newCategory {
		return nil
	}

	violations, err := s.CheckCategoryChange(ctx, player, newCategory)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return NewValidationError(violations)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Player{}).Where("id = ?", playerID).
			Update("category", newCategory).Error; err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		entry := &model.PlayerCategoryHistory{
			PlayerID:  playerID,
			Category:  newCategory,
			ChangedAt: s.now(),
		}
		if err := repository.NewHistoryRepository(tx).AppendCategory(ctx, entry); err != nil {
			return fmt.Errorf("append category history: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"player_id": playerID,
		"category":  newCategory,
	}).Info("category changed")
	return nil
}

// SetMembership flips a player's membership state and records the audit
// entry. Rules:
//   - inactive -> active: REACTIVATED, date_from today, member_since kept.
//   - active -> inactive: DEACTIVATED, date_from is the old member_since;
//     member_until defaults to today when not supplied.
//   - active -> active with a later member_until: EXTENDED.
func (s *MembershipService) SetMembership(ctx context.Context, playerID uint64, active bool, until *time.Time) error {
	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("player %d: %w", playerID, ErrNotFound)
		}
		return err
	}

	today := dateOnly(s.now())

	var entry *model.MembershipHistory
	switch {
	case !player.IsActiveMember && active:
		entry = &model.MembershipHistory{
			PlayerID:  playerID,
			Action:    model.MembershipReactivated,
			DateFrom:  today,
			DateUntil: until,
			Notes:     "reactivated " + today.Format("2006-01-02"),
		}
		player.IsActiveMember = true
		player.MemberUntil = until
		// member_since stays untouched across reactivation.

	case player.IsActiveMember && !active:
		effectiveUntil := until
		if effectiveUntil == nil {
			u := today
			effectiveUntil = &u
		}
		entry = &model.MembershipHistory{
			PlayerID:  playerID,
			Action:    model.MembershipDeactivated,
			DateFrom:  dateOnly(player.MemberSince),
			DateUntil: effectiveUntil,
			Notes:     "deactivated " + today.Format("2006-01-02"),
		}
		player.IsActiveMember = false
		player.MemberUntil = effectiveUntil

	case player.IsActiveMember && active:
		if until == nil || (player.MemberUntil != nil && !until.After(*player.MemberUntil)) {
			return nil // nothing to extend
		}
		entry = &model.MembershipHistory{
			PlayerID:  playerID,
			Action:    model.MembershipExtended,
			DateFrom:  today,
			DateUntil: until,
			Notes:     "membership extended to " + until.Format("2006-01-02"),
		}
		player.MemberUntil = until

	default:
		// inactive -> inactive: only adjust the end date, no audit entry.
		player.MemberUntil = until
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewPlayerRepository(tx).Update(ctx, player); err != nil {
			return fmt.Errorf("update membership: %w", err)
		}
		if entry != nil {
			if err := repository.NewHistoryRepository(tx).AppendMembership(ctx, entry); err != nil {
				return fmt.Errorf("append membership history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"player_id": playerID,
		"active":    active,
	}).Info("membership updated")
	return nil
}

// CategoryHistory returns the player's category log, newest first.
func (s *MembershipService) CategoryHistory(ctx context.Context, playerID uint64) ([]*model.PlayerCategoryHistory, error) {
	return s.history.ListCategoryByPlayer(ctx, playerID)
}

// MembershipHistory returns the player's membership audit trail, newest first.
func (s *MembershipService) MembershipHistory(ctx context.Context, playerID uint64) ([]*model.MembershipHistory, error) {
	return s.history.ListMembershipByPlayer(ctx, playerID)
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
