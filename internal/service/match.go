package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ClubManager/internal/model"
	"ClubManager/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CodeEventPlayerNotInRoster flags event rows naming a player who is neither
// starting nor on the bench.
const CodeEventPlayerNotInRoster = "event_player_not_in_roster"

// MatchInput is the full payload for creating or replacing a match.
type MatchInput struct {
	Date         time.Time      `json:"date"`
	HomeOrAway   string         `json:"home_or_away"` // H or A
	Opponent     string         `json:"opponent"`
	HomeScore    int            `json:"home_score"`
	AwayScore    int            `json:"away_score"`
	Category     model.Category `json:"category"`
	StarterIDs   []uint64       `json:"starter_ids"`
	BenchIDs     []uint64       `json:"bench_ids"`
	CaptainID    uint64         `json:"captain_id"`
	GoalkeeperID uint64         `json:"goalkeeper_id"`
	Goals        []GoalEntry    `json:"goals"`
	Assists      []AssistEntry  `json:"assists"`
	Cards        []CardEntry    `json:"cards"`
}

// MatchDetail bundles a match with its roster and event rows for reads.
type MatchDetail struct {
	Match   *model.Match          `json:"match"`
	Roster  []*model.MatchRoster  `json:"roster"`
	Goals   []*model.MatchGoal    `json:"goals"`
	Assists []*model.MatchAssist  `json:"assists"`
	Cards   []*model.MatchCard    `json:"cards"`
}

// MatchService validates and applies matches. Every mutation runs in a
// single transaction: the match, its roster and event rows, and the player
// counter updates commit together or not at all.
type MatchService struct {
	db      *gorm.DB
	logger  *logrus.Logger
	players repository.PlayerRepository
	matches repository.MatchRepository
}

// NewMatchService creates a MatchService.
func NewMatchService(db *gorm.DB, logger *logrus.Logger) *MatchService {
	return &MatchService{
		db:      db,
		logger:  logger,
		players: repository.NewPlayerRepository(db),
		matches: repository.NewMatchRepository(db),
	}
}

// validate loads the referenced players and runs all roster and event rules.
// Returns the loaded player map for the apply step.
func (s *MatchService) validate(ctx context.Context, in *MatchInput) (map[uint64]*model.Player, error) {
	var violations []Violation

	if !in.Category.Valid() {
		violations = append(violations, violationf(CodeUnknownCategory,
			"unknown category %q", in.Category))
	}

	roster := &RosterInput{
		Category:     in.Category,
		StarterIDs:   in.StarterIDs,
		BenchIDs:     in.BenchIDs,
		CaptainID:    in.CaptainID,
		GoalkeeperID: in.GoalkeeperID,
		Date:         in.Date,
	}

	idSet := roster.playerSet()
	for _, g := range in.Goals {
		idSet[g.PlayerID] = struct{}{}
	}
	for _, a := range in.Assists {
		idSet[a.PlayerID] = struct{}{}
	}
	for _, c := range in.Cards {
		idSet[c.PlayerID] = struct{}{}
	}
	loaded, err := s.players.ListByIDs(ctx, sortedIDs(idSet))
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	players := make(map[uint64]*model.Player, len(loaded))
	for _, p := range loaded {
		players[p.ID] = p
	}

	violations = append(violations, ValidateRoster(roster, players)...)
	violations = append(violations, ValidateEvents(in.HomeScore, in.Goals, in.Assists, in.Cards)...)

	// Event rows may only name fielded players.
	fielded := make(map[uint64]struct{}, len(in.StarterIDs)+len(in.BenchIDs))
	for _, id := range in.StarterIDs {
		fielded[id] = struct{}{}
	}
	for _, id := range in.BenchIDs {
		fielded[id] = struct{}{}
	}
	seen := make(map[uint64]struct{})
	for _, id := range eventPlayerIDs(in) {
		if _, ok := fielded[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		violations = append(violations, violationf(CodeEventPlayerNotInRoster,
			"%s has an event but is not in the roster", playerName(players, id)))
	}

	if len(violations) > 0 {
		return nil, NewValidationError(violations)
	}
	return players, nil
}

func eventPlayerIDs(in *MatchInput) []uint64 {
	ids := make([]uint64, 0, len(in.Goals)+len(in.Assists)+len(in.Cards))
	for _, g := range in.Goals {
		ids = append(ids, g.PlayerID)
	}
	for _, a := range in.Assists {
		ids = append(ids, a.PlayerID)
	}
	for _, c := range in.Cards {
		ids = append(ids, c.PlayerID)
	}
	return ids
}

// counterDelta is the per-player change a match contributes to the cached
// counters on players.
type counterDelta struct {
	goals       int
	assists     int
	yellowCards int
	redCards    int
	appearances int
}

// deltasFor computes the counter contribution of a match from its rows.
// Bench players receive an appearance too.
func deltasFor(rosters []*model.MatchRoster, goals []*model.MatchGoal, assists []*model.MatchAssist, cards []*model.MatchCard) map[uint64]*counterDelta {
	deltas := make(map[uint64]*counterDelta)
	get := func(id uint64) *counterDelta {
		d, ok := deltas[id]
		if !ok {
			d = &counterDelta{}
			deltas[id] = d
		}
		return d
	}
	for _, r := range rosters {
		get(r.PlayerID).appearances++
	}
	for _, g := range goals {
		get(g.PlayerID).goals++
	}
	for _, a := range assists {
		get(a.PlayerID).assists++
	}
	for _, c := range cards {
		switch c.CardType {
		case model.CardYellow:
			get(c.PlayerID).yellowCards++
		case model.CardRed:
			get(c.PlayerID).redCards++
		}
	}
	return deltas
}

// applyDeltas adds (sign=+1) or removes (sign=-1) a match's contribution to
// the player counters. Decrements clamp at zero rather than fail.
func applyDeltas(tx *gorm.DB, deltas map[uint64]*counterDelta, sign int) error {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	for playerID, d := range deltas {
		var p model.Player
		if err := tx.First(&p, playerID).Error; err != nil {
			return fmt.Errorf("load player %d for counter update: %w", playerID, err)
		}
		p.Goals = clamp(p.Goals + sign*d.goals)
		p.Assists = clamp(p.Assists + sign*d.assists)
		p.YellowCards = clamp(p.YellowCards + sign*d.yellowCards)
		p.RedCards = clamp(p.RedCards + sign*d.redCards)
		p.Appearances = clamp(p.Appearances + sign*d.appearances)
		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("update counters for player %d: %w", playerID, err)
		}
	}
	return nil
}

// buildRows materializes the roster and event rows for a match ID.
func buildRows(matchID uint64, in *MatchInput) ([]*model.MatchRoster, []*model.MatchGoal, []*model.MatchAssist, []*model.MatchCard) {
	rosters := make([]*model.MatchRoster, 0, len(in.StarterIDs)+len(in.BenchIDs))
	for _, id := range in.StarterIDs {
		rosters = append(rosters, &model.MatchRoster{MatchID: matchID, PlayerID: id, Slot: model.RosterSlotStart})
	}
	for _, id := range in.BenchIDs {
		rosters = append(rosters, &model.MatchRoster{MatchID: matchID, PlayerID: id, Slot: model.RosterSlotBench})
	}
	goals := make([]*model.MatchGoal, 0, len(in.Goals))
	for _, g := range in.Goals {
		goals = append(goals, &model.MatchGoal{MatchID: matchID, PlayerID: g.PlayerID, Minute: g.Minute})
	}
	assists := make([]*model.MatchAssist, 0, len(in.Assists))
	for _, a := range in.Assists {
		assists = append(assists, &model.MatchAssist{MatchID: matchID, PlayerID: a.PlayerID, Minute: a.Minute})
	}
	cards := make([]*model.MatchCard, 0, len(in.Cards))
	for _, c := range in.Cards {
		cards = append(cards, &model.MatchCard{MatchID: matchID, PlayerID: c.PlayerID, CardType: model.CardType(c.CardType), Minute: c.Minute})
	}
	return rosters, goals, assists, cards
}

func insertRows(tx *gorm.DB, rosters []*model.MatchRoster, goals []*model.MatchGoal, assists []*model.MatchAssist, cards []*model.MatchCard) error {
	for _, r := range rosters {
		if err := tx.Create(r).Error; err != nil {
			return fmt.Errorf("save roster row: %w", err)
		}
	}
	for _, g := range goals {
		if err := tx.Create(g).Error; err != nil {
			return fmt.Errorf("save goal: %w", err)
		}
	}
	for _, a := range assists {
		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("save assist: %w", err)
		}
	}
	for _, c := range cards {
		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("save card: %w", err)
		}
	}
	return nil
}

func deleteRows(tx *gorm.DB, matchID uint64) error {
	if err := tx.Where("match_id = ?", matchID).Delete(&model.MatchRoster{}).Error; err != nil {
		return err
	}
	if err := tx.Where("match_id = ?", matchID).Delete(&model.MatchGoal{}).Error; err != nil {
		return err
	}
	if err := tx.Where("match_id = ?", matchID).Delete(&model.MatchAssist{}).Error; err != nil {
		return err
	}
	return tx.Where("match_id = ?", matchID).Delete(&model.MatchCard{}).Error
}

// CreateMatch validates the input and applies the whole match atomically.
func (s *MatchService) CreateMatch(ctx context.Context, in *MatchInput) (*model.Match, error) {
	if _, err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	match := &model.Match{
		MatchUUID:    uuid.NewString(),
		Date:         in.Date,
		HomeOrAway:   in.HomeOrAway,
		Opponent:     in.Opponent,
		HomeScore:    in.HomeScore,
		AwayScore:    in.AwayScore,
		Category:     in.Category,
		CaptainID:    in.CaptainID,
		GoalkeeperID: in.GoalkeeperID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(match).Error; err != nil {
			return fmt.Errorf("save match: %w", err)
		}
		rosters, goals, assists, cards := buildRows(match.ID, in)
		if err := insertRows(tx, rosters, goals, assists, cards); err != nil {
			return err
		}
		return applyDeltas(tx, deltasFor(rosters, goals, assists, cards), +1)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"match_uuid": match.MatchUUID,
		"category":   match.Category,
		"opponent":   match.Opponent,
	}).Info("match created")
	return match, nil
}

// UpdateMatch replaces a match's fields, roster and events. The previous
// counter contribution is reversed and the new one applied in the same
// transaction, so re-saving never double counts.
func (s *MatchService) UpdateMatch(ctx context.Context, id uint64, in *MatchInput) (*model.Match, error) {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("match %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldRosters, oldGoals, oldAssists, oldCards, err := matchRows(tx, id)
		if err != nil {
			return err
		}
		if err := applyDeltas(tx, deltasFor(oldRosters, oldGoals, oldAssists, oldCards), -1); err != nil {
			return err
		}
		if err := deleteRows(tx, id); err != nil {
			return err
		}

		match.Date = in.Date
		match.HomeOrAway = in.HomeOrAway
		match.Opponent = in.Opponent
		match.HomeScore = in.HomeScore
		match.AwayScore = in.AwayScore
		match.Category = in.Category
		match.CaptainID = in.CaptainID
		match.GoalkeeperID = in.GoalkeeperID
		if err := tx.Save(match).Error; err != nil {
			return fmt.Errorf("update match: %w", err)
		}

		rosters, goals, assists, cards := buildRows(id, in)
		if err := insertRows(tx, rosters, goals, assists, cards); err != nil {
			return err
		}
		return applyDeltas(tx, deltasFor(rosters, goals, assists, cards), +1)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("match_uuid", match.MatchUUID).Info("match updated")
	return match, nil
}

// DeleteMatch removes the match and symmetrically reverses every counter it
// contributed, floored at zero.
func (s *MatchService) DeleteMatch(ctx context.Context, id uint64) error {
	if _, err := s.matches.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("match %d: %w", id, ErrNotFound)
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rosters, goals, assists, cards, err := matchRows(tx, id)
		if err != nil {
			return err
		}
		if err := applyDeltas(tx, deltasFor(rosters, goals, assists, cards), -1); err != nil {
			return err
		}
		if err := deleteRows(tx, id); err != nil {
			return err
		}
		return tx.Delete(&model.Match{}, id).Error
	})
	if err != nil {
		return err
	}

	s.logger.WithField("match_id", id).Info("match deleted")
	return nil
}

// matchRows loads every row attached to a match inside a transaction.
func matchRows(tx *gorm.DB, matchID uint64) ([]*model.MatchRoster, []*model.MatchGoal, []*model.MatchAssist, []*model.MatchCard, error) {
	var rosters []*model.MatchRoster
	if err := tx.Where("match_id = ?", matchID).Find(&rosters).Error; err != nil {
		return nil, nil, nil, nil, err
	}
	var goals []*model.MatchGoal
	if err := tx.Where("match_id = ?", matchID).Find(&goals).Error; err != nil {
		return nil, nil, nil, nil, err
	}
	var assists []*model.MatchAssist
	if err := tx.Where("match_id = ?", matchID).Find(&assists).Error; err != nil {
		return nil, nil, nil, nil, err
	}
	var cards []*model.MatchCard
	if err := tx.Where("match_id = ?", matchID).Find(&cards).Error; err != nil {
		return nil, nil, nil, nil, err
	}
	return rosters, goals, assists, cards, nil
}

// GetMatch returns a match with its roster and event rows.
func (s *MatchService) GetMatch(ctx context.Context, id uint64) (*MatchDetail, error) {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("match %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s.detailFor(ctx, match)
}

// GetMatchByUUID returns a match addressed by its public identifier.
func (s *MatchService) GetMatchByUUID(ctx context.Context, matchUUID string) (*MatchDetail, error) {
	match, err := s.matches.GetByUUID(ctx, matchUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("match %s: %w", matchUUID, ErrNotFound)
		}
		return nil, err
	}
	return s.detailFor(ctx, match)
}

func (s *MatchService) detailFor(ctx context.Context, match *model.Match) (*MatchDetail, error) {
	id := match.ID
	rosters, err := s.matches.RosterByMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	goals, err := s.matches.GoalsByMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	assists, err := s.matches.AssistsByMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	cards, err := s.matches.CardsByMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &MatchDetail{Match: match, Roster: rosters, Goals: goals, Assists: assists, Cards: cards}, nil
}

// ListMatches returns matches filtered by category and date.
func (s *MatchService) ListMatches(ctx context.Context, filter repository.MatchFilter) ([]*model.Match, error) {
	return s.matches.List(ctx, filter)
}
