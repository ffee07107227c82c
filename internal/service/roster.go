package service

import (
	"fmt"
	"sort"
	"time"

	"ClubManager/internal/model"
)

// Roster sizes fixed by the laws of the game.
const (
	StartingLineupSize = 11
	MaxBenchSize       = 7
)

// RosterInput is a candidate match roster to validate.
type RosterInput struct {
	Category     model.Category
	StarterIDs   []uint64
	BenchIDs     []uint64
	CaptainID    uint64
	GoalkeeperID uint64
	Date         time.Time
}

// playerSet returns the union of every player the roster references.
func (in *RosterInput) playerSet() map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(in.StarterIDs)+len(in.BenchIDs)+2)
	for _, id := range in.StarterIDs {
		set[id] = struct{}{}
	}
	for _, id := range in.BenchIDs {
		set[id] = struct{}{}
	}
	if in.CaptainID != 0 {
		set[in.CaptainID] = struct{}{}
	}
	if in.GoalkeeperID != 0 {
		set[in.GoalkeeperID] = struct{}{}
	}
	return set
}

// ValidateRoster checks the composition rules against loaded player records.
// players must contain every referenced player, keyed by ID; missing entries
// are reported as unknown-player violations. All rules are independent and
// every applicable violation is returned.
func ValidateRoster(in *RosterInput, players map[uint64]*model.Player) []Violation {
	var violations []Violation

	if len(in.StarterIDs) != StartingLineupSize {
		violations = append(violations, violationf(CodeWrongStarterCount,
			"starting lineup must have exactly %d players, got %d", StartingLineupSize, len(in.StarterIDs)))
	}
	if len(in.BenchIDs) > MaxBenchSize {
		violations = append(violations, violationf(CodeBenchTooLarge,
			"bench may have at most %d players, got %d", MaxBenchSize, len(in.BenchIDs)))
	}

	// Repeated IDs within a list would otherwise slip past the size checks
	// and only surface as a storage constraint failure.
	reported := make(map[uint64]struct{})
	for _, ids := range [][]uint64{in.StarterIDs, in.BenchIDs} {
		seen := make(map[uint64]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				if _, done := reported[id]; done {
					continue
				}
				reported[id] = struct{}{}
				violations = append(violations, violationf(CodeDuplicateRosterPlayer,
					"%s appears more than once in the roster", playerName(players, id)))
				continue
			}
			seen[id] = struct{}{}
		}
	}

	starters := make(map[uint64]struct{}, len(in.StarterIDs))
	for _, id := range in.StarterIDs {
		starters[id] = struct{}{}
	}
	for _, id := range in.BenchIDs {
		if _, ok := starters[id]; ok {
			name := playerName(players, id)
			violations = append(violations, violationf(CodeRosterOverlap,
				"%s is in both the starting lineup and on the bench", name))
		}
	}

	if in.CaptainID != 0 {
		if _, ok := starters[in.CaptainID]; !ok {
			violations = append(violations, violationf(CodeCaptainNotStarting,
				"captain %s is not in the starting lineup", playerName(players, in.CaptainID)))
		}
	}
	if in.GoalkeeperID != 0 {
		if _, ok := starters[in.GoalkeeperID]; !ok {
			violations = append(violations, violationf(CodeGoalkeeperNotStarting,
				"goalkeeper %s is not in the starting lineup", playerName(players, in.GoalkeeperID)))
		}
	}

	// Membership and category checks run over the whole roster. Category
	// equality is strict: no cross-category substitutes.
	for _, id := range sortedIDs(in.playerSet()) {
		p, ok := players[id]
		if !ok {
			violations = append(violations, violationf(CodeUnknownPlayer,
				"player %d does not exist", id))
			continue
		}
		if !p.MembershipCovers(in.Date) {
			violations = append(violations, violationf(CodeInactiveMember,
				"%s is not an active member on %s", p.FullName(), in.Date.Format("2006-01-02")))
		}
	}
	fielded := make(map[uint64]struct{}, len(in.StarterIDs)+len(in.BenchIDs))
	for _, id := range in.StarterIDs {
		fielded[id] = struct{}{}
	}
	for _, id := range in.BenchIDs {
		fielded[id] = struct{}{}
	}
	for _, id := range sortedIDs(fielded) {
		p, ok := players[id]
		if !ok {
			continue // already reported above
		}
		if p.Category != in.Category {
			violations = append(violations, violationf(CodeWrongCategory,
				"%s belongs to category %s, match is %s", p.FullName(), p.Category, in.Category))
		}
	}

	return violations
}

func playerName(players map[uint64]*model.Player, id uint64) string {
	if p, ok := players[id]; ok {
		return p.FullName()
	}
	return fmt.Sprintf("player %d", id)
}

func sortedIDs(set map[uint64]struct{}) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
