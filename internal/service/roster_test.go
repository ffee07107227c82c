package service

import (
	"testing"
	"time"

	"ClubManager/internal/model"
)

func rosterPlayers(n int, category model.Category) (map[uint64]*model.Player, []uint64) {
	players := make(map[uint64]*model.Player, n)
	ids := make([]uint64, 0, n)
	for i := 1; i <= n; i++ {
		id := uint64(i)
		players[id] = &model.Player{
			ID:             id,
			FirstName:      "Player",
			LastName:       string(rune('A' + i - 1)),
			Category:       category,
			IsActiveMember: true,
			MemberSince:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		ids = append(ids, id)
	}
	return players, ids
}

func TestValidateRosterAccepts(t *testing.T) {
	players, ids := rosterPlayers(15, model.CategorySEN)
	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids[:11],
		BenchIDs:     ids[11:15],
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if violations := ValidateRoster(in, players); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateRosterStarterCount(t *testing.T) {
	players, ids := rosterPlayers(12, model.CategorySEN)
	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids, // 12 starters
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	if !containsCode(violations, CodeWrongStarterCount) {
		t.Fatalf("expected %s, got %v", CodeWrongStarterCount, violations)
	}
}

func TestValidateRosterBenchTooLarge(t *testing.T) {
	players, ids := rosterPlayers(19, model.CategorySEN)
	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids[:11],
		BenchIDs:     ids[11:19], // 8 on the bench
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	if !containsCode(violations, CodeBenchTooLarge) {
		t.Fatalf("expected %s, got %v", CodeBenchTooLarge, violations)
	}
}

func TestValidateRosterOverlap(t *testing.T) {
	players, ids := rosterPlayers(14, model.CategorySEN)
	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids[:11],
		BenchIDs:     []uint64{ids[0], ids[11]}, // ids[0] both starts and sits
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	if !containsCode(violations, CodeRosterOverlap) {
		t.Fatalf("expected %s, got %v", CodeRosterOverlap, violations)
	}
}

// Eleven entries with only ten distinct players is not a valid lineup.
func TestValidateRosterDuplicateStarter(t *testing.T) {
	players, ids := rosterPlayers(11, model.CategorySEN)
	starters := append([]uint64{}, ids[:10]...)
	starters = append(starters, ids[0])

	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   starters,
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	if !containsCode(violations, CodeDuplicateRosterPlayer) {
		t.Fatalf("expected %s, got %v", CodeDuplicateRosterPlayer, violations)
	}
}

func TestValidateRosterDuplicateBenchPlayer(t *testing.T) {
	players, ids := rosterPlayers(13, model.CategorySEN)
	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids[:11],
		BenchIDs:     []uint64{ids[11], ids[12], ids[11]},
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	if !containsCode(violations, CodeDuplicateRosterPlayer) {
		t.Fatalf("expected %s, got %v", CodeDuplicateRosterPlayer, violations)
	}
}

func TestValidateRosterCaptainAndGoalkeeperMustStart(t *testing.T) {
	players, ids := rosterPlayers(13, model.CategorySEN)
	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids[:11],
		BenchIDs:     ids[11:13],
		CaptainID:    ids[11], // on the bench
		GoalkeeperID: ids[12], // on the bench
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	if !containsCode(violations, CodeCaptainNotStarting) {
		t.Errorf("expected %s, got %v", CodeCaptainNotStarting, violations)
	}
	if !containsCode(violations, CodeGoalkeeperNotStarting) {
		t.Errorf("expected %s, got %v", CodeGoalkeeperNotStarting, violations)
	}
}

func TestValidateRosterInactiveMember(t *testing.T) {
	players, ids := rosterPlayers(11, model.CategorySEN)
	players[ids[3]].IsActiveMember = false
	until := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	players[ids[4]].MemberUntil = &until // lapsed before the match

	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids,
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	count := 0
	for _, v := range violations {
		if v.Code == CodeInactiveMember {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 inactive-member violations, got %d: %v", count, violations)
	}
}

func TestValidateRosterMembershipWindowCoversMatch(t *testing.T) {
	players, ids := rosterPlayers(11, model.CategorySEN)
	until := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	players[ids[0]].MemberUntil = &until // expires exactly on match day

	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids,
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if violations := ValidateRoster(in, players); len(violations) != 0 {
		t.Fatalf("member_until equal to match date should pass, got %v", violations)
	}
}

func TestValidateRosterWrongCategory(t *testing.T) {
	players, ids := rosterPlayers(11, model.CategorySEN)
	players[ids[5]].Category = model.CategoryJUN

	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids,
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	if !containsCode(violations, CodeWrongCategory) {
		t.Fatalf("expected %s, got %v", CodeWrongCategory, violations)
	}
}

func TestValidateRosterUnknownPlayer(t *testing.T) {
	players, ids := rosterPlayers(10, model.CategorySEN)
	starters := append(append([]uint64{}, ids...), 999)

	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   starters,
		CaptainID:    ids[0],
		GoalkeeperID: ids[1],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	if !containsCode(violations, CodeUnknownPlayer) {
		t.Fatalf("expected %s, got %v", CodeUnknownPlayer, violations)
	}
}

// All independent rules must be reported together, not just the first.
func TestValidateRosterCollectsAllViolations(t *testing.T) {
	players, ids := rosterPlayers(13, model.CategorySEN)
	players[ids[2]].IsActiveMember = false

	in := &RosterInput{
		Category:     model.CategorySEN,
		StarterIDs:   ids[:10], // one short
		BenchIDs:     []uint64{ids[2], ids[10], ids[11], ids[12]},
		CaptainID:    ids[10], // bench captain
		GoalkeeperID: ids[0],
		Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	violations := ValidateRoster(in, players)
	for _, code := range []string{CodeWrongStarterCount, CodeCaptainNotStarting, CodeInactiveMember} {
		if !containsCode(violations, code) {
			t.Errorf("expected %s among %v", code, violations)
		}
	}
}

func containsCode(violations []Violation, code string) bool {
	for _, v := range violations {
		if v.Code == code {
			return true
		}
	}
	return false
}
