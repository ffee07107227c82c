package service

import (
	"fmt"
	"io"
	"testing"
	"time"

	"ClubManager/internal/model"

	"github.com/sirupsen/logrus"
	moderncSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

// openTestDB opens a fresh in-memory SQLite database migrated with the full
// schema. Each test gets its own named memory database so state never leaks
// between tests.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(moderncSqlite.New(moderncSqlite.Config{
		DSN:        dsn,
		DriverName: "sqlite",
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&model.Player{},
		&model.PlayerCategoryHistory{},
		&model.MembershipHistory{},
		&model.Match{},
		&model.MatchRoster{},
		&model.MatchGoal{},
		&model.MatchAssist{},
		&model.MatchCard{},
		&model.StaffMember{},
		&model.Meeting{},
		&model.MeetingAttendee{},
		&model.Equipment{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// The schema must migrate cleanly on SQLite as well as Postgres, so the
// column tags stay dialect-neutral.
func TestSchemaMigrates(t *testing.T) {
	db := openTestDB(t)
	for _, table := range []string{"players", "matches", "match_rosters", "membership_history"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing after migration", table)
		}
	}
}

// testLogger returns a logger that swallows output.
func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// seedPlayer inserts an active senior-category player and returns it.
func seedPlayer(t *testing.T, db *gorm.DB, first, last string, category model.Category) *model.Player {
	t.Helper()
	p := &model.Player{
		FirstName:      first,
		LastName:       last,
		DateOfBirth:    time.Date(1995, 3, 15, 0, 0, 0, 0, time.UTC),
		Position:       model.PositionMidfielder,
		Category:       category,
		IsActiveMember: true,
		MemberSince:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return p
}

// seedSquad inserts n active players of a category.
func seedSquad(t *testing.T, db *gorm.DB, category model.Category, n int) []*model.Player {
	t.Helper()
	players := make([]*model.Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, seedPlayer(t, db, fmt.Sprintf("Player%02d", i), "Test", category))
	}
	return players
}

func playerIDs(players []*model.Player) []uint64 {
	ids := make([]uint64, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return ids
}

// reloadPlayer fetches the current row for counter assertions.
func reloadPlayer(t *testing.T, db *gorm.DB, id uint64) *model.Player {
	t.Helper()
	var p model.Player
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("reload player %d: %v", id, err)
	}
	return &p
}

// hasViolation reports whether the error is a ValidationError containing the
// given code.
func hasViolation(err error, code string) bool {
	ve, ok := AsValidationError(err)
	if !ok {
		return false
	}
	for _, v := range ve.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}
