package model

import (
	"time"
)

// Player is the club member aggregate. The goal/assist/card/appearance
// counters are a denormalized cache maintained inside the same transaction
// that writes the event rows; the stats service recomputes the real values
// from the event tables on read.
type Player struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName      string     `gorm:"column:first_name;type:varchar(50);not null"`
	LastName       string     `gorm:"column:last_name;type:varchar(50);not null"`
	DateOfBirth    time.Time  `gorm:"column:date_of_birth;type:date;not null"`
	Position       Position   `gorm:"column:position;type:varchar(2);not null"`
	Category       Category   `gorm:"column:category;type:varchar(3);index"`
	Goals          int        `gorm:"column:goals;type:int;not null;default:0"`
	Assists        int        `gorm:"column:assists;type:int;not null;default:0"`
	YellowCards    int        `gorm:"column:yellow_cards;type:int;not null;default:0"`
	RedCards       int        `gorm:"column:red_cards;type:int;not null;default:0"`
	Appearances    int        `gorm:"column:appearances;type:int;not null;default:0"`
	IsActiveMember bool       `gorm:"column:is_active_member;type:boolean;not null;default:true"`
	MemberSince    time.Time  `gorm:"column:member_since;type:date;not null"`
	MemberUntil    *time.Time `gorm:"column:member_until;type:date"`
	CreatedAt      time.Time  `gorm:"column:created_at;type:timestamp"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;type:timestamp"`
}

// FullName joins first and last name for display and violation messages.
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// AgeAt computes the age in whole years as of the given date.
func (p *Player) AgeAt(asOf time.Time) int {
	age := asOf.Year() - p.DateOfBirth.Year()
	if asOf.Month() < p.DateOfBirth.Month() ||
		(asOf.Month() == p.DateOfBirth.Month() && asOf.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}

// MembershipCovers reports whether the player counts as an active member on
// the given date: the active flag is set and member_until, if present, has
// not passed.
func (p *Player) MembershipCovers(date time.Time) bool {
	if !p.IsActiveMember {
		return false
	}
	if p.MemberUntil == nil {
		return true
	}
	return !p.MemberUntil.Before(date)
}

// PlayerCategoryHistory is the append-only log of category assignments.
// One row per change, including the initial assignment.
type PlayerCategoryHistory struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID  uint64    `gorm:"column:player_id;type:bigint;not null;index"`
	Category  Category  `gorm:"column:category;type:varchar(3);not null"`
	ChangedAt time.Time `gorm:"column:changed_at;type:timestamp;not null"`
}

// MembershipHistory is the append-only audit trail of membership flips.
type MembershipHistory struct {
	ID        uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID  uint64           `gorm:"column:player_id;type:bigint;not null;index"`
	Action    MembershipAction `gorm:"column:action;type:varchar(20);not null"`
	DateFrom  time.Time        `gorm:"column:date_from;type:date;not null"`
	DateUntil *time.Time       `gorm:"column:date_until;type:date"`
	Notes     string           `gorm:"column:notes;type:text"`
	CreatedAt time.Time        `gorm:"column:created_at;type:timestamp"`
}

// Match is a played fixture with its declared score. Roster membership and
// the event rows live in their own tables.
type Match struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	MatchUUID    string    `gorm:"column:match_uuid;type:varchar(64);uniqueIndex;not null"`
	Date         time.Time `gorm:"column:date;type:date;not null;index"`
	HomeOrAway   string    `gorm:"column:home_or_away;type:varchar(1);not null"` // H or A
	Opponent     string    `gorm:"column:opponent;type:varchar(100);not null"`
	HomeScore    int       `gorm:"column:home_score;type:int;not null;default:0"`
	AwayScore    int       `gorm:"column:away_score;type:int;not null;default:0"`
	Category     Category  `gorm:"column:category;type:varchar(3);not null;index"`
	CaptainID    uint64    `gorm:"column:captain_id;type:bigint;not null"`
	GoalkeeperID uint64    `gorm:"column:goalkeeper_id;type:bigint;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamp"`
}

// Roster slots.
const (
	RosterSlotStart = "START"
	RosterSlotBench = "BENCH"
)

// MatchRoster links a player to a match, either in the starting eleven or
// on the bench.
type MatchRoster struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	MatchID  uint64 `gorm:"column:match_id;type:bigint;not null;index;uniqueIndex:uk_match_player"`
	PlayerID uint64 `gorm:"column:player_id;type:bigint;not null;uniqueIndex:uk_match_player"`
	Slot     string `gorm:"column:slot;type:varchar(5);not null"`
}

// MatchGoal is a single goal scored in a match.
type MatchGoal struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	MatchID  uint64 `gorm:"column:match_id;type:bigint;not null;index"`
	PlayerID uint64 `gorm:"column:player_id;type:bigint;not null;index"`
	Minute   int    `gorm:"column:minute;type:int;not null"`
}

// MatchAssist is a single assist credited in a match.
type MatchAssist struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	MatchID  uint64 `gorm:"column:match_id;type:bigint;not null;index"`
	PlayerID uint64 `gorm:"column:player_id;type:bigint;not null;index"`
	Minute   int    `gorm:"column:minute;type:int;not null"`
}

// MatchCard is a booking shown in a match.
type MatchCard struct {
	ID       uint64   `gorm:"column:id;primaryKey;autoIncrement"`
	MatchID  uint64   `gorm:"column:match_id;type:bigint;not null;index"`
	PlayerID uint64   `gorm:"column:player_id;type:bigint;not null;index"`
	CardType CardType `gorm:"column:card_type;type:varchar(1);not null"`
	Minute   int      `gorm:"column:minute;type:int;not null"`
}

// StaffMember is a coach, board member or other club worker.
type StaffMember struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Role      string    `gorm:"column:role;type:varchar(1);not null"` // U board, T coach, F physio, O other
	Position  string    `gorm:"column:position;type:varchar(100)"`
	Email     *string   `gorm:"column:email;type:varchar(254)"`
	Phone     *string   `gorm:"column:phone;type:varchar(20)"`
	Active    bool      `gorm:"column:active;type:boolean;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp"`
}

// Meeting is a recorded club meeting with staff attendees.
type Meeting struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Date      time.Time `gorm:"column:date;type:date;not null"`
	Title     string    `gorm:"column:title;type:varchar(200);not null"`
	Notes     string    `gorm:"column:notes;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp"`
}

// MeetingAttendee links staff members to meetings they attended.
type MeetingAttendee struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	MeetingID uint64 `gorm:"column:meeting_id;type:bigint;not null;index;uniqueIndex:uk_meeting_staff"`
	StaffID   uint64 `gorm:"column:staff_id;type:bigint;not null;uniqueIndex:uk_meeting_staff"`
}

// Equipment is an inventory item (balls, kits).
type Equipment struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string     `gorm:"column:name;type:varchar(100);not null"`
	Type         string     `gorm:"column:type;type:varchar(4);not null"` // BALL or KIT
	Quantity     int        `gorm:"column:quantity;type:int;not null;default:0"`
	Condition    string     `gorm:"column:condition;type:varchar(50);default:'OK'"`
	PurchaseDate *time.Time `gorm:"column:purchase_date;type:date"`
	Description  string     `gorm:"column:description;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at;type:timestamp"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;type:timestamp"`
}

func (Player) TableName() string                { return "players" }
func (PlayerCategoryHistory) TableName() string { return "player_category_history" }
func (MembershipHistory) TableName() string     { return "membership_history" }
func (Match) TableName() string                 { return "matches" }
func (MatchRoster) TableName() string           { return "match_rosters" }
func (MatchGoal) TableName() string             { return "match_goals" }
func (MatchAssist) TableName() string           { return "match_assists" }
func (MatchCard) TableName() string             { return "match_cards" }
func (StaffMember) TableName() string           { return "staff_members" }
func (Meeting) TableName() string               { return "meetings" }
func (MeetingAttendee) TableName() string       { return "meeting_attendees" }
func (Equipment) TableName() string             { return "equipment" }
