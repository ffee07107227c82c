package model

// Category is an age-bracket code, ordered from youngest to oldest.
// A player may only move toward older brackets, never back.
type Category string

const (
	CategoryU9  Category = "U9"
	CategoryU11 Category = "U11"
	CategoryMP  Category = "MP"  // mladi pioniri
	CategorySP  Category = "SP"  // stariji pioniri
	CategoryJUN Category = "JUN" // juniors
	CategorySEN Category = "SEN" // seniors
	CategoryVET Category = "VET" // veterans
)

// categoryOrder defines the aging direction: index == ordinal.
var categoryOrder = []Category{
	CategoryU9,
	CategoryU11,
	CategoryMP,
	CategorySP,
	CategoryJUN,
	CategorySEN,
	CategoryVET,
}

// categoryMaxAge holds the federation age ceilings per bracket.
var categoryMaxAge = map[Category]int{
	CategoryU9:  9,
	CategoryU11: 11,
	CategoryMP:  13,
	CategorySP:  15,
	CategoryJUN: 18,
	CategorySEN: 50,
	CategoryVET: 100,
}

// Categories returns all known categories, youngest first.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Valid reports whether c is a known category code.
func (c Category) Valid() bool {
	_, ok := categoryMaxAge[c]
	return ok
}

// Ordinal returns the position of c in the aging order, -1 if unknown.
func (c Category) Ordinal() int {
	for i, cat := range categoryOrder {
		if cat == c {
			return i
		}
	}
	return -1
}

// MaxAge returns the maximum allowed age for c, 0 if unknown.
func (c Category) MaxAge() int {
	return categoryMaxAge[c]
}

// Position is a player's field position.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "MF"
	PositionForward    Position = "FW"
)

// Valid reports whether p is a known position code.
func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

// CardType distinguishes yellow from red cards.
type CardType string

const (
	CardYellow CardType = "Y"
	CardRed    CardType = "R"
)

// Valid reports whether t is a known card type.
func (t CardType) Valid() bool {
	return t == CardYellow || t == CardRed
}

// MembershipAction labels entries in the membership audit trail.
type MembershipAction string

const (
	MembershipActivated   MembershipAction = "ACTIVATED"
	MembershipDeactivated MembershipAction = "DEACTIVATED"
	MembershipReactivated MembershipAction = "REACTIVATED"
	MembershipExtended    MembershipAction = "EXTENDED"
)
