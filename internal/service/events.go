package service

// Minute bounds cover regular time plus extra time.
const (
	MinEventMinute = 1
	MaxEventMinute = 120
)

// GoalEntry is a proposed goal record for a match.
type GoalEntry struct {
	PlayerID uint64 `json:"player_id"`
	Minute   int    `json:"minute"`
}

// AssistEntry is a proposed assist record for a match.
type AssistEntry struct {
	PlayerID uint64 `json:"player_id"`
	Minute   int    `json:"minute"`
}

// CardEntry is a proposed card record for a match.
type CardEntry struct {
	PlayerID uint64 `json:"player_id"`
	Minute   int    `json:"minute"`
	CardType string `json:"card_type"` // Y or R
}

// ValidateEvents checks goal, assist and card entries against the declared
// home score. All rules are independent and every applicable violation is
// returned. Multiple assists at the same minute are accepted as long as a
// goal exists there.
func ValidateEvents(homeScore int, goals []GoalEntry, assists []AssistEntry, cards []CardEntry) []Violation {
	var violations []Violation

	if len(goals) != homeScore {
		if homeScore == 0 && len(goals) > 0 {
			violations = append(violations, violationf(CodeGoalsDespiteZero,
				"%d goals entered despite zero score", len(goals)))
		} else {
			violations = append(violations, violationf(CodeGoalCountMismatch,
				"%d goals entered but score is %d", len(goals), homeScore))
		}
	}

	if len(assists) > len(goals) {
		violations = append(violations, violationf(CodeTooManyAssists,
			"%d assists entered but only %d goals", len(assists), len(goals)))
	}

	// Index goal scorers per minute for assist matching.
	scorersByMinute := make(map[int]map[uint64]struct{}, len(goals))
	for _, g := range goals {
		if scorersByMinute[g.Minute] == nil {
			scorersByMinute[g.Minute] = make(map[uint64]struct{})
		}
		scorersByMinute[g.Minute][g.PlayerID] = struct{}{}
	}

	for _, a := range assists {
		scorers, ok := scorersByMinute[a.Minute]
		if !ok {
			violations = append(violations, violationf(CodeAssistWithoutGoal,
				"assist at minute %d has no matching goal", a.Minute))
			continue
		}
		if _, self := scorers[a.PlayerID]; self {
			violations = append(violations, violationf(CodeSelfAssist,
				"player %d cannot assist their own goal at minute %d", a.PlayerID, a.Minute))
		}
	}

	for _, g := range goals {
		if g.Minute < MinEventMinute || g.Minute > MaxEventMinute {
			violations = append(violations, violationf(CodeMinuteOutOfRange,
				"goal minute %d outside %d-%d", g.Minute, MinEventMinute, MaxEventMinute))
		}
	}
	for _, a := range assists {
		if a.Minute < MinEventMinute || a.Minute > MaxEventMinute {
			violations = append(violations, violationf(CodeMinuteOutOfRange,
				"assist minute %d outside %d-%d", a.Minute, MinEventMinute, MaxEventMinute))
		}
	}
	for _, c := range cards {
		if c.Minute < MinEventMinute || c.Minute > MaxEventMinute {
			violations = append(violations, violationf(CodeMinuteOutOfRange,
				"card minute %d outside %d-%d", c.Minute, MinEventMinute, MaxEventMinute))
		}
		if c.CardType != "Y" && c.CardType != "R" {
			violations = append(violations, violationf(CodeInvalidCardType,
				"card type %q is not Y or R", c.CardType))
		}
	}

	return violations
}
