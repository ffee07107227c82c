package service

import (
	"strings"
	"testing"
)

func TestValidateEventsAccepts(t *testing.T) {
	goals := []GoalEntry{{PlayerID: 1, Minute: 10}, {PlayerID: 2, Minute: 34}}
	assists := []AssistEntry{{PlayerID: 3, Minute: 10}}
	if violations := ValidateEvents(2, goals, assists, nil); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateEventsGoalCountMismatch(t *testing.T) {
	goals := []GoalEntry{{PlayerID: 1, Minute: 10}, {PlayerID: 2, Minute: 20}}
	violations := ValidateEvents(1, goals, nil, nil)
	if !containsCode(violations, CodeGoalCountMismatch) {
		t.Fatalf("expected %s, got %v", CodeGoalCountMismatch, violations)
	}
	found := false
	for _, v := range violations {
		if strings.Contains(v.Message, "2 goals entered but score is 1") {
			found = true
		}
	}
	if !found {
		t.Fatalf("message should name both numbers, got %v", violations)
	}
}

func TestValidateEventsGoalsDespiteZeroScore(t *testing.T) {
	goals := []GoalEntry{{PlayerID: 1, Minute: 10}}
	violations := ValidateEvents(0, goals, nil, nil)
	if !containsCode(violations, CodeGoalsDespiteZero) {
		t.Fatalf("expected %s, got %v", CodeGoalsDespiteZero, violations)
	}
}

func TestValidateEventsMissingGoals(t *testing.T) {
	violations := ValidateEvents(2, nil, nil, nil)
	if !containsCode(violations, CodeGoalCountMismatch) {
		t.Fatalf("expected %s, got %v", CodeGoalCountMismatch, violations)
	}
}

func TestValidateEventsAssistWithoutGoal(t *testing.T) {
	goals := []GoalEntry{{PlayerID: 1, Minute: 10}}
	assists := []AssistEntry{{PlayerID: 2, Minute: 15}}
	violations := ValidateEvents(1, goals, assists, nil)
	if !containsCode(violations, CodeAssistWithoutGoal) {
		t.Fatalf("expected %s, got %v", CodeAssistWithoutGoal, violations)
	}
	found := false
	for _, v := range violations {
		if strings.Contains(v.Message, "minute 15") {
			found = true
		}
	}
	if !found {
		t.Fatalf("message should name the minute, got %v", violations)
	}
}

func TestValidateEventsSelfAssist(t *testing.T) {
	goals := []GoalEntry{{PlayerID: 1, Minute: 10}}
	assists := []AssistEntry{{PlayerID: 1, Minute: 10}}
	violations := ValidateEvents(1, goals, assists, nil)
	if !containsCode(violations, CodeSelfAssist) {
		t.Fatalf("expected %s, got %v", CodeSelfAssist, violations)
	}
}

// Another player may assist a goal at the same minute the assister scored
// in, as long as it is not their own goal.
func TestValidateEventsAssistBySecondScorer(t *testing.T) {
	goals := []GoalEntry{{PlayerID: 1, Minute: 10}, {PlayerID: 2, Minute: 10}}
	assists := []AssistEntry{{PlayerID: 3, Minute: 10}}
	if violations := ValidateEvents(2, goals, assists, nil); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateEventsTooManyAssists(t *testing.T) {
	goals := []GoalEntry{{PlayerID: 1, Minute: 10}}
	assists := []AssistEntry{{PlayerID: 2, Minute: 10}, {PlayerID: 3, Minute: 10}, {PlayerID: 4, Minute: 10}}
	violations := ValidateEvents(1, goals, assists, nil)
	if !containsCode(violations, CodeTooManyAssists) {
		t.Fatalf("expected %s, got %v", CodeTooManyAssists, violations)
	}
}

func TestValidateEventsMinuteBounds(t *testing.T) {
	cases := []struct {
		name   string
		minute int
		want   bool
	}{
		{"zero", 0, true},
		{"first", 1, false},
		{"ninety", 90, false},
		{"extra time", 120, false},
		{"beyond extra time", 121, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			goals := []GoalEntry{{PlayerID: 1, Minute: tc.minute}}
			violations := ValidateEvents(1, goals, nil, nil)
			got := containsCode(violations, CodeMinuteOutOfRange)
			if got != tc.want {
				t.Fatalf("minute %d: out-of-range=%v, want %v", tc.minute, got, tc.want)
			}
		})
	}
}

func TestValidateEventsCardChecks(t *testing.T) {
	goals := []GoalEntry{{PlayerID: 1, Minute: 10}}
	cards := []CardEntry{
		{PlayerID: 2, Minute: 40, CardType: "Y"},
		{PlayerID: 3, Minute: 200, CardType: "X"},
	}
	violations := ValidateEvents(1, goals, nil, cards)
	if !containsCode(violations, CodeMinuteOutOfRange) {
		t.Errorf("expected %s, got %v", CodeMinuteOutOfRange, violations)
	}
	if !containsCode(violations, CodeInvalidCardType) {
		t.Errorf("expected %s, got %v", CodeInvalidCardType, violations)
	}
}
