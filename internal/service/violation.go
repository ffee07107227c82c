package service

import (
	"errors"
	"fmt"
	"strings"
)

// Violation is one user-correctable problem found during validation.
// Validators collect every applicable violation instead of stopping at the
// first so callers can present all problems at once.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Violation codes.
const (
	CodeWrongStarterCount     = "wrong_starter_count"
	CodeBenchTooLarge         = "bench_too_large"
	CodeRosterOverlap         = "roster_overlap"
	CodeDuplicateRosterPlayer = "duplicate_roster_player"
	CodeCaptainNotStarting    = "captain_not_starting"
	CodeGoalkeeperNotStarting = "goalkeeper_not_starting"
	CodeInactiveMember        = "inactive_member"
	CodeWrongCategory         = "wrong_category"
	CodeUnknownPlayer         = "unknown_player"

	CodeGoalCountMismatch = "goal_count_mismatch"
	CodeGoalsDespiteZero  = "goals_despite_zero_score"
	CodeTooManyAssists    = "too_many_assists"
	CodeAssistWithoutGoal = "assist_without_goal"
	CodeSelfAssist        = "self_assist"
	CodeMinuteOutOfRange  = "minute_out_of_range"
	CodeInvalidCardType   = "invalid_card_type"

	CodeCategoryRegression = "category_regression"
	CodeOverAge            = "over_age"
	CodeUnknownCategory    = "unknown_category"
	CodeUnknownPosition    = "unknown_position"
)

func violationf(code, format string, args ...interface{}) Violation {
	return Violation{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidationError carries the full violation list for a rejected operation.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError wraps a non-empty violation list.
func NewValidationError(violations []Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrNotFound marks a referenced player, match or other entity that does not
// exist. Handlers map it to 404.
var ErrNotFound = errors.New("not found")
