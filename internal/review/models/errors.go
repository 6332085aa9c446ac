package models

import (
	"errors"

	dErrors "calibra/pkg/domain-errors"
)

// Domain sentinels. Aggregates and value objects wrap these with a dErrors code
// and a human-readable message, so callers can match with errors.Is or branch on
// dErrors.HasCode.
var (
	ErrReviewNotFound          = errors.New("review not found")
	ErrInvalidDeadlineOrder    = errors.New("invalid deadline order")
	ErrInvalidPillarScore      = errors.New("invalid pillar score")
	ErrInvalidWeightedScore    = errors.New("invalid weighted score")
	ErrInvalidEngineerLevel    = errors.New("invalid engineer level")
	ErrInvalidBonusTier        = errors.New("invalid bonus tier")
	ErrInvalidReviewCycleState = errors.New("invalid review cycle state")
	ErrFinalScoreLocked        = errors.New("final score is locked")
	ErrInvalidTransition       = errors.New("invalid status transition")
)

// NotFound builds the not-found error returned when a required record is absent.
func NotFound(message string) error {
	return dErrors.Wrap(ErrReviewNotFound, dErrors.CodeNotFound, message)
}

func invariant(sentinel error, message string) error {
	return dErrors.Wrap(sentinel, dErrors.CodeInvariantViolation, message)
}
