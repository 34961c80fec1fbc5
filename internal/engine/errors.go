package engine

import (
	"errors"
	"fmt"

	"github.com/paceline/paceline/internal/model"
)

// ReconcileError represents a contract violation detected during
// reconciliation.
//
// The engine degrades gracefully on sparse data (missing fields, unpaired
// records, absent deltas), so almost nothing here is an error. The
// exceptions are upstream contract breaches - combinations the pairing
// resolver can never legally produce. Those are surfaced loudly rather than
// silently mapped to a valid-looking state, because a silent default would
// corrupt athlete-facing compliance reporting.
type ReconcileError struct {
	// Code identifies the error category.
	Code ReconcileErrorCode

	// Message is a human-readable description.
	Message string

	// Date identifies the affected calendar day, when known.
	Date model.Day

	// RunToken identifies the reconciliation pass.
	RunToken string
}

// ReconcileErrorCode categorizes reconciliation errors.
type ReconcileErrorCode string

const (
	// ErrCodeEmptySummary indicates a classification request with neither a
	// planned session nor an activity. Unreachable under correct upstream
	// construction; always a caller defect.
	ErrCodeEmptySummary ReconcileErrorCode = "EMPTY_SUMMARY"

	// ErrCodeInvalidDay indicates a malformed reference day reached the
	// engine boundary.
	ErrCodeInvalidDay ReconcileErrorCode = "INVALID_DAY"
)

// Error implements the error interface.
func (e *ReconcileError) Error() string {
	if e.Date != "" && e.RunToken != "" {
		return fmt.Sprintf("%s: %s (date=%s, run=%s)", e.Code, e.Message, e.Date, e.RunToken)
	}
	if e.Date != "" {
		return fmt.Sprintf("%s: %s (date=%s)", e.Code, e.Message, e.Date)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsEmptySummaryError returns true if the error is an empty-summary
// contract violation. Uses errors.As to handle wrapped errors.
func IsEmptySummaryError(err error) bool {
	var re *ReconcileError
	if errors.As(err, &re) {
		return re.Code == ErrCodeEmptySummary
	}
	return false
}

// NewEmptySummaryError creates a ReconcileError for the both-absent case.
func NewEmptySummaryError(date model.Day) *ReconcileError {
	return &ReconcileError{
		Code:    ErrCodeEmptySummary,
		Message: "neither planned session nor activity present",
		Date:    date,
	}
}

// NewInvalidDayError creates a ReconcileError for a malformed day value.
func NewInvalidDayError(raw string) *ReconcileError {
	return &ReconcileError{
		Code:    ErrCodeInvalidDay,
		Message: fmt.Sprintf("invalid day %q: expected YYYY-MM-DD", raw),
	}
}
