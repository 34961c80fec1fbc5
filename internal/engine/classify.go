package engine

import (
	"math"

	"github.com/paceline/paceline/internal/model"
)

// Classification is the state machine's verdict for one (planned?,
// activity?) combination.
type Classification struct {
	State  model.ExecutionState
	Deltas *model.Deltas

	// PlannedExcluded reports that the planned side was cancelled or
	// deleted: it must not appear in the emitted summary, and the activity
	// (if any) is treated as unplanned.
	PlannedExcluded bool

	// Skip reports that no summary should be emitted at all (a discarded
	// plan with no activity is treated as non-existent, not as a miss).
	Skip bool
}

// Classify maps a resolved (planned?, activity?) combination to exactly one
// execution state.
//
// today is the reference local calendar day, injected by the caller and
// evaluated once per reconciliation pass. It is the engine's only window
// onto wall-clock time; per-item clock reads would let a midnight boundary
// mid-render classify one day's items inconsistently.
//
// The both-absent combination is unreachable under correct upstream
// construction and returns a ReconcileError with code EMPTY_SUMMARY rather
// than defaulting to a valid-looking state.
func Classify(planned *model.PlannedSession, activity *model.CompletedActivity, date model.Day, today model.Day) (Classification, error) {
	if planned == nil && activity == nil {
		return Classification{}, NewEmptySummaryError(date)
	}

	// A cancelled or deleted plan is treated as non-existent, not as a miss.
	if planned != nil && planned.Status.Discarded() {
		if activity == nil {
			return Classification{Skip: true, PlannedExcluded: true}, nil
		}
		return Classification{State: model.StateCompletedUnplanned, PlannedExcluded: true}, nil
	}

	switch {
	case planned != nil && activity != nil:
		return Classification{
			State:  model.StateCompletedAsPlanned,
			Deltas: computeDeltas(*planned, *activity),
		}, nil

	case activity != nil:
		return Classification{State: model.StateCompletedUnplanned}, nil

	default: // planned only
		if date.Before(today) {
			return Classification{State: model.StateMissed}, nil
		}
		return Classification{State: model.StatePlannedOnly}, nil
	}
}

// computeDeltas returns the signed plan-vs-actual differences for a genuine
// pair. Positive values mean the athlete went longer or farther than
// planned. The distance delta exists only when both sides carry distance;
// a missing operand yields an absent field, never a fabricated zero.
func computeDeltas(planned model.PlannedSession, activity model.CompletedActivity) *model.Deltas {
	d := &model.Deltas{
		DurationSeconds: activity.DurationMin*60 - planned.DurationMin*60,
	}
	if planned.DistanceKm != nil && activity.DistanceKm != nil {
		meters := int(math.Round((*activity.DistanceKm - *planned.DistanceKm) * 1000))
		d.DistanceMeters = &meters
	}
	return d
}

// ComplianceFor derives the optional display compliance verdict from a
// classification. Completed-as-planned counts as partial when the recorded
// duration fell short of 80% of the plan.
func ComplianceFor(state model.ExecutionState, planned *model.PlannedSession, activity *model.CompletedActivity) model.Compliance {
	switch state {
	case model.StateMissed:
		return model.ComplianceMissed
	case model.StateCompletedAsPlanned:
		if planned != nil && activity != nil && planned.DurationMin > 0 {
			if float64(activity.DurationMin) < 0.8*float64(planned.DurationMin) {
				return model.CompliancePartial
			}
		}
		return model.ComplianceComplete
	default:
		return ""
	}
}
