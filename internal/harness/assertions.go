package harness

import (
	"fmt"
	"strings"

	"github.com/paceline/paceline/internal/engine"
	"github.com/paceline/paceline/internal/model"
)

// AssertionError is returned when an expectation fails.
// It includes the actual output so a failing scenario can be debugged
// without re-running under a debugger.
type AssertionError struct {
	Path     string // which expectation failed, e.g. "days[1].summaries[0]"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Path)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

func fail(path, expected, actual string) error {
	return &AssertionError{Path: path, Expected: expected, Actual: actual}
}

// evaluate checks every expectation in the scenario against the result.
// All failures are collected, not just the first.
func evaluate(scenario *Scenario, result *Result) []error {
	var errs []error
	errs = append(errs, evaluateDays(scenario.Expect.Days, result.Days)...)
	if len(scenario.Candidates) > 0 {
		errs = append(errs, evaluateConflicts(scenario.Expect.Conflicts, result.Conflicts)...)
	}
	return errs
}

// evaluateDays matches the expected day list exhaustively against the
// reconciliation output, in order.
func evaluateDays(expected []ExpectDay, actual []engine.DaySummary) []error {
	if len(expected) != len(actual) {
		return []error{fail("days",
			fmt.Sprintf("%d day(s): %s", len(expected), expectedDates(expected)),
			fmt.Sprintf("%d day(s): %s", len(actual), actualDates(actual)))}
	}

	var errs []error
	for i, expDay := range expected {
		actDay := actual[i]
		if model.Day(expDay.Date) != actDay.Date {
			errs = append(errs, fail(fmt.Sprintf("days[%d].date", i), expDay.Date, string(actDay.Date)))
			continue
		}
		if len(expDay.Summaries) != len(actDay.Summaries) {
			errs = append(errs, fail(fmt.Sprintf("days[%d].summaries", i),
				fmt.Sprintf("%d summary(ies)", len(expDay.Summaries)),
				fmt.Sprintf("%d summary(ies): %s", len(actDay.Summaries), summaryStates(actDay.Summaries))))
			continue
		}
		for j, expSum := range expDay.Summaries {
			errs = append(errs, evaluateSummary(fmt.Sprintf("days[%d].summaries[%d]", i, j), expSum, actDay.Summaries[j])...)
		}
	}
	return errs
}

func evaluateSummary(path string, expected ExpectSummary, actual model.ExecutionSummary) []error {
	var errs []error

	if expected.State != string(actual.State) {
		errs = append(errs, fail(path+".state", expected.State, string(actual.State)))
	}

	actualPlanned := ""
	if actual.Planned != nil {
		actualPlanned = actual.Planned.ID
	}
	if expected.PlannedID != actualPlanned {
		errs = append(errs, fail(path+".planned_id", orNone(expected.PlannedID), orNone(actualPlanned)))
	}

	actualActivity := ""
	if actual.Activity != nil {
		actualActivity = actual.Activity.ID
	}
	if expected.ActivityID != actualActivity {
		errs = append(errs, fail(path+".activity_id", orNone(expected.ActivityID), orNone(actualActivity)))
	}

	// Nil expectation asserts absence. A zero delta is a real value and
	// must be asserted explicitly, never conflated with "no delta".
	switch {
	case expected.DurationDeltaSeconds == nil && actual.Deltas != nil:
		errs = append(errs, fail(path+".deltas", "absent",
			fmt.Sprintf("duration %+ds", actual.Deltas.DurationSeconds)))
	case expected.DurationDeltaSeconds != nil && actual.Deltas == nil:
		errs = append(errs, fail(path+".deltas",
			fmt.Sprintf("duration %+ds", *expected.DurationDeltaSeconds), "absent"))
	case expected.DurationDeltaSeconds != nil:
		if *expected.DurationDeltaSeconds != actual.Deltas.DurationSeconds {
			errs = append(errs, fail(path+".deltas.duration_seconds",
				fmt.Sprintf("%+d", *expected.DurationDeltaSeconds),
				fmt.Sprintf("%+d", actual.Deltas.DurationSeconds)))
		}
		switch {
		case expected.DistanceDeltaMeters == nil && actual.Deltas.DistanceMeters != nil:
			errs = append(errs, fail(path+".deltas.distance_meters", "absent",
				fmt.Sprintf("%+d", *actual.Deltas.DistanceMeters)))
		case expected.DistanceDeltaMeters != nil && actual.Deltas.DistanceMeters == nil:
			errs = append(errs, fail(path+".deltas.distance_meters",
				fmt.Sprintf("%+d", *expected.DistanceDeltaMeters), "absent"))
		case expected.DistanceDeltaMeters != nil:
			if *expected.DistanceDeltaMeters != *actual.Deltas.DistanceMeters {
				errs = append(errs, fail(path+".deltas.distance_meters",
					fmt.Sprintf("%+d", *expected.DistanceDeltaMeters),
					fmt.Sprintf("%+d", *actual.Deltas.DistanceMeters)))
			}
		}
	}

	return errs
}

// evaluateConflicts matches the expected conflict list exhaustively, in
// detector emission order.
func evaluateConflicts(expected []ExpectConflict, actual []model.Conflict) []error {
	if len(expected) != len(actual) {
		return []error{fail("conflicts",
			fmt.Sprintf("%d conflict(s)", len(expected)),
			fmt.Sprintf("%d conflict(s): %s", len(actual), conflictSummaries(actual)))}
	}

	var errs []error
	for i, exp := range expected {
		act := actual[i]
		path := fmt.Sprintf("conflicts[%d]", i)
		if model.Day(exp.Date) != act.Date {
			errs = append(errs, fail(path+".date", exp.Date, string(act.Date)))
		}
		if exp.Existing != act.ExistingSessionID {
			errs = append(errs, fail(path+".existing", exp.Existing, act.ExistingSessionID))
		}
		if exp.Candidate != act.CandidateSessionID {
			errs = append(errs, fail(path+".candidate", orNone(exp.Candidate), orNone(act.CandidateSessionID)))
		}
		if exp.Reason != string(act.Reason) {
			errs = append(errs, fail(path+".reason", exp.Reason, string(act.Reason)))
		}
	}
	return errs
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func expectedDates(days []ExpectDay) string {
	dates := make([]string, len(days))
	for i, d := range days {
		dates[i] = d.Date
	}
	return strings.Join(dates, ", ")
}

func actualDates(days []engine.DaySummary) string {
	dates := make([]string, len(days))
	for i, d := range days {
		dates[i] = string(d.Date)
	}
	return strings.Join(dates, ", ")
}

func summaryStates(summaries []model.ExecutionSummary) string {
	states := make([]string, len(summaries))
	for i, s := range summaries {
		states[i] = string(s.State)
	}
	return strings.Join(states, ", ")
}

func conflictSummaries(conflicts []model.Conflict) string {
	parts := make([]string, len(conflicts))
	for i, c := range conflicts {
		parts[i] = fmt.Sprintf("%s/%s", c.Date, c.Reason)
	}
	return strings.Join(parts, ", ")
}
