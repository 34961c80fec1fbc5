package harness

import (
	"fmt"

	"github.com/paceline/paceline/internal/engine"
	"github.com/paceline/paceline/internal/model"
	"github.com/paceline/paceline/internal/normalize"
)

// defaultRunToken keeps golden snapshots stable when a scenario does not
// pin its own token.
const defaultRunToken = "test-run-token"

// Result holds the outcome of running a scenario.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool

	// Days is the reconciliation output.
	Days []engine.DaySummary

	// Conflicts is the conflict detection output. Nil when the scenario
	// has no candidates.
	Conflicts []model.Conflict

	// Dropped counts records the normalizer discarded as malformed,
	// summed across sessions, activities, and candidates.
	Dropped int

	// Errors collects assertion failures. Empty when Pass is true.
	Errors []error
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Normalize session, activity, and candidate records
//  2. Reconcile sessions against activities with the scenario's reference date
//  3. Detect conflicts when candidates are present
//  4. Evaluate expectations against summaries and conflicts
//
// A fixed run token keeps repeated runs byte-identical.
func Run(scenario *Scenario) (*Result, error) {
	sessions := normalize.Sessions(rawRecords(scenario.Sessions))
	activities := normalize.Activities(rawRecords(scenario.Activities))

	token := scenario.RunToken
	if token == "" {
		token = defaultRunToken
	}
	rec, err := engine.NewReconciler(scenario.Today,
		engine.WithTokenGenerator(engine.NewFixedGenerator(token)))
	if err != nil {
		return nil, fmt.Errorf("invalid scenario today: %w", err)
	}

	days, err := rec.Reconcile(sessions.Sessions, activities.Activities)
	if err != nil {
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}

	result := &Result{
		Days:    days,
		Dropped: sessions.Dropped + activities.Dropped,
	}

	if len(scenario.Candidates) > 0 {
		candidates := normalize.Sessions(rawRecords(scenario.Candidates))
		result.Dropped += candidates.Dropped
		result.Conflicts = engine.DetectConflicts(sessions.Sessions, candidates.Sessions)
	}

	result.Errors = evaluate(scenario, result)
	result.Pass = len(result.Errors) == 0
	return result, nil
}
