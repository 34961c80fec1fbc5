package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/paceline/paceline/internal/model"
)

// snapshot captures the complete output of a scenario run in canonical
// JSON form for golden comparison.
func snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	days := make([]any, len(result.Days))
	for i, d := range result.Days {
		summaries := make([]any, len(d.Summaries))
		for j, s := range d.Summaries {
			summaries[j] = s.CanonicalMap()
		}
		days[i] = map[string]any{
			"date":      d.Date,
			"summaries": summaries,
		}
	}

	m := map[string]any{
		"scenario_name": scenario.Name,
		"days":          days,
	}
	if result.Conflicts != nil {
		conflicts := make([]any, len(result.Conflicts))
		for i, c := range result.Conflicts {
			conflicts[i] = c.CanonicalMap()
		}
		m["conflicts"] = conflicts
	}
	return model.MarshalCanonical(m)
}

// RunWithGolden executes a scenario and compares its canonical snapshot
// against a golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for expected output. Any
// change in summary content, ordering, or serialization shows up as a
// golden diff.
//
// Returns error if scenario execution or serialization fails. Snapshot
// mismatch fails the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	data, err := snapshot(scenario, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
