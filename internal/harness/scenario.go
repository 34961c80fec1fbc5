package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/paceline/paceline/internal/model"
	"github.com/paceline/paceline/internal/normalize"
)

// Scenario defines a conformance test scenario.
// Scenarios feed raw calendar records through the normalize-reconcile
// pipeline and assert on the resulting summaries and conflicts.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Today is the reference date separating MISSED from PLANNED_ONLY.
	Today string `yaml:"today"`

	// Sessions holds raw planned-session records in any backend shape.
	// They pass through the normalizer exactly like production payloads.
	Sessions []map[string]any `yaml:"sessions,omitempty"`

	// Activities holds raw completed-activity records.
	Activities []map[string]any `yaml:"activities,omitempty"`

	// Candidates holds raw planned-session records to check for conflicts
	// against Sessions. When empty, conflict detection is skipped.
	Candidates []map[string]any `yaml:"candidates,omitempty"`

	// Expect describes the reconciliation outcome.
	Expect ExpectClause `yaml:"expect"`

	// RunToken is an optional fixed run token for deterministic tests.
	// If empty, defaults to "test-run-token".
	RunToken string `yaml:"run_token,omitempty"`
}

// ExpectClause specifies the expected reconciliation outcome.
// All matches are exact on the fields given; omitted optional fields
// assert absence where noted.
type ExpectClause struct {
	// Days lists the expected day summaries in ascending date order.
	// The list is exhaustive: extra or missing days fail.
	Days []ExpectDay `yaml:"days"`

	// Conflicts lists the expected conflicts. Exhaustive, in detector
	// emission order. An empty list with candidates present asserts a
	// clean batch.
	Conflicts []ExpectConflict `yaml:"conflicts,omitempty"`
}

// ExpectDay is one expected day of summaries.
type ExpectDay struct {
	Date      string          `yaml:"date"`
	Summaries []ExpectSummary `yaml:"summaries"`
}

// ExpectSummary is one expected execution summary.
type ExpectSummary struct {
	// State is the expected execution state name.
	State string `yaml:"state"`

	// PlannedID asserts the summary carries this planned session.
	// Empty asserts no planned side.
	PlannedID string `yaml:"planned_id,omitempty"`

	// ActivityID asserts the summary carries this activity.
	// Empty asserts no activity side.
	ActivityID string `yaml:"activity_id,omitempty"`

	// DurationDeltaSeconds asserts the signed duration delta.
	// Nil asserts the summary carries no deltas block at all.
	DurationDeltaSeconds *int `yaml:"duration_delta_seconds,omitempty"`

	// DistanceDeltaMeters asserts the signed distance delta.
	// Nil with DurationDeltaSeconds set asserts the distance delta
	// is absent (one side had no distance).
	DistanceDeltaMeters *int `yaml:"distance_delta_meters,omitempty"`
}

// ExpectConflict is one expected conflict.
type ExpectConflict struct {
	Date      string `yaml:"date"`
	Existing  string `yaml:"existing"`
	Candidate string `yaml:"candidate,omitempty"`
	Reason    string `yaml:"reason"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expect:" vs "expected:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Today == "" {
		return fmt.Errorf("today is required")
	}
	if _, err := model.ParseDay(s.Today); err != nil {
		return fmt.Errorf("today: %w", err)
	}
	if len(s.Sessions) == 0 && len(s.Activities) == 0 && len(s.Candidates) == 0 {
		return fmt.Errorf("scenario has no records: provide sessions, activities, or candidates")
	}
	if len(s.Candidates) > 0 && len(s.Expect.Days) == 0 && s.Expect.Conflicts == nil {
		// Conflict-only scenarios still need an explicit (possibly empty)
		// conflicts expectation so a clean batch is asserted, not assumed.
		return fmt.Errorf("candidates present but expect.conflicts is missing")
	}

	for i, day := range s.Expect.Days {
		if _, err := model.ParseDay(day.Date); err != nil {
			return fmt.Errorf("expect.days[%d].date: %w", i, err)
		}
		if len(day.Summaries) == 0 {
			return fmt.Errorf("expect.days[%d]: summaries list is required and must be non-empty", i)
		}
		for j, sum := range day.Summaries {
			if sum.State == "" {
				return fmt.Errorf("expect.days[%d].summaries[%d]: state is required", i, j)
			}
			if sum.PlannedID == "" && sum.ActivityID == "" {
				return fmt.Errorf("expect.days[%d].summaries[%d]: at least one of planned_id or activity_id is required", i, j)
			}
		}
	}

	for i, c := range s.Expect.Conflicts {
		if c.Date == "" {
			return fmt.Errorf("expect.conflicts[%d]: date is required", i)
		}
		if c.Existing == "" {
			return fmt.Errorf("expect.conflicts[%d]: existing is required", i)
		}
		if c.Reason == "" {
			return fmt.Errorf("expect.conflicts[%d]: reason is required", i)
		}
	}

	return nil
}

// rawRecords converts scenario record maps to normalizer input.
func rawRecords(records []map[string]any) []normalize.RawRecord {
	raw := make([]normalize.RawRecord, len(records))
	for i, r := range records {
		raw[i] = normalize.RawRecord(r)
	}
	return raw
}
