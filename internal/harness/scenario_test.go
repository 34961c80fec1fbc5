package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioValid(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "paired_run.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "paired_run", scenario.Name)
	assert.Equal(t, "2024-06-15", scenario.Today)
	assert.Len(t, scenario.Sessions, 1)
	assert.Len(t, scenario.Activities, 1)
	require.Len(t, scenario.Expect.Days, 1)
	assert.Equal(t, "COMPLETED_AS_PLANNED", scenario.Expect.Days[0].Summaries[0].State)
	require.NotNil(t, scenario.Expect.Days[0].Summaries[0].DurationDeltaSeconds)
	assert.Equal(t, 900, *scenario.Expect.Days[0].Summaries[0].DurationDeltaSeconds)
}

func TestLoadScenarioFileNotFound(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioUnknownField(t *testing.T) {
	// "expected" instead of "expect": strict decoding must reject it.
	path := writeScenario(t, `
name: typo
description: "catches field typos"
today: "2024-06-15"
sessions:
  - {id: s1, date: "2024-06-10", sport: running}
expected:
  days: []
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no name",
			content: "description: d\ntoday: \"2024-06-15\"\nsessions:\n  - {id: s1, date: \"2024-06-10\", sport: running}\n",
			wantErr: "name is required",
		},
		{
			name:    "no today",
			content: "name: n\ndescription: d\nsessions:\n  - {id: s1, date: \"2024-06-10\", sport: running}\n",
			wantErr: "today is required",
		},
		{
			name:    "bad today",
			content: "name: n\ndescription: d\ntoday: \"June 15\"\nsessions:\n  - {id: s1, date: \"2024-06-10\", sport: running}\n",
			wantErr: "today",
		},
		{
			name:    "no records",
			content: "name: n\ndescription: d\ntoday: \"2024-06-15\"\n",
			wantErr: "no records",
		},
		{
			name: "summary without ids",
			content: `name: n
description: d
today: "2024-06-15"
sessions:
  - {id: s1, date: "2024-06-10", sport: running}
expect:
  days:
    - date: "2024-06-10"
      summaries:
        - state: MISSED
`,
			wantErr: "planned_id or activity_id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadScenarioCandidatesNeedConflictExpectation(t *testing.T) {
	path := writeScenario(t, `
name: n
description: d
today: "2024-06-15"
candidates:
  - {id: c1, date: "2024-06-10", sport: running}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect.conflicts is missing")
}
