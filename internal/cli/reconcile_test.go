package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paceline/paceline/internal/model"
	"github.com/paceline/paceline/internal/store"
	"github.com/paceline/paceline/internal/testutil"
)

// seedStore creates a database with one paired day, one missed day, and
// one future planned day relative to today 2024-06-15.
func seedStore(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "paceline.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	sessions := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithDuration(60), testutil.WithActivityLink("a1")),
		testutil.Session("s2", "2024-06-12", testutil.WithTitle("Tempo")),
		testutil.Session("s3", "2024-06-20", testutil.WithTitle("Long run")),
	}
	activities := []model.CompletedActivity{
		testutil.Activity("a1", "2024-06-10", testutil.WithActivityDuration(75)),
	}
	require.NoError(t, st.PutSessions(ctx, sessions))
	require.NoError(t, st.PutActivities(ctx, activities))
	return dbPath
}

func TestReconcileJSONSnapshot(t *testing.T) {
	dbPath := seedStore(t)

	buf := &bytes.Buffer{}
	cmd := NewReconcileCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--from", "2024-06-01", "--to", "2024-06-30", "--today", "2024-06-15"})

	require.NoError(t, cmd.Execute())

	var payload struct {
		Days []struct {
			Date      string `json:"date"`
			Summaries []struct {
				State  string `json:"execution_state"`
				Deltas *struct {
					DurationSeconds int `json:"duration_seconds"`
				} `json:"deltas"`
			} `json:"summaries"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Len(t, payload.Days, 3)

	assert.Equal(t, "2024-06-10", payload.Days[0].Date)
	require.Len(t, payload.Days[0].Summaries, 1)
	assert.Equal(t, "COMPLETED_AS_PLANNED", payload.Days[0].Summaries[0].State)
	require.NotNil(t, payload.Days[0].Summaries[0].Deltas)
	assert.Equal(t, 900, payload.Days[0].Summaries[0].Deltas.DurationSeconds)

	assert.Equal(t, "2024-06-12", payload.Days[1].Date)
	assert.Equal(t, "MISSED", payload.Days[1].Summaries[0].State)

	assert.Equal(t, "2024-06-20", payload.Days[2].Date)
	assert.Equal(t, "PLANNED_ONLY", payload.Days[2].Summaries[0].State)
}

func TestReconcileJSONIdempotent(t *testing.T) {
	dbPath := seedStore(t)

	run := func() []byte {
		buf := &bytes.Buffer{}
		cmd := NewReconcileCommand(&RootOptions{Format: "json"})
		cmd.SetOut(buf)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--db", dbPath, "--from", "2024-06-01", "--to", "2024-06-30", "--today", "2024-06-15"})
		require.NoError(t, cmd.Execute())
		return buf.Bytes()
	}

	first := run()
	second := run()
	assert.Equal(t, first, second, "reconcile output must be byte-identical across runs")
}

func TestReconcileTextOutput(t *testing.T) {
	dbPath := seedStore(t)

	buf := &bytes.Buffer{}
	cmd := NewReconcileCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--from", "2024-06-01", "--to", "2024-06-30", "--today", "2024-06-15"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "2024-06-10")
	assert.Contains(t, out, "COMPLETED_AS_PLANNED")
	assert.Contains(t, out, "duration +900s")
	assert.Contains(t, out, "MISSED")
	assert.Contains(t, out, "PLANNED_ONLY")
}

func TestReconcileEmptyRange(t *testing.T) {
	dbPath := seedStore(t)

	buf := &bytes.Buffer{}
	cmd := NewReconcileCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--from", "2025-01-01", "--to", "2025-01-31", "--today", "2025-01-15"})

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `{"days":[]}`, buf.String())
}

func TestReconcileBadDates(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "paceline.db")

	cases := []struct {
		name string
		args []string
	}{
		{"garbage from", []string{"--db", dbPath, "--from", "June 1st", "--to", "2024-06-30"}},
		{"inverted range", []string{"--db", dbPath, "--from", "2024-06-30", "--to", "2024-06-01"}},
		{"garbage today", []string{"--db", dbPath, "--from", "2024-06-01", "--to", "2024-06-30", "--today", "tomorrow"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			cmd := NewReconcileCommand(&RootOptions{Format: "text"})
			cmd.SetOut(buf)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tc.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}
