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

// seedCalendarStore stores a paired session/activity plus a standalone
// planned session.
func seedCalendarStore(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "paceline.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	sessions := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithTitle("Tempo"), testutil.WithActivityLink("a1")),
		testutil.Session("s2", "2024-06-10", testutil.WithTitle("Recovery spin"), testutil.WithSport(model.SportCycling)),
	}
	activities := []model.CompletedActivity{
		testutil.Activity("a1", "2024-06-10", testutil.WithActivityTitle("Tempo run"), testutil.WithPlannedLink("s1"), testutil.WithLoad(70)),
	}
	require.NoError(t, st.PutSessions(ctx, sessions))
	require.NoError(t, st.PutActivities(ctx, activities))
	return dbPath
}

func TestCalendarJSONGroups(t *testing.T) {
	dbPath := seedCalendarStore(t)

	buf := &bytes.Buffer{}
	cmd := NewCalendarCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--from", "2024-06-01", "--to", "2024-06-30"})

	require.NoError(t, cmd.Execute())

	var payload struct {
		Groups []struct {
			Key   string `json:"key"`
			Items []struct {
				Kind string `json:"kind"`
				ID   string `json:"id"`
			} `json:"items"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Len(t, payload.Groups, 2)

	// The paired group sorts first: completed beats planned. Its top card
	// is the completed activity.
	require.Len(t, payload.Groups[0].Items, 2)
	assert.Equal(t, "completed", payload.Groups[0].Items[0].Kind)
	assert.Equal(t, "a1", payload.Groups[0].Items[0].ID)

	require.Len(t, payload.Groups[1].Items, 1)
	assert.Equal(t, "s2", payload.Groups[1].Items[0].ID)
}

func TestCalendarTextOutput(t *testing.T) {
	dbPath := seedCalendarStore(t)

	buf := &bytes.Buffer{}
	cmd := NewCalendarCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--from", "2024-06-01", "--to", "2024-06-30"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Tempo run")
	assert.Contains(t, out, "(+1 paired)")
	assert.Contains(t, out, "Recovery spin")
}

func TestCalendarEmptyRange(t *testing.T) {
	dbPath := seedCalendarStore(t)

	buf := &bytes.Buffer{}
	cmd := NewCalendarCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--from", "2025-01-01", "--to", "2025-01-31"})

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `{"groups":[]}`, buf.String())
}
