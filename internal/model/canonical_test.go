package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	out, err := MarshalCanonical(map[string]any{
		"zeta":  1,
		"alpha": 2,
		"mid":   3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mid":3,"zeta":1}`, string(out))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	out, err := MarshalCanonical(map[string]any{"title": "3x10' < threshold & cruise"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"3x10' < threshold & cruise"}`, string(out))
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// "é" as combining sequence (U+0065 U+0301) must serialize identically
	// to its precomposed form (U+00E9).
	combining, err := MarshalCanonical("café")
	require.NoError(t, err)
	precomposed, err := MarshalCanonical("café")
	require.NoError(t, err)
	assert.Equal(t, precomposed, combining)
}

func TestMarshalCanonical_NullForbidden(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"x": nil})
	assert.Error(t, err)
}

func TestMarshalCanonical_Floats(t *testing.T) {
	out, err := MarshalCanonical(10.5)
	require.NoError(t, err)
	assert.Equal(t, "10.5", string(out))

	out, err = MarshalCanonical([]any{1, int64(2), 2.25, true, "x"})
	require.NoError(t, err)
	assert.Equal(t, `[1,2,2.25,true,"x"]`, string(out))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	m := map[string]any{
		"b": []any{1, 2, 3},
		"a": map[string]any{"nested": "value", "another": 7},
	}
	first, err := MarshalCanonical(m)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(m)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExecutionSummary_CanonicalMap_OmitsAbsent(t *testing.T) {
	s := ExecutionSummary{
		Date:  "2024-06-10",
		State: StatePlannedOnly,
		Planned: &PlannedSession{
			ID:          "s1",
			Date:        "2024-06-10",
			Sport:       SportRunning,
			Intent:      IntentAerobic,
			Title:       "Easy run",
			DurationMin: 45,
			Status:      StatusPlanned,
		},
	}

	m := s.CanonicalMap()
	assert.NotContains(t, m, "activity")
	assert.NotContains(t, m, "deltas")

	out, err := MarshalCanonical(m)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "null")
}

func TestDeltas_CanonicalMap_AbsentDistanceOmitted(t *testing.T) {
	meters := 500
	withDistance := ExecutionSummary{
		Date:     "2024-06-10",
		State:    StateCompletedAsPlanned,
		Planned:  &PlannedSession{ID: "s1", Date: "2024-06-10", Sport: SportRunning, Intent: IntentAerobic, Status: StatusPlanned},
		Activity: &CompletedActivity{ID: "a1", Date: "2024-06-10", Sport: SportRunning},
		Deltas:   &Deltas{DurationSeconds: 900, DistanceMeters: &meters},
	}
	m := withDistance.CanonicalMap()
	require.Contains(t, m, "deltas")
	assert.Contains(t, m["deltas"], "distance_meters")

	withDistance.Deltas = &Deltas{DurationSeconds: 900}
	m = withDistance.CanonicalMap()
	assert.NotContains(t, m["deltas"], "distance_meters",
		"absent distance delta must be omitted, never fabricated as zero")
}
