package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paceline/paceline/internal/model"
	"github.com/paceline/paceline/internal/testutil"
)

func TestDetectConflicts_TimeOverlap(t *testing.T) {
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithTime("07:00"), testutil.WithDuration(60)),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-10", testutil.WithTime("07:30"), testutil.WithDuration(30)),
	}

	conflicts := DetectConflicts(existing, candidates)

	require.Len(t, conflicts, 1)
	got := conflicts[0]
	assert.Equal(t, model.ReasonTimeOverlap, got.Reason)
	assert.Equal(t, model.Day("2024-06-10"), got.Date)
	assert.Equal(t, "s1", got.ExistingSessionID)
	assert.Equal(t, "c1", got.CandidateSessionID)
}

func TestDetectConflicts_BackToBackIsNotOverlap(t *testing.T) {
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithTime("07:00"), testutil.WithDuration(60)),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-10", testutil.WithTime("08:00"), testutil.WithDuration(60)),
	}

	assert.Empty(t, DetectConflicts(existing, candidates), "[start, start+duration) intervals touching at the boundary do not overlap")
}

func TestDetectConflicts_DefaultDurationAssumed(t *testing.T) {
	// No duration on the candidate: 60 minutes is assumed, so a 07:30
	// start still collides with the 07:00-08:00 slot.
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithTime("07:00"), testutil.WithDuration(60)),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-10", testutil.WithTime("07:30"), testutil.WithDuration(0)),
	}

	conflicts := DetectConflicts(existing, candidates)

	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ReasonTimeOverlap, conflicts[0].Reason)
}

func TestDetectConflicts_AllDayOverlap(t *testing.T) {
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10"), // no time: all-day
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-10", testutil.WithTime("18:00"), testutil.WithDuration(45)),
	}

	conflicts := DetectConflicts(existing, candidates)

	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ReasonAllDayOverlap, conflicts[0].Reason)
}

func TestDetectConflicts_DifferentDaysNeverConflict(t *testing.T) {
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10"),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-11"),
	}

	assert.Empty(t, DetectConflicts(existing, candidates))
}

func TestDetectConflicts_MultipleKeySessions(t *testing.T) {
	// Two interval-grade workouts on the same day with non-overlapping
	// times: no time_overlap, but the one-key-session-per-day rule fires.
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-11",
			testutil.WithTime("07:00"), testutil.WithIntent(model.IntentVO2),
			testutil.WithTitle("Track intervals")),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-11",
			testutil.WithTime("17:00"), testutil.WithIntent(model.IntentThreshold),
			testutil.WithTitle("Threshold repeats")),
	}

	conflicts := DetectConflicts(existing, candidates)

	require.Len(t, conflicts, 1)
	got := conflicts[0]
	assert.Equal(t, model.ReasonMultipleKeySessions, got.Reason)
	assert.Equal(t, "s1", got.ExistingSessionID)
	assert.Equal(t, "c1", got.CandidateSessionID)
}

func TestDetectConflicts_TwoKeyCandidates(t *testing.T) {
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-11", testutil.WithTime("07:00"), testutil.WithIntent(model.IntentVO2)),
		testutil.Session("c2", "2024-06-11", testutil.WithTime("17:00"), testutil.WithIntent(model.IntentVO2)),
	}

	conflicts := DetectConflicts(nil, candidates)

	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ReasonMultipleKeySessions, conflicts[0].Reason)
}

func TestDetectConflicts_PreexistingKeySessionsNotReported(t *testing.T) {
	// Two key sessions already on the schedule are not this mutation's
	// fault; a non-key candidate on the same day stays clean.
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-11", testutil.WithTime("07:00"), testutil.WithIntent(model.IntentVO2)),
		testutil.Session("s2", "2024-06-11", testutil.WithTime("17:00"), testutil.WithIntent(model.IntentThreshold)),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-11", testutil.WithTime("12:00"), testutil.WithIntent(model.IntentRecovery)),
	}

	for _, c := range DetectConflicts(existing, candidates) {
		assert.NotEqual(t, model.ReasonMultipleKeySessions, c.Reason)
	}
}

func TestDetectConflicts_MovedSessionSkipsItself(t *testing.T) {
	// Rescheduling s1 within the same day: the candidate shares the id
	// with the existing row and must not conflict with its old slot.
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithTime("07:00"), testutil.WithDuration(60)),
	}
	candidates := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithTime("07:30"), testutil.WithDuration(60)),
	}

	assert.Empty(t, DetectConflicts(existing, candidates))
}

func TestDetectConflicts_DiscardedSessionsIgnored(t *testing.T) {
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithStatus(model.StatusCancelled)),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-10", testutil.WithTime("07:00")),
	}

	assert.Empty(t, DetectConflicts(existing, candidates))
}

func TestDetectConflicts_Deduplication(t *testing.T) {
	// An all-day existing session against a candidate that is both a time
	// collision source and key-session source still yields distinct
	// reasons, but the same (date, existing, candidate, reason) triple is
	// never repeated.
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10"),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-10", testutil.WithTime("07:00")),
	}

	conflicts := DetectConflicts(existing, candidates)
	seen := make(map[string]bool)
	for _, c := range conflicts {
		key := string(c.Date) + c.ExistingSessionID + c.CandidateSessionID + string(c.Reason)
		assert.False(t, seen[key], "duplicate conflict emitted: %+v", c)
		seen[key] = true
	}
}

func TestDetectConflicts_PermutationInvariance(t *testing.T) {
	existing := []model.PlannedSession{
		testutil.Session("s1", "2024-06-10", testutil.WithTime("07:00")),
		testutil.Session("s2", "2024-06-10"),
		testutil.Session("s3", "2024-06-11", testutil.WithIntent(model.IntentVO2), testutil.WithTime("07:00")),
	}
	candidates := []model.PlannedSession{
		testutil.Session("c1", "2024-06-10", testutil.WithTime("07:15")),
		testutil.Session("c2", "2024-06-11", testutil.WithIntent(model.IntentThreshold), testutil.WithTime("18:00")),
	}

	baseline := DetectConflicts(existing, candidates)
	for seed := int64(1); seed <= 10; seed++ {
		got := DetectConflicts(
			testutil.Shuffle(existing, seed),
			testutil.Shuffle(candidates, seed+7),
		)
		assert.Equal(t, baseline, got, "seed %d", seed)
	}
}

func TestIsKeySession(t *testing.T) {
	assert.True(t, IsKeySession(testutil.Session("s1", "2024-06-10", testutil.WithIntent(model.IntentVO2))))
	assert.True(t, IsKeySession(testutil.Session("s2", "2024-06-10", testutil.WithIntent(model.IntentThreshold))))
	assert.True(t, IsKeySession(testutil.Session("s3", "2024-06-10", testutil.WithTitle("Sunday long run"))))
	assert.True(t, IsKeySession(testutil.Session("s4", "2024-06-10", testutil.WithTitle("Hill intervals"))))
	assert.False(t, IsKeySession(testutil.Session("s5", "2024-06-10", testutil.WithIntent(model.IntentRecovery))))
	assert.False(t, IsKeySession(testutil.Session("s6", "2024-06-10")))
}
