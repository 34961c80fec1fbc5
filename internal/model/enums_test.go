package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSport(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		want          Sport
		wantDefaulted bool
	}{
		{"exact running", "running", SportRunning, false},
		{"exact cycling", "cycling", SportCycling, false},
		{"alias bike", "bike", SportCycling, false},
		{"alias swim", "swim", SportSwimming, false},
		{"alias tri", "tri", SportTriathlon, false},
		{"mixed case", "Running", SportRunning, false},
		{"whitespace", "  run  ", SportRunning, false},
		{"substring cycle", "indoor cycling session", SportCycling, false},
		{"substring ride", "easy ride", SportCycling, false},
		{"substring swim", "open water swimming", SportSwimming, false},
		{"substring trail run", "trail running", SportRunning, false},
		{"unknown defaults", "rowing", SportRunning, true},
		{"empty defaults", "", SportRunning, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, defaulted := ParseSport(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantDefaulted, defaulted)
		})
	}
}

func TestParseSport_TriathlonWinsOverEmbeddedRun(t *testing.T) {
	// "triathlon" contains "run"; the tri hint must be checked first.
	got, defaulted := ParseSport("olympic triathlon")
	assert.Equal(t, SportTriathlon, got)
	assert.False(t, defaulted)
}

func TestParseIntent(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		want          Intent
		wantDefaulted bool
	}{
		{"exact recovery", "recovery", IntentRecovery, false},
		{"alias easy", "easy", IntentRecovery, false},
		{"alias tempo", "tempo", IntentThreshold, false},
		{"alias vo2max", "vo2max", IntentVO2, false},
		{"alias intervals", "intervals", IntentVO2, false},
		{"alias long run", "long run", IntentEndurance, false},
		{"substring threshold", "threshold repeats", IntentThreshold, false},
		{"substring vo2", "5x3 vo2 hills", IntentVO2, false},
		{"substring long", "long steady distance", IntentEndurance, false},
		{"unknown defaults", "fartlek", IntentAerobic, true},
		{"empty defaults", "", IntentAerobic, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, defaulted := ParseIntent(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantDefaulted, defaulted)
		})
	}
}

func TestSessionStatus_Discarded(t *testing.T) {
	assert.True(t, StatusCancelled.Discarded())
	assert.True(t, StatusDeleted.Discarded())
	assert.False(t, StatusPlanned.Discarded())
	assert.False(t, StatusCompleted.Discarded())
	assert.False(t, StatusSkipped.Discarded())
}
