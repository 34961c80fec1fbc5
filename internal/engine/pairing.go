package engine

import (
	"sort"

	"github.com/paceline/paceline/internal/model"
)

// Pair is a resolved (planned session, completed activity) correspondence:
// both records describe the same real-world training event.
type Pair struct {
	Planned  model.PlannedSession
	Activity model.CompletedActivity
}

// Pairing is the full pairing result for a date range: the resolved pairs
// plus every record no rule consumed.
type Pairing struct {
	Pairs              []Pair
	UnpairedSessions   []model.PlannedSession
	UnpairedActivities []model.CompletedActivity
}

// ResolvePairings matches planned sessions to completed activities.
//
// Rules run in fixed priority order, first match wins, and no record is
// consumed twice:
//  1. planned.CompletedActivityID referencing an activity on the same day
//  2. activity.PlannedSessionID referencing a session on the same day
//  3. matching WorkoutID on the same day
//
// No further inference is attempted. Same-day same-sport coincidence alone
// never implies a pairing: an athlete who logs an unplanned second session
// of the planned sport must not have it absorbed into the plan.
//
// INVARIANT: output is identical for every permutation of the input slices.
// Each rule scans an id-sorted copy, so the "first match" is always the
// same match. Discarded (cancelled/deleted) sessions never pair; an
// activity whose explicit link points at one falls through to the
// unpaired residual.
func ResolvePairings(sessions []model.PlannedSession, activities []model.CompletedActivity) Pairing {
	byIDSessions := sortedSessions(sessions)
	byIDActivities := sortedActivities(activities)

	activityByID := make(map[string]int, len(byIDActivities))
	for i, a := range byIDActivities {
		activityByID[a.ID] = i
	}
	sessionByID := make(map[string]int, len(byIDSessions))
	for i, s := range byIDSessions {
		sessionByID[s.ID] = i
	}

	usedSession := make(map[string]bool, len(byIDSessions))
	usedActivity := make(map[string]bool, len(byIDActivities))
	var pairs []Pair

	pair := func(s model.PlannedSession, a model.CompletedActivity) {
		usedSession[s.ID] = true
		usedActivity[a.ID] = true
		pairs = append(pairs, Pair{Planned: s, Activity: a})
	}

	// Rule 1: explicit planned-to-activity link.
	for _, s := range byIDSessions {
		if s.Status.Discarded() || usedSession[s.ID] || s.CompletedActivityID == "" {
			continue
		}
		i, ok := activityByID[s.CompletedActivityID]
		if !ok {
			continue
		}
		a := byIDActivities[i]
		if usedActivity[a.ID] || a.Date != s.Date {
			continue
		}
		pair(s, a)
	}

	// Rule 2: explicit activity-to-planned link.
	for _, a := range byIDActivities {
		if usedActivity[a.ID] || a.PlannedSessionID == "" {
			continue
		}
		i, ok := sessionByID[a.PlannedSessionID]
		if !ok {
			continue
		}
		s := byIDSessions[i]
		if s.Status.Discarded() || usedSession[s.ID] || s.Date != a.Date {
			continue
		}
		pair(s, a)
	}

	// Rule 3: shared workout id.
	for _, s := range byIDSessions {
		if s.Status.Discarded() || usedSession[s.ID] || s.WorkoutID == "" {
			continue
		}
		for _, a := range byIDActivities {
			if usedActivity[a.ID] || a.WorkoutID != s.WorkoutID || a.Date != s.Date {
				continue
			}
			pair(s, a)
			break
		}
	}

	var result Pairing
	result.Pairs = pairs
	for _, s := range byIDSessions {
		if !s.Status.Discarded() && !usedSession[s.ID] {
			result.UnpairedSessions = append(result.UnpairedSessions, s)
		}
	}
	for _, a := range byIDActivities {
		if !usedActivity[a.ID] {
			result.UnpairedActivities = append(result.UnpairedActivities, a)
		}
	}
	return result
}

// sortedSessions returns an id-sorted copy, leaving the input untouched.
func sortedSessions(sessions []model.PlannedSession) []model.PlannedSession {
	out := make([]model.PlannedSession, len(sessions))
	copy(out, sessions)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// sortedActivities returns an id-sorted copy, leaving the input untouched.
func sortedActivities(activities []model.CompletedActivity) []model.CompletedActivity {
	out := make([]model.CompletedActivity, len(activities))
	copy(out, activities)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
