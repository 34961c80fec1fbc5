package engine

import (
	"sort"
	"strings"

	"github.com/paceline/paceline/internal/model"
)

// DefaultSessionMinutes is assumed for overlap checks when a timed session
// carries no duration.
const DefaultSessionMinutes = 60

// keySessionIntents are the high-priority session categories subject to the
// one-per-day rule.
var keySessionIntents = map[model.Intent]bool{
	model.IntentVO2:       true,
	model.IntentThreshold: true,
}

// IsKeySession reports whether a session counts as a key session: an
// interval-grade intent, or a long session flagged as such in its title.
func IsKeySession(s model.PlannedSession) bool {
	if keySessionIntents[s.Intent] {
		return true
	}
	title := strings.ToLower(s.Title)
	return strings.Contains(title, "interval") || strings.Contains(title, "long run") || strings.Contains(title, "long ride")
}

// DetectConflicts finds the scheduling conflicts that would result from
// adding or moving the candidate sessions into the existing schedule.
//
// Rules:
//   - only same-day sessions can conflict
//   - a session with no clock time is all-day and conflicts with any other
//     session on its date
//   - two timed sessions conflict iff their [start, start+duration)
//     intervals overlap, assuming DefaultSessionMinutes when a duration is
//     unknown
//   - more than one key session on a date among existing+candidates yields
//     a multiple_key_sessions conflict regardless of times
//
// The detector is advisory and read-only: it never mutates the schedule,
// and callers decide whether a reported conflict blocks or merely warns.
// A candidate that shares an id with an existing session is the moved
// version of that session; the two are never compared with each other, and the
// stale existing entry is ignored entirely. Identical (date, existing,
// candidate) triples are reported once. Discarded sessions never conflict.
func DetectConflicts(existing, candidates []model.PlannedSession) []model.Conflict {
	candidateIDs := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidateIDs[c.ID] = true
	}

	// Moved sessions: the candidate supersedes the existing row with the
	// same id.
	var live []model.PlannedSession
	for _, s := range sortedSessions(existing) {
		if !s.Status.Discarded() && !candidateIDs[s.ID] {
			live = append(live, s)
		}
	}
	var cands []model.PlannedSession
	for _, c := range sortedSessions(candidates) {
		if !c.Status.Discarded() {
			cands = append(cands, c)
		}
	}

	seen := make(map[string]bool)
	var conflicts []model.Conflict
	emit := func(c model.Conflict) {
		key := string(c.Date) + "|" + c.ExistingSessionID + "|" + c.CandidateSessionID + "|" + string(c.Reason)
		if !seen[key] {
			seen[key] = true
			conflicts = append(conflicts, c)
		}
	}

	// Candidate vs existing, then candidate vs candidate. Existing pairs
	// are not compared: a pre-existing collision is not caused by this
	// mutation.
	for _, cand := range cands {
		for _, ex := range live {
			if reason, ok := overlapReason(ex, cand); ok {
				emit(model.Conflict{
					Date:                  cand.Date,
					ExistingSessionID:     ex.ID,
					ExistingSessionTitle:  ex.Title,
					CandidateSessionID:    cand.ID,
					CandidateSessionTitle: cand.Title,
					Reason:                reason,
				})
			}
		}
	}
	for i, a := range cands {
		for _, b := range cands[i+1:] {
			if reason, ok := overlapReason(a, b); ok {
				emit(model.Conflict{
					Date:                  a.Date,
					ExistingSessionID:     a.ID,
					ExistingSessionTitle:  a.Title,
					CandidateSessionID:    b.ID,
					CandidateSessionTitle: b.Title,
					Reason:                reason,
				})
			}
		}
	}

	keySessionConflicts(live, cands, emit)
	return conflicts
}

// overlapReason reports whether two same-day sessions collide and why.
func overlapReason(a, b model.PlannedSession) (model.ConflictReason, bool) {
	if a.Date != b.Date {
		return "", false
	}
	if a.AllDay() || b.AllDay() {
		return model.ReasonAllDayOverlap, true
	}
	aStart, err := model.ClockMinutes(a.Time)
	if err != nil {
		return model.ReasonAllDayOverlap, true
	}
	bStart, err := model.ClockMinutes(b.Time)
	if err != nil {
		return model.ReasonAllDayOverlap, true
	}
	aEnd := aStart + durationOrDefault(a)
	bEnd := bStart + durationOrDefault(b)
	if aStart < bEnd && bStart < aEnd {
		return model.ReasonTimeOverlap, true
	}
	return "", false
}

func durationOrDefault(s model.PlannedSession) int {
	if s.DurationMin > 0 {
		return s.DurationMin
	}
	return DefaultSessionMinutes
}

// keySessionConflicts applies the one-key-session-per-day rule across the
// combined schedule. A conflict is emitted only when a candidate key
// session contributes to the excess; two pre-existing key sessions are not
// this mutation's fault.
func keySessionConflicts(existing, candidates []model.PlannedSession, emit func(model.Conflict)) {
	type dayKeys struct {
		existing   []model.PlannedSession
		candidates []model.PlannedSession
	}
	byDay := make(map[model.Day]*dayKeys)
	get := func(d model.Day) *dayKeys {
		if byDay[d] == nil {
			byDay[d] = &dayKeys{}
		}
		return byDay[d]
	}
	for _, s := range existing {
		if IsKeySession(s) {
			k := get(s.Date)
			k.existing = append(k.existing, s)
		}
	}
	for _, c := range candidates {
		if IsKeySession(c) {
			k := get(c.Date)
			k.candidates = append(k.candidates, c)
		}
	}

	days := make([]model.Day, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	for _, d := range days {
		k := byDay[d]
		if len(k.candidates) == 0 || len(k.existing)+len(k.candidates) < 2 {
			continue
		}
		first := k.candidates[0]
		if len(k.existing) > 0 {
			first = k.existing[0]
		}
		second := k.candidates[0]
		if second.ID == first.ID && len(k.candidates) > 1 {
			second = k.candidates[1]
		}
		emit(model.Conflict{
			Date:                  d,
			ExistingSessionID:     first.ID,
			ExistingSessionTitle:  first.Title,
			CandidateSessionID:    second.ID,
			CandidateSessionTitle: second.Title,
			Reason:                model.ReasonMultipleKeySessions,
		})
	}
}
