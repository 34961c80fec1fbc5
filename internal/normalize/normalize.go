// Package normalize converts heterogeneous raw backend records into
// canonical domain types.
//
// Raw payloads arrive JSON-decoded but loosely typed: optional fields,
// several date formats, and key-name drift between backend versions. The
// normalizer tolerates all of that and degrades by dropping records it
// cannot anchor (missing id, date, or sport) rather than failing the whole
// payload. Partial backend responses are expected and non-fatal; the drop
// count is logged and returned for observability, never raised.
package normalize

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/paceline/paceline/internal/model"
)

// RawRecord is one JSON-decoded backend record.
type RawRecord map[string]any

// Field aliases accepted per canonical field. Order matters: the first
// present alias wins.
var (
	idKeys           = []string{"id", "uuid", "session_id", "activity_id"}
	dateKeys         = []string{"date", "day", "scheduled_date", "start_date", "start_date_local"}
	timeKeys         = []string{"time", "start_time", "scheduled_time"}
	sportKeys        = []string{"sport", "activity_type", "discipline", "type"}
	titleKeys        = []string{"title", "name", "workout_name"}
	durationKeys     = []string{"duration_minutes", "durationMinutes", "duration_min", "duration"}
	distanceKeys     = []string{"distance_km", "distanceKm", "distance"}
	intensityKeys    = []string{"intensity", "workout_type", "intent", "effort"}
	statusKeys       = []string{"status", "state"}
	activityLinkKeys = []string{"completed_activity_id", "completedActivityId"}
	plannedLinkKeys  = []string{"planned_session_id", "plannedSessionId", "planned_id"}
	workoutIDKeys    = []string{"workout_id", "workoutId", "external_id"}
	loadKeys         = []string{"training_load", "trainingLoad", "load", "tss"}
	secondaryKeys    = []string{"secondary", "pace", "power", "heart_rate"}
	notesKeys        = []string{"notes", "description"}
	instructionKeys  = []string{"instructions", "coach_notes"}
)

// SessionResult is the outcome of normalizing raw planned-session records.
type SessionResult struct {
	Sessions []model.PlannedSession

	// Dropped counts records discarded as malformed. The invariant tested
	// against payload fixtures: Dropped equals the invalid-record count
	// exactly, no more, no less.
	Dropped int
}

// ActivityResult is the outcome of normalizing raw activity records.
type ActivityResult struct {
	Activities []model.CompletedActivity
	Dropped    int
}

// Sessions normalizes raw planned-session records.
//
// Records with status cancelled or deleted are filtered here, at ingestion:
// they must never reach pairing or display. The filter does not count
// toward Dropped, which tracks malformed input only.
func Sessions(records []RawRecord) SessionResult {
	var result SessionResult
	for _, r := range records {
		s, ok := session(r)
		if !ok {
			result.Dropped++
			continue
		}
		if s.Status.Discarded() {
			continue
		}
		result.Sessions = append(result.Sessions, s)
	}
	if result.Dropped > 0 {
		slog.Info("dropped malformed session records",
			"dropped", result.Dropped,
			"kept", len(result.Sessions),
		)
	}
	return result
}

// Activities normalizes raw completed-activity records.
func Activities(records []RawRecord) ActivityResult {
	var result ActivityResult
	for _, r := range records {
		a, ok := activity(r)
		if !ok {
			result.Dropped++
			continue
		}
		result.Activities = append(result.Activities, a)
	}
	if result.Dropped > 0 {
		slog.Info("dropped malformed activity records",
			"dropped", result.Dropped,
			"kept", len(result.Activities),
		)
	}
	return result
}

func session(r RawRecord) (model.PlannedSession, bool) {
	id := str(r, idKeys)
	date, dateOK := day(r, dateKeys)
	sportRaw, sportOK := rawString(r, sportKeys)
	if id == "" || !dateOK || !sportOK {
		return model.PlannedSession{}, false
	}

	sport, sportDefaulted := model.ParseSport(sportRaw)
	intent, _ := model.ParseIntent(str(r, intensityKeys))

	s := model.PlannedSession{
		ID:                  id,
		Date:                date,
		Time:                clock(r, timeKeys),
		Sport:               sport,
		SportDefaulted:      sportDefaulted,
		Intent:              intent,
		Title:               str(r, titleKeys),
		DurationMin:         minutes(r, durationKeys),
		DistanceKm:          km(r, distanceKeys),
		Status:              status(r),
		CompletedActivityID: str(r, activityLinkKeys),
		WorkoutID:           str(r, workoutIDKeys),
		Notes:               str(r, notesKeys),
		MustDos:             strList(r, "must_dos", "mustDos"),
		Instructions:        str(r, instructionKeys),
	}
	return s, true
}

func activity(r RawRecord) (model.CompletedActivity, bool) {
	id := str(r, idKeys)
	date, dateOK := day(r, dateKeys)
	sportRaw, sportOK := rawString(r, sportKeys)
	if id == "" || !dateOK || !sportOK {
		return model.CompletedActivity{}, false
	}

	sport, sportDefaulted := model.ParseSport(sportRaw)

	a := model.CompletedActivity{
		ID:               id,
		Date:             date,
		Sport:            sport,
		SportDefaulted:   sportDefaulted,
		Title:            str(r, titleKeys),
		DurationMin:      minutes(r, durationKeys),
		DistanceKm:       km(r, distanceKeys),
		TrainingLoad:     float(r, loadKeys),
		Secondary:        str(r, secondaryKeys),
		PlannedSessionID: str(r, plannedLinkKeys),
		WorkoutID:        str(r, workoutIDKeys),
	}
	return a, true
}

// Items builds the canonical display union for a day range. The pairing
// hint set here is the weaker, locally inferable signal: an explicit
// cross-reference on the record itself. Full pairing resolution happens in
// the engine and can pair items that carry no hint.
func Items(sessions []model.PlannedSession, activities []model.CompletedActivity) []model.CalendarItem {
	items := make([]model.CalendarItem, 0, len(sessions)+len(activities))
	for _, s := range sessions {
		items = append(items, model.CalendarItem{
			Kind:           model.KindPlanned,
			ID:             s.ID,
			Sport:          s.Sport,
			SportDefaulted: s.SportDefaulted,
			Intent:         s.Intent,
			Title:          s.Title,
			StartLocal:     model.ComposeLocal(s.Date, s.Time),
			DurationMin:    s.DurationMin,
			IsPaired:       s.CompletedActivityID != "" || s.WorkoutID != "",
			PairRef:        s.CompletedActivityID,
			WorkoutID:      s.WorkoutID,
		})
	}
	for _, a := range activities {
		items = append(items, model.CalendarItem{
			Kind:           model.KindCompleted,
			ID:             a.ID,
			Sport:          a.Sport,
			SportDefaulted: a.SportDefaulted,
			Intent:         model.DefaultIntent,
			Title:          a.Title,
			StartLocal:     model.ComposeLocal(a.Date, ""),
			DurationMin:    a.DurationMin,
			Load:           a.TrainingLoad,
			Secondary:      a.Secondary,
			IsPaired:       a.PlannedSessionID != "" || a.WorkoutID != "",
			PairRef:        a.PlannedSessionID,
			WorkoutID:      a.WorkoutID,
		})
	}
	return items
}

// rawString returns the first present non-empty string alias and whether
// one was found.
func rawString(r RawRecord, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}

func str(r RawRecord, keys []string) string {
	s, _ := rawString(r, keys)
	return s
}

// day extracts a calendar day, tolerating full timestamps ("2024-06-10T07:00:00Z")
// and slash-separated dates.
func day(r RawRecord, keys []string) (model.Day, bool) {
	raw, ok := rawString(r, keys)
	if !ok {
		return "", false
	}
	s := strings.ReplaceAll(raw, "/", "-")
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := model.ParseDay(s)
	if err != nil {
		return "", false
	}
	return d, true
}

// clock extracts an "HH:MM" time, truncating trailing seconds.
func clock(r RawRecord, keys []string) string {
	raw, ok := rawString(r, keys)
	if !ok {
		return ""
	}
	if len(raw) > 5 {
		raw = raw[:5]
	}
	if _, err := model.ClockMinutes(raw); err != nil {
		return ""
	}
	return raw
}

func minutes(r RawRecord, keys []string) int {
	f := float(r, keys)
	if f == nil || *f < 0 {
		return 0
	}
	return int(*f)
}

func km(r RawRecord, keys []string) *float64 {
	return float(r, keys)
}

// float extracts a numeric field. JSON decoding yields float64; numeric
// strings from older backends are tolerated too.
func float(r RawRecord, keys []string) *float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			f := n
			return &f
		case int:
			f := float64(n)
			return &f
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func status(r RawRecord) model.SessionStatus {
	raw := strings.ToLower(str(r, statusKeys))
	switch model.SessionStatus(raw) {
	case model.StatusCompleted, model.StatusSkipped, model.StatusCancelled, model.StatusDeleted:
		return model.SessionStatus(raw)
	default:
		return model.StatusPlanned
	}
}

func strList(r RawRecord, keys ...string) []string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		var out []string
		for _, elem := range list {
			if s, ok := elem.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
