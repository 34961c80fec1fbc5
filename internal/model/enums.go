package model

import "strings"

// Sport is the closed set of sports the calendar understands.
type Sport string

const (
	SportRunning   Sport = "running"
	SportCycling   Sport = "cycling"
	SportSwimming  Sport = "swimming"
	SportTriathlon Sport = "triathlon"
)

// DefaultSport is the fallback for unrecognized sport strings.
// The fallback is a display convenience, not a data assertion; callers that
// need strict input validation must check the defaulted flag returned by
// ParseSport instead of trusting the value.
const DefaultSport = SportRunning

// sportAliases maps exact lowercase input strings to sports.
// Exact lookup runs before the substring heuristics in ParseSport, so an
// alias here always wins over a partial match.
var sportAliases = map[string]Sport{
	"running":   SportRunning,
	"run":       SportRunning,
	"jog":       SportRunning,
	"cycling":   SportCycling,
	"bike":      SportCycling,
	"ride":      SportCycling,
	"cycle":     SportCycling,
	"swimming":  SportSwimming,
	"swim":      SportSwimming,
	"triathlon": SportTriathlon,
	"tri":       SportTriathlon,
}

// sportHints are substring fallbacks applied in order after exact lookup.
// Order matters: the first hint contained in the input wins.
var sportHints = []struct {
	hint  string
	sport Sport
}{
	{"tri", SportTriathlon},
	{"swim", SportSwimming},
	{"bike", SportCycling},
	{"cycl", SportCycling},
	{"ride", SportCycling},
	{"run", SportRunning},
}

// ParseSport maps a free-form sport string to the closed Sport set.
// The second return value reports whether the fallback default was used;
// it is false for every recognized input, including recognized aliases.
func ParseSport(raw string) (Sport, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if sport, ok := sportAliases[s]; ok {
		return sport, false
	}
	for _, h := range sportHints {
		if strings.Contains(s, h.hint) {
			return h.sport, false
		}
	}
	return DefaultSport, true
}

// Intent is the closed set of training intents.
type Intent string

const (
	IntentRecovery  Intent = "recovery"
	IntentAerobic   Intent = "aerobic"
	IntentThreshold Intent = "threshold"
	IntentVO2       Intent = "vo2"
	IntentEndurance Intent = "endurance"
)

// DefaultIntent is the fallback for unrecognized intensity strings.
const DefaultIntent = IntentAerobic

var intentAliases = map[string]Intent{
	"recovery":  IntentRecovery,
	"easy":      IntentRecovery,
	"z1":        IntentRecovery,
	"aerobic":   IntentAerobic,
	"base":      IntentAerobic,
	"z2":        IntentAerobic,
	"threshold": IntentThreshold,
	"tempo":     IntentThreshold,
	"ftp":       IntentThreshold,
	"sweetspot": IntentThreshold,
	"vo2":       IntentVO2,
	"vo2max":    IntentVO2,
	"intervals": IntentVO2,
	"interval":  IntentVO2,
	"endurance": IntentEndurance,
	"long":      IntentEndurance,
	"long run":  IntentEndurance,
	"long ride": IntentEndurance,
}

var intentHints = []struct {
	hint   string
	intent Intent
}{
	{"vo2", IntentVO2},
	{"interval", IntentVO2},
	{"threshold", IntentThreshold},
	{"tempo", IntentThreshold},
	{"recover", IntentRecovery},
	{"easy", IntentRecovery},
	{"long", IntentEndurance},
	{"endur", IntentEndurance},
}

// ParseIntent maps a free-form intensity or workout-type string to the
// closed Intent set. The second return value reports fallback use, mirroring
// ParseSport.
func ParseIntent(raw string) (Intent, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if intent, ok := intentAliases[s]; ok {
		return intent, false
	}
	for _, h := range intentHints {
		if strings.Contains(s, h.hint) {
			return h.intent, false
		}
	}
	return DefaultIntent, true
}

// ExecutionState classifies a day's training item.
//
// The set is finite and exhaustive: every (planned?, activity?) combination
// the pairing resolver can produce maps to exactly one state. There is no
// "unknown" member; an impossible combination is an error, not a state.
type ExecutionState string

const (
	// StateMissed marks a past-dated planned session with no recorded activity.
	StateMissed ExecutionState = "MISSED"

	// StatePlannedOnly marks a today-or-future planned session with no
	// recorded activity yet.
	StatePlannedOnly ExecutionState = "PLANNED_ONLY"

	// StateCompletedUnplanned marks a recorded activity with no surviving
	// planned counterpart.
	StateCompletedUnplanned ExecutionState = "COMPLETED_UNPLANNED"

	// StateCompletedAsPlanned marks a planned session paired with the
	// activity that executed it.
	StateCompletedAsPlanned ExecutionState = "COMPLETED_AS_PLANNED"
)

// SessionStatus is the lifecycle status of a planned session, as authored by
// the external planning subsystem. The engine only reads it.
type SessionStatus string

const (
	StatusPlanned   SessionStatus = "planned"
	StatusCompleted SessionStatus = "completed"
	StatusSkipped   SessionStatus = "skipped"
	StatusCancelled SessionStatus = "cancelled"
	StatusDeleted   SessionStatus = "deleted"
)

// Discarded reports whether the status removes the session from every
// display and pairing output.
func (s SessionStatus) Discarded() bool {
	return s == StatusCancelled || s == StatusDeleted
}

// ConflictReason categorizes a scheduling conflict.
type ConflictReason string

const (
	ReasonTimeOverlap         ConflictReason = "time_overlap"
	ReasonAllDayOverlap       ConflictReason = "all_day_overlap"
	ReasonMultipleKeySessions ConflictReason = "multiple_key_sessions"
)

// ItemKind tags a CalendarItem as planned or completed.
type ItemKind string

const (
	KindPlanned   ItemKind = "planned"
	KindCompleted ItemKind = "completed"
)

// Compliance is the optional plan-adherence verdict on a calendar item.
type Compliance string

const (
	ComplianceComplete Compliance = "complete"
	CompliancePartial  Compliance = "partial"
	ComplianceMissed   Compliance = "missed"
)
