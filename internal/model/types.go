package model

// PlannedSession is a coach-authored training entry.
//
// The engine never mutates a PlannedSession; it only reads and classifies.
// Creation and status changes happen in the external planning subsystem.
type PlannedSession struct {
	ID    string `json:"id"`
	Date  Day    `json:"date"`
	Time  string `json:"time,omitempty"` // "HH:MM"; empty means all-day
	Sport Sport  `json:"sport"`

	// SportDefaulted is set when the raw sport string did not match the
	// closed sport set and the fallback default was substituted.
	SportDefaulted bool `json:"sport_defaulted,omitempty"`

	Intent      Intent        `json:"intent"`
	Title       string        `json:"title"`
	DurationMin int           `json:"duration_min"`
	DistanceKm  *float64      `json:"distance_km,omitempty"`
	Status      SessionStatus `json:"status"`

	// CompletedActivityID is the explicit planned-to-activity link, when the
	// backend recorded one. Empty in the common case.
	CompletedActivityID string `json:"completed_activity_id,omitempty"`

	// WorkoutID is the alternate cross-reference key shared with the
	// external activity provider.
	WorkoutID string `json:"workout_id,omitempty"`

	Notes        string   `json:"notes,omitempty"`
	MustDos      []string `json:"must_dos,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// AllDay reports whether the session has no explicit clock time.
// All-day sessions occupy the entire day for overlap purposes.
func (s PlannedSession) AllDay() bool {
	return s.Time == ""
}

// CompletedActivity is an athlete-recorded activity, typically synced from
// an external fitness data provider.
type CompletedActivity struct {
	ID             string   `json:"id"`
	Date           Day      `json:"date"`
	Sport          Sport    `json:"sport"`
	SportDefaulted bool     `json:"sport_defaulted,omitempty"`
	Title          string   `json:"title"`
	DurationMin    int      `json:"duration_min"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
	TrainingLoad   *float64 `json:"training_load,omitempty"`

	// Secondary is the single surfaced secondary metric (pace, power, or
	// heart rate) already formatted for display. At most one is carried.
	Secondary string `json:"secondary,omitempty"`

	// PlannedSessionID is the explicit activity-to-planned link, when the
	// athlete's device or the sync layer recorded one.
	PlannedSessionID string `json:"planned_session_id,omitempty"`

	WorkoutID string `json:"workout_id,omitempty"`
}

// CalendarItem is the canonical, display-oriented union of a normalized
// planned session or completed activity.
type CalendarItem struct {
	Kind           ItemKind `json:"kind"`
	ID             string   `json:"id"`
	Sport          Sport    `json:"sport"`
	SportDefaulted bool     `json:"sport_defaulted,omitempty"`
	Intent         Intent   `json:"intent"`
	Title          string   `json:"title"`
	StartLocal     string   `json:"start_local"`
	DurationMin    int      `json:"duration_min"`
	Load           *float64 `json:"load,omitempty"`
	Secondary      string   `json:"secondary,omitempty"`

	// IsPaired is the locally inferable pairing hint: an explicit
	// cross-reference exists on the record itself. Full pairing resolution
	// can pair items that carry no hint and is done separately.
	IsPaired bool `json:"is_paired,omitempty"`

	// PairRef is the id of the explicitly linked counterpart, when known.
	// Used as the duplicate-group key so both sides of a link collapse into
	// one logical workout.
	PairRef string `json:"pair_ref,omitempty"`

	// WorkoutID is the shared structured-workout reference, when the record
	// carries one. Items linked only by workout id have no PairRef, so the
	// duplicate-group key falls back to this.
	WorkoutID string `json:"workout_id,omitempty"`

	Compliance Compliance `json:"compliance,omitempty"`
}

// GroupedCalendarItem is a set of calendar items considered duplicates of
// one logical workout. Items are ordered by display priority; Items[0] is
// the representative the stacking UI renders as the top card.
type GroupedCalendarItem struct {
	Key   string         `json:"key"`
	Items []CalendarItem `json:"items"`
}

// Top returns the representative item of the group.
func (g GroupedCalendarItem) Top() CalendarItem {
	return g.Items[0]
}

// Deltas is the signed plan-vs-actual difference for a paired item.
// Positive values mean the athlete went longer or farther than planned.
//
// DistanceMeters is absent, not zero, when either side lacks distance;
// consumers must treat absent and zero as distinct.
type Deltas struct {
	DurationSeconds int  `json:"duration_seconds"`
	DistanceMeters  *int `json:"distance_meters,omitempty"`
}

// ExecutionSummary is the engine's principal output unit: one classified
// training item on one day.
//
// At least one of Planned and Activity is present. Both are present only
// when State is COMPLETED_AS_PLANNED.
type ExecutionSummary struct {
	Date     Day                `json:"date"`
	Planned  *PlannedSession    `json:"planned,omitempty"`
	Activity *CompletedActivity `json:"activity,omitempty"`
	State    ExecutionState     `json:"execution_state"`
	Deltas   *Deltas            `json:"deltas,omitempty"`
}

// Conflict reports a scheduling collision found by the conflict detector.
// Candidate fields are empty when both colliding sessions already exist.
type Conflict struct {
	Date                  Day            `json:"date"`
	ExistingSessionID     string         `json:"existing_session_id"`
	ExistingSessionTitle  string         `json:"existing_session_title"`
	CandidateSessionID    string         `json:"candidate_session_id,omitempty"`
	CandidateSessionTitle string         `json:"candidate_session_title,omitempty"`
	Reason                ConflictReason `json:"reason"`
}
