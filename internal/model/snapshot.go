package model

// Canonical map converters for snapshot serialization.
//
// MarshalCanonical only handles maps, slices, and primitives, so each output
// type converts itself to a map first. Absent optional fields are omitted
// from the map entirely; canonical JSON has no null.

// CanonicalMap converts a planned session for canonical serialization.
func (s PlannedSession) CanonicalMap() map[string]any {
	m := map[string]any{
		"id":           s.ID,
		"date":         s.Date,
		"sport":        string(s.Sport),
		"intent":       string(s.Intent),
		"title":        s.Title,
		"duration_min": s.DurationMin,
		"status":       string(s.Status),
	}
	if s.Time != "" {
		m["time"] = s.Time
	}
	if s.SportDefaulted {
		m["sport_defaulted"] = true
	}
	if s.DistanceKm != nil {
		m["distance_km"] = *s.DistanceKm
	}
	if s.CompletedActivityID != "" {
		m["completed_activity_id"] = s.CompletedActivityID
	}
	if s.WorkoutID != "" {
		m["workout_id"] = s.WorkoutID
	}
	if s.Notes != "" {
		m["notes"] = s.Notes
	}
	if len(s.MustDos) > 0 {
		dos := make([]any, len(s.MustDos))
		for i, d := range s.MustDos {
			dos[i] = d
		}
		m["must_dos"] = dos
	}
	if s.Instructions != "" {
		m["instructions"] = s.Instructions
	}
	return m
}

// CanonicalMap converts a completed activity for canonical serialization.
func (a CompletedActivity) CanonicalMap() map[string]any {
	m := map[string]any{
		"id":           a.ID,
		"date":         a.Date,
		"sport":        string(a.Sport),
		"title":        a.Title,
		"duration_min": a.DurationMin,
	}
	if a.SportDefaulted {
		m["sport_defaulted"] = true
	}
	if a.DistanceKm != nil {
		m["distance_km"] = *a.DistanceKm
	}
	if a.TrainingLoad != nil {
		m["training_load"] = *a.TrainingLoad
	}
	if a.Secondary != "" {
		m["secondary"] = a.Secondary
	}
	if a.PlannedSessionID != "" {
		m["planned_session_id"] = a.PlannedSessionID
	}
	if a.WorkoutID != "" {
		m["workout_id"] = a.WorkoutID
	}
	return m
}

// CanonicalMap converts an execution summary for canonical serialization.
func (s ExecutionSummary) CanonicalMap() map[string]any {
	m := map[string]any{
		"date":            s.Date,
		"execution_state": string(s.State),
	}
	if s.Planned != nil {
		m["planned"] = s.Planned.CanonicalMap()
	}
	if s.Activity != nil {
		m["activity"] = s.Activity.CanonicalMap()
	}
	if s.Deltas != nil {
		d := map[string]any{
			"duration_seconds": s.Deltas.DurationSeconds,
		}
		if s.Deltas.DistanceMeters != nil {
			d["distance_meters"] = *s.Deltas.DistanceMeters
		}
		m["deltas"] = d
	}
	return m
}

// CanonicalMap converts a calendar item for canonical serialization.
func (c CalendarItem) CanonicalMap() map[string]any {
	m := map[string]any{
		"kind":         string(c.Kind),
		"id":           c.ID,
		"sport":        string(c.Sport),
		"intent":       string(c.Intent),
		"title":        c.Title,
		"start_local":  c.StartLocal,
		"duration_min": c.DurationMin,
	}
	if c.SportDefaulted {
		m["sport_defaulted"] = true
	}
	if c.Load != nil {
		m["load"] = *c.Load
	}
	if c.Secondary != "" {
		m["secondary"] = c.Secondary
	}
	if c.IsPaired {
		m["is_paired"] = true
	}
	if c.PairRef != "" {
		m["pair_ref"] = c.PairRef
	}
	if c.WorkoutID != "" {
		m["workout_id"] = c.WorkoutID
	}
	if c.Compliance != "" {
		m["compliance"] = string(c.Compliance)
	}
	return m
}

// CanonicalMap converts a grouped item for canonical serialization.
func (g GroupedCalendarItem) CanonicalMap() map[string]any {
	items := make([]any, len(g.Items))
	for i, item := range g.Items {
		items[i] = item.CanonicalMap()
	}
	return map[string]any{
		"key":   g.Key,
		"items": items,
	}
}

// CanonicalMap converts a conflict for canonical serialization.
func (c Conflict) CanonicalMap() map[string]any {
	m := map[string]any{
		"date":                   c.Date,
		"existing_session_id":    c.ExistingSessionID,
		"existing_session_title": c.ExistingSessionTitle,
		"reason":                 string(c.Reason),
	}
	if c.CandidateSessionID != "" {
		m["candidate_session_id"] = c.CandidateSessionID
	}
	if c.CandidateSessionTitle != "" {
		m["candidate_session_title"] = c.CandidateSessionTitle
	}
	return m
}
