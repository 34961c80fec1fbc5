package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/paceline/paceline/internal/model"
)

// SessionsBetween returns sessions with from <= date <= to, ordered by
// (date ASC, id ASC COLLATE BINARY) for deterministic snapshot loading.
func (s *Store) SessionsBetween(ctx context.Context, from, to model.Day) ([]model.PlannedSession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, time, sport, sport_defaulted, intent, title, duration_min,
		       distance_km, status, completed_activity_id, workout_id, notes, must_dos, instructions
		FROM sessions
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id COLLATE BINARY ASC
	`, string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.PlannedSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ActivitiesBetween returns activities with from <= date <= to, ordered
// like SessionsBetween.
func (s *Store) ActivitiesBetween(ctx context.Context, from, to model.Day) ([]model.CompletedActivity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, sport, sport_defaulted, title, duration_min, distance_km,
		       training_load, secondary, planned_session_id, workout_id
		FROM activities
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id COLLATE BINARY ASC
	`, string(from), string(to))
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []model.CompletedActivity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, act)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

func scanSession(rows *sql.Rows) (model.PlannedSession, error) {
	var (
		sess       model.PlannedSession
		date       string
		sport      string
		defaulted  int
		intent     string
		status     string
		distanceKm sql.NullFloat64
		mustDos    string
	)
	if err := rows.Scan(
		&sess.ID, &date, &sess.Time, &sport, &defaulted, &intent, &sess.Title,
		&sess.DurationMin, &distanceKm, &status, &sess.CompletedActivityID,
		&sess.WorkoutID, &sess.Notes, &mustDos, &sess.Instructions,
	); err != nil {
		return model.PlannedSession{}, fmt.Errorf("scan session: %w", err)
	}

	sess.Date = model.Day(date)
	sess.Sport = model.Sport(sport)
	sess.SportDefaulted = defaulted != 0
	sess.Intent = model.Intent(intent)
	sess.Status = model.SessionStatus(status)
	if distanceKm.Valid {
		km := distanceKm.Float64
		sess.DistanceKm = &km
	}
	if err := json.Unmarshal([]byte(mustDos), &sess.MustDos); err != nil {
		return model.PlannedSession{}, fmt.Errorf("scan session %s: must_dos: %w", sess.ID, err)
	}
	return sess, nil
}

func scanActivity(rows *sql.Rows) (model.CompletedActivity, error) {
	var (
		act        model.CompletedActivity
		date       string
		sport      string
		defaulted  int
		distanceKm sql.NullFloat64
		load       sql.NullFloat64
	)
	if err := rows.Scan(
		&act.ID, &date, &sport, &defaulted, &act.Title, &act.DurationMin,
		&distanceKm, &load, &act.Secondary, &act.PlannedSessionID, &act.WorkoutID,
	); err != nil {
		return model.CompletedActivity{}, fmt.Errorf("scan activity: %w", err)
	}

	act.Date = model.Day(date)
	act.Sport = model.Sport(sport)
	act.SportDefaulted = defaulted != 0
	if distanceKm.Valid {
		km := distanceKm.Float64
		act.DistanceKm = &km
	}
	if load.Valid {
		l := load.Float64
		act.TrainingLoad = &l
	}
	return act, nil
}
