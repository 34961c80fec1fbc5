package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paceline/paceline/internal/model"
)

// PutSessions upserts normalized planned sessions. The whole batch is
// written in one transaction so a partially imported payload never becomes
// visible to readers.
func (s *Store) PutSessions(ctx context.Context, sessions []model.PlannedSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put sessions: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sessions
		(id, date, time, sport, sport_defaulted, intent, title, duration_min,
		 distance_km, status, completed_activity_id, workout_id, notes, must_dos, instructions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			time = excluded.time,
			sport = excluded.sport,
			sport_defaulted = excluded.sport_defaulted,
			intent = excluded.intent,
			title = excluded.title,
			duration_min = excluded.duration_min,
			distance_km = excluded.distance_km,
			status = excluded.status,
			completed_activity_id = excluded.completed_activity_id,
			workout_id = excluded.workout_id,
			notes = excluded.notes,
			must_dos = excluded.must_dos,
			instructions = excluded.instructions
	`)
	if err != nil {
		return fmt.Errorf("put sessions: %w", err)
	}
	defer stmt.Close()

	for _, sess := range sessions {
		mustDos, err := json.Marshal(sess.MustDos)
		if err != nil {
			return fmt.Errorf("put sessions: marshal must_dos for %s: %w", sess.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			sess.ID,
			string(sess.Date),
			sess.Time,
			string(sess.Sport),
			boolToInt(sess.SportDefaulted),
			string(sess.Intent),
			sess.Title,
			sess.DurationMin,
			sess.DistanceKm,
			string(sess.Status),
			sess.CompletedActivityID,
			sess.WorkoutID,
			sess.Notes,
			string(mustDos),
			sess.Instructions,
		); err != nil {
			return fmt.Errorf("put sessions: write %s: %w", sess.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put sessions: %w", err)
	}
	return nil
}

// PutActivities upserts normalized completed activities in one transaction.
func (s *Store) PutActivities(ctx context.Context, activities []model.CompletedActivity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put activities: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activities
		(id, date, sport, sport_defaulted, title, duration_min, distance_km,
		 training_load, secondary, planned_session_id, workout_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			sport = excluded.sport,
			sport_defaulted = excluded.sport_defaulted,
			title = excluded.title,
			duration_min = excluded.duration_min,
			distance_km = excluded.distance_km,
			training_load = excluded.training_load,
			secondary = excluded.secondary,
			planned_session_id = excluded.planned_session_id,
			workout_id = excluded.workout_id
	`)
	if err != nil {
		return fmt.Errorf("put activities: %w", err)
	}
	defer stmt.Close()

	for _, act := range activities {
		if _, err := stmt.ExecContext(ctx,
			act.ID,
			string(act.Date),
			string(act.Sport),
			boolToInt(act.SportDefaulted),
			act.Title,
			act.DurationMin,
			act.DistanceKm,
			act.TrainingLoad,
			act.Secondary,
			act.PlannedSessionID,
			act.WorkoutID,
		); err != nil {
			return fmt.Errorf("put activities: write %s: %w", act.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put activities: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
