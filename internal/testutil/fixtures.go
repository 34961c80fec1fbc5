// Package testutil provides shared fixture builders for engine and
// pipeline tests. Builders default every field to a valid value so a test
// states only what it cares about.
package testutil

import "github.com/paceline/paceline/internal/model"

// SessionOption mutates a fixture session.
type SessionOption func(*model.PlannedSession)

// Session builds a planned session fixture. Defaults: running, aerobic,
// 60 minutes, status planned, all-day.
func Session(id string, date model.Day, opts ...SessionOption) model.PlannedSession {
	s := model.PlannedSession{
		ID:          id,
		Date:        date,
		Sport:       model.SportRunning,
		Intent:      model.IntentAerobic,
		Title:       "Easy run",
		DurationMin: 60,
		Status:      model.StatusPlanned,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithTime sets an explicit clock time.
func WithTime(clock string) SessionOption {
	return func(s *model.PlannedSession) { s.Time = clock }
}

// WithSport sets the sport.
func WithSport(sport model.Sport) SessionOption {
	return func(s *model.PlannedSession) { s.Sport = sport }
}

// WithIntent sets the training intent.
func WithIntent(intent model.Intent) SessionOption {
	return func(s *model.PlannedSession) { s.Intent = intent }
}

// WithTitle sets the title.
func WithTitle(title string) SessionOption {
	return func(s *model.PlannedSession) { s.Title = title }
}

// WithDuration sets the planned duration in minutes.
func WithDuration(minutes int) SessionOption {
	return func(s *model.PlannedSession) { s.DurationMin = minutes }
}

// WithDistance sets the planned distance in km.
func WithDistance(km float64) SessionOption {
	return func(s *model.PlannedSession) { s.DistanceKm = &km }
}

// WithStatus sets the lifecycle status.
func WithStatus(status model.SessionStatus) SessionOption {
	return func(s *model.PlannedSession) { s.Status = status }
}

// WithActivityLink sets the explicit planned-to-activity link.
func WithActivityLink(activityID string) SessionOption {
	return func(s *model.PlannedSession) { s.CompletedActivityID = activityID }
}

// WithSessionWorkoutID sets the alternate cross-reference key.
func WithSessionWorkoutID(workoutID string) SessionOption {
	return func(s *model.PlannedSession) { s.WorkoutID = workoutID }
}

// ActivityOption mutates a fixture activity.
type ActivityOption func(*model.CompletedActivity)

// Activity builds a completed activity fixture. Defaults: running,
// 60 minutes.
func Activity(id string, date model.Day, opts ...ActivityOption) model.CompletedActivity {
	a := model.CompletedActivity{
		ID:          id,
		Date:        date,
		Sport:       model.SportRunning,
		Title:       "Morning run",
		DurationMin: 60,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// WithActivitySport sets the sport.
func WithActivitySport(sport model.Sport) ActivityOption {
	return func(a *model.CompletedActivity) { a.Sport = sport }
}

// WithActivityTitle sets the title.
func WithActivityTitle(title string) ActivityOption {
	return func(a *model.CompletedActivity) { a.Title = title }
}

// WithActivityDuration sets the recorded duration in minutes.
func WithActivityDuration(minutes int) ActivityOption {
	return func(a *model.CompletedActivity) { a.DurationMin = minutes }
}

// WithActivityDistance sets the recorded distance in km.
func WithActivityDistance(km float64) ActivityOption {
	return func(a *model.CompletedActivity) { a.DistanceKm = &km }
}

// WithLoad sets the training load score.
func WithLoad(load float64) ActivityOption {
	return func(a *model.CompletedActivity) { a.TrainingLoad = &load }
}

// WithPlannedLink sets the explicit activity-to-planned link.
func WithPlannedLink(sessionID string) ActivityOption {
	return func(a *model.CompletedActivity) { a.PlannedSessionID = sessionID }
}

// WithActivityWorkoutID sets the alternate cross-reference key.
func WithActivityWorkoutID(workoutID string) ActivityOption {
	return func(a *model.CompletedActivity) { a.WorkoutID = workoutID }
}

// Item builds a calendar item fixture for grouping and sort tests.
func Item(kind model.ItemKind, id string, opts ...ItemOption) model.CalendarItem {
	item := model.CalendarItem{
		Kind:        kind,
		ID:          id,
		Sport:       model.SportRunning,
		Intent:      model.IntentAerobic,
		Title:       "Workout",
		StartLocal:  "2024-06-10T00:00",
		DurationMin: 60,
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}

// ItemOption mutates a fixture calendar item.
type ItemOption func(*model.CalendarItem)

// WithItemTitle sets the title.
func WithItemTitle(title string) ItemOption {
	return func(i *model.CalendarItem) { i.Title = title }
}

// WithItemDuration sets the duration in minutes.
func WithItemDuration(minutes int) ItemOption {
	return func(i *model.CalendarItem) { i.DurationMin = minutes }
}

// WithItemLoad sets the load score.
func WithItemLoad(load float64) ItemOption {
	return func(i *model.CalendarItem) { i.Load = &load }
}

// WithPairRef sets the linked counterpart id.
func WithPairRef(ref string) ItemOption {
	return func(i *model.CalendarItem) { i.PairRef = ref }
}

// WithItemWorkoutID sets the shared structured-workout reference.
func WithItemWorkoutID(workoutID string) ItemOption {
	return func(i *model.CalendarItem) { i.WorkoutID = workoutID }
}

// WithItemStart sets the local start timestamp ("2024-06-10T07:00").
func WithItemStart(start string) ItemOption {
	return func(i *model.CalendarItem) { i.StartLocal = start }
}

// Shuffle returns deterministic pseudo-random permutations of indexes for
// permutation-invariance tests. The generator is a fixed LCG so failures
// reproduce.
func Shuffle[T any](items []T, seed int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	state := uint64(seed)*6364136223846793005 + 1442695040888963407
	for i := len(out) - 1; i > 0; i-- {
		state = state*6364136223846793005 + 1442695040888963407
		j := int(state % uint64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
