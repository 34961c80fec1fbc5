package engine

import (
	"log/slog"
	"sort"

	"github.com/paceline/paceline/internal/model"
)

// DaySummary is one calendar day's ordered execution summaries.
type DaySummary struct {
	Date      model.Day
	Summaries []model.ExecutionSummary
}

// Reconciler runs full reconciliation passes over a snapshot of planned
// sessions and completed activities.
//
// The reference day is fixed at construction and read once per pass, so a
// render that spans a midnight boundary still classifies every item
// against the same "today". The caller supplies a consistent input
// snapshot; the Reconciler caches nothing and detects no staleness.
type Reconciler struct {
	today  model.Day
	tokens TokenGenerator
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithTokenGenerator overrides the run token source. Tests use a
// FixedGenerator for deterministic log output.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(r *Reconciler) {
		r.tokens = g
	}
}

// NewReconciler creates a Reconciler for the given reference day.
// Returns an error when the day is malformed; a bad reference day would
// silently misclassify every planned-only item.
func NewReconciler(today string, opts ...Option) (*Reconciler, error) {
	day, err := model.ParseDay(today)
	if err != nil {
		return nil, NewInvalidDayError(today)
	}
	r := &Reconciler{
		today:  day,
		tokens: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Today returns the reference day the pass classifies against.
func (r *Reconciler) Today() model.Day {
	return r.today
}

// Reconcile merges the two record streams into per-day execution summaries,
// ordered by day ascending.
//
// Assembly runs three passes per day, in this order:
//  1. resolved pairs (COMPLETED_AS_PLANNED), each id marked used
//  2. remaining unpaired planned sessions (MISSED or PLANNED_ONLY)
//  3. remaining unpaired activities (COMPLETED_UNPLANNED)
//
// The fixed pass order guarantees no id is double-counted and makes
// repeated runs over identical input byte-identical after canonical
// serialization.
func (r *Reconciler) Reconcile(sessions []model.PlannedSession, activities []model.CompletedActivity) ([]DaySummary, error) {
	token := r.tokens.Generate()
	slog.Debug("reconciliation pass starting",
		"run", token,
		"today", r.today,
		"sessions", len(sessions),
		"activities", len(activities),
	)

	pairing := ResolvePairings(sessions, activities)

	pairsByDay := make(map[model.Day][]Pair)
	for _, p := range pairing.Pairs {
		pairsByDay[p.Planned.Date] = append(pairsByDay[p.Planned.Date], p)
	}
	sessionsByDay := make(map[model.Day][]model.PlannedSession)
	for _, s := range pairing.UnpairedSessions {
		sessionsByDay[s.Date] = append(sessionsByDay[s.Date], s)
	}
	activitiesByDay := make(map[model.Day][]model.CompletedActivity)
	for _, a := range pairing.UnpairedActivities {
		activitiesByDay[a.Date] = append(activitiesByDay[a.Date], a)
	}

	var result []DaySummary
	for _, day := range sortedDays(pairsByDay, sessionsByDay, activitiesByDay) {
		summaries, err := r.assembleDay(day, pairsByDay[day], sessionsByDay[day], activitiesByDay[day])
		if err != nil {
			return nil, err
		}
		if len(summaries) > 0 {
			result = append(result, DaySummary{Date: day, Summaries: summaries})
		}
	}

	slog.Debug("reconciliation pass finished", "run", token, "days", len(result))
	return result, nil
}

// assembleDay runs the three classification passes for one day.
// Slices arrive pre-sorted: pairs in rule-resolution order, sessions and
// activities in id order (both established by ResolvePairings).
func (r *Reconciler) assembleDay(day model.Day, pairs []Pair, sessions []model.PlannedSession, activities []model.CompletedActivity) ([]model.ExecutionSummary, error) {
	var summaries []model.ExecutionSummary

	emit := func(planned *model.PlannedSession, activity *model.CompletedActivity) error {
		c, err := Classify(planned, activity, day, r.today)
		if err != nil {
			return err
		}
		if c.Skip {
			return nil
		}
		if c.PlannedExcluded {
			planned = nil
		}
		summaries = append(summaries, model.ExecutionSummary{
			Date:     day,
			Planned:  planned,
			Activity: activity,
			State:    c.State,
			Deltas:   c.Deltas,
		})
		return nil
	}

	for i := range pairs {
		if err := emit(&pairs[i].Planned, &pairs[i].Activity); err != nil {
			return nil, err
		}
	}
	for i := range sessions {
		if err := emit(&sessions[i], nil); err != nil {
			return nil, err
		}
	}
	for i := range activities {
		if err := emit(nil, &activities[i]); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

// sortedDays returns the union of map keys, ascending.
func sortedDays(pairs map[model.Day][]Pair, sessions map[model.Day][]model.PlannedSession, activities map[model.Day][]model.CompletedActivity) []model.Day {
	seen := make(map[model.Day]bool)
	var days []model.Day
	add := func(d model.Day) {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	for d := range pairs {
		add(d)
	}
	for d := range sessions {
		add(d)
	}
	for d := range activities {
		add(d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
