package engine

import "github.com/paceline/paceline/internal/model"

// Snapshot serialization for golden files, CLI JSON output, and the
// idempotence guarantee. Everything goes through model.MarshalCanonical so
// two passes over the same input produce byte-identical output.

// SnapshotDays serializes per-day summaries to canonical JSON.
func SnapshotDays(days []DaySummary) ([]byte, error) {
	list := make([]any, len(days))
	for i, d := range days {
		summaries := make([]any, len(d.Summaries))
		for j, s := range d.Summaries {
			summaries[j] = s.CanonicalMap()
		}
		list[i] = map[string]any{
			"date":      d.Date,
			"summaries": summaries,
		}
	}
	return model.MarshalCanonical(map[string]any{"days": list})
}

// SnapshotConflicts serializes a conflict list to canonical JSON.
func SnapshotConflicts(conflicts []model.Conflict) ([]byte, error) {
	list := make([]any, len(conflicts))
	for i, c := range conflicts {
		list[i] = c.CanonicalMap()
	}
	return model.MarshalCanonical(map[string]any{"conflicts": list})
}

// SnapshotGroups serializes grouped calendar items to canonical JSON.
func SnapshotGroups(groups []model.GroupedCalendarItem) ([]byte, error) {
	list := make([]any, len(groups))
	for i, g := range groups {
		list[i] = g.CanonicalMap()
	}
	return model.MarshalCanonical(map[string]any{"groups": list})
}
