package engine

import (
	"sort"
	"strings"

	"github.com/paceline/paceline/internal/model"
)

// DisplayLess is the total display order for a day's calendar items.
//
// Comparison levels, applied in order:
//  1. completed before planned (actuals take visual priority)
//  2. higher load first (missing load counts as 0)
//  3. longer duration first
//  4. case-insensitive title ascending
//  5. id ascending
//
// The id tie-break guarantees a strict total order: no two items with
// distinct ids ever compare equal, so re-sorting any permutation of the
// same set yields an identical sequence.
func DisplayLess(a, b model.CalendarItem) bool {
	if a.Kind != b.Kind {
		return a.Kind == model.KindCompleted
	}
	la, lb := loadOf(a), loadOf(b)
	if la != lb {
		return la > lb
	}
	if a.DurationMin != b.DurationMin {
		return a.DurationMin > b.DurationMin
	}
	ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
	if ta != tb {
		return ta < tb
	}
	return a.ID < b.ID
}

func loadOf(item model.CalendarItem) float64 {
	if item.Load == nil {
		return 0
	}
	return *item.Load
}

// SortItems returns a copy of items in display order. The first element of
// the result is the day's top card.
func SortItems(items []model.CalendarItem) []model.CalendarItem {
	out := make([]model.CalendarItem, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return DisplayLess(out[i], out[j]) })
	return out
}

// TopCard returns the highest-priority item of a day's collection.
// The second return value is false for an empty collection.
func TopCard(items []model.CalendarItem) (model.CalendarItem, bool) {
	if len(items) == 0 {
		return model.CalendarItem{}, false
	}
	sorted := SortItems(items)
	return sorted[0], true
}

// GroupItems collapses near-duplicate items into logical workout groups.
//
// Two items belong to the same group when an explicit pairing reference
// connects them, or when they share a workout id on the same day: a
// planned session and the activity that executed it both surface under
// one stacked card instead of two. Items with neither link form singleton
// groups.
//
// Groups and the items within each group are both in display order, so
// Items[0] of each group is its representative and the first group holds
// the day's top card. Output is invariant under input permutation.
func GroupItems(items []model.CalendarItem) []model.GroupedCalendarItem {
	byKey := make(map[string][]model.CalendarItem)
	for _, item := range items {
		k := groupKey(item)
		byKey[k] = append(byKey[k], item)
	}

	groups := make([]model.GroupedCalendarItem, 0, len(byKey))
	for key, members := range byKey {
		groups = append(groups, model.GroupedCalendarItem{
			Key:   key,
			Items: SortItems(members),
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return DisplayLess(groups[i].Top(), groups[j].Top())
	})
	return groups
}

// groupKey derives the duplicate-group key for an item. Linked counterparts
// must land on the same key regardless of which side is inspected, so the
// key is the id pair in sorted order. Items linked only by a shared
// workout id carry no PairRef on either side; their key is the workout id
// scoped to the item's day, since workout-id pairing is same-day only.
func groupKey(item model.CalendarItem) string {
	if item.PairRef != "" {
		if item.PairRef < item.ID {
			return item.PairRef + "|" + item.ID
		}
		return item.ID + "|" + item.PairRef
	}
	if item.WorkoutID != "" {
		day := item.StartLocal
		if len(day) > 10 {
			day = day[:10]
		}
		return "workout|" + day + "|" + item.WorkoutID
	}
	return item.ID
}
