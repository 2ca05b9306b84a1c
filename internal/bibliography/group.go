// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"sort"
	"strconv"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// categoryOrder fixes the iteration order when flattening grouped entries.
var categoryOrder = []types.Category{
	types.CategoryJournal,
	types.CategoryConference,
	types.CategoryOther,
}

// GroupedEntries maps category → year → entries in original input order.
// Every entry from a parse batch appears in exactly one (category, year)
// bucket.
type GroupedEntries map[types.Category]map[string][]types.RawEntry

// Group buckets entries by normalized category and extracted year.
func Group(entries []types.RawEntry) GroupedEntries {
	grouped := make(GroupedEntries)
	for _, e := range entries {
		cat := e.Category()
		if grouped[cat] == nil {
			grouped[cat] = make(map[string][]types.RawEntry)
		}
		grouped[cat][e.Year] = append(grouped[cat][e.Year], e)
	}
	return grouped
}

// Flatten returns all entries ordered by category (journal, conference,
// other), then year descending with "unknown" last, preserving input order
// within a (category, year) bucket.
func (g GroupedEntries) Flatten() []types.RawEntry {
	var out []types.RawEntry
	for _, cat := range categoryOrder {
		years := g[cat]
		if len(years) == 0 {
			continue
		}
		for _, year := range sortYearsDescending(years) {
			out = append(out, years[year]...)
		}
	}
	return out
}

// Count returns the total number of grouped entries.
func (g GroupedEntries) Count() int {
	n := 0
	for _, years := range g {
		for _, entries := range years {
			n += len(entries)
		}
	}
	return n
}

// sortYearsDescending orders year keys numerically descending. Non-numeric
// years ("unknown") sort after all numeric years.
func sortYearsDescending(years map[string][]types.RawEntry) []string {
	keys := make([]string, 0, len(years))
	for y := range years {
		keys = append(keys, y)
	}
	sort.Slice(keys, func(i, j int) bool {
		yi, erri := strconv.Atoi(keys[i])
		yj, errj := strconv.Atoi(keys[j])
		switch {
		case erri == nil && errj == nil:
			return yi > yj
		case erri == nil:
			return true // numeric before non-numeric
		case errj == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
