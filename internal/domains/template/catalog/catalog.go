// Package catalog is the in-memory filter/sort stage of the browse view.
// It is pure: same list, query and sort key always produce the same output
// order, and the input slice is never mutated.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"framecanvas-backend/internal/domains/template/model"
)

type SortKey string

const (
	SortPopular SortKey = "popular" // downloads descending
	SortRecent  SortKey = "recent"  // created_at descending
	SortTitle   SortKey = "title"   // locale-aware title ascending
)

// ParseSortKey maps a query parameter to a sort key, defaulting to popular.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRecent, SortTitle, SortPopular:
		return SortKey(s)
	default:
		return SortPopular
	}
}

// Filter returns the templates whose title, description or any tag contains
// the query, case-insensitively. An empty query passes all rows unchanged.
func Filter(templates []model.Template, query string) []model.Template {
	query = strings.TrimSpace(query)
	if query == "" {
		return templates
	}
	q := strings.ToLower(query)

	filtered := make([]model.Template, 0, len(templates))
	for _, t := range templates {
		if matches(t, q) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func matches(t model.Template, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy. The sort is stable relative to the input
// order so that ties render deterministically across recomputations.
func Sort(templates []model.Template, key SortKey) []model.Template {
	sorted := make([]model.Template, len(templates))
	copy(sorted, templates)

	switch key {
	case SortRecent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case SortTitle:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(sorted, func(i, j int) bool {
			return collator.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	default: // SortPopular
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DownloadsCount > sorted[j].DownloadsCount
		})
	}

	return sorted
}
