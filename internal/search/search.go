// Package search filters item lists in memory.
package search

import (
	"strings"

	"github.com/pustaka-app/pustaka/internal/models"
)

// Filter returns the items whose name, details, or category contains
// query as a case-insensitive substring, preserving the original order.
// An empty query returns items unchanged.
func Filter(items []models.Item, query string) []models.Item {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	matched := make([]models.Item, 0, len(items))
	for _, it := range items {
		if matches(it, q) {
			matched = append(matched, it)
		}
	}
	return matched
}

func matches(it models.Item, q string) bool {
	return strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.Details), q) ||
		strings.Contains(strings.ToLower(it.Category), q)
}
