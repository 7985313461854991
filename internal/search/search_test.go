package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pustaka-app/pustaka/internal/models"
	"github.com/pustaka-app/pustaka/internal/search"
)

var library = []models.Item{
	{ID: "1", Name: "Dune", Author: "Herbert", Category: "Science Fiction", Details: "Desert planet"},
	{ID: "2", Name: "Foundation", Author: "Asimov", Category: "science fiction", Details: "Psychohistory"},
	{ID: "3", Name: "Laskar Pelangi", Author: "Hirata", Category: "Novel", Details: "Belitung"},
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	got := search.Filter(library, "")
	assert.Equal(t, library, got)
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	got := search.Filter(library, "dUnE")
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterMatchesDetailsAndCategory(t *testing.T) {
	assert.Len(t, search.Filter(library, "desert"), 1)
	assert.Len(t, search.Filter(library, "science"), 2)
}

func TestFilterDoesNotMatchAuthor(t *testing.T) {
	// Only name, details, and category are searched.
	assert.Empty(t, search.Filter(library, "herbert"))
}

func TestFilterNoMatch(t *testing.T) {
	assert.Empty(t, search.Filter(library, "tolkien"))
}

func TestFilterPreservesOrder(t *testing.T) {
	got := search.Filter(library, "i")
	var ids []string
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestFilterReturnsSubset(t *testing.T) {
	got := search.Filter(library, "novel")
	for _, it := range got {
		assert.Contains(t, library, it)
	}
}
