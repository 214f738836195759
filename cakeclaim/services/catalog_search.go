package services

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

// catalogItems implements fuzzy.Source over catalog entry names.
type catalogItems []*models.CatalogEntry

func (items catalogItems) Len() int {
	return len(items)
}

func (items catalogItems) String(i int) string {
	return normalizeForSearch(items[i].Name)
}

// SearchCatalog returns the entries whose names fuzzy-match query, best
// match first. An empty query returns entries unchanged.
func SearchCatalog(entries []*models.CatalogEntry, query string) []*models.CatalogEntry {
	query = normalizeForSearch(query)
	if query == "" {
		return entries
	}

	matches := fuzzy.FindFrom(query, catalogItems(entries))
	results := make([]*models.CatalogEntry, len(matches))
	for i, match := range matches {
		results[i] = entries[match.Index]
	}
	return results
}

func normalizeForSearch(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
