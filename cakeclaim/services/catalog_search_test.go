package services

import (
	"testing"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

func TestSearchCatalog(t *testing.T) {
	catalog := []*models.CatalogEntry{
		{Name: "Strawberry Cake"},
		{Name: "Golden_Cheesecake"},
		{Name: "Matcha Roll"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all", query: "  ", want: []string{"Strawberry Cake", "Golden_Cheesecake", "Matcha Roll"}},
		{name: "exact word", query: "matcha", want: []string{"Matcha Roll"}},
		{name: "case and separators ignored", query: "GOLDEN cheese", want: []string{"Golden_Cheesecake"}},
		{name: "no match", query: "tiramisu", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchCatalog(catalog, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("SearchCatalog() returned %d entries, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Name != tt.want[i] {
					t.Errorf("SearchCatalog()[%d] = %s, want %s", i, got[i].Name, tt.want[i])
				}
			}
		})
	}
}
