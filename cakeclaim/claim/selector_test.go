package claim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func entries(weights ...float64) []*models.CatalogEntry {
	out := make([]*models.CatalogEntry, len(weights))
	for i, w := range weights {
		out[i] = &models.CatalogEntry{ID: int64(i + 1), Name: string(rune('A' + i)), Weight: w}
	}
	return out
}

func TestPick(t *testing.T) {
	tests := []struct {
		name    string
		entries []*models.CatalogEntry
		draw    float64
		want    string
		wantErr error
	}{
		{name: "single entry low draw", entries: entries(5), draw: 0, want: "A"},
		{name: "single entry high draw", entries: entries(5), draw: 0.9999, want: "A"},
		{name: "tie goes to earlier entry", entries: entries(1, 1), draw: 0.5, want: "A"},
		{name: "just past first bucket", entries: entries(1, 1), draw: 0.5001, want: "B"},
		{name: "zero weight skipped", entries: entries(0, 2, 0), draw: 0, want: "B"},
		{name: "negative weight skipped", entries: entries(-4, 1, 1), draw: 0.75, want: "C"},
		{name: "draw of one falls back to last positive", entries: entries(1, 2, 0), draw: 1, want: "B"},
		{name: "empty catalog", entries: nil, draw: 0.3, wantErr: ErrEmptyCatalog},
		{name: "all weights zero", entries: entries(0, 0), draw: 0.3, wantErr: ErrEmptyCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSelector(fixedSource(tt.draw)).Pick(tt.entries)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Pick() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Pick() unexpected error = %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("Pick() = %s, want %s", got.Name, tt.want)
			}
		})
	}
}

func TestPick_Distribution(t *testing.T) {
	catalog := entries(1, 3, 6)
	selector := NewSelector(rand.New(rand.NewSource(42)))

	const draws = 100000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		e, err := selector.Pick(catalog)
		if err != nil {
			t.Fatalf("Pick() error = %v", err)
		}
		counts[e.Name]++
	}

	want := map[string]float64{"A": 0.1, "B": 0.3, "C": 0.6}
	for name, p := range want {
		got := float64(counts[name]) / draws
		if math.Abs(got-p) > 0.01 {
			t.Errorf("frequency of %s = %.4f, want %.2f ± 0.01", name, got, p)
		}
	}
}
