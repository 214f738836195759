package claim

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

// RandomSource yields draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Selector picks catalog entries with probability weight/total.
type Selector struct {
	mu     sync.Mutex
	source RandomSource
}

func NewSelector(source RandomSource) *Selector {
	if source == nil {
		source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{source: source}
}

func (s *Selector) Pick(entries []*models.CatalogEntry) (*models.CatalogEntry, error) {
	s.mu.Lock()
	draw := s.source.Float64()
	s.mu.Unlock()

	return pick(entries, draw)
}

// pick walks entries in order and returns the first whose cumulative weight
// reaches draw*total. Earlier entries win ties. Entries without a positive
// weight are never returned.
func pick(entries []*models.CatalogEntry, draw float64) (*models.CatalogEntry, error) {
	var total float64
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return nil, ErrEmptyCatalog
	}

	r := draw * total
	var cumulative float64
	var last *models.CatalogEntry
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		last = e
		if cumulative >= r {
			return e, nil
		}
	}
	// float rounding can leave r a hair above the final sum
	return last, nil
}
