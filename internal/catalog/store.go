package catalog

import (
	"errors"
	"sync"

	"github.com/evcraddock/realty-site/internal/property"
)

// ErrNotFound is returned when a listing id is not in the catalog.
var ErrNotFound = errors.New("property not found")

// Store owns the canonical listing set, the current criteria and the
// filtered view derived from them. The filtered view is recomputed
// synchronously whenever the records or the criteria change.
type Store struct {
	mu       sync.RWMutex
	records  []property.Record
	criteria Criteria
	filtered []property.Record
}

// NewStore creates an empty store with no criteria.
func NewStore() *Store {
	return &Store{}
}

// Initialize replaces the canonical set with a copy of records and
// re-derives the filtered view under the current criteria.
func (s *Store) Initialize(records []property.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = cloneRecords(records)
	s.filtered = ComputeFiltered(s.records, s.criteria)
}

// UpdateCriteria merges p into the current criteria and re-derives the
// filtered view. It returns the merged criteria.
func (s *Store) UpdateCriteria(p Patch) Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = s.criteria.Merge(p)
	s.filtered = ComputeFiltered(s.records, s.criteria)
	return s.criteria
}

// ResetCriteria clears every search field.
func (s *Store) ResetCriteria() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = Criteria{}
	s.filtered = ComputeFiltered(s.records, s.criteria)
}

// ApplyFilter re-derives the filtered view from the canonical set and the
// current criteria. Repeated calls with unchanged state give the same view.
func (s *Store) ApplyFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filtered = ComputeFiltered(s.records, s.criteria)
}

// Filtered returns a copy of the current filtered view.
func (s *Store) Filtered() []property.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneRecords(s.filtered)
}

// Criteria returns the current criteria.
func (s *Store) Criteria() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.criteria
}

// Records returns a copy of the canonical set.
func (s *Store) Records() []property.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneRecords(s.records)
}

// Get returns the canonical listing with the given id.
func (s *Store) Get(id int64) (property.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return property.Record{}, ErrNotFound
}

func cloneRecords(records []property.Record) []property.Record {
	out := make([]property.Record, len(records))
	copy(out, records)
	return out
}
