// Package category maps the navigation shortcuts (All, Buy, Rent, ...) to
// coarse catalog criteria and tracks which shortcut is highlighted.
package category

import (
	"errors"
	"fmt"
	"sync"

	"github.com/evcraddock/realty-site/internal/catalog"
	"github.com/evcraddock/realty-site/internal/property"
)

// ResultsAnchor is the page anchor callers scroll to after a selection.
const ResultsAnchor = "results"

// AllID is the shortcut that clears the operation constraint.
const AllID = "all"

// ErrUnknownCategory is returned when no shortcut has the requested id.
var ErrUnknownCategory = errors.New("unknown category")

// Shortcut is one entry in the navigation table.
type Shortcut struct {
	ID    string             `json:"id"`
	Label string             `json:"label"`
	Icon  string             `json:"icon"`
	Type  property.Type      `json:"type"`
	Op    property.Operation `json:"operation"`
}

// Patch returns the criteria patch for the shortcut on its own. It always
// sets the operation and sets the type only when the shortcut has one.
func (s Shortcut) Patch() catalog.Patch {
	p := catalog.Patch{Operation: catalog.Ptr(s.Op)}
	if s.Type != "" {
		p.Type = catalog.Ptr(s.Type)
	}
	return p
}

// Shortcuts is the ordered navigation table.
var Shortcuts = []Shortcut{
	{ID: AllID, Label: "All", Icon: "grid"},
	{ID: "buy", Label: "Buy", Icon: "key", Op: property.OperationBuy},
	{ID: "rent", Label: "Rent", Icon: "calendar", Op: property.OperationRent},
	{ID: "launches", Label: "Launches", Icon: "sparkles", Op: property.OperationBuy, Type: property.TypeApartment},
	{ID: "commercial", Label: "Commercial", Icon: "briefcase", Type: property.TypeCommercial},
}

// Lookup finds a shortcut by id. The empty id is an alias for AllID.
func Lookup(id string) (Shortcut, bool) {
	if id == "" {
		id = AllID
	}
	for _, s := range Shortcuts {
		if s.ID == id {
			return s, true
		}
	}
	return Shortcut{}, false
}

// Selection is the result of picking a shortcut.
type Selection struct {
	Category string           `json:"category"`
	Patch    catalog.Patch    `json:"-"`
	Criteria catalog.Criteria `json:"criteria"`
	Anchor   string           `json:"anchor"`
}

// Resolver applies shortcuts to a store and remembers the highlighted one.
// The highlight changes only through Select; editing criteria directly
// leaves it alone.
type Resolver struct {
	store *catalog.Store

	mu      sync.RWMutex
	current string
}

// NewResolver creates a resolver bound to store with AllID highlighted.
func NewResolver(store *catalog.Store) *Resolver {
	return &Resolver{store: store, current: AllID}
}

// Select applies the shortcut's patch, re-filters, and returns where the
// caller should scroll. Unknown ids leave the store untouched.
func (r *Resolver) Select(id string) (Selection, error) {
	sc, ok := Lookup(id)
	if !ok {
		return Selection{}, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	patch := sc.Patch()
	// Drop a type the previous shortcut set, unless the visitor has since
	// picked another one in the search form.
	if prev, ok := Lookup(r.current); ok && prev.Type != "" && sc.Type == "" {
		if r.store.Criteria().Type == prev.Type {
			patch.Type = catalog.Ptr(property.Type(""))
		}
	}
	criteria := r.store.UpdateCriteria(patch)
	r.store.ApplyFilter()
	r.current = sc.ID

	return Selection{
		Category: sc.ID,
		Patch:    patch,
		Criteria: criteria,
		Anchor:   ResultsAnchor,
	}, nil
}

// Current returns the highlighted shortcut id.
func (r *Resolver) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}
