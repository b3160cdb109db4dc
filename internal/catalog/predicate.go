package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/evcraddock/realty-site/internal/property"
)

// Matches reports whether r satisfies every active field of c.
func Matches(r property.Record, c Criteria) bool {
	return containsFold(r.Location, c.Location) &&
		containsFold(r.Title, c.Title) &&
		(c.Type == "" || r.Type == c.Type) &&
		(c.Operation == "" || r.Operation == c.Operation) &&
		atLeast(r.PriceValue, c.MinPrice) &&
		atMost(r.PriceValue, c.MaxPrice) &&
		atLeast(float64(r.Bedrooms), c.MinBedrooms) &&
		atLeast(float64(r.Bathrooms), c.MinBathrooms)
}

// ComputeFiltered returns the records matching c in their original order.
// The input slice is not modified.
func ComputeFiltered(records []property.Record, c Criteria) []property.Record {
	out := make([]property.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

// containsFold is a case-insensitive substring test. A blank needle
// matches everything.
func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

func atLeast(v float64, bound string) bool {
	n, ok := ParseOptionalNumber(bound)
	return !ok || v >= n
}

func atMost(v float64, bound string) bool {
	n, ok := ParseOptionalNumber(bound)
	return !ok || v <= n
}
