// Package catalog holds the in-memory listing catalog, the active search
// criteria and the predicates that derive the visible listings.
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/evcraddock/realty-site/internal/property"
	"github.com/evcraddock/realty-site/internal/validation"
)

// Criteria is the active search state. Every field is optional; an empty
// field imposes no constraint. Numeric fields keep the raw user input and
// are parsed when evaluated, see ParseOptionalNumber.
type Criteria struct {
	Location     string             `json:"location"`
	Title        string             `json:"title"`
	Type         property.Type      `json:"type"`
	Operation    property.Operation `json:"operation"`
	MinPrice     string             `json:"minPrice"`
	MaxPrice     string             `json:"maxPrice"`
	MinBedrooms  string             `json:"minBedrooms"`
	MinBathrooms string             `json:"minBathrooms"`
}

// Patch is a partial criteria update. Nil fields leave the current value
// untouched; a pointer to "" clears the field.
type Patch struct {
	Location     *string             `json:"location,omitempty"`
	Title        *string             `json:"title,omitempty"`
	Type         *property.Type      `json:"type,omitempty"`
	Operation    *property.Operation `json:"operation,omitempty"`
	MinPrice     *NumericInput       `json:"minPrice,omitempty"`
	MaxPrice     *NumericInput       `json:"maxPrice,omitempty"`
	MinBedrooms  *NumericInput       `json:"minBedrooms,omitempty"`
	MinBathrooms *NumericInput       `json:"minBathrooms,omitempty"`
}

// Merge returns c with every non-nil field of p applied.
func (c Criteria) Merge(p Patch) Criteria {
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Operation != nil {
		c.Operation = *p.Operation
	}
	if p.MinPrice != nil {
		c.MinPrice = string(*p.MinPrice)
	}
	if p.MaxPrice != nil {
		c.MaxPrice = string(*p.MaxPrice)
	}
	if p.MinBedrooms != nil {
		c.MinBedrooms = string(*p.MinBedrooms)
	}
	if p.MinBathrooms != nil {
		c.MinBathrooms = string(*p.MinBathrooms)
	}
	return c
}

// Validate rejects unknown type and operation values. The empty string is
// allowed and clears the field. Numeric fields are never rejected; input
// that does not parse simply imposes no constraint.
func (p Patch) Validate() error {
	fields := map[string]string{}
	if p.Type != nil && *p.Type != "" && !property.ValidType(string(*p.Type)) {
		fields["type"] = "must be one of: apartment house land commercial"
	}
	if p.Operation != nil && *p.Operation != "" && !property.ValidOperation(string(*p.Operation)) {
		fields["operation"] = "must be one of: buy rent"
	}
	if len(fields) > 0 {
		return &validation.Error{Fields: fields}
	}
	return nil
}

// IsEmpty reports whether no field constrains the catalog.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Location) == "" &&
		strings.TrimSpace(c.Title) == "" &&
		c.Type == "" &&
		c.Operation == "" &&
		!isSet(c.MinPrice) &&
		!isSet(c.MaxPrice) &&
		!isSet(c.MinBedrooms) &&
		!isSet(c.MinBathrooms)
}

func isSet(s string) bool {
	_, ok := ParseOptionalNumber(s)
	return ok
}

// NumericInput is raw text from a numeric search field. It decodes from a
// JSON string or number so form posts and API clients can both send it.
type NumericInput string

// UnmarshalJSON accepts "123", 123 and null.
func (n *NumericInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = NumericInput(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric field must be a string or number: %w", err)
	}
	*n = NumericInput(num.String())
	return nil
}

// ParseOptionalNumber parses a numeric filter field. Blank or malformed
// input yields ok == false, which callers treat as "no constraint".
func ParseOptionalNumber(s string) (value float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}
