package catalog

import (
	"encoding/json"
	"testing"

	"github.com/evcraddock/realty-site/internal/property"
	"github.com/evcraddock/realty-site/internal/validation"
)

func TestParseOptionalNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"integer", "200000", 200000, true},
		{"padded", " 3 ", 3, true},
		{"decimal", "1.5", 1.5, true},
		{"zero", "0", 0, true},
		{"letters", "abc", 0, false},
		{"trailing junk", "12abc", 0, false},
		{"nan", "NaN", 0, false},
		{"infinity", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOptionalNumber(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseOptionalNumber(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMergeLeavesAbsentFields(t *testing.T) {
	c := Criteria{Location: "Copacabana", MinPrice: "1000", Operation: property.OperationBuy}

	got := c.Merge(Patch{Operation: Ptr(property.OperationRent)})

	want := Criteria{Location: "Copacabana", MinPrice: "1000", Operation: property.OperationRent}
	if got != want {
		t.Errorf("merge = %+v, want %+v", got, want)
	}
}

func TestMergeClearsWithEmptyString(t *testing.T) {
	c := Criteria{Location: "Ipanema", MaxPrice: "5000"}

	got := c.Merge(Patch{Location: Ptr(""), MaxPrice: Ptr(NumericInput(""))})

	if got.Location != "" || got.MaxPrice != "" {
		t.Errorf("merge = %+v, want cleared location and maxPrice", got)
	}
}

func TestMergeLastWriteWins(t *testing.T) {
	var c Criteria
	c = c.Merge(Patch{MinPrice: Ptr(NumericInput("100"))})
	c = c.Merge(Patch{MinPrice: Ptr(NumericInput("200"))})

	if c.MinPrice != "200" {
		t.Errorf("minPrice = %q, want 200", c.MinPrice)
	}
}

func TestCriteriaIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want bool
	}{
		{"zero value", Criteria{}, true},
		{"blank location", Criteria{Location: "  "}, true},
		{"malformed numbers only", Criteria{MinPrice: "abc", MinBedrooms: "x"}, true},
		{"location", Criteria{Location: "Leblon"}, false},
		{"operation", Criteria{Operation: property.OperationRent}, false},
		{"max price", Criteria{MaxPrice: "10"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatchUnmarshalNumericInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantNil bool
		wantErr bool
	}{
		{"number", `{"minPrice": 200000}`, "200000", false, false},
		{"string", `{"minPrice": "150000"}`, "150000", false, false},
		{"malformed string", `{"minPrice": "abc"}`, "abc", false, false},
		{"null", `{"minPrice": null}`, "", true, false},
		{"absent", `{}`, "", true, false},
		{"boolean", `{"minPrice": true}`, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Patch
			err := json.Unmarshal([]byte(tt.body), &p)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if tt.wantNil {
				if p.MinPrice != nil {
					t.Errorf("minPrice = %q, want nil", *p.MinPrice)
				}
				return
			}
			if p.MinPrice == nil || string(*p.MinPrice) != tt.want {
				t.Errorf("minPrice = %v, want %q", p.MinPrice, tt.want)
			}
		})
	}
}

func TestPatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		patch   Patch
		wantErr bool
	}{
		{"empty patch", Patch{}, false},
		{"known type", Patch{Type: Ptr(property.TypeLand)}, false},
		{"clearing type", Patch{Type: Ptr(property.Type(""))}, false},
		{"clearing operation", Patch{Operation: Ptr(property.Operation(""))}, false},
		{"malformed number is tolerated", Patch{MinPrice: Ptr(NumericInput("abc"))}, false},
		{"unknown type", Patch{Type: Ptr(property.Type("castle"))}, true},
		{"unknown operation", Patch{Operation: Ptr(property.Operation("lease"))}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !validation.IsValidation(err) {
				t.Errorf("err = %T, want *validation.Error", err)
			}
		})
	}
}
