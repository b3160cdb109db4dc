// Package property provides the listing domain model, seed data and the
// local catalog snapshot.
package property

// Type classifies what kind of real estate a listing is.
type Type string

const (
	TypeApartment  Type = "apartment"
	TypeHouse      Type = "house"
	TypeLand       Type = "land"
	TypeCommercial Type = "commercial"
)

// ValidType returns true if s is a known property type.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeApartment, TypeHouse, TypeLand, TypeCommercial:
		return true
	}
	return false
}

// Operation is the deal a listing is offered under.
type Operation string

const (
	OperationBuy  Operation = "buy"
	OperationRent Operation = "rent"
)

// ValidOperation returns true if s is a known operation.
func ValidOperation(s string) bool {
	switch Operation(s) {
	case OperationBuy, OperationRent:
		return true
	}
	return false
}

// Badge labels shown on listing cards. The set is open; these are the ones
// the agency uses today.
const (
	BadgeHighlight = "Highlight"
	BadgePromotion = "Promotion"
	BadgeExclusive = "Exclusive"
	BadgeNew       = "New"
)

// Record is a single catalog listing.
//
// Price and Area are display strings; PriceValue and AreaValue are the
// canonical numbers used for filtering.
type Record struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title" validate:"required"`
	Price      string    `json:"price"`
	PriceValue float64   `json:"priceValue" validate:"gte=0"`
	Location   string    `json:"location" validate:"required"`
	Bedrooms   int       `json:"bedrooms" validate:"gte=0"`
	Bathrooms  int       `json:"bathrooms" validate:"gte=0"`
	Area       string    `json:"area"`
	AreaValue  float64   `json:"areaValue" validate:"gte=0"`
	Type       Type      `json:"type" validate:"required,oneof=apartment house land commercial"`
	Operation  Operation `json:"operation" validate:"required,oneof=buy rent"`
	Image      string    `json:"image,omitempty"`
	Badge      string    `json:"badge,omitempty"`
	IsNew      bool      `json:"isNew"`
}

// Update is a partial record for PUT requests. Nil fields are not sent.
type Update struct {
	Title      *string    `json:"title,omitempty"`
	Price      *string    `json:"price,omitempty"`
	PriceValue *float64   `json:"priceValue,omitempty" validate:"omitempty,gte=0"`
	Location   *string    `json:"location,omitempty"`
	Bedrooms   *int       `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms  *int       `json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	Area       *string    `json:"area,omitempty"`
	AreaValue  *float64   `json:"areaValue,omitempty" validate:"omitempty,gte=0"`
	Type       *Type      `json:"type,omitempty" validate:"omitempty,oneof=apartment house land commercial"`
	Operation  *Operation `json:"operation,omitempty" validate:"omitempty,oneof=buy rent"`
	Image      *string    `json:"image,omitempty"`
	Badge      *string    `json:"badge,omitempty"`
	IsNew      *bool      `json:"isNew,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u Update) Empty() bool {
	return u == Update{}
}
