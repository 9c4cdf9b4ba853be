package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// unitPriceScale matches the fractional digits of the unit_price column.
const unitPriceScale = 2

// maxUnitPrice is the largest magnitude a decimal(10,2) column stores.
var maxUnitPrice = decimal.RequireFromString("99999999.99")

// Item represents a product sold by a single merchant.
type Item struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"not null"`
	Description string          `gorm:"type:text;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MerchantID  uint            `gorm:"index;not null"`
}

func (i *Item) TableName() string {
	return "items"
}

// itemFieldNames is the allow-list, in the order validation reports it.
var itemFieldNames = []string{"name", "description", "unit_price", "merchant_id"}

// ItemFields is the allow-list of attributes a client may set on an item.
// A nil field was not supplied.
type ItemFields struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	MerchantID  *uint            `json:"merchant_id"`

	// cleared holds the fields that were supplied as null or blank.
	cleared []string
}

// UnmarshalJSON decodes the allow-listed attributes and drops the rest.
// Null or blank values are remembered as cleared instead of failing to
// decode, and a numeric string is accepted for merchant_id.
func (f *ItemFields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = ItemFields{}
	for _, name := range itemFieldNames {
		value, ok := raw[name]
		if !ok {
			continue
		}
		if isNullOrBlank(value) {
			f.cleared = append(f.cleared, name)
			continue
		}
		if err := f.decodeField(name, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (f *ItemFields) decodeField(name string, value json.RawMessage) error {
	switch name {
	case "name":
		return json.Unmarshal(value, &f.Name)
	case "description":
		return json.Unmarshal(value, &f.Description)
	case "unit_price":
		var price decimal.Decimal
		if err := price.UnmarshalJSON(value); err != nil {
			return err
		}
		f.UnitPrice = &price
	case "merchant_id":
		id, err := decodeID(value)
		if err != nil {
			return err
		}
		f.MerchantID = &id
	}
	return nil
}

// Apply copies the supplied fields onto item, leaving the rest untouched.
// The price is rounded to the precision the store keeps.
func (f ItemFields) Apply(item *Item) {
	if f.Name != nil {
		item.Name = *f.Name
	}
	if f.Description != nil {
		item.Description = *f.Description
	}
	if f.UnitPrice != nil {
		item.UnitPrice = f.UnitPrice.Round(unitPriceScale)
	}
	if f.MerchantID != nil {
		item.MerchantID = *f.MerchantID
	}
}

// Missing lists the allow-listed fields that were not supplied or are blank.
func (f ItemFields) Missing() []string {
	var missing []string
	if f.Name == nil || isBlank(*f.Name) {
		missing = append(missing, "name")
	}
	if f.Description == nil || isBlank(*f.Description) {
		missing = append(missing, "description")
	}
	if f.UnitPrice == nil {
		missing = append(missing, "unit_price")
	}
	if f.MerchantID == nil || *f.MerchantID == 0 {
		missing = append(missing, "merchant_id")
	}
	return missing
}

// Build returns a new item holding every required field.
func (f ItemFields) Build() (Item, error) {
	if missing := f.Missing(); len(missing) > 0 {
		return Item{}, &ValidationError{Fields: missing}
	}
	var item Item
	f.Apply(&item)
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Patch applies the supplied fields to item and validates the result.
// A field supplied as null or blank is a validation failure.
func (f ItemFields) Patch(item *Item) error {
	if len(f.cleared) > 0 {
		return &ValidationError{Fields: f.cleared}
	}
	f.Apply(item)
	return item.Validate()
}

// Validate reports the required fields missing from the item, and a price
// outside the range of the unit_price column.
func (i *Item) Validate() error {
	var missing []string
	if isBlank(i.Name) {
		missing = append(missing, "name")
	}
	if isBlank(i.Description) {
		missing = append(missing, "description")
	}
	if i.UnitPrice.Abs().GreaterThan(maxUnitPrice) {
		missing = append(missing, "unit_price")
	}
	if i.MerchantID == 0 {
		missing = append(missing, "merchant_id")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func isNullOrBlank(value json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "null" {
		return true
	}
	var s string
	return json.Unmarshal(value, &s) == nil && isBlank(s)
}

func decodeID(value json.RawMessage) (uint, error) {
	var id uint
	if err := json.Unmarshal(value, &id); err == nil {
		return id, nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}
