package models

// Merchant represents a seller in the catalog.
// A merchant owns its items; removing a merchant removes them too.
type Merchant struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	Items []Item `gorm:"foreignKey:MerchantID;constraint:OnDelete:CASCADE"`
}

func (m *Merchant) TableName() string {
	return "merchants"
}

// Validate reports the required fields missing from the merchant.
func (m *Merchant) Validate() error {
	if isBlank(m.Name) {
		return &ValidationError{Fields: []string{"name"}}
	}
	return nil
}
