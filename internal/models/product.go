package models

type Product struct {
	ID    string `json:"id"    validate:"required" gorm:"primary_key;unique"`
	SKU   string `json:"sku"   validate:"required" gorm:"unique_index"`
	Name  string `json:"name"  validate:"required"`
	Price int    `json:"price,omitempty" validate:"gte=0"`
}

// Public returns a copy with the price stripped, for viewers that must not
// see laboratory pricing.
func (p Product) Public() Product {
	p.Price = 0
	return p
}
