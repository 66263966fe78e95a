package models

// Product is the catalog + stock row. Qty is the on-hand quantity and is
// only driven down by invoice application, never below what a pre-flight
// stock check allows.
type Product struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"not null" json:"name"`
	Qty             int     `gorm:"not null;default:0" json:"qty"`
	Price           float64 `gorm:"not null;default:0" json:"price"`
	Category        string  `json:"category"`
	DefaultTax      float64 `gorm:"not null;default:0" json:"default_tax"`
	DefaultDiscount float64 `gorm:"not null;default:0" json:"default_discount"`
}
