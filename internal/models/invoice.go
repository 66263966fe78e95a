package models

// Invoice stores a denormalized customer snapshot so later customer edits do
// not rewrite history. Total is whatever the caller supplied; it is not
// recomputed from items.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	InvoiceNo     string        `gorm:"index" json:"invoice_no"`
	Year          int           `gorm:"index" json:"year"`
	CustomerID    uint          `json:"customer_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	Date          string        `json:"date"` // YYYY-MM-DD
	Total         float64       `json:"total"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// InvoiceItem keeps its own qty/price/discount/tax snapshot. ProductID is a
// weak reference: zero for free-text lines, and it may dangle after a product
// delete; rows render from their snapshot fields only.
type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"not null;index" json:"invoice_id"`
	ProductID uint    `json:"product_id"`
	Item      string  `json:"item"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
	Amount    float64 `json:"amount"`
}
