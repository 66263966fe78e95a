package services

import (
	"errors"
	"fmt"
	"time"

	"shopbill/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the target invoice does not exist.
var ErrNotFound = errors.New("invoice not found")

// InsufficientStockError reports which product failed the pre-flight stock
// check and by how much.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s (have %d, need %d)", e.Product, e.Available, e.Requested)
}

// ItemInput is one requested line. ProductID zero marks a free-text line that
// never touches stock. Price/discount/tax/amount are stored as given.
type ItemInput struct {
	ProductID uint    `json:"product_id"`
	Item      string  `json:"item"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
	Amount    float64 `json:"amount"`
}

type InvoiceInput struct {
	CustomerID    uint        `json:"customer_id"`
	CustomerName  string      `json:"customer"`
	CustomerPhone string      `json:"phone"`
	Date          string      `json:"date"`
	Total         float64     `json:"total"`
	Items         []ItemInput `json:"items"`
}

// InvoiceService keeps Product.Qty consistent with the net effect of all live
// invoice items. Each operation runs in one transaction, so a failed stock
// check leaves nothing behind. The transaction gives atomicity, not isolation:
// two concurrent creates can validate against the same stale quantity, which
// matches the single-writer assumption this app runs under.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// nextInvoiceNo numbers invoices per calendar year: INV-<year>-<seq:04d> with
// seq = invoices already recorded for that year + 1.
func nextInvoiceNo(tx *gorm.DB) (string, int, error) {
	year := time.Now().Year()
	var count int64
	if err := tx.Model(&models.Invoice{}).Where("year = ?", year).Count(&count).Error; err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("INV-%d-%04d", year, count+1), year, nil
}

// checkStock is the pre-flight scan: every line with a product reference must
// fit in that product's current on-hand quantity. A missing product passes
// (the weak reference is tolerated; its decrement will touch zero rows).
func checkStock(tx *gorm.DB, items []ItemInput) error {
	for _, it := range items {
		if it.ProductID == 0 {
			continue
		}
		var p models.Product
		if err := tx.Select("qty", "name").First(&p, it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if p.Qty < it.Qty {
			return &InsufficientStockError{Product: p.Name, Available: p.Qty, Requested: it.Qty}
		}
	}
	return nil
}

func applyItems(tx *gorm.DB, invoiceID uint, items []ItemInput) error {
	for _, it := range items {
		row := models.InvoiceItem{
			InvoiceID: invoiceID,
			ProductID: it.ProductID,
			Item:      it.Item,
			Qty:       it.Qty,
			Price:     it.Price,
			Discount:  it.Discount,
			Tax:       it.Tax,
			Amount:    it.Amount,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if it.ProductID != 0 {
			if err := tx.Model(&models.Product{}).Where("id = ?", it.ProductID).
				UpdateColumn("qty", gorm.Expr("qty - ?", it.Qty)).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// restoreItems re-credits stock for every recorded item of an invoice.
func restoreItems(tx *gorm.DB, invoiceID uint) error {
	var old []models.InvoiceItem
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&old).Error; err != nil {
		return err
	}
	for _, it := range old {
		if it.ProductID == 0 {
			continue
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", it.ProductID).
			UpdateColumn("qty", gorm.Expr("qty + ?", it.Qty)).Error; err != nil {
			return err
		}
	}
	return nil
}

// Create persists a new invoice with its items and decrements stock, all or
// nothing. Date defaults to today when absent.
func (s *InvoiceService) Create(in InvoiceInput) (*models.Invoice, error) {
	if in.Date == "" {
		in.Date = time.Now().Format("2006-01-02")
	}
	var inv models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		no, year, err := nextInvoiceNo(tx)
		if err != nil {
			return err
		}
		if err := checkStock(tx, in.Items); err != nil {
			return err
		}
		inv = models.Invoice{
			InvoiceNo:     no,
			Year:          year,
			CustomerID:    in.CustomerID,
			CustomerName:  in.CustomerName,
			CustomerPhone: in.CustomerPhone,
			Date:          in.Date,
			Total:         in.Total,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		return applyItems(tx, inv.ID, in.Items)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Update replaces the whole item set: old quantities are re-credited first,
// then the new set is validated against the reversed stock and applied. A line
// whose qty only shrinks can therefore never fail validation. The invoice
// number is kept as issued.
func (s *InvoiceService) Update(id uint, in InvoiceInput) error {
	if in.Date == "" {
		in.Date = time.Now().Format("2006-01-02")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := restoreItems(tx, inv.ID); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := checkStock(tx, in.Items); err != nil {
			return err
		}
		if err := applyItems(tx, inv.ID, in.Items); err != nil {
			return err
		}
		return tx.Model(&inv).Updates(map[string]any{
			"customer_id":    in.CustomerID,
			"customer_name":  in.CustomerName,
			"customer_phone": in.CustomerPhone,
			"date":           in.Date,
			"total":          in.Total,
		}).Error
	})
}

// Delete reverses all stock effects and removes header + items. Unconditional;
// returning stock needs no validation. A second delete is ErrNotFound and
// never double-credits.
func (s *InvoiceService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := restoreItems(tx, inv.ID); err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inv).Error
	})
}

// Get loads one invoice with its items.
func (s *InvoiceService) Get(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.Preload("Items").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}
