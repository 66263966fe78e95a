package handlers

import (
	"net/http"
	"strconv"

	"shopbill/internal/export"
	"shopbill/internal/models"

	"gorm.io/gorm"
)

type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler { return &ExportHandler{DB: db} }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

// Products: GET /export/products.csv (?format=xlsx for Excel)
func (h *ExportHandler) Products(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := h.DB.Order("id").Find(&products).Error; err != nil {
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}
	headers := []string{"id", "name", "qty", "price", "category", "default_tax", "default_discount"}
	data := make([][]string, 0, len(products))
	for _, p := range products {
		data = append(data, []string{
			strconv.Itoa(int(p.ID)), p.Name, strconv.Itoa(p.Qty), ftoa(p.Price),
			p.Category, ftoa(p.DefaultTax), ftoa(p.DefaultDiscount),
		})
	}
	if r.URL.Query().Get("format") == "xlsx" {
		export.Excel(w, "Products", headers, data)
		return
	}
	export.CSV(w, "products.csv", headers, data)
}

// Invoices: GET /export/invoices.csv (?format=xlsx for Excel)
func (h *ExportHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	var invs []models.Invoice
	if err := h.DB.Order("id").Find(&invs).Error; err != nil {
		http.Error(w, "failed to load invoices", http.StatusInternalServerError)
		return
	}
	headers := []string{"id", "invoice_no", "customer_name", "customer_phone", "date", "total"}
	data := make([][]string, 0, len(invs))
	for _, inv := range invs {
		data = append(data, []string{
			strconv.Itoa(int(inv.ID)), inv.InvoiceNo, inv.CustomerName,
			inv.CustomerPhone, inv.Date, ftoa(inv.Total),
		})
	}
	if r.URL.Query().Get("format") == "xlsx" {
		export.Excel(w, "Invoices", headers, data)
		return
	}
	export.CSV(w, "invoices.csv", headers, data)
}
