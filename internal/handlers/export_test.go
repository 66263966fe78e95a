package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopbill/internal/models"
)

func TestExportProductsCSV(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Create(&models.Product{Name: "Soap", Qty: 20, Price: 25.5, Category: "toiletries"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewExportHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/export/products.csv", nil)
	w := httptest.NewRecorder()
	h.Products(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content-type = %s", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "id,name,qty,price,category,default_tax,default_discount") {
		t.Fatalf("missing header row: %s", body)
	}
	if !strings.Contains(body, "Soap,20,25.50,toiletries") {
		t.Fatalf("missing data row: %s", body)
	}
}

func TestExportInvoicesXLSX(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Create(&models.Invoice{InvoiceNo: "INV-2024-0001", Year: 2024, CustomerName: "Asha", Date: "2024-03-01", Total: 150}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewExportHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/export/invoices.csv?format=xlsx", nil)
	w := httptest.NewRecorder()
	h.Invoices(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("content-type = %s", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("empty workbook body")
	}
}
