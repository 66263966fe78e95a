package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopbill/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Customer{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func TestHealthEndpoints(t *testing.T) {
	h := setupRouter(t)

	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s expected 200 got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"ok"`) {
			t.Fatalf("%s body: %s", path, w.Body.String())
		}
	}
}

func TestIndexPageRenders(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Shopbill") {
		t.Fatal("index page missing title")
	}
}

func TestMethodNotAllowedOnAPIRoutes(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/products", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}
}

func TestEndToEndInvoiceFlow(t *testing.T) {
	h := setupRouter(t)

	add := httptest.NewRequest(http.MethodPost, "/api/product/add",
		strings.NewReader(`{"name":"Rice","qty":50,"price":60}`))
	add.Header.Set("Content-Type", "application/json")
	addW := httptest.NewRecorder()
	h.ServeHTTP(addW, add)
	if addW.Code != http.StatusOK {
		t.Fatalf("product add got %d", addW.Code)
	}

	save := httptest.NewRequest(http.MethodPost, "/api/invoice/save",
		strings.NewReader(`{"customer":"Asha","total":120,"items":[{"product_id":1,"item":"Rice","qty":2,"price":60,"amount":120}]}`))
	save.Header.Set("Content-Type", "application/json")
	saveW := httptest.NewRecorder()
	h.ServeHTTP(saveW, save)
	if saveW.Code != http.StatusOK {
		t.Fatalf("invoice save got %d body=%s", saveW.Code, saveW.Body.String())
	}

	list := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	listW := httptest.NewRecorder()
	h.ServeHTTP(listW, list)
	if !strings.Contains(listW.Body.String(), `"qty":48`) {
		t.Fatalf("stock not decremented: %s", listW.Body.String())
	}

	csv := httptest.NewRequest(http.MethodGet, "/export/invoices.csv", nil)
	csvW := httptest.NewRecorder()
	h.ServeHTTP(csvW, csv)
	if csvW.Code != http.StatusOK || !strings.Contains(csvW.Body.String(), "Asha") {
		t.Fatalf("invoice export: code=%d body=%s", csvW.Code, csvW.Body.String())
	}
}
