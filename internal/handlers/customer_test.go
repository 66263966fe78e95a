package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopbill/internal/models"
)

func TestCustomerAddAndList(t *testing.T) {
	db := setupTestDB(t)
	h := NewCustomerHandler(db)

	add := httptest.NewRequest(http.MethodPost, "/api/customer/add",
		strings.NewReader(`{"name":"Asha","phone":"9876543210","address":"12 Market Rd"}`))
	add.Header.Set("Content-Type", "application/json")
	addW := httptest.NewRecorder()
	h.Add(addW, add)
	if addW.Code != http.StatusOK {
		t.Fatalf("add expected 200 got %d body=%s", addW.Code, addW.Body.String())
	}

	list := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	listW := httptest.NewRecorder()
	h.List(listW, list)
	var customers []models.Customer
	if err := json.Unmarshal(listW.Body.Bytes(), &customers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(customers) != 1 || customers[0].Phone != "9876543210" {
		t.Fatalf("unexpected customers: %+v", customers)
	}
}

func TestCustomerAddRequiresName(t *testing.T) {
	db := setupTestDB(t)
	h := NewCustomerHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/customer/add", strings.NewReader(`{"phone":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Add(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
