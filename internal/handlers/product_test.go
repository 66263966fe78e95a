package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopbill/internal/models"
)

func TestProductAddListEditDelete(t *testing.T) {
	db := setupTestDB(t)
	h := NewProductHandler(db)

	add := httptest.NewRequest(http.MethodPost, "/api/product/add",
		strings.NewReader(`{"name":"Soap","qty":20,"price":25.5,"category":"toiletries","default_tax":5,"default_discount":0}`))
	add.Header.Set("Content-Type", "application/json")
	addW := httptest.NewRecorder()
	h.Add(addW, add)
	if addW.Code != http.StatusOK {
		t.Fatalf("add expected 200 got %d body=%s", addW.Code, addW.Body.String())
	}

	list := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	listW := httptest.NewRecorder()
	h.List(listW, list)
	var products []models.Product
	if err := json.Unmarshal(listW.Body.Bytes(), &products); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Soap" || products[0].Qty != 20 {
		t.Fatalf("unexpected list: %+v", products)
	}
	id := products[0].ID

	edit := httptest.NewRequest(http.MethodPost, "/api/product/edit",
		strings.NewReader(`{"id":1,"name":"Soap Bar","qty":15,"price":30,"category":"toiletries"}`))
	edit.Header.Set("Content-Type", "application/json")
	editW := httptest.NewRecorder()
	h.Edit(editW, edit)
	if editW.Code != http.StatusOK {
		t.Fatalf("edit expected 200 got %d", editW.Code)
	}
	var p models.Product
	db.First(&p, id)
	if p.Name != "Soap Bar" || p.Qty != 15 || p.Price != 30 {
		t.Fatalf("edit not applied: %+v", p)
	}

	del := httptest.NewRequest(http.MethodPost, "/api/product/delete", strings.NewReader(`{"id":1}`))
	del.Header.Set("Content-Type", "application/json")
	delW := httptest.NewRecorder()
	h.Delete(delW, del)
	if delW.Code != http.StatusOK {
		t.Fatalf("delete expected 200 got %d", delW.Code)
	}
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("product not deleted, count=%d", count)
	}
}

func TestProductAddValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewProductHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/product/add",
		strings.NewReader(`{"name":"","qty":-1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Add(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Details["name"] != "required" || resp.Details["qty"] == "" {
		t.Fatalf("unexpected violations: %+v", resp.Details)
	}
}

func TestProductEditNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := NewProductHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/product/edit",
		strings.NewReader(`{"id":99,"name":"Ghost","qty":1,"price":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Edit(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
