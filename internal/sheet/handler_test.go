package sheet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func stockMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	NewHandler(tempStore(t)).Register(mux)
	return mux
}

func TestStockSaveListDelete(t *testing.T) {
	mux := stockMux(t)

	save := httptest.NewRequest(http.MethodPost, "/api/stock/save",
		strings.NewReader(`{"name":"Soap","qty":10,"price":25.5,"category":"toiletries"}`))
	save.Header.Set("Content-Type", "application/json")
	saveW := httptest.NewRecorder()
	mux.ServeHTTP(saveW, save)
	if saveW.Code != http.StatusOK {
		t.Fatalf("save expected 200 got %d body=%s", saveW.Code, saveW.Body.String())
	}
	var saved map[string]any
	if err := json.Unmarshal(saveW.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved["id"] != "P0001" {
		t.Fatalf("assigned id = %v", saved["id"])
	}

	list := httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	listW := httptest.NewRecorder()
	mux.ServeHTTP(listW, list)
	var records []Record
	if err := json.Unmarshal(listW.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Soap" {
		t.Fatalf("unexpected records: %+v", records)
	}

	del := httptest.NewRequest(http.MethodPost, "/api/stock/delete", strings.NewReader(`{"id":"P0001"}`))
	del.Header.Set("Content-Type", "application/json")
	delW := httptest.NewRecorder()
	mux.ServeHTTP(delW, del)
	if delW.Code != http.StatusOK {
		t.Fatalf("delete expected 200 got %d", delW.Code)
	}

	again := httptest.NewRequest(http.MethodPost, "/api/stock/delete", strings.NewReader(`{"id":"P0001"}`))
	again.Header.Set("Content-Type", "application/json")
	againW := httptest.NewRecorder()
	mux.ServeHTTP(againW, again)
	if againW.Code != http.StatusNotFound {
		t.Fatalf("second delete expected 404 got %d", againW.Code)
	}
}

func TestStockSaveValidation(t *testing.T) {
	mux := stockMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/stock/save",
		strings.NewReader(`{"name":"","qty":-2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestStockExportCSV(t *testing.T) {
	mux := stockMux(t)

	save := httptest.NewRequest(http.MethodPost, "/api/stock/save",
		strings.NewReader(`{"name":"Soap","qty":10,"price":25.5}`))
	save.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(httptest.NewRecorder(), save)

	req := httptest.NewRequest(http.MethodGet, "/export/stock.csv", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "id,name,qty,price,category") || !strings.Contains(body, "P0001,Soap,10,25.50") {
		t.Fatalf("unexpected csv: %s", body)
	}
}
