package sheet

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shopbill/internal/export"
	"shopbill/internal/httpx"
	"shopbill/internal/validation"
	"shopbill/internal/view"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler { return &Handler{Store: store} }

// Register wires the stock routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/stock", h.List)
	mux.HandleFunc("POST /api/stock/save", h.Save)
	mux.HandleFunc("POST /api/stock/delete", h.Delete)
	mux.HandleFunc("GET /export/stock.csv", h.Export)
	mux.HandleFunc("GET /{$}", h.Index)
}

func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Render(w, "stock.html", nil); err != nil {
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	records, err := h.Store.List()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_stock", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

// Save inserts or updates; empty id means assign the next P-sequence id.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var rec Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", rec.Name, v)
	validation.NonNegativeInt("qty", rec.Qty, v)
	validation.NonNegativeFloat("price", rec.Price, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	saved, err := h.Store.Put(rec)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_record", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "id": saved.ID})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.Delete(in.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_record", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Export: GET /export/stock.csv (?format=xlsx for an Excel copy)
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.List()
	if err != nil {
		http.Error(w, "failed to load stock", http.StatusInternalServerError)
		return
	}
	headers := []string{"id", "name", "qty", "price", "category"}
	data := make([][]string, 0, len(records))
	for _, rec := range records {
		data = append(data, []string{
			rec.ID, rec.Name, strconv.Itoa(rec.Qty),
			strconv.FormatFloat(rec.Price, 'f', 2, 64), rec.Category,
		})
	}
	if r.URL.Query().Get("format") == "xlsx" {
		export.Excel(w, "Stock", headers, data)
		return
	}
	export.CSV(w, "stock.csv", headers, data)
}
