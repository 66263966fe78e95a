package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"shopbill/internal/httpx"
	"shopbill/internal/models"
	"shopbill/internal/pdf"
	"shopbill/internal/services"
	"shopbill/internal/validation"
	"shopbill/internal/view"

	"gorm.io/gorm"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func validateInvoiceInput(in *services.InvoiceInput) validation.Violations {
	v := validation.Violations{}
	for i, it := range in.Items {
		if it.Qty <= 0 {
			v["items["+strconv.Itoa(i)+"].qty"] = "must_be_positive"
		}
		if it.ProductID == 0 {
			validation.Required("items["+strconv.Itoa(i)+"].item", it.Item, v)
		}
	}
	validation.NonNegativeFloat("total", in.Total, v)
	return v
}

// List: GET /api/invoices – headers only, newest first
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var invs []models.Invoice
	if err := h.DB.Order("id desc").Find(&invs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invs)
}

// Detail: GET /api/invoice/{id}
func (h *InvoiceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "items": inv.Items})
}

// Save: POST /api/invoice/save – create with stock reconciliation
func (h *InvoiceHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in services.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateInvoiceInput(&in); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	inv, err := h.Svc.Create(in)
	if err != nil {
		var ise *services.InsufficientStockError
		if errors.As(err, &ise) {
			httpx.JSONError(w, http.StatusBadRequest, ise.Error(), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "id": inv.ID, "invoice_no": inv.InvoiceNo})
}

// Update: POST /api/invoice/update/{id} – reverse, revalidate, reapply
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in services.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := validateInvoiceInput(&in); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Svc.Update(id, in); err != nil {
		var ise *services.InsufficientStockError
		switch {
		case errors.As(err, &ise):
			httpx.JSONError(w, http.StatusBadRequest, ise.Error(), nil)
		case errors.Is(err, services.ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete: POST /api/invoice/delete/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Print: GET /invoice/{id}/print – HTML print view rendered from snapshots
func (h *InvoiceHandler) Print(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Invoice not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load invoice", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Render(w, "print.html", map[string]any{"Invoice": inv, "Items": inv.Items}); err != nil {
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

// PDF: GET /invoice/{id}/pdf
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	data, genErr := pdf.InvoicePDF(inv)
	if genErr != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"invoice_"+inv.InvoiceNo+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
