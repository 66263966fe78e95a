package handlers

import (
	"encoding/json"
	"net/http"

	"shopbill/internal/httpx"
	"shopbill/internal/models"
	"shopbill/internal/validation"

	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

type productInput struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Qty             int     `json:"qty"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	DefaultTax      float64 `json:"default_tax"`
	DefaultDiscount float64 `json:"default_discount"`
}

func (in *productInput) validate(requireID bool) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.NonNegativeInt("qty", in.Qty, v)
	validation.NonNegativeFloat("price", in.Price, v)
	validation.NonNegativeFloat("default_tax", in.DefaultTax, v)
	validation.NonNegativeFloat("default_discount", in.DefaultDiscount, v)
	if requireID && in.ID == 0 {
		v["id"] = "required"
	}
	return v
}

// List: GET /api/products – newest first
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if err := h.DB.Order("id desc").Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

// Add: POST /api/product/add
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(false); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Product{
		Name:            in.Name,
		Qty:             in.Qty,
		Price:           in.Price,
		Category:        in.Category,
		DefaultTax:      in.DefaultTax,
		DefaultDiscount: in.DefaultDiscount,
	}
	if err := h.DB.Create(&p).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "product_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "id": p.ID})
}

// Edit: POST /api/product/edit – full-row replace keyed by id
func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(true); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var p models.Product
	if err := h.DB.First(&p, in.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	p.Name = in.Name
	p.Qty = in.Qty
	p.Price = in.Price
	p.Category = in.Category
	p.DefaultTax = in.DefaultTax
	p.DefaultDiscount = in.DefaultDiscount
	if err := h.DB.Save(&p).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete: POST /api/product/delete – no cascade check; invoice items keep
// their snapshot and a dangling product id.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.Product{}, in.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}
