package handlers

import (
	"encoding/json"
	"net/http"

	"shopbill/internal/httpx"
	"shopbill/internal/models"
	"shopbill/internal/validation"

	"gorm.io/gorm"
)

type CustomerHandler struct {
	DB *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler { return &CustomerHandler{DB: db} }

// List: GET /api/customers – newest first
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	var customers []models.Customer
	if err := h.DB.Order("id desc").Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

// Add: POST /api/customer/add
func (h *CustomerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c := models.Customer{Name: in.Name, Phone: in.Phone, Address: in.Address}
	if err := h.DB.Create(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "id": c.ID})
}
