package handlers

import (
	"net/http"

	"shopbill/internal/httpx"

	"gorm.io/gorm"
)

type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler { return &ReportHandler{DB: db} }

type periodTotal struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}

// SalesSummary: GET /api/reports/sales_summary?period=day|month
// Dates are stored as YYYY-MM-DD strings, so substr(date,1,7) yields the
// month bucket on both SQLite and Postgres.
func (h *ReportHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	var rows []periodTotal
	var err error
	if period == "month" {
		err = h.DB.Raw(
			"SELECT substr(date, 1, 7) AS period, SUM(total) AS total FROM invoices GROUP BY period ORDER BY period DESC",
		).Scan(&rows).Error
	} else {
		err = h.DB.Raw(
			"SELECT date AS period, SUM(total) AS total FROM invoices GROUP BY date ORDER BY date DESC",
		).Scan(&rows).Error
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_report", nil)
		return
	}
	if rows == nil {
		rows = []periodTotal{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

type topProduct struct {
	Item    string  `json:"item"`
	SoldQty int     `json:"sold_qty"`
	Revenue float64 `json:"revenue"`
}

// TopProducts: GET /api/reports/top_products – top 20 line items by qty sold.
// Grouped by the snapshot name so free-text lines and deleted products still
// report correctly.
func (h *ReportHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	var rows []topProduct
	if err := h.DB.Raw(
		"SELECT item, SUM(qty) AS sold_qty, SUM(amount) AS revenue FROM invoice_items GROUP BY item ORDER BY sold_qty DESC LIMIT 20",
	).Scan(&rows).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_report", nil)
		return
	}
	if rows == nil {
		rows = []topProduct{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}
