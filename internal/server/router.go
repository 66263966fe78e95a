package server

import (
	"net/http"

	"shopbill/internal/handlers"
	"shopbill/internal/httpx"
	"shopbill/internal/services"
	"shopbill/internal/view"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Products
	ph := handlers.NewProductHandler(db)
	mux.HandleFunc("GET /api/products", ph.List)
	mux.HandleFunc("POST /api/product/add", ph.Add)
	mux.HandleFunc("POST /api/product/edit", ph.Edit)
	mux.HandleFunc("POST /api/product/delete", ph.Delete)

	// Customers
	ch := handlers.NewCustomerHandler(db)
	mux.HandleFunc("GET /api/customers", ch.List)
	mux.HandleFunc("POST /api/customer/add", ch.Add)

	// Invoices
	svc := services.NewInvoiceService(db)
	ih := handlers.NewInvoiceHandler(db, svc)
	mux.HandleFunc("GET /api/invoices", ih.List)
	mux.HandleFunc("GET /api/invoice/{id}", ih.Detail)
	mux.HandleFunc("POST /api/invoice/save", ih.Save)
	mux.HandleFunc("POST /api/invoice/update/{id}", ih.Update)
	mux.HandleFunc("POST /api/invoice/delete/{id}", ih.Delete)
	mux.HandleFunc("GET /invoice/{id}/print", ih.Print)
	mux.HandleFunc("GET /invoice/{id}/pdf", ih.PDF)

	// Reports
	rh := handlers.NewReportHandler(db)
	mux.HandleFunc("GET /api/reports/sales_summary", rh.SalesSummary)
	mux.HandleFunc("GET /api/reports/top_products", rh.TopProducts)

	// Exports
	eh := handlers.NewExportHandler(db)
	mux.HandleFunc("GET /export/products.csv", eh.Products)
	mux.HandleFunc("GET /export/invoices.csv", eh.Invoices)

	// UI
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := view.Render(w, "index.html", nil); err != nil {
			http.Error(w, "template render error", http.StatusInternalServerError)
		}
	})

	return Recover(Logging(mux))
}
