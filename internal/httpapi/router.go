package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", app.registerHandler)
	mux.HandleFunc("POST /api/auth/login", app.loginHandler)

	mux.HandleFunc("GET /api/products", app.listProductsHandler)
	mux.HandleFunc("GET /api/products/{id}", app.getProductHandler)
	mux.HandleFunc("POST /api/products", app.protected(app.createProductHandler))
	mux.HandleFunc("PATCH /api/products/{id}/price", app.protected(app.updateProductPriceHandler))

	mux.HandleFunc("POST /api/orders", app.protected(app.createOrderHandler))
	mux.HandleFunc("GET /api/orders", app.protected(app.listOrdersHandler))
	mux.HandleFunc("GET /api/orders/{id}", app.protected(app.getOrderHandler))
	mux.HandleFunc("PATCH /api/orders/{id}/status", app.protected(app.updateOrderStatusHandler))
	mux.HandleFunc("DELETE /api/orders/{id}", app.protected(app.deleteOrderHandler))

	mux.HandleFunc("POST /api/orders/{id}/items", app.protected(app.addItemHandler))
	mux.HandleFunc("PATCH /api/items/{id}", app.protected(app.updateItemHandler))
	mux.HandleFunc("DELETE /api/items/{id}", app.protected(app.deleteItemHandler))

	mux.HandleFunc("POST /api/orders/{id}/payments", app.protected(app.recordPaymentHandler))
	mux.HandleFunc("PATCH /api/payments/{id}", app.protected(app.updatePaymentHandler))

	mux.HandleFunc("GET /api/orders/{id}/debt", app.protected(app.getDebtHandler))
	mux.HandleFunc("GET /api/debts", app.protected(app.listDebtsHandler))

	mux.HandleFunc("GET /healthz", app.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	return WithRequestID(WithLogging(mux))
}
