package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/auth"
	"github.com/hamisi99-03/BusinessWebsite/internal/models"
	"github.com/hamisi99-03/BusinessWebsite/internal/service"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

// App holds the dependencies of the HTTP layer. Every mutation goes through
// the OrderService; handlers never touch stock or debts directly.
type App struct {
	Orders *service.OrderService
	Store  storage.Store
	Auth   auth.Authenticator
	JWT    *auth.JWTManager
}

// NewApp creates the HTTP application.
func NewApp(orders *service.OrderService, store storage.Store, authenticator auth.Authenticator, jwt *auth.JWTManager) *App {
	return &App{Orders: orders, Store: store, Auth: authenticator, JWT: jwt}
}

// protected wraps a handler with JWT authentication.
func (a *App) protected(next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(a.JWT, next)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func parseAmount(w http.ResponseWriter, raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "invalid amount: "+raw)
		return decimal.Zero, false
	}
	return amount, true
}

// --- Responses ---

type customerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token    string           `json:"token"`
	Customer customerResponse `json:"customer"`
}

type productResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
}

type itemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type paymentResponse struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type orderResponse struct {
	ID                 string            `json:"id"`
	CustomerID         string            `json:"customer_id"`
	Status             string            `json:"status"`
	CreatedAt          int64             `json:"created_at"`
	ShippedAt          int64             `json:"shipped_at,omitempty"`
	Items              []itemResponse    `json:"items,omitempty"`
	Payments           []paymentResponse `json:"payments,omitempty"`
	TotalAmount        string            `json:"total_amount"`
	TotalPaid          string            `json:"total_paid"`
	OutstandingBalance string            `json:"outstanding_balance"`
}

type debtResponse struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	Balance    string `json:"balance"`
	IsPaid     bool   `json:"is_paid"`
	PaidAt     int64  `json:"paid_at,omitempty"`
	DueDate    int64  `json:"due_date"`
}

func toProductResponse(p *models.Product) productResponse {
	return productResponse{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price.String(), Stock: p.Stock}
}

func toItemResponse(i models.OrderItem) itemResponse {
	return itemResponse{
		ID:        i.ID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice.String(),
		LineTotal: i.LineTotal().String(),
	}
}

func toPaymentResponse(p models.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount.String(),
		Method:    string(p.Method),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func toOrderResponse(s *service.OrderSummary) orderResponse {
	resp := orderResponse{
		ID:                 s.Order.ID,
		CustomerID:         s.Order.CustomerID,
		Status:             string(s.Order.Status),
		CreatedAt:          s.Order.CreatedAt,
		ShippedAt:          s.Order.ShippedAt,
		TotalAmount:        s.TotalAmount.String(),
		TotalPaid:          s.TotalPaid.String(),
		OutstandingBalance: s.OutstandingBalance.String(),
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	for _, payment := range s.Payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(payment))
	}
	return resp
}

func toDebtResponse(d *models.Debt) debtResponse {
	return debtResponse{
		OrderID:    d.OrderID,
		CustomerID: d.CustomerID,
		Balance:    d.Balance.String(),
		IsPaid:     d.IsPaid,
		PaidAt:     d.PaidAt,
		DueDate:    d.DueDate,
	}
}

// --- Auth ---

func (a *App) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "email is required")
		return
	}

	customer, err := a.Auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	token, err := a.JWT.Generate(customer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token:    token,
		Customer: customerResponse{ID: customer.ID, Email: customer.Email, Name: customer.Name},
	})
}

func (a *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := a.Auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	token, err := a.JWT.Generate(customer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:    token,
		Customer: customerResponse{ID: customer.ID, Email: customer.Email, Name: customer.Name},
	})
}

// --- Products ---

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := a.Store.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := a.Store.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       string `json:"price"`
		Stock       int    `json:"stock"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	if req.Stock < 0 {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "stock must be >= 0")
		return
	}
	price, ok := parseAmount(w, req.Price)
	if !ok {
		return
	}
	if price.IsNegative() {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "price must be >= 0")
		return
	}

	product := &models.Product{Name: req.Name, Description: req.Description, Price: price, Stock: req.Stock}
	if err := a.Store.CreateProduct(r.Context(), product); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (a *App) updateProductPriceHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price string `json:"price"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	price, ok := parseAmount(w, req.Price)
	if !ok {
		return
	}
	if price.IsNegative() {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "price must be >= 0")
		return
	}

	id := r.PathValue("id")
	if err := a.Store.UpdateProductPrice(r.Context(), id, price); err != nil {
		writeServiceError(w, err)
		return
	}
	product, err := a.Store.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// --- Orders ---

func (a *App) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := a.Orders.CreateOrder(r.Context(), CustomerIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	summary, err := a.Orders.GetOrderSummary(r.Context(), order.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(summary))
}

func (a *App) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := a.Orders.ListOrders(r.Context(), CustomerIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		summary, err := a.Orders.GetOrderSummary(r.Context(), order.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp = append(resp, toOrderResponse(summary))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Orders.GetOrderSummary(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(summary))
}

func (a *App) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := a.Orders.UpdateOrderStatus(r.Context(), r.PathValue("id"), models.OrderStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	summary, err := a.Orders.GetOrderSummary(r.Context(), order.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(summary))
}

func (a *App) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Orders.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Items ---

func (a *App) addItemHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := a.Orders.AddItem(r.Context(), r.PathValue("id"), req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(*item))
}

func (a *App) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := a.Orders.UpdateItemQuantity(r.Context(), r.PathValue("id"), req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (a *App) deleteItemHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Orders.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Payments ---

func (a *App) recordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount string `json:"amount"`
		Method string `json:"method"`
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	if req.Status == "" {
		req.Status = string(models.PaymentPending)
	}

	payment, err := a.Orders.RecordPayment(r.Context(), r.PathValue("id"), amount,
		models.PaymentMethod(req.Method), models.PaymentStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(*payment))
}

func (a *App) updatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount string `json:"amount"`
		Method string `json:"method"`
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}

	payment, err := a.Orders.UpdatePayment(r.Context(), r.PathValue("id"), amount,
		models.PaymentMethod(req.Method), models.PaymentStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentResponse(*payment))
}

// --- Debts ---

func (a *App) getDebtHandler(w http.ResponseWriter, r *http.Request) {
	debt, err := a.Orders.DebtStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtResponse(debt))
}

func (a *App) listDebtsHandler(w http.ResponseWriter, r *http.Request) {
	debts, err := a.Orders.ListCustomerDebts(r.Context(), CustomerIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]debtResponse, 0, len(debts))
	for _, debt := range debts {
		resp = append(resp, toDebtResponse(debt))
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Health ---

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
