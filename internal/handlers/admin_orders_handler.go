package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/burgerhouse/storefront/internal/analytics"
	"github.com/burgerhouse/storefront/internal/element"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/service"
	"github.com/burgerhouse/storefront/internal/store"
)

// AdminOrdersHandler serves the restaurant console's order board.
type AdminOrdersHandler struct {
	orders *service.OrderService
	store  *store.Store
	cfg    element.Service
	logger *slog.Logger
}

// NewAdminOrdersHandler creates an admin orders handler.
func NewAdminOrdersHandler(orders *service.OrderService, st *store.Store, cfg element.Service, logger *slog.Logger) *AdminOrdersHandler {
	return &AdminOrdersHandler{orders: orders, store: st, cfg: cfg, logger: logger}
}

// Board handles GET /api/admin/orders?search=&status=
// Search and the exact status filter apply before the column partition.
func (h *AdminOrdersHandler) Board(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	statusFilter := models.Status(r.URL.Query().Get("status"))
	if statusFilter != "" && !statusFilter.Valid() {
		WriteError(w, http.StatusBadRequest, "Unknown status filter", h.logger)
		return
	}

	board := analytics.Kanban(h.store.Orders(), search, statusFilter)
	WriteJSON(w, http.StatusOK, board, h.logger)
}

// orderDetails augments an order with the actions the board may offer.
type orderDetails struct {
	models.Order
	Subtotal     float64         `json:"subtotal"`
	NextStatuses []models.Status `json:"next_statuses"`
}

// GetOrder handles GET /api/admin/orders/{orderId}
func (h *AdminOrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.store.OrderByID(chi.URLParam(r, "orderId"))
	if !ok {
		WriteError(w, http.StatusNotFound, "Order not found", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, orderDetails{
		Order:        order,
		Subtotal:     order.Subtotal(),
		NextStatuses: models.NextStatuses(order.Status),
	}, h.logger)
}

type statusRequest struct {
	Status models.Status `json:"status"`
}

// UpdateStatus handles POST /api/admin/orders/{orderId}/status. Transitions
// outside the table are rejected no matter what the caller asks for.
func (h *AdminOrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	order, err := h.orders.AdvanceStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			WriteError(w, http.StatusNotFound, "Order not found", h.logger)
		case errors.Is(err, service.ErrUnknownStatus):
			WriteError(w, http.StatusBadRequest, "Unknown order status", h.logger)
		case errors.Is(err, service.ErrInvalidTransition):
			WriteError(w, http.StatusConflict, "Status transition not allowed", h.logger)
		default:
			h.logger.Error("failed to update order status", "order_id", orderID, "error", err)
			WriteError(w, http.StatusBadGateway, "Failed to update order", h.logger)
		}
		return
	}

	WriteJSON(w, http.StatusOK, order, h.logger)
}

// Receipt handles GET /api/admin/orders/{orderId}/receipt, returning the
// plain-text kitchen slip.
func (h *AdminOrdersHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	order, ok := h.store.OrderByID(chi.URLParam(r, "orderId"))
	if !ok {
		WriteError(w, http.StatusNotFound, "Order not found", h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(BuildReceipt(order, h.cfg.Config()))); err != nil {
		h.logger.Error("failed to write receipt", "error", err)
	}
}
