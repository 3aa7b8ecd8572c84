package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/burgerhouse/storefront/internal/cart"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/service"
	"github.com/burgerhouse/storefront/internal/session"
	"github.com/burgerhouse/storefront/internal/store"
)

// OrderHandler handles customer checkout and order history.
type OrderHandler struct {
	orders   *service.OrderService
	sessions *session.Manager
	store    *store.Store
	logger   *slog.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(orders *service.OrderService, sessions *session.Manager, st *store.Store, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, sessions: sessions, store: st, logger: logger}
}

// checkoutRequest finalizes the session cart. For delivery, AddressID must
// reference one of the customer's saved addresses.
type checkoutRequest struct {
	DeliveryType models.DeliveryType `json:"delivery_type"`
	AddressID    string              `json:"address_id"`
}

// Checkout handles POST /api/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	sess := ensureSession(w, r, h.sessions)
	user, loggedIn := sess.User()
	if !loggedIn {
		WriteError(w, http.StatusUnauthorized, "Login required to place an order", h.logger)
		return
	}

	var address string
	if req.DeliveryType == models.DeliveryTypeDelivery {
		if req.AddressID == "" {
			WriteError(w, http.StatusBadRequest, "Select a delivery address", h.logger)
			return
		}
		addr, ok := h.store.AddressByID(req.AddressID)
		if !ok || addr.UserID != user.ID {
			WriteError(w, http.StatusBadRequest, "Select a delivery address", h.logger)
			return
		}
		address = addr.Details
	}

	var order *models.Order
	err := sess.WithCart(func(c *cart.Cart) error {
		placed, err := h.orders.PlaceOrder(r.Context(), c, user, req.DeliveryType, address)
		if err != nil {
			return err
		}
		order = placed
		return nil
	})
	if err != nil {
		h.logger.Warn("checkout failed", "user_id", user.ID, "error", err)
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "Add items to the cart first", h.logger)
		case errors.Is(err, service.ErrNoAddress):
			WriteError(w, http.StatusBadRequest, "Select a delivery address", h.logger)
		case errors.Is(err, service.ErrInvalidDelivery):
			WriteError(w, http.StatusBadRequest, "Unknown delivery type", h.logger)
		case errors.Is(err, service.ErrNotAuthenticated):
			WriteError(w, http.StatusUnauthorized, "Login required to place an order", h.logger)
		default:
			WriteError(w, http.StatusBadGateway, "Failed to place order", h.logger)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, order, h.logger)
}

// ListOrders handles GET /api/orders, the customer's own order history.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(w, r, h.sessions)
	user, ok := sess.User()
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Login required to view orders", h.logger)
		return
	}

	orders := h.orders.OrdersForUser(user.ID)
	if orders == nil {
		orders = []models.Order{}
	}
	WriteJSON(w, http.StatusOK, orders, h.logger)
}
