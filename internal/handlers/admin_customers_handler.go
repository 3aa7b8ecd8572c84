package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/burgerhouse/storefront/internal/analytics"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/store"
)

// AdminCustomersHandler serves the customer base views of the console.
type AdminCustomersHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAdminCustomersHandler creates an admin customers handler.
func NewAdminCustomersHandler(st *store.Store, logger *slog.Logger) *AdminCustomersHandler {
	return &AdminCustomersHandler{store: st, logger: logger}
}

// ListCustomers handles GET /api/admin/customers?search=
func (h *AdminCustomersHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	users := h.store.Users()
	if search := r.URL.Query().Get("search"); search != "" {
		users = h.store.SearchUsers(search)
	}

	stats := analytics.Customers(users, h.store.Orders())
	WriteJSON(w, http.StatusOK, stats, h.logger)
}

// customerDetails pairs the lifetime stats with the full order history.
type customerDetails struct {
	analytics.CustomerStats
	OrderHistory []models.Order `json:"order_history"`
}

// GetCustomer handles GET /api/admin/customers/{userId}
func (h *AdminCustomersHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	user, ok := h.store.UserByID(chi.URLParam(r, "userId"))
	if !ok {
		WriteError(w, http.StatusNotFound, "Customer not found", h.logger)
		return
	}

	orders := h.store.Orders()
	stats := analytics.Customers([]models.User{user}, orders)

	WriteJSON(w, http.StatusOK, customerDetails{
		CustomerStats: stats[0],
		OrderHistory:  h.store.OrdersByUser(user.ID),
	}, h.logger)
}

// ExportCustomers handles GET /api/admin/customers/export, streaming the
// customer base as CSV with the column set the console expects.
func (h *AdminCustomersHandler) ExportCustomers(w http.ResponseWriter, r *http.Request) {
	stats := analytics.Customers(h.store.Users(), h.store.Orders())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="clientes.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Nome", "Email", "Telefone", "Pedidos", "Total Gasto", "Último Pedido"}); err != nil {
		h.logger.Error("failed to write csv header", "error", err)
		return
	}
	for _, s := range stats {
		lastOrder := "-"
		if !s.LastOrder.IsZero() {
			lastOrder = s.LastOrder.Local().Format("02/01/2006")
		}
		row := []string{
			s.User.Name,
			s.User.Email,
			s.User.Phone,
			fmt.Sprintf("%d", s.Orders),
			fmt.Sprintf("%.2f", s.TotalSpent),
			lastOrder,
		}
		if err := cw.Write(row); err != nil {
			h.logger.Error("failed to write csv row", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("failed to flush csv", "error", err)
	}
}
