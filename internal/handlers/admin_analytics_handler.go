package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/burgerhouse/storefront/internal/analytics"
	"github.com/burgerhouse/storefront/internal/store"
)

// AdminAnalyticsHandler serves the console dashboard figures.
type AdminAnalyticsHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAdminAnalyticsHandler creates an admin analytics handler.
func NewAdminAnalyticsHandler(st *store.Store, logger *slog.Logger) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{store: st, logger: logger}
}

type dashboard struct {
	Today       analytics.TodayMetrics   `json:"today"`
	TopProducts []analytics.ProductSales `json:"top_products"`
	PeakHours   []analytics.HourBucket   `json:"peak_hours"`
	Pending     int                      `json:"pending"`
}

// Dashboard handles GET /api/admin/analytics. All figures are recomputed
// from the current snapshot on every call.
func (h *AdminAnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	orders := h.store.Orders()

	WriteJSON(w, http.StatusOK, dashboard{
		Today:       analytics.Today(orders, time.Now()),
		TopProducts: analytics.TopProducts(orders, 5),
		PeakHours:   analytics.PeakHours(orders),
		Pending:     analytics.PendingCount(orders),
	}, h.logger)
}
