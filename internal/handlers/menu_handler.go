package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/burgerhouse/storefront/internal/catalog"
	"github.com/burgerhouse/storefront/internal/element"
	"github.com/burgerhouse/storefront/internal/models"
)

// MenuHandler serves the customer-facing menu and storefront info.
type MenuHandler struct {
	catalog *catalog.Catalog
	cfg     element.Service
	logger  *slog.Logger
}

// NewMenuHandler creates a menu handler.
func NewMenuHandler(cat *catalog.Catalog, cfg element.Service, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{catalog: cat, cfg: cfg, logger: logger}
}

// ListMenu handles GET /api/menu?filter=all|burgers|sides|drinks
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	WriteJSON(w, http.StatusOK, h.catalog.List(filter), h.logger)
}

// GetMenuItem handles GET /api/menu/{productId}
func (h *MenuHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, ok := h.catalog.Get(productID)
	if !ok {
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, product, h.logger)
}

// menuOptions lists the customization choices offered on every product.
type menuOptions struct {
	Extras               []models.Extra `json:"extras"`
	RemovableIngredients []string       `json:"removable_ingredients"`
}

// Options handles GET /api/menu/options
func (h *MenuHandler) Options(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, menuOptions{
		Extras:               catalog.Extras,
		RemovableIngredients: catalog.RemovableIngredients,
	}, h.logger)
}

// storefrontInfo is what the ordering client needs to render its chrome.
type storefrontInfo struct {
	RestaurantName string  `json:"restaurant_name"`
	FooterText     string  `json:"footer_text"`
	DeliveryFee    float64 `json:"delivery_fee"`
	RestaurantOpen bool    `json:"restaurant_open"`
	PrimaryColor   string  `json:"primary_color"`
}

// Info handles GET /api/info. Values are read live so a configuration
// change shows up on the next request.
func (h *MenuHandler) Info(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg.Config()
	WriteJSON(w, http.StatusOK, storefrontInfo{
		RestaurantName: cfg.RestaurantName,
		FooterText:     cfg.FooterText,
		DeliveryFee:    cfg.DeliveryFee,
		RestaurantOpen: cfg.RestaurantOpen,
		PrimaryColor:   cfg.PrimaryColor,
	}, h.logger)
}
