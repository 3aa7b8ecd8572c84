package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/service"
	"github.com/burgerhouse/storefront/internal/store"
)

// AdminProductsHandler manages the mutable product records from the console.
type AdminProductsHandler struct {
	products *service.ProductService
	store    *store.Store
	logger   *slog.Logger
}

// NewAdminProductsHandler creates an admin products handler.
func NewAdminProductsHandler(products *service.ProductService, st *store.Store, logger *slog.Logger) *AdminProductsHandler {
	return &AdminProductsHandler{products: products, store: st, logger: logger}
}

// ListProducts handles GET /api/admin/products?category=
func (h *AdminProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	if category != "" && category != "all" && !models.ValidCategory(category) {
		WriteError(w, http.StatusBadRequest, "Unknown category", h.logger)
		return
	}

	var products []models.Product
	if category == "" || category == "all" {
		products = h.store.Products()
	} else {
		products = h.store.ProductsByCategory(category)
	}
	if products == nil {
		products = []models.Product{}
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// CreateProduct handles POST /api/admin/products
func (h *AdminProductsHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.products.Create(r.Context(), in)
	if err != nil {
		h.writeProductError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, product, h.logger)
}

// UpdateProduct handles PUT /api/admin/products/{productId}
func (h *AdminProductsHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.products.Update(r.Context(), chi.URLParam(r, "productId"), in)
	if err != nil {
		h.writeProductError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// ToggleProduct handles POST /api/admin/products/{productId}/toggle
func (h *AdminProductsHandler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.ToggleAvailability(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeProductError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

func (h *AdminProductsHandler) writeProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Invalid product fields", h.logger)
	case errors.Is(err, service.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
	default:
		h.logger.Error("product operation failed", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to save product", h.logger)
	}
}
