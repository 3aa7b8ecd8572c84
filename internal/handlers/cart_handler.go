package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/burgerhouse/storefront/internal/cart"
	"github.com/burgerhouse/storefront/internal/catalog"
	"github.com/burgerhouse/storefront/internal/element"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/session"
)

// CartHandler manages the session cart.
type CartHandler struct {
	sessions *session.Manager
	catalog  *catalog.Catalog
	cfg      element.Service
	logger   *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(sessions *session.Manager, cat *catalog.Catalog, cfg element.Service, logger *slog.Logger) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: cat, cfg: cfg, logger: logger}
}

// cartView is the rendered cart plus its totals for a delivery mode.
type cartView struct {
	Lines     []cartLineView `json:"lines"`
	ItemCount int            `json:"item_count"`
	Totals    cart.Totals    `json:"totals"`
}

type cartLineView struct {
	cart.Line
	DisplayName string  `json:"display_name"`
	LineTotal   float64 `json:"line_total"`
}

func (h *CartHandler) view(c *cart.Cart, mode models.DeliveryType) cartView {
	lines := c.Lines()
	view := cartView{
		Lines:     make([]cartLineView, 0, len(lines)),
		ItemCount: c.ItemCount(),
		Totals:    c.Totals(mode, h.cfg.Config().DeliveryFee),
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, cartLineView{
			Line:        l,
			DisplayName: l.DisplayName(),
			LineTotal:   l.Total(),
		})
	}
	return view
}

func deliveryMode(r *http.Request) models.DeliveryType {
	if r.URL.Query().Get("delivery_type") == string(models.DeliveryTypePickup) {
		return models.DeliveryTypePickup
	}
	return models.DeliveryTypeDelivery
}

// GetCart handles GET /api/cart?delivery_type=delivery|pickup
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(w, r, h.sessions)
	mode := deliveryMode(r)

	var view cartView
	_ = sess.WithCart(func(c *cart.Cart) error {
		view = h.view(c, mode)
		return nil
	})
	WriteJSON(w, http.StatusOK, view, h.logger)
}

// addItemRequest adds one customized product to the cart. Extras are named;
// prices always come from the catalog.
type addItemRequest struct {
	ProductID          string   `json:"product_id"`
	Quantity           int      `json:"quantity"`
	Extras             []string `json:"extras"`
	RemovedIngredients []string `json:"removed_ingredients"`
	Observations       string   `json:"observations"`
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}

	extras := make([]models.Extra, 0, len(req.Extras))
	for _, name := range req.Extras {
		extra, ok := catalog.ExtraByName(name)
		if !ok {
			WriteError(w, http.StatusBadRequest, "Unknown extra: "+name, h.logger)
			return
		}
		extras = append(extras, extra)
	}

	sess := ensureSession(w, r, h.sessions)
	mode := deliveryMode(r)

	var view cartView
	err := sess.WithCart(func(c *cart.Cart) error {
		if _, err := c.AddLine(product, req.Quantity, extras, req.RemovedIngredients, req.Observations); err != nil {
			return err
		}
		view = h.view(c, mode)
		return nil
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.logger)
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.logger)
}

// updateItemRequest changes a line's quantity by delta; zero or below
// removes the line. The key carries the full customization identity, so it
// travels in the body rather than the URL.
type updateItemRequest struct {
	Key   string `json:"key"`
	Delta int    `json:"delta"`
}

// UpdateItem handles POST /api/cart/items/update
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	sess := ensureSession(w, r, h.sessions)
	mode := deliveryMode(r)

	var view cartView
	err := sess.WithCart(func(c *cart.Cart) error {
		if err := c.UpdateQuantity(req.Key, req.Delta); err != nil {
			return err
		}
		view = h.view(c, mode)
		return nil
	})
	if err != nil {
		WriteError(w, http.StatusNotFound, "Cart line not found", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.logger)
}

// removeItemRequest drops one line.
type removeItemRequest struct {
	Key string `json:"key"`
}

// RemoveItem handles POST /api/cart/items/remove
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	sess := ensureSession(w, r, h.sessions)
	mode := deliveryMode(r)

	var view cartView
	err := sess.WithCart(func(c *cart.Cart) error {
		if err := c.RemoveLine(req.Key); err != nil {
			return err
		}
		view = h.view(c, mode)
		return nil
	})
	if err != nil {
		WriteError(w, http.StatusNotFound, "Cart line not found", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.logger)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(w, r, h.sessions)

	var view cartView
	_ = sess.WithCart(func(c *cart.Cart) error {
		c.Clear()
		view = h.view(c, deliveryMode(r))
		return nil
	})
	WriteJSON(w, http.StatusOK, view, h.logger)
}
