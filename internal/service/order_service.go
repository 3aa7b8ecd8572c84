package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/burgerhouse/storefront/internal/cart"
	"github.com/burgerhouse/storefront/internal/datasync"
	"github.com/burgerhouse/storefront/internal/element"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/store"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNotAuthenticated  = errors.New("no authenticated customer")
	ErrNoAddress         = errors.New("no delivery address selected")
	ErrInvalidDelivery   = errors.New("unknown delivery type")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// OrderService freezes carts into orders and advances order statuses.
// All writes are persist-first: local state only changes after the data
// service acknowledges.
type OrderService struct {
	data  datasync.Service
	store *store.Store
	cfg   element.Service
	log   *slog.Logger
}

// NewOrderService creates an order service.
func NewOrderService(data datasync.Service, st *store.Store, cfg element.Service, log *slog.Logger) *OrderService {
	return &OrderService{data: data, store: st, cfg: cfg, log: log}
}

// PlaceOrder validates the checkout, freezes the cart into an order at the
// first lifecycle status and persists it. The cart is cleared only after
// the data service acks. The delivery fee is read from the live
// configuration at this moment, never cached.
func (s *OrderService) PlaceOrder(ctx context.Context, c *cart.Cart, customer models.User, mode models.DeliveryType, address string) (*models.Order, error) {
	if c == nil || c.Empty() {
		return nil, ErrEmptyCart
	}
	if customer.ID == "" {
		return nil, ErrNotAuthenticated
	}
	if !models.ValidDeliveryType(mode) {
		return nil, ErrInvalidDelivery
	}
	if mode == models.DeliveryTypeDelivery && address == "" {
		return nil, ErrNoAddress
	}

	totals := c.Totals(mode, s.cfg.Config().DeliveryFee)

	order := models.Order{
		Type:            models.RecordTypeOrder,
		ID:              uuid.New().String(),
		UserID:          customer.ID,
		Items:           c.FrozenItems(),
		Total:           totals.Total,
		DeliveryType:    mode,
		DeliveryFee:     totals.DeliveryFee,
		Status:          models.StatusKitchen,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: address,
		CreatedAt:       time.Now().UTC(),
	}

	rec, err := models.NewRecord(order)
	if err != nil {
		return nil, err
	}
	if err := s.data.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	c.Clear()
	s.log.Info("order placed",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total", order.Total,
		"delivery_type", order.DeliveryType,
	)
	return &order, nil
}

// AdvanceStatus moves an order to the target status. The transition table is
// validated here, independent of which actions any view offered. The order
// in the local snapshot is untouched; the next push reflects the change.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, next models.Status) (*models.Order, error) {
	if !next.Valid() {
		return nil, ErrUnknownStatus
	}

	order, ok := s.store.OrderByID(orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	if !models.CanTransition(order.Status, next) {
		return nil, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, order.Status, next)
	}

	updated := order
	updated.Status = next

	rec, err := models.NewRecord(updated)
	if err != nil {
		return nil, err
	}
	if err := s.data.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist status change: %w", err)
	}

	s.log.Info("order status updated", "order_id", orderID, "status", next)
	return &updated, nil
}

// OrdersForUser returns the customer's order history.
func (s *OrderService) OrdersForUser(userID string) []models.Order {
	return s.store.OrdersByUser(userID)
}
