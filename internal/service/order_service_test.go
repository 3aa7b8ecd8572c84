package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/burgerhouse/storefront/internal/cart"
	"github.com/burgerhouse/storefront/internal/datasync"
	"github.com/burgerhouse/storefront/internal/element"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/store"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// failingData rejects every write, for persist-first checks.
type failingData struct{}

func (failingData) Init(ctx context.Context, h datasync.Handler) error { return nil }
func (failingData) Create(ctx context.Context, rec models.Record) error {
	return errors.New("backend down")
}
func (failingData) Update(ctx context.Context, rec models.Record) error {
	return errors.New("backend down")
}

func newOrderEnv(t *testing.T) (*OrderService, *store.Store, datasync.Service) {
	t.Helper()

	st := store.New(testLogger)
	data := datasync.NewMemory()
	if err := data.Init(context.Background(), st); err != nil {
		t.Fatalf("init data service: %v", err)
	}

	cfg := element.NewMemory()
	if err := cfg.Init(context.Background(), element.Options{Defaults: element.DefaultConfig()}); err != nil {
		t.Fatalf("init element service: %v", err)
	}

	return NewOrderService(data, st, cfg, testLogger), st, data
}

func loadedCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	if _, err := c.AddLine(models.Product{ID: "b1", Name: "Burger Clássico", Price: 18.90}, 1, nil, nil, ""); err != nil {
		t.Fatalf("add line: %v", err)
	}
	return c
}

var customer = models.User{ID: "u1", Name: "João Silva", Phone: "(11) 99999-1234"}

func TestOrderService_PlaceOrder(t *testing.T) {
	tests := []struct {
		name     string
		cart     func(t *testing.T) *cart.Cart
		customer models.User
		mode     models.DeliveryType
		address  string
		wantErr  error
	}{
		{
			name:     "valid delivery order",
			cart:     loadedCart,
			customer: customer,
			mode:     models.DeliveryTypeDelivery,
			address:  "Rua das Flores, 123",
		},
		{
			name:     "valid pickup order without address",
			cart:     loadedCart,
			customer: customer,
			mode:     models.DeliveryTypePickup,
		},
		{
			name:     "empty cart",
			cart:     func(t *testing.T) *cart.Cart { return cart.New() },
			customer: customer,
			mode:     models.DeliveryTypeDelivery,
			address:  "Rua das Flores, 123",
			wantErr:  ErrEmptyCart,
		},
		{
			name:     "not logged in",
			cart:     loadedCart,
			customer: models.User{},
			mode:     models.DeliveryTypeDelivery,
			address:  "Rua das Flores, 123",
			wantErr:  ErrNotAuthenticated,
		},
		{
			name:     "delivery without address",
			cart:     loadedCart,
			customer: customer,
			mode:     models.DeliveryTypeDelivery,
			wantErr:  ErrNoAddress,
		},
		{
			name:     "unknown delivery type",
			cart:     loadedCart,
			customer: customer,
			mode:     models.DeliveryType("drone"),
			address:  "Rua das Flores, 123",
			wantErr:  ErrInvalidDelivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newOrderEnv(t)
			c := tt.cart(t)

			order, err := svc.PlaceOrder(context.Background(), c, tt.customer, tt.mode, tt.address)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if order.Status != models.StatusKitchen {
				t.Errorf("new order should start in %q, got %q", models.StatusKitchen, order.Status)
			}
			if !c.Empty() {
				t.Error("cart should be cleared after the order persisted")
			}
		})
	}
}

func TestOrderService_PlaceOrder_DeliveryFee(t *testing.T) {
	svc, _, _ := newOrderEnv(t)

	order, err := svc.PlaceOrder(context.Background(), loadedCart(t), customer, models.DeliveryTypeDelivery, "Rua A, 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.DeliveryFee != 5.00 {
		t.Errorf("expected configured fee 5.00, got %.2f", order.DeliveryFee)
	}
	if order.Total != 23.90 {
		t.Errorf("expected total 23.90, got %.2f", order.Total)
	}

	pickup, err := svc.PlaceOrder(context.Background(), loadedCart(t), customer, models.DeliveryTypePickup, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pickup.DeliveryFee != 0 {
		t.Errorf("pickup should never charge a fee, got %.2f", pickup.DeliveryFee)
	}
}

func TestOrderService_PlaceOrder_PersistFailureKeepsCart(t *testing.T) {
	st := store.New(testLogger)
	cfg := element.NewMemory()
	if err := cfg.Init(context.Background(), element.Options{Defaults: element.DefaultConfig()}); err != nil {
		t.Fatalf("init element service: %v", err)
	}
	svc := NewOrderService(failingData{}, st, cfg, testLogger)

	c := loadedCart(t)
	if _, err := svc.PlaceOrder(context.Background(), c, customer, models.DeliveryTypePickup, ""); err == nil {
		t.Fatal("expected persist error, got nil")
	}
	if c.Empty() {
		t.Error("cart must survive a failed persist")
	}
	if len(st.Orders()) != 0 {
		t.Error("no order should appear in the snapshot after a failed persist")
	}
}

func TestOrderService_AdvanceStatus_FullLifecycle(t *testing.T) {
	svc, _, _ := newOrderEnv(t)

	order, err := svc.PlaceOrder(context.Background(), loadedCart(t), customer, models.DeliveryTypePickup, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := []models.Status{
		models.StatusAwaitingCourier,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for _, next := range path {
		updated, err := svc.AdvanceStatus(context.Background(), order.ID, next)
		if err != nil {
			t.Fatalf("advance to %q: %v", next, err)
		}
		if updated.Status != next {
			t.Errorf("expected status %q, got %q", next, updated.Status)
		}
	}

	// Delivered is terminal.
	if _, err := svc.AdvanceStatus(context.Background(), order.ID, models.StatusKitchen); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition from terminal status, got %v", err)
	}
}

func TestOrderService_AdvanceStatus_CancellationRules(t *testing.T) {
	svc, _, _ := newOrderEnv(t)

	// Cancellable from the kitchen.
	first, err := svc.PlaceOrder(context.Background(), loadedCart(t), customer, models.DeliveryTypePickup, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), first.ID, models.StatusCancelled); err != nil {
		t.Errorf("cancel from kitchen should succeed: %v", err)
	}

	// Not cancellable once out for delivery.
	second, err := svc.PlaceOrder(context.Background(), loadedCart(t), customer, models.DeliveryTypePickup, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.AdvanceStatus(context.Background(), second.ID, models.StatusAwaitingCourier)
	svc.AdvanceStatus(context.Background(), second.ID, models.StatusOutForDelivery)
	if _, err := svc.AdvanceStatus(context.Background(), second.ID, models.StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_AdvanceStatus_Errors(t *testing.T) {
	svc, _, _ := newOrderEnv(t)

	if _, err := svc.AdvanceStatus(context.Background(), "missing", models.StatusCancelled); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), "missing", models.Status("Pedido recebido")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestOrderService_OrdersForUser(t *testing.T) {
	svc, _, _ := newOrderEnv(t)

	if _, err := svc.PlaceOrder(context.Background(), loadedCart(t), customer, models.DeliveryTypePickup, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := models.User{ID: "u2", Name: "Maria Santos", Phone: "(11) 98888-5678"}
	if _, err := svc.PlaceOrder(context.Background(), loadedCart(t), other, models.DeliveryTypePickup, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(svc.OrdersForUser("u1")); got != 1 {
		t.Errorf("expected 1 order for u1, got %d", got)
	}
	if got := len(svc.OrdersForUser("nobody")); got != 0 {
		t.Errorf("expected no orders for unknown user, got %d", got)
	}
}
