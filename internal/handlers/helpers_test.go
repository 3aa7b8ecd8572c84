package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/burgerhouse/storefront/internal/catalog"
	"github.com/burgerhouse/storefront/internal/config"
	"github.com/burgerhouse/storefront/internal/datasync"
	"github.com/burgerhouse/storefront/internal/element"
	"github.com/burgerhouse/storefront/internal/middleware"
	"github.com/burgerhouse/storefront/internal/service"
	"github.com/burgerhouse/storefront/internal/session"
	"github.com/burgerhouse/storefront/internal/store"
)

const testAdminKey = "admintest"

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// env wires the full API surface against in-memory backends and carries the
// session cookie across requests like a browser would.
type env struct {
	t        *testing.T
	router   chi.Router
	store    *store.Store
	data     datasync.Service
	cfg      element.Service
	sessions *session.Manager
	cookie   *http.Cookie
}

func newEnv(t *testing.T) *env {
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

	sessions := session.NewManager(time.Hour)
	menu := catalog.New()

	orderService := service.NewOrderService(data, st, cfg, testLogger)
	accountService := service.NewAccountService(data, st, testLogger)
	productService := service.NewProductService(data, st, testLogger)

	menuHandler := NewMenuHandler(menu, cfg, testLogger)
	cartHandler := NewCartHandler(sessions, menu, cfg, testLogger)
	accountHandler := NewAccountHandler(accountService, sessions, testLogger)
	orderHandler := NewOrderHandler(orderService, sessions, st, testLogger)

	adminOrders := NewAdminOrdersHandler(orderService, st, cfg, testLogger)
	adminProducts := NewAdminProductsHandler(productService, st, testLogger)
	adminCustomers := NewAdminCustomersHandler(st, testLogger)
	adminAnalytics := NewAdminAnalyticsHandler(st, testLogger)
	adminSettings := NewAdminSettingsHandler(cfg, testLogger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", menuHandler.ListMenu)
		r.Get("/menu/options", menuHandler.Options)
		r.Get("/menu/{productId}", menuHandler.GetMenuItem)
		r.Get("/info", menuHandler.Info)

		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Post("/cart/items/update", cartHandler.UpdateItem)
		r.Post("/cart/items/remove", cartHandler.RemoveItem)
		r.Delete("/cart", cartHandler.ClearCart)

		r.Post("/login", accountHandler.Login)
		r.Post("/register", accountHandler.Register)
		r.Post("/logout", accountHandler.Logout)
		r.Get("/me", accountHandler.Me)
		r.Post("/recover-password", accountHandler.RecoverPassword)
		r.Get("/addresses", accountHandler.ListAddresses)
		r.Post("/addresses", accountHandler.SaveAddress)

		r.Post("/checkout", orderHandler.Checkout)
		r.Get("/orders", orderHandler.ListOrders)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(config.AdminConfig{APIKeys: []string{testAdminKey}}))

			r.Get("/orders", adminOrders.Board)
			r.Get("/orders/{orderId}", adminOrders.GetOrder)
			r.Post("/orders/{orderId}/status", adminOrders.UpdateStatus)
			r.Get("/orders/{orderId}/receipt", adminOrders.Receipt)

			r.Get("/products", adminProducts.ListProducts)
			r.Post("/products", adminProducts.CreateProduct)
			r.Put("/products/{productId}", adminProducts.UpdateProduct)
			r.Post("/products/{productId}/toggle", adminProducts.ToggleProduct)

			r.Get("/customers", adminCustomers.ListCustomers)
			r.Get("/customers/export", adminCustomers.ExportCustomers)
			r.Get("/customers/{userId}", adminCustomers.GetCustomer)

			r.Get("/analytics", adminAnalytics.Dashboard)

			r.Get("/settings", adminSettings.GetSettings)
			r.Patch("/settings", adminSettings.UpdateSettings)
			r.Post("/settings/toggle-open", adminSettings.ToggleOpen)
		})
	})

	return &env{t: t, router: r, store: st, data: data, cfg: cfg, sessions: sessions}
}

// do issues a request, carrying the session cookie between calls.
func (e *env) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			e.cookie = c
		}
	}
	return w
}

// admin issues a request with the console API key.
func (e *env) admin(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("api_key", testAdminKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

// registerAndLogin creates a customer through the API and leaves the
// session authenticated.
func (e *env) registerAndLogin(name, email string) {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/register", map[string]string{
		"name":     name,
		"email":    email,
		"phone":    "(11) 99999-1234",
		"password": "segredo",
	})
	if w.Code != http.StatusCreated {
		e.t.Fatalf("register failed with status %d: %s", w.Code, w.Body.String())
	}
}

// addToCart puts one catalog product in the session cart.
func (e *env) addToCart(productID string, quantity int) {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	if w.Code != http.StatusOK {
		e.t.Fatalf("add to cart failed with status %d: %s", w.Code, w.Body.String())
	}
}
