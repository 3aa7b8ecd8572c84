package session

import (
	"testing"
	"time"

	"github.com/burgerhouse/storefront/internal/cart"
	"github.com/burgerhouse/storefront/internal/models"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	s := m.Create()
	if s.ID == "" {
		t.Fatal("session should have an id")
	}

	got, ok := m.Get(s.ID)
	if !ok || got.ID != s.ID {
		t.Errorf("expected to retrieve the session, got ok=%v", ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("did not expect to find unknown session")
	}
}

func TestSession_UserLifecycle(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create()

	if _, ok := s.User(); ok {
		t.Error("new session should not be authenticated")
	}

	s.SetUser(models.User{ID: "u1", Name: "João"})
	u, ok := s.User()
	if !ok || u.ID != "u1" {
		t.Errorf("expected authenticated user, got %+v ok=%v", u, ok)
	}

	// Logout keeps the cart.
	s.WithCart(func(c *cart.Cart) error {
		_, err := c.AddLine(models.Product{ID: "b1", Name: "Burger", Price: 18.90}, 1, nil, nil, "")
		return err
	})
	s.ClearUser()
	if _, ok := s.User(); ok {
		t.Error("session should be logged out")
	}
	s.WithCart(func(c *cart.Cart) error {
		if c.Empty() {
			t.Error("cart must survive logout")
		}
		return nil
	})
}

func TestManager_Sweep(t *testing.T) {
	m := NewManager(time.Minute)
	stale := m.Create()
	fresh := m.Create()

	// Keep one session active past the idle window.
	future := time.Now().Add(2 * time.Minute)
	fresh.touch(future)

	if removed := m.Sweep(future); removed != 1 {
		t.Errorf("expected 1 removed session, got %d", removed)
	}
	if _, ok := m.Get(stale.ID); ok {
		t.Error("stale session should be gone")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Error("fresh session should survive the sweep")
	}
}

func TestManager_GetRefreshesIdleTimer(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create()

	// Get touches the session, so a sweep shortly after keeps it.
	if _, ok := m.Get(s.ID); !ok {
		t.Fatal("expected session")
	}
	if removed := m.Sweep(time.Now().Add(30 * time.Second)); removed != 0 {
		t.Errorf("expected no removals, got %d", removed)
	}
}
