// Package store holds the last snapshot pushed by the data service,
// partitioned by record type. Pushes replace the partitions wholesale.
package store

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/burgerhouse/storefront/internal/models"
)

// Store is the read-through cache both applications render from.
type Store struct {
	mu   sync.RWMutex
	snap models.Snapshot
	log  *slog.Logger
}

// New creates an empty store.
func New(log *slog.Logger) *Store {
	return &Store{log: log}
}

// OnDataChanged implements datasync.Handler.
func (s *Store) OnDataChanged(records []models.Record) {
	snap := models.DecodeSnapshot(records)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if snap.Skipped > 0 {
		s.log.Warn("snapshot contained undecodable records", "skipped", snap.Skipped)
	}
	s.log.Debug("snapshot applied",
		"orders", len(snap.Orders),
		"users", len(snap.Users),
		"products", len(snap.Products),
		"addresses", len(snap.Addresses),
	)
}

// Orders returns a copy of the order partition.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Order(nil), s.snap.Orders...)
}

// Users returns a copy of the user partition.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.snap.Users...)
}

// Products returns a copy of the product partition.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.snap.Products...)
}

// Addresses returns a copy of the address partition.
func (s *Store) Addresses() []models.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Address(nil), s.snap.Addresses...)
}

// OrderByID looks up one order.
func (s *Store) OrderByID(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.snap.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// OrdersByUser returns the orders owned by one customer.
func (s *Store) OrdersByUser(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, o := range s.snap.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// UserByID looks up one user.
func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.snap.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// UserByEmail looks up a user by exact, case-sensitive email.
func (s *Store) UserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.snap.Users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// ProductByID looks up one admin-managed product record.
func (s *Store) ProductByID(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.snap.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ProductsByCategory filters products; an empty category returns all.
func (s *Store) ProductsByCategory(category models.Category) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	for _, p := range s.snap.Products {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AddressesByUser returns a customer's saved addresses.
func (s *Store) AddressesByUser(userID string) []models.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Address
	for _, a := range s.snap.Addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

// AddressByID looks up one address.
func (s *Store) AddressByID(id string) (models.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.snap.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return models.Address{}, false
}

// SearchUsers filters users by name, email (case-insensitive) or phone.
func (s *Store) SearchUsers(term string) []models.User {
	users := s.Users()
	if term == "" {
		return users
	}
	lower := strings.ToLower(term)
	var out []models.User
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), lower) ||
			strings.Contains(strings.ToLower(u.Email), lower) ||
			strings.Contains(u.Phone, term) {
			out = append(out, u)
		}
	}
	return out
}
