package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/burgerhouse/storefront/internal/datasync"
	"github.com/burgerhouse/storefront/internal/models"
	"github.com/burgerhouse/storefront/internal/store"
)

var (
	ErrMissingFields      = errors.New("required fields missing")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// AccountService handles customer identity and saved addresses.
//
// Credentials are plaintext and compared exactly, matching the records
// already in the shared collection. This is a known defect kept for
// compatibility; do not add hashing here without migrating the collection.
type AccountService struct {
	data  datasync.Service
	store *store.Store
	log   *slog.Logger
}

// NewAccountService creates an account service.
func NewAccountService(data datasync.Service, st *store.Store, log *slog.Logger) *AccountService {
	return &AccountService{data: data, store: st, log: log}
}

// Login finds the user for the given credentials. The email is trimmed but
// the password is compared verbatim.
func (s *AccountService) Login(email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, ErrMissingFields
	}

	for _, u := range s.store.Users() {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// Register creates a new customer. The email must not already exist.
func (s *AccountService) Register(ctx context.Context, name, email, phone, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	password = strings.TrimSpace(password)
	if name == "" || email == "" || phone == "" || password == "" {
		return models.User{}, ErrMissingFields
	}

	if _, exists := s.store.UserByEmail(email); exists {
		return models.User{}, ErrEmailTaken
	}

	user := models.User{
		Type:      models.RecordTypeUser,
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	rec, err := models.NewRecord(user)
	if err != nil {
		return models.User{}, err
	}
	if err := s.data.Create(ctx, rec); err != nil {
		return models.User{}, fmt.Errorf("persist user: %w", err)
	}

	s.log.Info("customer registered", "user_id", user.ID)
	return user, nil
}

// RecoverPassword returns the stored password for the given email. The
// original system revealed the plaintext password to the requester; the
// behavior is preserved for parity and remains a known defect.
func (s *AccountService) RecoverPassword(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrMissingFields
	}

	user, ok := s.store.UserByEmail(email)
	if !ok {
		return "", ErrUserNotFound
	}
	return user.Password, nil
}

// SaveAddress appends a delivery address. The first address a customer ever
// saves is automatically flagged default.
func (s *AccountService) SaveAddress(ctx context.Context, customer models.User, name, details string) (models.Address, error) {
	name = strings.TrimSpace(name)
	details = strings.TrimSpace(details)
	if name == "" || details == "" {
		return models.Address{}, ErrMissingFields
	}
	if customer.ID == "" {
		return models.Address{}, ErrNotAuthenticated
	}

	isFirst := len(s.store.AddressesByUser(customer.ID)) == 0

	addr := models.Address{
		Type:      models.RecordTypeAddress,
		ID:        uuid.New().String(),
		UserID:    customer.ID,
		Name:      name,
		Details:   details,
		IsDefault: isFirst,
		CreatedAt: time.Now().UTC(),
	}

	rec, err := models.NewRecord(addr)
	if err != nil {
		return models.Address{}, err
	}
	if err := s.data.Create(ctx, rec); err != nil {
		return models.Address{}, fmt.Errorf("persist address: %w", err)
	}

	return addr, nil
}

// Addresses returns the customer's saved addresses.
func (s *AccountService) Addresses(userID string) []models.Address {
	return s.store.AddressesByUser(userID)
}
