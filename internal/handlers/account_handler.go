package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/burgerhouse/storefront/internal/service"
	"github.com/burgerhouse/storefront/internal/session"
)

// AccountHandler handles login, registration and saved addresses.
type AccountHandler struct {
	accounts *service.AccountService
	sessions *session.Manager
	logger   *slog.Logger
}

// NewAccountHandler creates an account handler.
func NewAccountHandler(accounts *service.AccountService, sessions *session.Manager, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	user, err := h.accounts.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			WriteError(w, http.StatusBadRequest, "Email and password are required", h.logger)
		case errors.Is(err, service.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, "Invalid credentials", h.logger)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	sess := ensureSession(w, r, h.sessions)
	sess.SetUser(user)
	WriteJSON(w, http.StatusOK, user.Public(), h.logger)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register handles POST /api/register. A successful registration also logs
// the session in.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		h.logger.Warn("registration failed", "error", err)
		switch {
		case errors.Is(err, service.ErrMissingFields):
			WriteError(w, http.StatusBadRequest, "All fields are required", h.logger)
		case errors.Is(err, service.ErrEmailTaken):
			WriteError(w, http.StatusConflict, "Email already registered", h.logger)
		default:
			WriteError(w, http.StatusBadGateway, "Failed to create account", h.logger)
		}
		return
	}

	sess := ensureSession(w, r, h.sessions)
	sess.SetUser(user)
	WriteJSON(w, http.StatusCreated, user.Public(), h.logger)
}

// Logout handles POST /api/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(w, r, h.sessions)
	sess.ClearUser()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"}, h.logger)
}

// Me handles GET /api/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(w, r, h.sessions)
	user, ok := sess.User()
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Not logged in", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, user.Public(), h.logger)
}

type recoverRequest struct {
	Email string `json:"email"`
}

// RecoverPassword handles POST /api/recover-password. It reveals the stored
// password, matching the source system's behavior.
func (h *AccountHandler) RecoverPassword(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	password, err := h.accounts.RecoverPassword(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			WriteError(w, http.StatusBadRequest, "Email is required", h.logger)
		case errors.Is(err, service.ErrUserNotFound):
			WriteError(w, http.StatusNotFound, "Email not found", h.logger)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"password": password}, h.logger)
}

// ListAddresses handles GET /api/addresses
func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(w, r, h.sessions)
	user, ok := sess.User()
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Not logged in", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, h.accounts.Addresses(user.ID), h.logger)
}

type saveAddressRequest struct {
	Name    string `json:"address_name"`
	Details string `json:"address_details"`
}

// SaveAddress handles POST /api/addresses
func (h *AccountHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	sess := ensureSession(w, r, h.sessions)
	user, ok := sess.User()
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Not logged in", h.logger)
		return
	}

	var req saveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	addr, err := h.accounts.SaveAddress(r.Context(), user, req.Name, req.Details)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			WriteError(w, http.StatusBadRequest, "Name and address details are required", h.logger)
			return
		}
		h.logger.Error("failed to save address", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to save address", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, addr, h.logger)
}
