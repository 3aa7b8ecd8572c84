package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/burgerhouse/storefront/internal/element"
)

// AdminSettingsHandler edits the live restaurant configuration.
type AdminSettingsHandler struct {
	cfg    element.Service
	logger *slog.Logger
}

// NewAdminSettingsHandler creates an admin settings handler.
func NewAdminSettingsHandler(cfg element.Service, logger *slog.Logger) *AdminSettingsHandler {
	return &AdminSettingsHandler{cfg: cfg, logger: logger}
}

type settingsView struct {
	Config          element.Config    `json:"config"`
	EditPanelValues map[string]string `json:"edit_panel_values"`
	Recolorables    map[string]string `json:"recolorables"`
}

// GetSettings handles GET /api/admin/settings
func (h *AdminSettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg.Config()
	WriteJSON(w, http.StatusOK, settingsView{
		Config:          cfg,
		EditPanelValues: cfg.EditPanelValues(),
		Recolorables:    cfg.Recolorables(),
	}, h.logger)
}

// UpdateSettings handles PATCH /api/admin/settings. Absent fields keep
// their current value.
func (h *AdminSettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch element.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if patch.DeliveryFee != nil && *patch.DeliveryFee < 0 {
		WriteError(w, http.StatusBadRequest, "Delivery fee cannot be negative", h.logger)
		return
	}

	if err := h.cfg.SetConfig(r.Context(), patch); err != nil {
		h.logger.Error("failed to update settings", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to save settings", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, h.cfg.Config(), h.logger)
}

// ToggleOpen handles POST /api/admin/settings/toggle-open, flipping the
// open/closed flag shown to customers.
func (h *AdminSettingsHandler) ToggleOpen(w http.ResponseWriter, r *http.Request) {
	open := !h.cfg.Config().RestaurantOpen
	if err := h.cfg.SetConfig(r.Context(), element.Patch{RestaurantOpen: &open}); err != nil {
		h.logger.Error("failed to toggle restaurant status", "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to save settings", h.logger)
		return
	}

	h.logger.Info("restaurant status toggled", "open", open)
	WriteJSON(w, http.StatusOK, map[string]bool{"restaurant_open": open}, h.logger)
}
