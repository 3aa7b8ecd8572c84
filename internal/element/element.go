// Package element defines the port for the theming/configuration service:
// live-editable restaurant settings with change notification, plus the
// capability mappings an external editing panel consumes.
package element

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the live restaurant settings.
type Config struct {
	RestaurantName string  `json:"restaurant_name" yaml:"restaurant_name"`
	DeliveryFee    float64 `json:"delivery_fee" yaml:"delivery_fee"`
	FooterText     string  `json:"footer_text" yaml:"footer_text"`
	AdminEmail     string  `json:"admin_email" yaml:"admin_email"`
	SupportPhone   string  `json:"support_phone" yaml:"support_phone"`
	RestaurantOpen bool    `json:"restaurant_open" yaml:"restaurant_open"`
	PrimaryColor   string  `json:"primary_color" yaml:"primary_color"`
}

// DefaultConfig returns the stock Burger House settings.
func DefaultConfig() Config {
	return Config{
		RestaurantName: "🍔 Burger House",
		DeliveryFee:    5.00,
		FooterText:     "🍔 Delivery rápido e saboroso!",
		AdminEmail:     "admin@burgerhouse.com",
		SupportPhone:   "(11) 99999-9999",
		RestaurantOpen: true,
		PrimaryColor:   "#dc2626",
	}
}

// LoadDefaults overlays DefaultConfig with values from a YAML file. An empty
// path returns the stock defaults.
func LoadDefaults(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read defaults file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse defaults file: %w", err)
	}
	return cfg, nil
}

// EditPanelValues exposes the editable fields to the external editing panel.
func (c Config) EditPanelValues() map[string]string {
	return map[string]string{
		"restaurant_name": c.RestaurantName,
		"delivery_fee":    strconv.FormatFloat(c.DeliveryFee, 'f', 2, 64),
		"footer_text":     c.FooterText,
		"admin_email":     c.AdminEmail,
		"support_phone":   c.SupportPhone,
	}
}

// Recolorables exposes the recolorable UI regions.
func (c Config) Recolorables() map[string]string {
	return map[string]string{"primary_color": c.PrimaryColor}
}

// Patch is a partial configuration update; nil fields keep their value.
type Patch struct {
	RestaurantName *string  `json:"restaurant_name,omitempty"`
	DeliveryFee    *float64 `json:"delivery_fee,omitempty"`
	FooterText     *string  `json:"footer_text,omitempty"`
	AdminEmail     *string  `json:"admin_email,omitempty"`
	SupportPhone   *string  `json:"support_phone,omitempty"`
	RestaurantOpen *bool    `json:"restaurant_open,omitempty"`
	PrimaryColor   *string  `json:"primary_color,omitempty"`
}

// Apply returns c with the patch's non-nil fields applied.
func (c Config) Apply(p Patch) Config {
	if p.RestaurantName != nil {
		c.RestaurantName = *p.RestaurantName
	}
	if p.DeliveryFee != nil {
		c.DeliveryFee = *p.DeliveryFee
	}
	if p.FooterText != nil {
		c.FooterText = *p.FooterText
	}
	if p.AdminEmail != nil {
		c.AdminEmail = *p.AdminEmail
	}
	if p.SupportPhone != nil {
		c.SupportPhone = *p.SupportPhone
	}
	if p.RestaurantOpen != nil {
		c.RestaurantOpen = *p.RestaurantOpen
	}
	if p.PrimaryColor != nil {
		c.PrimaryColor = *p.PrimaryColor
	}
	return c
}

// Options configures Init.
type Options struct {
	Defaults Config
	// OnConfigChange runs after every applied update, including updates
	// originating from other instances.
	OnConfigChange func(Config)
}

// Service is the theming/configuration port. Config must be re-read at the
// moment a dependent value (e.g. the delivery fee) is needed, since the
// settings can change while a cart is open.
type Service interface {
	Init(ctx context.Context, opts Options) error
	SetConfig(ctx context.Context, patch Patch) error
	Config() Config
}
