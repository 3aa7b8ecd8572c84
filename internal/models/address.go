package models

import "time"

// Address is a saved delivery address. The first address a customer saves
// is flagged default. Addresses are never edited or deleted.
type Address struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"address_name"`
	Details   string    `json:"address_details"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}
