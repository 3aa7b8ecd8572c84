package models

import "time"

// Category is the closed set of product categories.
type Category string

const (
	CategoryBurger Category = "burger"
	CategorySide   Category = "side"
	CategoryDrink  Category = "drink"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryBurger, CategorySide, CategoryDrink:
		return true
	}
	return false
}

// Product is a menu item. Admin-managed products are never hard-deleted,
// only marked unavailable.
type Product struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

// Extra is a paid addition to a product (e.g. bacon).
type Extra struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
