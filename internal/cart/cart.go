// Package cart implements the order cart: customized product lines with a
// composite identity, quantity merging and total computation.
package cart

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/burgerhouse/storefront/internal/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrLineNotFound    = errors.New("cart line not found")
)

// Line is one customized product entry. Two lines are the same line if and
// only if product id, the sorted extra names, the sorted removed-ingredient
// names and the trimmed observation text all match; Key encodes that
// composite identity. UnitPrice is the catalog price plus all extras.
type Line struct {
	Key                string         `json:"key"`
	ProductID          string         `json:"product_id"`
	Name               string         `json:"name"`
	BasePrice          float64        `json:"base_price"`
	UnitPrice          float64        `json:"unit_price"`
	Quantity           int            `json:"quantity"`
	Extras             []models.Extra `json:"extras,omitempty"`
	RemovedIngredients []string       `json:"removed_ingredients,omitempty"`
	Observations       string         `json:"observations,omitempty"`
}

// Total returns the line total.
func (l Line) Total() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// DisplayName renders the product name with its customizations, e.g.
// "Burger Clássico (Sem: Cebola | + Bacon | Obs: bem passado)".
func (l Line) DisplayName() string {
	var parts []string
	if len(l.RemovedIngredients) > 0 {
		parts = append(parts, "Sem: "+strings.Join(l.RemovedIngredients, ", "))
	}
	if len(l.Extras) > 0 {
		names := make([]string, len(l.Extras))
		for i, e := range l.Extras {
			names[i] = e.Name
		}
		parts = append(parts, "+ "+strings.Join(names, ", "))
	}
	if obs := strings.TrimSpace(l.Observations); obs != "" {
		parts = append(parts, "Obs: "+obs)
	}
	if len(parts) == 0 {
		return l.Name
	}
	return fmt.Sprintf("%s (%s)", l.Name, strings.Join(parts, " | "))
}

// LineKey computes the composite identity key for a customization set.
func LineKey(productID string, extras []models.Extra, removed []string, observations string) string {
	extraNames := make([]string, len(extras))
	for i, e := range extras {
		extraNames[i] = e.Name
	}
	sort.Strings(extraNames)

	removedSorted := make([]string, len(removed))
	copy(removedSorted, removed)
	sort.Strings(removedSorted)

	return strings.Join([]string{
		productID,
		strings.Join(extraNames, ","),
		strings.Join(removedSorted, ","),
		strings.TrimSpace(observations),
	}, "_")
}

// Totals is the computed cart summary. DeliveryFee is zero for pickup.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// Cart accumulates lines. It is not safe for concurrent use; the owning
// session serializes access.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine merges quantity into an existing line with the same composite
// identity, or appends a new line priced at base plus extras.
func (c *Cart) AddLine(p models.Product, quantity int, extras []models.Extra, removed []string, observations string) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}

	key := LineKey(p.ID, extras, removed, observations)
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines[i].Quantity += quantity
			return c.lines[i], nil
		}
	}

	unit := p.Price
	for _, e := range extras {
		unit += e.Price
	}

	line := Line{
		Key:                key,
		ProductID:          p.ID,
		Name:               p.Name,
		BasePrice:          p.Price,
		UnitPrice:          unit,
		Quantity:           quantity,
		Extras:             append([]models.Extra(nil), extras...),
		RemovedIngredients: append([]string(nil), removed...),
		Observations:       observations,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateQuantity adds delta to the line's quantity. A resulting quantity of
// zero or less removes the line.
func (c *Cart) UpdateQuantity(key string, delta int) error {
	for i := range c.lines {
		if c.lines[i].Key != key {
			continue
		}
		c.lines[i].Quantity += delta
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return nil
	}
	return ErrLineNotFound
}

// RemoveLine drops the line unconditionally.
func (c *Cart) RemoveLine(key string) error {
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// ItemCount sums quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Subtotal sums line totals.
func (c *Cart) Subtotal() float64 {
	sum := 0.0
	for _, l := range c.lines {
		sum += l.Total()
	}
	return sum
}

// Totals computes the cart summary for a delivery mode. The fee must be the
// live configured value; it is never cached here because the configuration
// can change while the cart is open.
func (c *Cart) Totals(mode models.DeliveryType, deliveryFee float64) Totals {
	fee := 0.0
	if mode == models.DeliveryTypeDelivery {
		fee = deliveryFee
	}
	subtotal := c.Subtotal()
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
	}
}

// FrozenItems converts the cart into immutable order items for checkout.
func (c *Cart) FrozenItems() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, models.OrderItem{
			ProductID:          l.ProductID,
			Name:               l.Name,
			Price:              l.UnitPrice,
			BasePrice:          l.BasePrice,
			Quantity:           l.Quantity,
			Extras:             append([]models.Extra(nil), l.Extras...),
			RemovedIngredients: append([]string(nil), l.RemovedIngredients...),
			Observations:       l.Observations,
		})
	}
	return items
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
