package models

import "time"

// DeliveryType selects between courier delivery and counter pickup.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// ValidDeliveryType reports whether d is a known delivery type.
func ValidDeliveryType(d DeliveryType) bool {
	return d == DeliveryTypeDelivery || d == DeliveryTypePickup
}

// OrderItem is one customized cart line frozen at checkout time. Price is
// the unit price including extras; BasePrice is the catalog price alone.
type OrderItem struct {
	ProductID          string   `json:"product_id"`
	Name               string   `json:"name"`
	Price              float64  `json:"price"`
	BasePrice          float64  `json:"base_price,omitempty"`
	Quantity           int      `json:"quantity"`
	Extras             []Extra  `json:"extras,omitempty"`
	RemovedIngredients []string `json:"removed_ingredients,omitempty"`
	Observations       string   `json:"observations,omitempty"`
}

// Total returns the line total (unit price times quantity).
func (i OrderItem) Total() float64 {
	return i.Price * float64(i.Quantity)
}

// Order is a persisted order. After creation only the status field changes;
// customer fields are a snapshot taken at order time, not a live reference.
type Order struct {
	Type            string       `json:"type"`
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	Items           []OrderItem  `json:"items"`
	Total           float64      `json:"total"`
	DeliveryType    DeliveryType `json:"delivery_type"`
	DeliveryFee     float64      `json:"delivery_fee"`
	Status          Status       `json:"status"`
	CustomerName    string       `json:"customer_name"`
	CustomerPhone   string       `json:"customer_phone"`
	CustomerAddress string       `json:"customer_address"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Subtotal is the order total minus the delivery fee.
func (o Order) Subtotal() float64 {
	return o.Total - o.DeliveryFee
}

// ShortID is the id suffix shown to staff and matched by board search.
func (o Order) ShortID() string {
	if len(o.ID) <= 6 {
		return o.ID
	}
	return o.ID[len(o.ID)-6:]
}
