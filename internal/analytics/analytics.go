// Package analytics derives the admin dashboard figures. Everything here is
// a pure function over the full order/customer collections, recomputed on
// every request; nothing is maintained incrementally.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/burgerhouse/storefront/internal/models"
)

// TodayMetrics summarizes the current calendar day (local time).
type TodayMetrics struct {
	Orders          int     `json:"orders"`
	Revenue         float64 `json:"revenue"`
	AverageTicket   float64 `json:"average_ticket"`
	ActiveCustomers int     `json:"active_customers"`
}

// Today counts and sums the orders created on the same calendar day as now.
// ActiveCustomers counts distinct customers across all orders, not just
// today's.
func Today(orders []models.Order, now time.Time) TodayMetrics {
	var m TodayMetrics
	y, mo, d := now.Date()

	customers := make(map[string]struct{})
	for _, o := range orders {
		customers[o.UserID] = struct{}{}

		oy, omo, od := o.CreatedAt.In(now.Location()).Date()
		if oy == y && omo == mo && od == d {
			m.Orders++
			m.Revenue += o.Total
		}
	}
	if m.Orders > 0 {
		m.AverageTicket = m.Revenue / float64(m.Orders)
	}
	m.ActiveCustomers = len(customers)
	return m
}

// ProductSales is an aggregated sales row for one product display name.
type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TopProducts flattens all order items, groups them by product display name
// and returns the n best sellers by quantity. Grouping by name, not id,
// matches the source system: renaming a product splits its history and two
// products sharing a name merge.
func TopProducts(orders []models.Order, n int) []ProductSales {
	sales := make(map[string]*ProductSales)
	for _, o := range orders {
		for _, item := range o.Items {
			row, ok := sales[item.Name]
			if !ok {
				row = &ProductSales{Name: item.Name}
				sales[item.Name] = row
			}
			row.Quantity += item.Quantity
			row.Revenue += item.Price * float64(item.Quantity)
		}
	}

	out := make([]ProductSales, 0, len(sales))
	for _, row := range sales {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// HourBucket is one fixed three-hour window of the business day.
type HourBucket struct {
	Label string `json:"label"`
	From  int    `json:"from"`
	To    int    `json:"to"`
	Count int    `json:"count"`
}

// PeakHours buckets orders into the six fixed windows by the hour component
// of their creation time (local). Bounds are half-open: an order at hour 9
// lands in 09-12, not 06-09.
func PeakHours(orders []models.Order) []HourBucket {
	buckets := []HourBucket{
		{Label: "06-09", From: 6, To: 9},
		{Label: "09-12", From: 9, To: 12},
		{Label: "12-15", From: 12, To: 15},
		{Label: "15-18", From: 15, To: 18},
		{Label: "18-21", From: 18, To: 21},
		{Label: "21-24", From: 21, To: 24},
	}

	for _, o := range orders {
		h := o.CreatedAt.Local().Hour()
		for i := range buckets {
			if h >= buckets[i].From && h < buckets[i].To {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// CustomerStats is the lifetime value row for one customer.
type CustomerStats struct {
	User          models.PublicUser `json:"user"`
	Orders        int               `json:"orders"`
	TotalSpent    float64           `json:"total_spent"`
	AverageTicket float64           `json:"average_ticket"`
	LastOrder     time.Time         `json:"last_order,omitzero"`
}

// Customers computes per-customer order count, lifetime spend, average
// ticket and most recent order date.
func Customers(users []models.User, orders []models.Order) []CustomerStats {
	out := make([]CustomerStats, 0, len(users))
	for _, u := range users {
		stats := CustomerStats{User: u.Public()}
		for _, o := range orders {
			if o.UserID != u.ID {
				continue
			}
			stats.Orders++
			stats.TotalSpent += o.Total
			if o.CreatedAt.After(stats.LastOrder) {
				stats.LastOrder = o.CreatedAt
			}
		}
		if stats.Orders > 0 {
			stats.AverageTicket = stats.TotalSpent / float64(stats.Orders)
		}
		out = append(out, stats)
	}
	return out
}

// BoardColumn is one kanban column.
type BoardColumn struct {
	Status models.Status  `json:"status"`
	Count  int            `json:"count"`
	Orders []models.Order `json:"orders"`
}

// Board is the kanban view of the order collection.
type Board struct {
	Columns []BoardColumn `json:"columns"`
	Pending int           `json:"pending"`
	Matched int           `json:"matched"`
}

// Kanban partitions orders into the five status columns after applying the
// free-text search and the exact status filter. Search matches the order id
// suffix, customer name, phone, status and address, case-insensitively.
// Orders with an unknown status land in no column.
func Kanban(orders []models.Order, search string, statusFilter models.Status) Board {
	search = strings.ToLower(strings.TrimSpace(search))

	var filtered []models.Order
	for _, o := range orders {
		if statusFilter != "" && o.Status != statusFilter {
			continue
		}
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		filtered = append(filtered, o)
	}

	board := Board{Matched: len(filtered)}
	for _, status := range models.AllStatuses {
		col := BoardColumn{Status: status, Orders: []models.Order{}}
		for _, o := range filtered {
			if o.Status == status {
				col.Orders = append(col.Orders, o)
			}
		}
		col.Count = len(col.Orders)
		if status.Pending() {
			board.Pending += col.Count
		}
		board.Columns = append(board.Columns, col)
	}
	return board
}

func matchesSearch(o models.Order, search string) bool {
	searchable := strings.ToLower(strings.Join([]string{
		o.ShortID(),
		o.CustomerName,
		o.CustomerPhone,
		string(o.Status),
		o.CustomerAddress,
	}, " "))
	return strings.Contains(searchable, search)
}

// PendingCount counts orders that still need restaurant attention.
func PendingCount(orders []models.Order) int {
	count := 0
	for _, o := range orders {
		if o.Status.Pending() {
			count++
		}
	}
	return count
}
