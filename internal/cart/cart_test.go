package cart

import (
	"errors"
	"math"
	"testing"

	"github.com/burgerhouse/storefront/internal/models"
)

var (
	classic = models.Product{ID: "b1", Name: "Burger Clássico", Price: 18.90, Category: models.CategoryBurger}
	fries   = models.Product{ID: "s1", Name: "Batata Frita", Price: 8.90, Category: models.CategorySide}
	bacon   = models.Extra{Name: "Bacon", Price: 3.00}
	egg     = models.Extra{Name: "Ovo", Price: 2.00}
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestCart_AddLine_MergesSameCustomization(t *testing.T) {
	c := New()

	if _, err := c.AddLine(classic, 1, []models.Extra{bacon}, []string{"Cebola"}, "bem passado"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same identity in a different order merges into the existing line.
	if _, err := c.AddLine(classic, 2, []models.Extra{bacon}, []string{"Cebola"}, "  bem passado  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", lines[0].Quantity)
	}
}

func TestCart_AddLine_DifferentObservationIsNewLine(t *testing.T) {
	c := New()

	if _, err := c.AddLine(classic, 1, nil, nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.AddLine(classic, 1, nil, nil, "sem sal"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(c.Lines()); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
}

func TestCart_AddLine_InvalidQuantity(t *testing.T) {
	c := New()

	for _, qty := range []int{0, -1} {
		if _, err := c.AddLine(classic, qty, nil, nil, ""); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if !c.Empty() {
		t.Error("cart should stay empty after rejected adds")
	}
}

func TestCart_UnitPriceIncludesExtras(t *testing.T) {
	c := New()

	line, err := c.AddLine(classic, 2, []models.Extra{bacon, egg}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(line.BasePrice, 18.90) {
		t.Errorf("expected base price 18.90, got %.2f", line.BasePrice)
	}
	if !almostEqual(line.UnitPrice, 23.90) {
		t.Errorf("expected unit price 23.90, got %.2f", line.UnitPrice)
	}
	if !almostEqual(line.Total(), 47.80) {
		t.Errorf("expected line total 47.80, got %.2f", line.Total())
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := New()
	line, _ := c.AddLine(classic, 2, nil, nil, "")

	if err := c.UpdateQuantity(line.Key, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Lines()[0].Quantity; got != 3 {
		t.Errorf("expected quantity 3, got %d", got)
	}

	// Dropping to zero removes the line.
	if err := c.UpdateQuantity(line.Key, -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Empty() {
		t.Error("expected empty cart after quantity reached zero")
	}

	if err := c.UpdateQuantity("missing", 1); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("expected ErrLineNotFound, got %v", err)
	}
}

func TestCart_RemoveLine(t *testing.T) {
	c := New()
	line, _ := c.AddLine(classic, 5, nil, nil, "")

	if err := c.RemoveLine(line.Key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Empty() {
		t.Error("expected empty cart after remove")
	}
	if err := c.RemoveLine(line.Key); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("expected ErrLineNotFound, got %v", err)
	}
}

func TestCart_Totals(t *testing.T) {
	c := New()
	c.AddLine(classic, 1, []models.Extra{bacon}, nil, "") // 21.90
	c.AddLine(classic, 1, nil, nil, "")                   // 18.90

	tests := []struct {
		name     string
		mode     models.DeliveryType
		fee      float64
		subtotal float64
		total    float64
	}{
		{
			name:     "delivery adds the configured fee",
			mode:     models.DeliveryTypeDelivery,
			fee:      5.00,
			subtotal: 40.80,
			total:    45.80,
		},
		{
			name:     "pickup never charges a fee",
			mode:     models.DeliveryTypePickup,
			fee:      5.00,
			subtotal: 40.80,
			total:    40.80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Totals(tt.mode, tt.fee)
			if !almostEqual(got.Subtotal, tt.subtotal) {
				t.Errorf("expected subtotal %.2f, got %.2f", tt.subtotal, got.Subtotal)
			}
			if !almostEqual(got.Total, tt.total) {
				t.Errorf("expected total %.2f, got %.2f", tt.total, got.Total)
			}
		})
	}
}

func TestCart_ItemCount(t *testing.T) {
	c := New()
	c.AddLine(classic, 2, nil, nil, "")
	c.AddLine(fries, 3, nil, nil, "")

	if got := c.ItemCount(); got != 5 {
		t.Errorf("expected item count 5, got %d", got)
	}
}

func TestCart_FrozenItems(t *testing.T) {
	c := New()
	c.AddLine(classic, 2, []models.Extra{bacon}, []string{"Tomate"}, "obs")

	items := c.FrozenItems()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.ProductID != "b1" || item.Quantity != 2 {
		t.Errorf("unexpected item: %+v", item)
	}
	if !almostEqual(item.Price, 21.90) {
		t.Errorf("expected frozen unit price 21.90, got %.2f", item.Price)
	}
	if len(item.Extras) != 1 || item.Extras[0].Name != "Bacon" {
		t.Errorf("expected frozen extras, got %+v", item.Extras)
	}
}

func TestLine_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want string
	}{
		{
			name: "plain product",
			line: Line{Name: "Burger Clássico"},
			want: "Burger Clássico",
		},
		{
			name: "all customizations",
			line: Line{
				Name:               "Burger Clássico",
				Extras:             []models.Extra{{Name: "Bacon"}},
				RemovedIngredients: []string{"Cebola"},
				Observations:       "bem passado",
			},
			want: "Burger Clássico (Sem: Cebola | + Bacon | Obs: bem passado)",
		},
		{
			name: "whitespace-only observation is dropped",
			line: Line{Name: "Batata Frita", Observations: "   "},
			want: "Batata Frita",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.DisplayName(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLineKey_OrderIndependent(t *testing.T) {
	a := LineKey("b1", []models.Extra{bacon, egg}, []string{"Alface", "Tomate"}, "obs")
	b := LineKey("b1", []models.Extra{egg, bacon}, []string{"Tomate", "Alface"}, " obs ")
	if a != b {
		t.Errorf("expected identical keys, got %q and %q", a, b)
	}

	c := LineKey("b1", []models.Extra{bacon}, nil, "obs")
	if a == c {
		t.Error("expected different keys for different extras")
	}
}
