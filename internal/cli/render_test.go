package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/tui"
	"github.com/shopfront/shopfront/pkg/models"
)

// plainDeps installs minimal dependencies for render helpers: default
// settings and an uncolored theme.
func plainDeps(t *testing.T) {
	t.Helper()
	prev := deps
	SetDeps(&Dependencies{
		Settings: config.NewDefaultConfig(),
		Theme:    tui.NewTheme(true),
	})
	t.Cleanup(func() { SetDeps(prev) })
}

func TestRenderProductRowStockHints(t *testing.T) {
	plainDeps(t)

	tests := []struct {
		name    string
		product models.Product
		want    string
	}{
		{
			name:    "out of stock",
			product: models.Product{ID: "p1", Name: "Desk", Price: 10, Stock: 0},
			want:    "out of stock",
		},
		{
			name:    "low stock",
			product: models.Product{ID: "p2", Name: "Lamp", Price: 10, Stock: 3},
			want:    "only 3 left",
		},
		{
			name:    "featured",
			product: models.Product{ID: "p3", Name: "Chair", Price: 10, Stock: 9, Featured: true},
			want:    "featured",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderProductRow(tt.product)
			if !strings.Contains(got, tt.want) {
				t.Errorf("renderProductRow() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestRenderCartEmpty(t *testing.T) {
	plainDeps(t)

	got := renderCart(nil, 0)
	if !strings.Contains(got, "Your cart is empty") {
		t.Errorf("renderCart(empty) = %q, want the empty-cart message", got)
	}
}

func TestRenderCartLinesAndSubtotal(t *testing.T) {
	plainDeps(t)

	items := []models.CartItem{
		{Product: &models.Product{ID: "p1", Name: "Desk", Price: 100}, Quantity: 2},
		{Product: &models.Product{ID: "p2", Name: "Lamp", Price: 25.5}, Quantity: 1},
	}
	got := renderCart(items, 225.5)

	for _, want := range []string{"Desk", "x2", "Lamp", "Subtotal", "225.50"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderCart() = %q, want it to contain %q", got, want)
		}
	}
}

func TestRenderOrderFallsBackToID(t *testing.T) {
	plainDeps(t)

	order := models.Order{
		ID:        "ord-1",
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Status:    "delivered",
		Items:     []models.OrderItem{{Name: "Desk", Price: 100, Quantity: 1}},
		Total:     100,
	}
	got := renderOrder(order)
	if !strings.Contains(got, "Order ord-1") {
		t.Errorf("renderOrder() = %q, want the id used when orderNumber is empty", got)
	}
	if !strings.Contains(got, "delivered") {
		t.Errorf("renderOrder() = %q, want the status badge", got)
	}
}

func TestRenderProfileSkipsEmptyFields(t *testing.T) {
	plainDeps(t)

	user := &models.User{
		Email:     "jo@example.com",
		FirstName: "Jo",
		LastName:  "Doe",
		Address:   models.Address{City: "Lisbon", Country: "PT"},
	}
	got := renderProfile(user)

	if strings.Contains(got, "Phone") {
		t.Errorf("renderProfile() = %q, want no phone line for an empty phone", got)
	}
	if !strings.Contains(got, "Lisbon, PT") {
		t.Errorf("renderProfile() = %q, want the address joined in postal order", got)
	}
}
