package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/shopfront/shopfront/internal/tui"
	"github.com/shopfront/shopfront/pkg/models"
)

// price formats an amount in the configured currency.
func price(amount float64) string {
	return tui.FormatPrice(deps.Settings.UI.Currency, amount)
}

// renderProductRow lays out one catalog line: id, name, price, and a
// stock hint when the product is running out.
func renderProductRow(p models.Product) string {
	line := fmt.Sprintf("%-26s %-32s %10s", p.ID, p.Name, price(p.Price))
	if p.Stock == 0 {
		line += "  " + deps.Theme.Error.Render("out of stock")
	} else if p.Stock < 5 {
		line += "  " + deps.Theme.Muted.Render(fmt.Sprintf("only %d left", p.Stock))
	}
	if p.Featured {
		line += "  " + deps.Theme.Badge.Render("featured")
	}
	return line
}

// renderProductCard renders the full product detail as terminal
// markdown. Rendering failures fall back to the raw markdown.
func renderProductCard(p *models.Product) string {
	md := tui.ProductMarkdown(p, deps.Settings.UI.Currency)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// renderCart lays out the cart lines and subtotal.
func renderCart(items []models.CartItem, subtotal float64) string {
	if len(items) == 0 {
		return "Your cart is empty. Add some products to get started."
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%-26s %-32s x%-3d %10s\n",
			item.Product.ID, item.Product.Name, item.Quantity, price(item.Subtotal()))
	}
	fmt.Fprintf(&b, "Subtotal: %s", deps.Theme.Badge.Render(price(subtotal)))
	return b.String()
}

// renderOrder lays out one order card.
func renderOrder(order models.Order) string {
	number := order.OrderNumber
	if number == "" {
		number = order.ID
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		deps.Theme.Selected.Render("Order "+number),
		deps.Theme.Badge.Render(order.Status),
		order.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %-32s x%-3d %10s\n", item.Name, item.Quantity, price(item.LineTotal()))
	}
	fmt.Fprintf(&b, "  subtotal %s  tax %s  shipping %s  total %s\n",
		price(order.Subtotal), price(order.Tax), price(order.Shipping),
		deps.Theme.Badge.Render(price(order.Total)))
	return b.String()
}

// renderProfile lays out the profile read view.
func renderProfile(user *models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s%s\n", "Email", user.Email)
	fmt.Fprintf(&b, "%-12s%s %s\n", "Name", user.FirstName, user.LastName)
	if user.Phone != "" {
		fmt.Fprintf(&b, "%-12s%s\n", "Phone", user.Phone)
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{user.Address.Street, user.Address.City, user.Address.State, user.Address.ZipCode, user.Address.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&b, "%-12s%s\n", "Address", strings.Join(parts, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
