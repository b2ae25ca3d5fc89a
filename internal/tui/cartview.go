package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/pkg/models"
)

// cartMutatedMsg reports a cart mutation triggered from the cart screen.
type cartMutatedMsg struct {
	err error
}

// cartModel is the cart screen. Line items come straight from the cart
// store on every render; only the cursor and the quantity editor are
// local state.
type cartModel struct {
	opts Options

	cursor  int
	qty     textinput.Model
	edit    bool
	errText string
}

func newCartModel(opts Options) cartModel {
	qty := textinput.New()
	qty.Placeholder = "qty"
	qty.CharLimit = 4
	return cartModel{opts: opts, qty: qty}
}

func (m cartModel) editing() bool { return m.edit }

func (m cartModel) update(msg tea.Msg) (cartModel, tea.Cmd) {
	items := m.opts.Cart.Items()
	if m.cursor >= len(items) && len(items) > 0 {
		m.cursor = len(items) - 1
	}

	switch msg := msg.(type) {
	case cartMutatedMsg:
		if msg.err != nil {
			m.errText = api.BackendMessage(msg.err, "Unable to update your cart. Please try again.")
		} else {
			m.errText = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.edit {
			return m.updateQuantityEditor(msg, items)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "+":
			if m.cursor < len(items) {
				item := items[m.cursor]
				return m, m.setQuantity(item.Product.ID, item.Quantity+1)
			}
		case "-":
			// Dropping to zero removes the line; the store translates it
			// into a remove call.
			if m.cursor < len(items) {
				item := items[m.cursor]
				return m, m.setQuantity(item.Product.ID, item.Quantity-1)
			}
		case "e":
			if m.cursor < len(items) {
				m.edit = true
				m.qty.SetValue(strconv.Itoa(items[m.cursor].Quantity))
				return m, m.qty.Focus()
			}
		case "d", "x":
			if m.cursor < len(items) {
				id := items[m.cursor].Product.ID
				store := m.opts.Cart
				return m, func() tea.Msg {
					return cartMutatedMsg{err: store.RemoveItem(context.Background(), id)}
				}
			}
		case "X":
			store := m.opts.Cart
			return m, func() tea.Msg {
				return cartMutatedMsg{err: store.Clear(context.Background())}
			}
		case "esc", "b":
			return m, navigate(RouteProducts)
		}
	}
	return m, nil
}

// updateQuantityEditor handles keys while the quantity input owns focus.
func (m cartModel) updateQuantityEditor(msg tea.KeyMsg, items []models.CartItem) (cartModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.edit = false
		m.qty.Blur()
		if m.cursor >= len(items) {
			return m, nil
		}
		quantity, err := strconv.Atoi(m.qty.Value())
		if err != nil {
			quantity = 1
		}
		return m, m.setQuantity(items[m.cursor].Product.ID, quantity)
	case tea.KeyEsc:
		m.edit = false
		m.qty.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.qty, cmd = m.qty.Update(msg)
	return m, cmd
}

// setQuantity routes through the store's update path, which treats a
// non-positive quantity as removal.
func (m cartModel) setQuantity(productID string, quantity int) tea.Cmd {
	store := m.opts.Cart
	return func() tea.Msg {
		return cartMutatedMsg{err: store.UpdateQuantity(context.Background(), productID, quantity)}
	}
}

func (m cartModel) view() string {
	theme := m.opts.Theme
	items := m.opts.Cart.Items()

	if len(items) == 0 {
		return theme.Title.Render("Your cart is empty") + "\n" +
			theme.Muted.Render("Add some products to get started.")
	}

	s := theme.Title.Render("Your cart") + "\n\n"
	for i, item := range items {
		line := fmt.Sprintf("%-32s %10s  qty %d",
			item.Product.Name,
			FormatPrice(m.opts.Currency, item.Product.Price),
			item.Quantity)
		if i == m.cursor {
			if m.edit {
				line = fmt.Sprintf("%-32s %10s  qty %s",
					item.Product.Name,
					FormatPrice(m.opts.Currency, item.Product.Price),
					m.qty.View())
			}
			s += theme.Selected.Render("› "+line) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}

	s += "\n" + fmt.Sprintf("Subtotal: %s", theme.Badge.Render(FormatPrice(m.opts.Currency, m.opts.Cart.Subtotal()))) + "\n"
	if m.errText != "" {
		s += theme.Error.Render(m.errText) + "\n"
	}
	s += theme.Muted.Render("+/- adjust  e edit qty  d remove  X clear cart  esc back")
	return s
}
