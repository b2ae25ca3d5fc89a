package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/pkg/models"
)

const ordersFallbackMessage = "Unable to load your orders. Please try again later."

// ordersLoadedMsg carries the order history fetch result.
type ordersLoadedMsg struct {
	orders []models.Order
	err    error
}

// ordersModel is the order-history screen.
type ordersModel struct {
	opts Options

	orders  []models.Order
	loading bool
	errText string
}

func newOrdersModel(opts Options) ordersModel {
	return ordersModel{opts: opts}
}

// load fetches the order history.
func (m *ordersModel) load() tea.Cmd {
	m.loading = true
	m.errText = ""
	client := m.opts.API
	return func() tea.Msg {
		orders, err := client.Orders(context.Background())
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func (m ordersModel) update(msg tea.Msg) (ordersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = api.BackendMessage(msg.err, ordersFallbackMessage)
			return m, nil
		}
		m.orders = msg.orders
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			cmd := m.load()
			return m, cmd
		case "esc", "b":
			return m, navigate(RouteProducts)
		}
	}
	return m, nil
}

func (m ordersModel) view() string {
	theme := m.opts.Theme

	if m.loading {
		return theme.Muted.Render("Loading your orders…")
	}
	if m.errText != "" {
		return theme.Error.Render(m.errText) + "\n" +
			theme.Muted.Render("r retry  esc back")
	}
	if len(m.orders) == 0 {
		return theme.Title.Render("Your orders") + "\n" +
			theme.Muted.Render("You have no orders yet.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Your orders") + "\n\n")
	for _, order := range m.orders {
		b.WriteString(m.renderOrder(order))
		b.WriteString("\n")
	}
	b.WriteString(theme.Muted.Render("r refresh  esc back"))
	return b.String()
}

// renderOrder lays out one order card: header with number, status and
// placement time, one line per item, then the totals footer.
func (m ordersModel) renderOrder(order models.Order) string {
	theme := m.opts.Theme

	number := order.OrderNumber
	if number == "" {
		number = order.ID
	}
	header := fmt.Sprintf("Order %s  %s  %s",
		number,
		theme.Badge.Render(order.Status),
		order.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"))

	var b strings.Builder
	b.WriteString(theme.Selected.Render(header) + "\n")
	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("  %-32s x%-3d %10s\n",
			item.Name, item.Quantity, FormatPrice(m.opts.Currency, item.LineTotal())))
	}
	b.WriteString(theme.Muted.Render(fmt.Sprintf("  subtotal %s  tax %s  shipping %s",
		FormatPrice(m.opts.Currency, order.Subtotal),
		FormatPrice(m.opts.Currency, order.Tax),
		FormatPrice(m.opts.Currency, order.Shipping))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  total %s\n", theme.Badge.Render(FormatPrice(m.opts.Currency, order.Total))))
	return b.String()
}
