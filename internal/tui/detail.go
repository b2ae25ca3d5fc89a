package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/pkg/models"
)

const productFallbackMessage = "Unable to load product. Please try again later."

// productLoadedMsg carries a single-product fetch result.
type productLoadedMsg struct {
	product  *models.Product
	notFound bool
	err      error
}

// detailModel is the product detail screen.
type detailModel struct {
	opts Options

	productID   string
	product     *models.Product
	activeImage int
	rendered    string
	width       int

	loading bool
	errText string
	status  string
}

func newDetailModel(opts Options) detailModel {
	return detailModel{opts: opts, width: 80}
}

func (m *detailModel) setSize(width, _ int) {
	if width > 0 {
		m.width = width
	}
}

// reset points the screen at a product before load.
func (m *detailModel) reset(productID string) {
	m.productID = productID
	m.product = nil
	m.activeImage = 0
	m.rendered = ""
	m.errText = ""
	m.status = ""
}

// load fetches the product.
func (m *detailModel) load() tea.Cmd {
	m.loading = true
	m.errText = ""
	client := m.opts.API
	id := m.productID
	return func() tea.Msg {
		product, err := client.Product(context.Background(), id)
		if errors.Is(err, api.ErrNotFound) {
			return productLoadedMsg{notFound: true}
		}
		return productLoadedMsg{product: product, err: err}
	}
}

func (m detailModel) update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productLoadedMsg:
		m.loading = false
		switch {
		case msg.notFound:
			m.product = nil
		case msg.err != nil:
			m.errText = api.BackendMessage(msg.err, productFallbackMessage)
		default:
			m.product = msg.product
			m.activeImage = 0
			m.rendered = m.renderBody()
		}
		return m, nil

	case cartActionMsg:
		if msg.err != nil {
			m.status = m.opts.Theme.Error.Render(api.BackendMessage(msg.err, "Unable to add to cart. Please try again."))
		} else {
			m.status = m.opts.Theme.Success.Render("Added " + msg.name + " to cart.")
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return m, navigate(RouteProducts)
		case "r":
			cmd := m.load()
			return m, cmd
		case "a":
			if m.product != nil {
				p := *m.product
				store := m.opts.Cart
				return m, func() tea.Msg {
					err := store.AddItem(context.Background(), &p, 1)
					return cartActionMsg{name: p.Name, err: err}
				}
			}
		case "left", "h":
			if m.product != nil && len(m.product.Images) > 0 {
				m.activeImage = (m.activeImage + len(m.product.Images) - 1) % len(m.product.Images)
			}
		case "right", "l":
			if m.product != nil && len(m.product.Images) > 0 {
				m.activeImage = (m.activeImage + 1) % len(m.product.Images)
			}
		}
	}
	return m, nil
}

// renderBody renders the product card with glamour. Rendering failures
// fall back to the raw markdown.
func (m detailModel) renderBody() string {
	md := ProductMarkdown(m.product, m.opts.Currency)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.width),
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

// ProductMarkdown builds the markdown card for a product: price line,
// description, stock facts, specifications, and reviews.
func ProductMarkdown(p *models.Product, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "**%s**", FormatPrice(currency, p.Price))
	if p.CompareAtPrice > 0 {
		fmt.Fprintf(&b, " ~~%s~~", FormatPrice(currency, p.CompareAtPrice))
	}
	fmt.Fprintf(&b, " · ★ %.1f (%d reviews)\n\n", p.Rating, p.ReviewCount)

	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}

	fmt.Fprintf(&b, "`SKU %s` · `stock %d`", p.SKU, p.Stock)
	if p.Status != "" {
		fmt.Fprintf(&b, " · `%s`", p.Status)
	}
	b.WriteString("\n\n")

	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(p.Tags, ", "))
	}

	if len(p.Specifications) > 0 {
		b.WriteString("## Key details\n\n")
		keys := make([]string, 0, len(p.Specifications))
		for k := range p.Specifications {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s:** %s\n", k, p.Specifications[k])
		}
		b.WriteString("\n")
	}

	if len(p.Reviews) > 0 {
		b.WriteString("## Customer reviews\n\n")
		for _, review := range p.Reviews {
			fmt.Fprintf(&b, "**★ %.0f · %s**\n\n", review.Rating, review.Title)
			if review.Comment != "" {
				b.WriteString(review.Comment + "\n\n")
			}
			meta := "User " + review.UserID
			if review.VerifiedPurchase {
				meta += " · Verified purchase"
			}
			fmt.Fprintf(&b, "_%s_\n\n", meta)
		}
	}

	return b.String()
}

func (m detailModel) view() string {
	theme := m.opts.Theme

	if m.loading {
		return theme.Muted.Render("Loading product…")
	}
	if m.errText != "" {
		return theme.Error.Render(m.errText) + "\n" +
			theme.Muted.Render("r retry  esc back to products")
	}
	if m.product == nil {
		return theme.Muted.Render("Product not found.") + "\n" +
			theme.Muted.Render("esc back to products")
	}

	s := m.rendered

	if n := len(m.product.Images); n > 0 {
		s += theme.Muted.Render(fmt.Sprintf("Image %d/%d: %s", m.activeImage+1, n, m.product.Images[m.activeImage])) + "\n"
		if n > 1 {
			s += theme.Muted.Render("←/→ cycle images") + "\n"
		}
	}
	if m.status != "" {
		s += m.status + "\n"
	}
	s += theme.Muted.Render("a add to cart  r retry  esc back")
	return s
}
