package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/pkg/models"
)

const (
	productsFallbackMessage = "Unable to load products. Please try again later."
	emptyCatalogMessage     = "No products available right now."
	emptySearchMessage      = "No products match your search. Try a different keyword."
)

// productsLoadedMsg carries a product listing fetch result.
type productsLoadedMsg struct {
	products []models.Product
	err      error
}

// cartActionMsg carries the outcome of an add-to-cart triggered from a
// catalog screen.
type cartActionMsg struct {
	name string
	err  error
}

// productItem adapts a product to the bubbles list.
type productItem struct {
	product  models.Product
	currency string
}

func (i productItem) FilterValue() string { return i.product.Name }
func (i productItem) Title() string       { return i.product.Name }
func (i productItem) Description() string {
	desc := fmt.Sprintf("%s · stock %d", FormatPrice(i.currency, i.product.Price), i.product.Stock)
	if i.product.Featured {
		desc += " · featured"
	}
	return desc
}

// productsModel is the catalog screen.
type productsModel struct {
	opts Options

	list     list.Model
	search   textinput.Model
	spin     spinner.Model
	featured bool

	loading    bool
	loaded     bool
	searchUsed bool
	errText    string
	statusText string
}

func newProductsModel(opts Options) productsModel {
	search := textinput.New()
	search.Placeholder = "search products"
	search.CharLimit = 64

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Products"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	return productsModel{opts: opts, list: l, search: search, spin: spin}
}

func (m *productsModel) setSize(width, height int) {
	// Leave room for the toolbar, messages, and the app status bar.
	h := height - 8
	if h < 4 {
		h = 4
	}
	m.list.SetSize(width, h)
}

func (m productsModel) searching() bool { return m.search.Focused() }

// load fetches the catalog with the current filters.
func (m *productsModel) load() tea.Cmd {
	m.loading = true
	m.errText = ""
	m.statusText = ""
	query := api.ProductQuery{Search: m.search.Value(), Featured: m.featured}
	m.searchUsed = query.Search != ""
	client := m.opts.API
	fetch := func() tea.Msg {
		products, err := client.Products(context.Background(), query)
		return productsLoadedMsg{products: products, err: err}
	}
	return tea.Batch(fetch, m.spin.Tick)
}

func (m productsModel) update(msg tea.Msg) (productsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		m.loading = false
		m.loaded = true
		if msg.err != nil {
			m.errText = api.BackendMessage(msg.err, productsFallbackMessage)
			return m, nil
		}
		items := make([]list.Item, len(msg.products))
		for i, p := range msg.products {
			items[i] = productItem{product: p, currency: m.opts.Currency}
		}
		return m, m.list.SetItems(items)

	case cartActionMsg:
		if msg.err != nil {
			m.statusText = m.opts.Theme.Error.Render(api.BackendMessage(msg.err, "Unable to add to cart. Please try again."))
		} else {
			m.statusText = m.opts.Theme.Success.Render("Added " + msg.name + " to cart.")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			return m, m.search.Focus()
		case "f":
			m.featured = !m.featured
			cmd := m.load()
			return m, cmd
		case "c":
			m.search.SetValue("")
			m.featured = false
			cmd := m.load()
			return m, cmd
		case "r":
			cmd := m.load()
			return m, cmd
		case "a":
			if item, ok := m.list.SelectedItem().(productItem); ok {
				return m, m.addToCart(item.product)
			}
			return m, nil
		case "enter":
			if item, ok := m.list.SelectedItem().(productItem); ok {
				return m, func() tea.Msg {
					return navigateMsg{route: RouteProductDetail, productID: item.product.ID}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateSearch handles keys while the search input owns focus.
func (m productsModel) updateSearch(msg tea.KeyMsg) (productsModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		cmd := m.load()
		return m, cmd
	case tea.KeyEsc:
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// addToCart adds one unit of the product through the cart store, which
// writes through the backend and reloads.
func (m productsModel) addToCart(p models.Product) tea.Cmd {
	store := m.opts.Cart
	return func() tea.Msg {
		err := store.AddItem(context.Background(), &p, 1)
		return cartActionMsg{name: p.Name, err: err}
	}
}

func (m productsModel) view() string {
	theme := m.opts.Theme

	toolbar := "Search: " + m.search.View()
	if m.featured {
		toolbar += "  " + theme.Badge.Render("[featured only]")
	}
	toolbar += "\n" + theme.Muted.Render("/ search  f featured  c clear  a add to cart  enter details  r retry")

	if m.loading {
		return toolbar + "\n\n" + m.spin.View() + " Loading products…"
	}
	if m.errText != "" {
		return toolbar + "\n\n" + theme.Error.Render(m.errText) + "\n" + theme.Muted.Render("press r to retry")
	}
	if m.loaded && len(m.list.Items()) == 0 {
		// A search that misses reads differently from a bare catalog.
		if m.searchUsed {
			return toolbar + "\n\n" + theme.Muted.Render(emptySearchMessage)
		}
		return toolbar + "\n\n" + theme.Muted.Render(emptyCatalogMessage)
	}

	s := toolbar + "\n\n" + m.list.View()
	if m.statusText != "" {
		s += "\n" + m.statusText
	}
	return s
}
