// Package tui implements the interactive storefront browser: a bubbletea
// application with one screen model per route, gated by the session-phase
// route guard. Screens keep only transient view state (inputs, loading
// and error flags); everything durable lives in the session and cart
// stores.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/internal/cart"
	"github.com/shopfront/shopfront/internal/session"
)

// Options wires the stores and client into the browser.
type Options struct {
	Session  *session.Store
	Cart     *cart.Store
	API      *api.Client
	Theme    Theme
	Currency string
}

// App is the root model. It owns navigation; the active screen handles
// everything else.
type App struct {
	opts  Options
	route Route

	width  int
	height int

	login    loginModel
	products productsModel
	detail   detailModel
	cartView cartModel
	orders   ordersModel
	profile  profileModel

	quitting bool
}

// sessionInitializedMsg reports the phase settled by store initialization.
type sessionInitializedMsg struct {
	phase session.Phase
}

// profileRefreshedMsg reports completion of the lazy profile fetch. The
// result is already in the session store; failures were absorbed there.
type profileRefreshedMsg struct{}

// cartSyncedMsg reports completion of a background cart reload.
type cartSyncedMsg struct{}

// navigateMsg switches the active route. productID is set when the
// target is the product detail screen.
type navigateMsg struct {
	route     Route
	productID string
}

// navigate builds a command that switches routes.
func navigate(route Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

// NewApp creates the browser rooted at the products screen; the guard
// redirects to login until the session allows it.
func NewApp(opts Options) *App {
	return &App{
		opts:     opts,
		route:    RouteProducts,
		login:    newLoginModel(opts),
		products: newProductsModel(opts),
		detail:   newDetailModel(opts),
		cartView: newCartModel(opts),
		orders:   newOrdersModel(opts),
		profile:  newProfileModel(opts),
	}
}

// Init starts session initialization.
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		return sessionInitializedMsg{phase: a.opts.Session.Initialize()}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.products.setSize(msg.Width, msg.Height)
		a.detail.setSize(msg.Width, msg.Height)
		return a, nil

	case sessionInitializedMsg:
		if msg.phase != session.PhaseAuthenticated {
			return a, nil
		}
		// A restored session warms the profile, catalog, and cart in the
		// background.
		return a, tea.Batch(
			a.refreshProfileCmd(),
			a.reloadCartCmd(),
			a.products.load(),
		)

	case profileRefreshedMsg, cartSyncedMsg:
		return a, nil

	case navigateMsg:
		return a.handleNavigate(msg)

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}
	}

	return a.updateActiveScreen(msg)
}

// handleNavigate switches screens and kicks off the target's fetch.
func (a *App) handleNavigate(msg navigateMsg) (tea.Model, tea.Cmd) {
	a.route = msg.route
	switch msg.route {
	case RouteProducts:
		return a, a.products.load()
	case RouteProductDetail:
		a.detail.reset(msg.productID)
		return a, a.detail.load()
	case RouteCart:
		return a, a.reloadCartCmd()
	case RouteOrders:
		return a, a.orders.load()
	case RouteProfile:
		a.profile.populate()
		return a, nil
	default:
		return a, nil
	}
}

// handleGlobalKey processes app-level bindings. Keys are left to the
// active screen while it is capturing text input.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		a.quitting = true
		return tea.Quit, true
	}
	if a.activeScreenTyping() {
		return nil, false
	}

	switch msg.String() {
	case "q":
		a.quitting = true
		return tea.Quit, true
	case "1":
		return navigate(RouteProducts), true
	case "2":
		return navigate(RouteCart), true
	case "3":
		return navigate(RouteOrders), true
	case "4":
		return navigate(RouteProfile), true
	case "L":
		if a.opts.Session.Phase() == session.PhaseAuthenticated {
			_ = a.opts.Session.Logout()
			return navigate(RouteLogin), true
		}
	}
	return nil, false
}

// updateActiveScreen forwards the message to whichever screen the guard
// says should be visible.
func (a *App) updateActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.visibleRoute() {
	case RouteLogin:
		a.login, cmd = a.login.update(msg)
	case RouteProducts:
		a.products, cmd = a.products.update(msg)
	case RouteProductDetail:
		a.detail, cmd = a.detail.update(msg)
	case RouteCart:
		a.cartView, cmd = a.cartView.update(msg)
	case RouteOrders:
		a.orders, cmd = a.orders.update(msg)
	case RouteProfile:
		a.profile, cmd = a.profile.update(msg)
	}
	return a, cmd
}

// visibleRoute applies the route guard to the requested route.
func (a *App) visibleRoute() Route {
	switch Guard(a.opts.Session.Phase(), a.route) {
	case DecisionRedirectLogin:
		return RouteLogin
	case DecisionRedirectProducts:
		return RouteProducts
	default:
		return a.route
	}
}

// activeScreenTyping reports whether the visible screen currently owns a
// focused text input, in which case global single-letter keys stay out of
// the way.
func (a *App) activeScreenTyping() bool {
	switch a.visibleRoute() {
	case RouteLogin:
		return true // the login screen is all form
	case RouteProducts:
		return a.products.searching()
	case RouteCart:
		return a.cartView.editing()
	case RouteProfile:
		return a.profile.editing()
	default:
		return false
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	if Guard(a.opts.Session.Phase(), a.route) == DecisionLoading {
		return a.opts.Theme.Muted.Render("Loading…") + "\n"
	}

	var body string
	switch a.visibleRoute() {
	case RouteLogin:
		body = a.login.view()
	case RouteProducts:
		body = a.products.view()
	case RouteProductDetail:
		body = a.detail.view()
	case RouteCart:
		body = a.cartView.view()
	case RouteOrders:
		body = a.orders.view()
	case RouteProfile:
		body = a.profile.view()
	}

	return body + "\n" + a.statusBar() + "\n"
}

// statusBar renders the navbar equivalent: brand, navigation hints, cart
// badge, and the signed-in user.
func (a *App) statusBar() string {
	theme := a.opts.Theme
	parts := []string{theme.Title.Render("Marketplace")}

	if a.opts.Session.Phase() == session.PhaseAuthenticated {
		parts = append(parts, theme.Muted.Render("[1] products  [2] cart  [3] orders  [4] profile  [L] logout  [q] quit"))
		if count := a.opts.Cart.ItemCount(); count > 0 {
			parts = append(parts, theme.Badge.Render(fmt.Sprintf("Cart (%d)", count)))
		}
		if user := a.opts.Session.User(); user != nil {
			parts = append(parts, theme.Muted.Render("Hi, "+user.DisplayName()))
		}
	} else {
		parts = append(parts, theme.Muted.Render("[q] quit"))
	}

	return theme.StatusBar.Render(strings.Join(parts, "  •  "))
}

// refreshProfileCmd fetches the profile in the background.
func (a *App) refreshProfileCmd() tea.Cmd {
	return func() tea.Msg {
		_ = a.opts.Session.RefreshProfile(context.Background())
		return profileRefreshedMsg{}
	}
}

// reloadCartCmd refreshes the cart store in the background. Reload never
// reports errors; the store keeps its last-known-good state.
func (a *App) reloadCartCmd() tea.Cmd {
	return func() tea.Msg {
		_ = a.opts.Cart.Reload(context.Background())
		return cartSyncedMsg{}
	}
}
