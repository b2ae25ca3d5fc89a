package tui

import "github.com/shopfront/shopfront/internal/session"

// Route identifies a screen in the browser.
type Route int

const (
	RouteLogin Route = iota
	RouteProducts
	RouteProductDetail
	RouteCart
	RouteOrders
	RouteProfile
)

// String implements fmt.Stringer.
func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteProducts:
		return "products"
	case RouteProductDetail:
		return "product"
	case RouteCart:
		return "cart"
	case RouteOrders:
		return "orders"
	case RouteProfile:
		return "profile"
	default:
		return "unknown"
	}
}

// Protected reports whether the route requires an authenticated session.
func (r Route) Protected() bool {
	return r != RouteLogin
}

// Decision is the route guard's verdict for a (phase, route) pair.
type Decision int

const (
	// DecisionLoading renders a placeholder: the session phase is not
	// known yet, so no gating decision can be made.
	DecisionLoading Decision = iota

	// DecisionRedirectLogin sends an unauthenticated visitor to login.
	DecisionRedirectLogin

	// DecisionRedirectProducts sends an authenticated visitor away from
	// the login screen.
	DecisionRedirectProducts

	// DecisionRender renders the requested route.
	DecisionRender
)

// Guard gates a route on the session phase. It is a pure function of the
// two inputs; cart state never influences routing.
func Guard(phase session.Phase, route Route) Decision {
	switch phase {
	case session.PhaseUninitialized, session.PhaseInitializing:
		return DecisionLoading
	case session.PhaseAuthenticated:
		if route == RouteLogin {
			return DecisionRedirectProducts
		}
		return DecisionRender
	default: // PhaseAnonymous
		if route.Protected() {
			return DecisionRedirectLogin
		}
		return DecisionRender
	}
}
