package tui

import (
	"testing"

	"github.com/shopfront/shopfront/internal/session"
)

func TestGuardLoadingBeforeInitialization(t *testing.T) {
	t.Parallel()

	routes := []Route{RouteLogin, RouteProducts, RouteProductDetail, RouteCart, RouteOrders, RouteProfile}
	for _, phase := range []session.Phase{session.PhaseUninitialized, session.PhaseInitializing} {
		for _, route := range routes {
			if got := Guard(phase, route); got != DecisionLoading {
				t.Errorf("Guard(%v, %v) = %v, want DecisionLoading", phase, route, got)
			}
		}
	}
}

func TestGuardAnonymous(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route Route
		want  Decision
	}{
		{RouteLogin, DecisionRender},
		{RouteProducts, DecisionRedirectLogin},
		{RouteProductDetail, DecisionRedirectLogin},
		{RouteCart, DecisionRedirectLogin},
		{RouteOrders, DecisionRedirectLogin},
		{RouteProfile, DecisionRedirectLogin},
	}
	for _, tt := range tests {
		if got := Guard(session.PhaseAnonymous, tt.route); got != tt.want {
			t.Errorf("Guard(anonymous, %v) = %v, want %v", tt.route, got, tt.want)
		}
	}
}

func TestGuardAuthenticated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route Route
		want  Decision
	}{
		{RouteLogin, DecisionRedirectProducts},
		{RouteProducts, DecisionRender},
		{RouteProductDetail, DecisionRender},
		{RouteCart, DecisionRender},
		{RouteOrders, DecisionRender},
		{RouteProfile, DecisionRender},
	}
	for _, tt := range tests {
		if got := Guard(session.PhaseAuthenticated, tt.route); got != tt.want {
			t.Errorf("Guard(authenticated, %v) = %v, want %v", tt.route, got, tt.want)
		}
	}
}

func TestRouteProtected(t *testing.T) {
	t.Parallel()

	if RouteLogin.Protected() {
		t.Error("login route must not require authentication")
	}
	for _, route := range []Route{RouteProducts, RouteProductDetail, RouteCart, RouteOrders, RouteProfile} {
		if !route.Protected() {
			t.Errorf("%v must require authentication", route)
		}
	}
}
