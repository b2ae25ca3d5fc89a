package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/internal/cart"
	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/session"
	"github.com/shopfront/shopfront/internal/tui"
)

// testDeps wires full dependencies against a fake backend and a temp
// credential dir, and installs them for the duration of the test.
func testDeps(t *testing.T, handler http.Handler) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	creds := session.NewFileCredentialStore(t.TempDir())
	if err := creds.Save("test-token"); err != nil {
		t.Fatalf("seed credential: %v", err)
	}
	client := api.NewClient(server.URL, server.Client(), creds.Current, logger)

	prev := deps
	SetDeps(&Dependencies{
		Settings:    config.NewDefaultConfig(),
		Credentials: creds,
		API:         client,
		Session:     session.NewStore(creds, client, logger),
		Cart:        cart.NewStore(client, logger),
		Theme:       tui.NewTheme(true),
		Logger:      logger,
	})
	t.Cleanup(func() { SetDeps(prev) })
}

// runCommand executes the root command with args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestProductsCommandListsCatalog(t *testing.T) {
	testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"products": []map[string]any{
					{"id": "p1", "name": "Desk", "price": 100.0, "stock": 9},
					{"id": "p2", "name": "Lamp", "price": 25.5, "stock": 2},
				},
			},
		})
	}))

	out, err := runCommand(t, "products")
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	for _, want := range []string{"Desk", "Lamp", "only 2 left"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProductsCommandSearchMiss(t *testing.T) {
	testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "widget" {
			t.Errorf("search query = %q, want widget", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"products": []any{}},
		})
	}))

	out, err := runCommand(t, "products", "--search", "widget")
	if err != nil {
		t.Fatalf("products --search: %v", err)
	}
	if !strings.Contains(out, `No products match "widget".`) {
		t.Errorf("output %q missing the search-specific empty message", out)
	}
}

func TestProductCommandNotFound(t *testing.T) {
	testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Product not found"})
	}))

	out, err := runCommand(t, "product", "nope")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if !strings.Contains(out, "Product not found.") {
		t.Errorf("output %q missing the not-found message", out)
	}
}

func TestOrdersCommandEmpty(t *testing.T) {
	testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))

	out, err := runCommand(t, "orders")
	if err != nil {
		t.Fatalf("orders: %v", err)
	}
	if !strings.Contains(out, "You have no orders yet.") {
		t.Errorf("output %q missing the empty-history message", out)
	}
}

func TestCartSetReloadsAfterMutation(t *testing.T) {
	var updated bool
	testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/cart/p1":
			updated = true
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
		case r.Method == http.MethodGet && r.URL.Path == "/cart":
			items := []map[string]any{}
			if updated {
				items = append(items, map[string]any{
					"product":  map[string]any{"id": "p1", "name": "Desk", "price": 100.0, "stock": 9},
					"quantity": 3,
				})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"items": items}})
		default:
			http.NotFound(w, r)
		}
	}))

	out, err := runCommand(t, "cart", "set", "p1", "3")
	if err != nil {
		t.Fatalf("cart set: %v", err)
	}
	if !updated {
		t.Fatal("backend never saw the quantity update")
	}
	if !strings.Contains(out, "x3") {
		t.Errorf("output %q missing the reloaded quantity", out)
	}
}

func TestWhoamiWithoutSession(t *testing.T) {
	testDeps(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unexpected call", http.StatusInternalServerError)
	}))
	// Drop the seeded credential so initialization lands anonymous.
	if err := deps.Credentials.Clear(); err != nil {
		t.Fatalf("clear credential: %v", err)
	}

	out, err := runCommand(t, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "Not signed in") {
		t.Errorf("output %q missing the signed-out message", out)
	}
}
