package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopfront/shopfront/pkg/models"
)

func newTestClient(t *testing.T, handler http.Handler, creds CredentialProvider) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client(), creds, nil)
}

func TestClientAttachesLatestCredential(t *testing.T) {
	t.Parallel()

	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{"items":[]}}`))
	})

	token := "abc123"
	client := newTestClient(t, handler, func() string { return token })

	if _, err := client.Cart(context.Background()); err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer abc123")
	}

	// The provider is consulted per request, so a credential change is
	// visible without rebuilding the client.
	token = "def456"
	if _, err := client.Cart(context.Background()); err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if gotAuth != "Bearer def456" {
		t.Errorf("Authorization after change = %q, want %q", gotAuth, "Bearer def456")
	}

	token = ""
	if _, err := client.Cart(context.Background()); err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after logout = %q, want empty", gotAuth)
	}
}

func TestClientRequestHeaders(t *testing.T) {
	t.Parallel()

	var gotUA, gotRequestID, gotAccept string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	client := newTestClient(t, handler, nil)
	if _, err := client.Orders(context.Background()); err != nil {
		t.Fatalf("Orders() error = %v", err)
	}

	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Errorf("User-Agent = %q, want shopfront version string", gotUA)
	}
	if gotRequestID == "" {
		t.Error("X-Request-Id header missing")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestClientLogin(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"token":"tok-1","user":{"id":"u1","email":"john.doe@example.com","firstName":"John"}}}`))
	})

	client := newTestClient(t, handler, nil)
	token, user, err := client.Login(context.Background(), "john.doe@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token != "tok-1" {
		t.Errorf("token = %q, want tok-1", token)
	}
	if user == nil || user.Email != "john.doe@example.com" {
		t.Errorf("user = %+v, want john.doe@example.com", user)
	}
}

func TestClientProductsQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		query        ProductQuery
		wantSearch   string
		wantFeatured string
	}{
		{"no filters", ProductQuery{}, "", ""},
		{"search only", ProductQuery{Search: "lamp"}, "lamp", ""},
		{"featured only", ProductQuery{Featured: true}, "", "true"},
		{"both", ProductQuery{Search: "lamp", Featured: true}, "lamp", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if got := q.Get("search"); got != tt.wantSearch {
					t.Errorf("search = %q, want %q", got, tt.wantSearch)
				}
				if got := q.Get("featured"); got != tt.wantFeatured {
					t.Errorf("featured = %q, want %q", got, tt.wantFeatured)
				}
				_, _ = w.Write([]byte(`{"data":{"products":[{"id":"p1","name":"Lamp","price":10}]}}`))
			})

			client := newTestClient(t, handler, nil)
			products, err := client.Products(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Products() error = %v", err)
			}
			if len(products) != 1 || products[0].ID != "p1" {
				t.Errorf("products = %+v, want one product p1", products)
			}
		})
	}
}

func TestClientProductNotFound(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Product not found"}`))
	})

	client := newTestClient(t, handler, nil)
	_, err := client.Product(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Product() error = %v, want ErrNotFound", err)
	}
}

func TestClientErrorMessageExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"top-level message", http.StatusUnauthorized, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"nested data message", http.StatusBadRequest, `{"data":{"message":"Quantity must be positive"}}`, "Quantity must be positive"},
		{"no message field", http.StatusInternalServerError, `{"error":true}`, ""},
		{"non-JSON body", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			client := newTestClient(t, handler, nil)
			_, err := client.Orders(context.Background())

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Orders() error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClientCartMutations(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
	}
	var calls []call
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, handler, nil)
	ctx := context.Background()

	if err := client.AddToCart(ctx, "p1", 2); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if err := client.UpdateCartItem(ctx, "p1", 5); err != nil {
		t.Fatalf("UpdateCartItem() error = %v", err)
	}
	if err := client.RemoveFromCart(ctx, "p1"); err != nil {
		t.Fatalf("RemoveFromCart() error = %v", err)
	}
	if err := client.ClearCart(ctx); err != nil {
		t.Fatalf("ClearCart() error = %v", err)
	}

	want := []call{
		{http.MethodPost, "/cart"},
		{http.MethodPut, "/cart/p1"},
		{http.MethodDelete, "/cart/p1"},
		{http.MethodDelete, "/cart"},
	}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(calls), len(want))
	}
	for i, w := range want {
		if calls[i] != w {
			t.Errorf("call %d = %v, want %v", i, calls[i], w)
		}
	}
}

func TestClientCartDecode(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"items":[{"product":{"id":"p1","name":"Lamp","price":19.5},"quantity":3},{"product":null,"quantity":1}]}}`))
	})

	client := newTestClient(t, handler, nil)
	items, err := client.Cart(context.Background())
	if err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	// The client reports the raw server view; the cart store is the layer
	// that filters out lines missing a product.
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Product == nil || items[0].Product.ID != "p1" || items[0].Quantity != 3 {
		t.Errorf("items[0] = %+v, want p1 x3", items[0])
	}
	if items[1].Product != nil {
		t.Errorf("items[1].Product = %+v, want nil", items[1].Product)
	}
}

func TestClientUpdateProfile(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/profile" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"id":"u1","email":"john.doe@example.com","firstName":"Johnny","lastName":"Doe"}}`))
	})

	client := newTestClient(t, handler, nil)
	user, err := client.UpdateProfile(context.Background(), models.ProfileUpdate{FirstName: "Johnny", LastName: "Doe"})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.FirstName != "Johnny" {
		t.Errorf("FirstName = %q, want Johnny", user.FirstName)
	}
}

func TestClientTransportError(t *testing.T) {
	t.Parallel()

	// Point at a closed server to force a transport failure.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, nil, nil, nil)
	_, err := client.Orders(context.Background())
	if err == nil {
		t.Fatal("Orders() against closed server = nil, want error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure should not be an *APIError, got %v", apiErr)
	}
	if got := BackendMessage(err, "Unable to load orders."); got != "Unable to load orders." {
		t.Errorf("BackendMessage() = %q, want fallback", got)
	}
}
