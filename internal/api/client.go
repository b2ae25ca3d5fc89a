// Package api implements the REST client for the storefront backend.
// Every call attaches the latest persisted credential through a
// CredentialProvider looked up at request time, decodes the backend's
// { "data": ... } response envelope, and surfaces backend-reported
// failures as *APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/pkg/models"
	"github.com/shopfront/shopfront/pkg/version"
)

// DefaultTimeout is the per-request timeout applied when the caller does
// not inject an *http.Client of its own.
const DefaultTimeout = 10 * time.Second

// CredentialProvider returns the current bearer credential, or empty when
// no session is active. It is consulted on every request so that a
// credential persisted after client construction is still attached.
type CredentialProvider func() string

// Client talks to the storefront backend.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
	logger  *slog.Logger
}

// NewClient creates a Client for the given base URL (including the API
// prefix, e.g. "http://localhost:3000/api"). Pass a nil httpClient to get
// one with DefaultTimeout; tests pass httptest.Server.Client(). A nil
// creds provider means requests go out unauthenticated.
func NewClient(baseURL string, httpClient *http.Client, creds CredentialProvider, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if creds == nil {
		creds = func() string { return "" }
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{baseURL: baseURL, http: httpClient, creds: creds, logger: logger}
}

// envelope is the backend's standard success wrapper.
type envelope[T any] struct {
	Data T `json:"data"`
}

// errorBody covers both shapes the backend uses for failure messages:
// a top-level "message" and a nested "data.message".
type errorBody struct {
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

// loginData is the payload of a successful login response.
type loginData struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// productsData is the payload of a product listing response.
type productsData struct {
	Products []models.Product `json:"products"`
}

// cartData is the payload of a cart fetch response.
type cartData struct {
	Items []models.CartItem `json:"items"`
}

// ProductQuery holds the supported product listing filters.
type ProductQuery struct {
	Search   string
	Featured bool
}

// Login authenticates with email and password and returns the bearer
// token plus the user profile. It does not persist anything; the session
// store owns the credential lifecycle.
func (c *Client) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var out envelope[loginData]
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return "", nil, err
	}
	return out.Data.Token, out.Data.User, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out envelope[*models.User]
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateProfile sends a profile update and returns the replaced profile
// as reported by the backend.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var out envelope[*models.User]
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, update, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Products lists catalog products, optionally filtered by search term and
// featured flag.
func (c *Client) Products(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	params := url.Values{}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.Featured {
		params.Set("featured", "true")
	}
	var out envelope[productsData]
	if err := c.do(ctx, http.MethodGet, "/products", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Products, nil
}

// Product fetches a single product by id. A 404 maps to ErrNotFound.
func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var out envelope[*models.Product]
	err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, err
	}
	return out.Data, nil
}

// Orders fetches the authenticated user's order history.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out envelope[[]models.Order]
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Cart fetches the server-side cart.
func (c *Client) Cart(ctx context.Context) ([]models.CartItem, error) {
	var out envelope[cartData]
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Items, nil
}

// AddToCart adds quantity units of a product to the cart. The backend
// merges lines by product id; the caller re-fetches to see the result.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"productId": productID, "quantity": quantity}
	return c.do(ctx, http.MethodPost, "/cart", nil, body, nil)
}

// UpdateCartItem sets the quantity of an existing cart line. Quantity
// must be positive; callers translate non-positive quantities into
// RemoveFromCart before reaching this method.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]int{"quantity": quantity}
	return c.do(ctx, http.MethodPut, "/cart/"+url.PathEscape(productID), nil, body, nil)
}

// RemoveFromCart removes a cart line by product id.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(productID), nil, nil, nil)
}

// ClearCart removes every line from the cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil, nil)
}

// do builds, sends, and decodes one request. out may be nil for calls
// whose response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "shopfront/"+version.GetVersion())
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Request-time lookup: the freshest persisted credential wins even if
	// no store observer has run yet.
	if token := c.creds(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode, Message: extractMessage(resp.Body)}
		c.logger.Debug("backend request failed",
			"method", method, "path", path,
			"status", strconv.Itoa(resp.StatusCode), "request_id", requestID)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// extractMessage pulls the human-readable failure message out of an error
// response body, trying both "message" and "data.message". Returns empty
// when neither is present or the body is not JSON.
func extractMessage(r io.Reader) string {
	var body errorBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Data.Message
}
