package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopfront/internal/util"
	"shopfront/pkg/domain"
)

// Client calls the storefront backend over HTTP. Privileged endpoints
// take the caller's bearer token per call; the client holds no
// credential state of its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a backend error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient constructs a backend client with the default 5s timeout.
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 5*time.Second)
}

// NewClientWithTimeout constructs a backend client with an explicit
// request timeout.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListProducts fetches the full catalog. The timestamp query parameter
// defeats intermediary caches, mirroring the browser client.
func (c *Client) ListProducts() ([]domain.Product, error) {
	path := fmt.Sprintf("/products?timestamp=%d", time.Now().UnixMilli())
	var products []domain.Product
	if err := c.doJSON(http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories fetches the distinct category names.
func (c *Client) ListCategories() ([]string, error) {
	var categories []string
	if err := c.doJSON(http.MethodGet, "/products/categories", "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct adds a catalog entry.
func (c *Client) CreateProduct(token string, p domain.Product) (domain.Product, error) {
	var created domain.Product
	if err := c.doJSON(http.MethodPost, "/products", token, p, &created); err != nil {
		return domain.Product{}, err
	}
	return created, nil
}

// UpdateProduct replaces a catalog entry's fields.
func (c *Client) UpdateProduct(token, id string, p domain.Product) (domain.Product, error) {
	var updated domain.Product
	path := "/products/" + id
	if err := c.doJSON(http.MethodPut, path, token, p, &updated); err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(token, id string) error {
	return c.doJSON(http.MethodDelete, "/products/"+id, token, nil, nil)
}

// Login exchanges credentials for a bearer token and user identity.
func (c *Client) Login(email, password string) (string, domain.User, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.doJSON(http.MethodPost, "/auth/login", "", payload, &resp); err != nil {
		return "", domain.User{}, err
	}
	return resp.Token, resp.User, nil
}

// Register creates an account. The backend issues no token here; the
// caller logs in afterwards.
func (c *Client) Register(email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	return c.doJSON(http.MethodPost, "/auth/register", "", payload, nil)
}

// GetCart fetches the authoritative cart for the token's user.
func (c *Client) GetCart(token string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := c.doJSON(http.MethodGet, "/cart", token, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddToCart adds quantity units of a product; returns the new cart.
func (c *Client) AddToCart(token, productID string, quantity int) ([]domain.CartLine, error) {
	payload := map[string]any{"productId": productID, "quantity": quantity}
	var lines []domain.CartLine
	if err := c.doJSON(http.MethodPost, "/cart/add", token, payload, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateQuantity sets a line's quantity; returns the new cart.
func (c *Client) UpdateQuantity(token, productID string, quantity int) ([]domain.CartLine, error) {
	payload := map[string]any{"productId": productID, "quantity": quantity}
	var lines []domain.CartLine
	if err := c.doJSON(http.MethodPost, "/cart/update-quantity", token, payload, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// RemoveFromCart deletes a line; returns the new cart.
func (c *Client) RemoveFromCart(token, productID string) ([]domain.CartLine, error) {
	payload := map[string]string{"productId": productID}
	var lines []domain.CartLine
	if err := c.doJSON(http.MethodPost, "/cart/remove", token, payload, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// ClearCart empties the cart; returns the (empty) new cart.
func (c *Client) ClearCart(token string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := c.doJSON(http.MethodDelete, "/cart", token, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) doJSON(method, path, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	url := c.baseURL + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", util.NewRequestID())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
