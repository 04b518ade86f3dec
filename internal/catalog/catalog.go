package catalog

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"shopfront/internal/apiclient"
	"shopfront/pkg/domain"
)

// Client caches the remote catalog. Fetch failures leave the prior
// cache intact; catalog staleness is non-fatal and logged only, never
// surfaced as a user-facing notification.
type Client struct {
	api     *apiclient.Client
	fetches singleflight.Group

	mu         sync.Mutex
	inflight   int
	products   []domain.Product
	byID       map[string]domain.Product
	categories []string
}

// New constructs a catalog client with an empty cache.
func New(api *apiclient.Client) *Client {
	return &Client{
		api:  api,
		byID: map[string]domain.Product{},
	}
}

// FetchProducts refreshes the product cache. Concurrent calls share a
// single request. On success the whole mapping is replaced; on failure
// the previous cache stays. Loading reports true from dispatch until
// settle either way.
func (c *Client) FetchProducts() error {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inflight--
		c.mu.Unlock()
	}()

	v, err, _ := c.fetches.Do("products", func() (any, error) {
		return c.api.ListProducts()
	})
	if err != nil {
		slog.Warn("fetch products failed", "err", err)
		return err
	}
	products := v.([]domain.Product)
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	c.mu.Lock()
	c.products = products
	c.byID = byID
	c.mu.Unlock()
	return nil
}

// FetchCategories refreshes the category list, independent of product
// load state.
func (c *Client) FetchCategories() error {
	v, err, _ := c.fetches.Do("categories", func() (any, error) {
		return c.api.ListCategories()
	})
	if err != nil {
		slog.Warn("fetch categories failed", "err", err)
		return err
	}
	c.mu.Lock()
	c.categories = v.([]string)
	c.mu.Unlock()
	return nil
}

// Loading reports whether a product fetch is in flight.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Products returns the cached catalog in server order.
func (c *Client) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ProductByID looks up a cached product.
func (c *Client) ProductByID(id string) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	return p, ok
}

// Categories returns the cached category names.
func (c *Client) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Filter narrows the cached catalog the way the product grid does:
// optional category match plus a price ceiling. maxPrice <= 0 means no
// ceiling.
func (c *Client) Filter(category string, maxPrice float64) []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && p.Category != category {
			continue
		}
		if maxPrice > 0 && p.Price > maxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}
