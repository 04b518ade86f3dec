package admin

import (
	"errors"
	"log/slog"

	"shopfront/internal/apiclient"
	"shopfront/internal/catalog"
	"shopfront/internal/notify"
	"shopfront/pkg/domain"
)

var (
	// ErrAuthRequired is raised locally when the editor is used
	// without a token; no request is issued.
	ErrAuthRequired = errors.New("authorization denied")
	// ErrInvalidPrice rejects negative prices before dispatch.
	ErrInvalidPrice = errors.New("price must be non-negative")
)

// TokenSource supplies the bearer token for editor calls.
type TokenSource interface {
	Token() string
}

// Editor drives the product management screen's operations. Every
// successful change refetches the catalog so the grid reflects it.
type Editor struct {
	api      *apiclient.Client
	sessions TokenSource
	notifier *notify.Broadcaster
	catalog  *catalog.Client
}

// NewEditor wires the product editor.
func NewEditor(api *apiclient.Client, sessions TokenSource, notifier *notify.Broadcaster, cat *catalog.Client) *Editor {
	return &Editor{api: api, sessions: sessions, notifier: notifier, catalog: cat}
}

// Save creates the product when it has no ID and updates it otherwise.
func (e *Editor) Save(p domain.Product) (domain.Product, error) {
	token := e.sessions.Token()
	if token == "" {
		e.notifier.Error("Authorization denied.")
		return domain.Product{}, ErrAuthRequired
	}
	if p.Price < 0 {
		return domain.Product{}, ErrInvalidPrice
	}

	var saved domain.Product
	var err error
	message := "Product created successfully!"
	if p.ID == "" {
		saved, err = e.api.CreateProduct(token, p)
	} else {
		saved, err = e.api.UpdateProduct(token, p.ID, p)
		message = "Product updated successfully!"
	}
	if err != nil {
		slog.Error("save product failed", "err", err, "id", p.ID)
		e.notifier.Error("Operation failed.")
		return domain.Product{}, err
	}
	e.notifier.Success(message)
	// Refetch failures are already logged by the catalog client.
	_ = e.catalog.FetchProducts()
	return saved, nil
}

// Delete removes a product. A missing selection is a no-op, matching
// the editor screen.
func (e *Editor) Delete(id string) error {
	if id == "" {
		return nil
	}
	token := e.sessions.Token()
	if token == "" {
		e.notifier.Error("Authorization denied.")
		return ErrAuthRequired
	}
	if err := e.api.DeleteProduct(token, id); err != nil {
		slog.Error("delete product failed", "err", err, "id", id)
		e.notifier.Error("Failed to delete product.")
		return err
	}
	// The storefront styles deletion toasts red.
	e.notifier.Error("Product deleted successfully!")
	_ = e.catalog.FetchProducts()
	return nil
}
