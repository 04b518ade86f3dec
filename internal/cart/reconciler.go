package cart

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"shopfront/internal/apiclient"
	"shopfront/internal/notify"
	"shopfront/pkg/domain"
)

// State names the reconciler's position in its lifecycle.
type State string

const (
	StateEmpty    State = "empty"
	StateLoaded   State = "loaded"
	StateMutating State = "mutating"
	StateError    State = "error"
)

var (
	// ErrAuthRequired is returned when a cart operation is attempted
	// without a token. No request is issued.
	ErrAuthRequired = errors.New("login required")
	// ErrClosed is returned for operations dispatched after Close.
	ErrClosed = errors.New("cart reconciler closed")
)

// TokenSource supplies the bearer token for cart calls.
type TokenSource interface {
	Token() string
}

// Reconciler keeps the local cart consistent with the server. Each
// mutation waits for the authoritative cart in the response and
// replaces local state wholesale; no partial deltas are merged. A
// failed mutation leaves local state at the last loaded snapshot.
// Mutations are serialized per cart, so a later dispatch can never
// land before an earlier one.
type Reconciler struct {
	api      *apiclient.Client
	sessions TokenSource
	notifier *notify.Broadcaster

	// mutateMu is the per-cart single-flight queue.
	mutateMu sync.Mutex

	mu     sync.Mutex
	state  State
	lines  []domain.CartLine
	closed bool
}

// New constructs a reconciler in the Empty state.
func New(api *apiclient.Client, sessions TokenSource, notifier *notify.Broadcaster) *Reconciler {
	return &Reconciler{
		api:      api,
		sessions: sessions,
		notifier: notifier,
		state:    StateEmpty,
	}
}

// Refresh fetches the authoritative cart. Unlike mutations it raises
// no notification when logged out; the view renders the login prompt.
func (r *Reconciler) Refresh() error {
	token := r.sessions.Token()
	if token == "" {
		return ErrAuthRequired
	}
	lines, err := r.api.GetCart(token)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err != nil {
		slog.Error("fetch cart failed", "err", err)
		return err
	}
	r.lines = lines
	r.state = StateLoaded
	return nil
}

// Add puts quantity units of a product in the cart.
func (r *Reconciler) Add(productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	err := r.mutate("Failed to add product to cart.", func(token string) ([]domain.CartLine, error) {
		return r.api.AddToCart(token, productID, quantity)
	})
	if err == nil {
		r.notifier.Success(fmt.Sprintf("%d item(s) added to cart!", quantity))
	}
	return err
}

// UpdateQuantity sets a line's quantity. Dropping below 1 removes the
// line instead; a non-positive quantity is never put on the wire.
func (r *Reconciler) UpdateQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return r.Remove(productID)
	}
	return r.mutate("Failed to update quantity.", func(token string) ([]domain.CartLine, error) {
		return r.api.UpdateQuantity(token, productID, quantity)
	})
}

// Remove deletes a line from the cart.
func (r *Reconciler) Remove(productID string) error {
	err := r.mutate("Failed to remove item.", func(token string) ([]domain.CartLine, error) {
		return r.api.RemoveFromCart(token, productID)
	})
	if err == nil {
		// The storefront styles removal toasts red.
		r.notifier.Error("Item removed from cart.")
	}
	return err
}

// Clear empties the cart.
func (r *Reconciler) Clear() error {
	return r.mutate("Failed to clear cart.", func(token string) ([]domain.CartLine, error) {
		return r.api.ClearCart(token)
	})
}

// mutate runs one serialized mutation: token check, Mutating state,
// the network call, then either wholesale replacement on success or
// reversion to the prior snapshot plus an error notification. A
// response that lands after Close is discarded without touching state.
func (r *Reconciler) mutate(failMsg string, call func(token string) ([]domain.CartLine, error)) error {
	token := r.sessions.Token()
	if token == "" {
		r.notifier.Error("Please log in to add items to your cart.")
		return ErrAuthRequired
	}

	r.mutateMu.Lock()
	defer r.mutateMu.Unlock()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.state = StateMutating
	r.mu.Unlock()

	lines, err := call(token)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err != nil {
		// lines keep the last loaded snapshot; only the state moves.
		r.state = StateError
		slog.Error("cart mutation failed", "err", err)
		r.notifier.Error(failMsg)
		return err
	}
	r.lines = lines
	r.state = StateLoaded
	return nil
}

// Close marks the consumer torn down. In-flight responses are
// discarded on arrival; later operations return ErrClosed.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// State returns the reconciler's current lifecycle state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Lines returns the last known authoritative cart.
func (r *Reconciler) Lines() []domain.CartLine {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.CartLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// Total returns the formatted cart total.
func (r *Reconciler) Total() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return FormatTotal(r.lines)
}

// FormatTotal sums price times quantity over the lines, formatted to
// two decimal places. Lines whose product reference did not resolve
// are skipped; an empty or fully malformed cart totals "0.00".
func FormatTotal(lines []domain.CartLine) string {
	var total float64
	for _, line := range lines {
		if line.Product.ID == "" {
			continue
		}
		total += line.Product.Price * float64(line.Quantity)
	}
	return strconv.FormatFloat(total, 'f', 2, 64)
}
