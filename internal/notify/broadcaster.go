package notify

import (
	"sync"
	"time"

	"shopfront/pkg/domain"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Broadcaster holds at most one visible notification. A new Show
// replaces whatever is visible and restarts the dismiss timer; there
// is no queueing or stacking. One instance is shared by all
// components, passed in explicitly.
type Broadcaster struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     uint64
	current *domain.Notification
}

// New constructs a broadcaster with the default 3s dismiss timer.
func New() *Broadcaster {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL constructs a broadcaster with an explicit dismiss timer.
func NewWithTTL(ttl time.Duration) *Broadcaster {
	return &Broadcaster{ttl: ttl}
}

// Show displays a notification, replacing the current one. The dismiss
// timer belongs to this call: an older Show's timer never clears a
// newer notification.
func (b *Broadcaster) Show(message string, kind domain.NotificationKind) {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.current = &domain.Notification{Message: message, Kind: kind}
	b.mu.Unlock()

	time.AfterFunc(b.ttl, func() {
		b.mu.Lock()
		if b.seq == seq {
			b.current = nil
		}
		b.mu.Unlock()
	})
}

// Success shows a success notification, the storefront's default kind.
func (b *Broadcaster) Success(message string) {
	b.Show(message, domain.KindSuccess)
}

// Error shows an error notification.
func (b *Broadcaster) Error(message string) {
	b.Show(message, domain.KindError)
}

// Current returns the visible notification, if any.
func (b *Broadcaster) Current() (domain.Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return domain.Notification{}, false
	}
	return *b.current, true
}
