package notify

import (
	"testing"
	"time"

	"shopfront/pkg/domain"
)

func TestShowAndAutoDismiss(t *testing.T) {
	b := NewWithTTL(50 * time.Millisecond)
	b.Success("Login successful!")

	n, ok := b.Current()
	if !ok || n.Message != "Login successful!" || n.Kind != domain.KindSuccess {
		t.Fatalf("current = %+v ok=%v", n, ok)
	}

	time.Sleep(120 * time.Millisecond)
	if _, ok := b.Current(); ok {
		t.Fatalf("notification still visible after TTL")
	}
}

func TestNewerNotificationReplacesOlderAndOwnsTheTimer(t *testing.T) {
	b := NewWithTTL(100 * time.Millisecond)
	b.Success("first")
	time.Sleep(60 * time.Millisecond)
	b.Error("second")

	// Only the second is visible.
	n, ok := b.Current()
	if !ok || n.Message != "second" || n.Kind != domain.KindError {
		t.Fatalf("current = %+v ok=%v", n, ok)
	}

	// The first notification's timer fires around t=100ms; the second
	// must survive it and clear on its own timer around t=160ms.
	time.Sleep(60 * time.Millisecond)
	if n, ok := b.Current(); !ok || n.Message != "second" {
		t.Fatalf("second cleared by first's timer: %+v ok=%v", n, ok)
	}
	time.Sleep(100 * time.Millisecond)
	if _, ok := b.Current(); ok {
		t.Fatalf("second notification never cleared")
	}
}

func TestCurrentOnQuietBroadcaster(t *testing.T) {
	b := New()
	if _, ok := b.Current(); ok {
		t.Fatalf("expected no notification")
	}
}
