package util

import "testing"

func TestNewRequestIDIsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewRequestID()
		if id == "" {
			t.Fatal("empty request id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = struct{}{}
	}
}
