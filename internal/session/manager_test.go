package session

import (
	"os"
	"path/filepath"
	"testing"

	"shopfront/pkg/domain"
)

func TestLoginIsVisibleImmediatelyAndPersisted(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)

	user := domain.User{ID: "user-1", Email: "u@example.com", Role: domain.RoleUser}
	m.Login("tok-1", user)

	token, got, ok := m.Current()
	if !ok || token != "tok-1" || got != user {
		t.Fatalf("current = %q %+v ok=%v", token, got, ok)
	}

	// The persisted store holds the same values after Login returns.
	pToken, pUser, pOK, err := store.Load()
	if err != nil || !pOK || pToken != "tok-1" || pUser != user {
		t.Fatalf("persisted = %q %+v ok=%v err=%v", pToken, pUser, pOK, err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)
	m.Login("tok-1", domain.User{ID: "user-1"})

	var navigations int
	m.Logout(func() { navigations++ })
	if m.LoggedIn() {
		t.Fatalf("still logged in after logout")
	}
	if _, _, ok, _ := store.Load(); ok {
		t.Fatalf("store not cleared")
	}

	m.Logout(func() { navigations++ })
	if m.LoggedIn() {
		t.Fatalf("logged in after second logout")
	}
	if _, _, ok, _ := store.Load(); ok {
		t.Fatalf("store repopulated by second logout")
	}
	if navigations != 2 {
		t.Fatalf("navigation callback ran %d times", navigations)
	}
}

func TestLogoutWithoutCallback(t *testing.T) {
	m := NewManager(NewMemoryStore())
	m.Logout(nil)
	if m.LoggedIn() {
		t.Fatalf("logged in after logout")
	}
}

func TestManagerHydratesFromPersistedStore(t *testing.T) {
	store := NewMemoryStore()
	user := domain.User{ID: "user-1", Email: "u@example.com", Role: domain.RoleAdmin}
	if err := store.Save("tok-1", user); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	m := NewManager(store)
	token, got, ok := m.Current()
	if !ok || token != "tok-1" || got != user {
		t.Fatalf("hydrated = %q %+v ok=%v", token, got, ok)
	}
}

func TestManagerStartsLoggedOutOnEmptyStore(t *testing.T) {
	m := NewManager(NewMemoryStore())
	if m.LoggedIn() {
		t.Fatalf("expected logged out start")
	}
	if token := m.Token(); token != "" {
		t.Fatalf("token = %q", token)
	}
}

func TestManagerFailsOpenOnMalformedStoreAndClearsIt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte("tok-1"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "user"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write user: %v", err)
	}

	m := NewManager(store)
	if m.LoggedIn() {
		t.Fatalf("expected logged out after malformed store")
	}
	if _, _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("malformed pair not cleared: ok=%v err=%v", ok, err)
	}
}

func TestManagerSurvivesRestartViaFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	user := domain.User{ID: "user-1", Email: "u@example.com", Role: domain.RoleUser}
	NewManager(store).Login("tok-1", user)

	// A fresh manager over the same directory sees the session.
	store2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen file store: %v", err)
	}
	token, got, ok := NewManager(store2).Current()
	if !ok || token != "tok-1" || got != user {
		t.Fatalf("restarted session = %q %+v ok=%v", token, got, ok)
	}
}
