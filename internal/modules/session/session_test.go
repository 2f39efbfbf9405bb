package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// memStore is an in-memory ProfileStore for tests.
type memStore struct {
	mu       sync.Mutex
	profiles map[string]UserProfile
	setErr   error
}

func newMemStore() *memStore {
	return &memStore{profiles: make(map[string]UserProfile)}
}

func (m *memStore) Get(_ context.Context, key string) (UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[key]
	if !ok {
		return UserProfile{}, ErrNoSession
	}
	return p, nil
}

func (m *memStore) Set(_ context.Context, key string, p UserProfile) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	m.profiles[key] = p
	m.mu.Unlock()
	return nil
}

func (m *memStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.profiles, key)
	m.mu.Unlock()
	return nil
}

func userinfoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSignIn_StoresProfile(t *testing.T) {
	srv := userinfoServer(t, http.StatusOK,
		`{"name":"Alice","email":"alice@example.com","picture":"https://img.example/alice.png"}`)

	store := newMemStore()
	svc := NewService(store)
	svc.userinfoURL = srv.URL

	profile, err := svc.SignIn(context.Background(), "session-1", "token-123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if profile.Email != "alice@example.com" || profile.Name != "Alice" {
		t.Errorf("unexpected profile %+v", profile)
	}
	if profile.AccessToken != "token-123" {
		t.Error("access token not retained on the profile")
	}

	stored, err := store.Get(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("profile not stored: %v", err)
	}
	if stored.Email != "alice@example.com" {
		t.Errorf("stored profile %+v", stored)
	}
}

func TestSignIn_UserinfoFailureLeavesSignedOut(t *testing.T) {
	srv := userinfoServer(t, http.StatusUnauthorized, `{"error":"invalid_token"}`)

	store := newMemStore()
	svc := NewService(store)
	svc.userinfoURL = srv.URL

	_, err := svc.SignIn(context.Background(), "session-1", "token-123")
	var aErr *AuthError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if aErr.Stage != "userinfo" {
		t.Errorf("expected userinfo stage, got %q", aErr.Stage)
	}
	if _, err := store.Get(context.Background(), "session-1"); !errors.Is(err, ErrNoSession) {
		t.Error("session must stay signed out after a failed sign-in")
	}
}

func TestSignIn_MissingEmailRejected(t *testing.T) {
	srv := userinfoServer(t, http.StatusOK, `{"name":"Alice"}`)

	svc := NewService(newMemStore())
	svc.userinfoURL = srv.URL

	_, err := svc.SignIn(context.Background(), "session-1", "token-123")
	var aErr *AuthError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if aErr.Stage != "decode" {
		t.Errorf("expected decode stage, got %q", aErr.Stage)
	}
}

func TestSignOut_RevokesAndClears(t *testing.T) {
	revoked := make(chan string, 1)
	revokeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		revoked <- r.FormValue("token")
	}))
	defer revokeSrv.Close()

	store := newMemStore()
	store.profiles["session-1"] = UserProfile{Email: "alice@example.com", AccessToken: "token-123"}

	svc := NewService(store)
	svc.revokeURL = revokeSrv.URL

	if err := svc.SignOut(context.Background(), "session-1"); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	select {
	case tok := <-revoked:
		if tok != "token-123" {
			t.Errorf("revoked token %q, want token-123", tok)
		}
	default:
		t.Error("revoke endpoint was not called")
	}
	if _, err := store.Get(context.Background(), "session-1"); !errors.Is(err, ErrNoSession) {
		t.Error("session not cleared after sign-out")
	}
}

func TestSignOut_RevokeFailureStillClears(t *testing.T) {
	revokeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer revokeSrv.Close()

	store := newMemStore()
	store.profiles["session-1"] = UserProfile{Email: "alice@example.com", AccessToken: "token-123"}

	svc := NewService(store)
	svc.revokeURL = revokeSrv.URL

	if err := svc.SignOut(context.Background(), "session-1"); err != nil {
		t.Fatalf("SignOut must succeed despite a failed revoke, got %v", err)
	}
	if _, err := store.Get(context.Background(), "session-1"); !errors.Is(err, ErrNoSession) {
		t.Error("session not cleared after sign-out")
	}
}

func TestSignOut_NoSessionIsIdempotent(t *testing.T) {
	svc := NewService(newMemStore())
	if err := svc.SignOut(context.Background(), "missing"); err != nil {
		t.Fatalf("signing out a missing session must be a no-op, got %v", err)
	}
}

func TestCurrent(t *testing.T) {
	store := newMemStore()
	store.profiles["session-1"] = UserProfile{Email: "alice@example.com"}
	svc := NewService(store)

	p, err := svc.Current(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if p.Email != "alice@example.com" {
		t.Errorf("unexpected profile %+v", p)
	}
	if _, err := svc.Current(context.Background(), "other"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}
