// ABOUTME: Tests for the session lifecycle
// ABOUTME: Covers login persistence, failures, logout, and startup routing

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/token"
)

func newTestSession(t *testing.T, handler http.Handler) (*Session, *token.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := token.New(t.TempDir())
	client := api.New(srv.URL, store, 0)
	return New(store, client), store
}

func loginHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"token":"tok-1","user":{"name":"Ada","role":"admin"}}`))
	})
}

func TestNewSessionIsUnknown(t *testing.T) {
	sess, _ := newTestSession(t, loginHandler(t))
	if sess.State() != StateUnknown {
		t.Errorf("expected StateUnknown before Init, got %v", sess.State())
	}
}

func TestInitWithoutCredential(t *testing.T) {
	sess, _ := newTestSession(t, loginHandler(t))
	sess.Init()
	if sess.State() != StateAnonymous {
		t.Errorf("expected StateAnonymous, got %v", sess.State())
	}
}

func TestInitWithStoredCredential(t *testing.T) {
	sess, store := newTestSession(t, loginHandler(t))
	if err := store.Save(&token.Credential{
		Token: "tok-old",
		User:  token.Identity{Name: "Ada", Role: "admin"},
	}); err != nil {
		t.Fatal(err)
	}

	sess.Init()
	if sess.State() != StateAuthenticated {
		t.Fatalf("expected StateAuthenticated, got %v", sess.State())
	}
	if id := sess.Identity(); id.Name != "Ada" || id.Role != "admin" {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestLoginPersistsCredential(t *testing.T) {
	sess, store := newTestSession(t, loginHandler(t))
	sess.Init()

	if err := sess.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.State() != StateAuthenticated {
		t.Errorf("expected StateAuthenticated, got %v", sess.State())
	}
	if id := sess.Identity(); id.Name != "Ada" {
		t.Errorf("unexpected identity: %+v", id)
	}

	cred, err := store.Load()
	if err != nil || cred == nil {
		t.Fatalf("expected stored credential, got %v, %v", cred, err)
	}
	if cred.Token != "tok-1" {
		t.Errorf("expected stored token tok-1, got %q", cred.Token)
	}
}

func TestLoginFailureLeavesStateUnchanged(t *testing.T) {
	sess, store := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	sess.Init()

	err := sess.Login(context.Background(), "ada@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("expected server message, got %q", err.Error())
	}
	if sess.State() != StateAnonymous {
		t.Errorf("expected StateAnonymous after failed login, got %v", sess.State())
	}
	if cred, _ := store.Load(); cred != nil {
		t.Errorf("expected no stored credential, got %+v", cred)
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	sess, store := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok"}`))
	}))
	sess.Init()

	if err := sess.Register(context.Background(), "Ada", "ada@example.com", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if sess.State() != StateAnonymous {
		t.Errorf("expected StateAnonymous after register, got %v", sess.State())
	}
	if cred, _ := store.Load(); cred != nil {
		t.Errorf("register must not persist a credential, got %+v", cred)
	}
}

func TestLogoutClearsCredential(t *testing.T) {
	sess, store := newTestSession(t, loginHandler(t))
	sess.Init()
	if err := sess.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatal(err)
	}

	sess.Logout()
	if sess.State() != StateAnonymous {
		t.Errorf("expected StateAnonymous after logout, got %v", sess.State())
	}
	if sess.Identity() != (token.Identity{}) {
		t.Errorf("expected zero identity after logout, got %+v", sess.Identity())
	}
	if cred, _ := store.Load(); cred != nil {
		t.Errorf("expected cleared store, got %+v", cred)
	}
}

func TestExpireBehavesLikeLogout(t *testing.T) {
	sess, store := newTestSession(t, loginHandler(t))
	sess.Init()
	if err := sess.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatal(err)
	}

	sess.Expire()
	if sess.State() != StateAnonymous {
		t.Errorf("expected StateAnonymous after expire, got %v", sess.State())
	}
	if cred, _ := store.Load(); cred != nil {
		t.Errorf("expected cleared store after expire, got %+v", cred)
	}
}
