// ABOUTME: Tests for the login, whoami, and register commands
// ABOUTME: Uses a stub backend and an isolated config directory

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// isolate points the config dir and API URL at test-owned locations and
// resets the flag variables.
func isolate(t *testing.T, handler http.Handler) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		t.Setenv("STORESYNC_API_URL", srv.URL)
	}

	apiURL = ""
	jsonOutput = false
	loginEmail = ""
	loginPassword = ""
	registerName = ""
	registerEmail = ""
	registerPassword = ""
}

func authBackend() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"token":"tok-1","user":{"name":"Ada","role":"admin"}}`))
		case "/auth/register":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func TestRunLoginMissingFlags(t *testing.T) {
	isolate(t, nil)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "--email and --password are required") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunLoginSuccessPersists(t *testing.T) {
	isolate(t, authBackend())
	loginEmail = "ada@example.com"
	loginPassword = "pw"

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Logged in as Ada (admin)") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	// The stored credential must now satisfy whoami.
	buf.Reset()
	if code := runWhoami(&buf); code != 0 {
		t.Fatalf("expected whoami to succeed, got %d", code)
	}
	if !strings.Contains(buf.String(), "Ada (admin)") {
		t.Errorf("unexpected whoami output: %q", buf.String())
	}
}

func TestRunLoginRejected(t *testing.T) {
	isolate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	loginEmail = "ada@example.com"
	loginPassword = "wrong"

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Invalid credentials") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunLoginJSONOutput(t *testing.T) {
	isolate(t, authBackend())
	loginEmail = "ada@example.com"
	loginPassword = "pw"
	jsonOutput = true

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	out := buf.String()
	if !strings.Contains(out, `"status": "ok"`) || !strings.Contains(out, `"name": "Ada"`) {
		t.Errorf("unexpected JSON output: %q", out)
	}
}

func TestRunWhoamiNotLoggedIn(t *testing.T) {
	isolate(t, nil)

	var buf bytes.Buffer
	if code := runWhoami(&buf); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestRunRegisterDoesNotLogin(t *testing.T) {
	isolate(t, authBackend())
	registerName = "Ada"
	registerEmail = "ada@example.com"
	registerPassword = "pw"

	var buf bytes.Buffer
	if code := runRegister(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "You can now login") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	if code := runWhoami(&buf); code != 1 {
		t.Errorf("register must not authenticate; whoami returned %d", code)
	}
}

func TestRunRegisterMissingFlags(t *testing.T) {
	isolate(t, nil)

	var buf bytes.Buffer
	if code := runRegister(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}
