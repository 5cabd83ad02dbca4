// ABOUTME: Tests for the login and registration screens
// ABOUTME: Covers mode switching, failure display, and the submit lockout

package login

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/session"
	"github.com/storesync/console/internal/token"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"token":"tok-1","user":{"name":"Ada","role":"admin"}}`))
		case "/auth/register":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	store := token.New(t.TempDir())
	client := api.New(srv.URL, store, 0)
	sess := session.New(store, client)
	sess.Init()
	return New(sess)
}

func TestStartsInLoginMode(t *testing.T) {
	m := newTestModel(t)
	if m.mode != modeLogin {
		t.Errorf("expected login mode, got %v", m.mode)
	}
	if !strings.Contains(m.View(), "ctrl+r Register") {
		t.Errorf("expected register hint in view: %q", m.View())
	}
}

func TestCtrlRSwitchesToRegister(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != modeRegister {
		t.Fatalf("expected register mode, got %v", m.mode)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeLogin {
		t.Errorf("expected esc to return to login mode, got %v", m.mode)
	}
}

func TestLoginFailureShowsMessage(t *testing.T) {
	m := newTestModel(t)
	m.submitting = true

	m.Update(loginDoneMsg{err: errors.New("Invalid credentials")})

	if m.submitting {
		t.Error("expected submitting cleared after failure")
	}
	if m.errMsg != "Invalid credentials" {
		t.Errorf("expected failure message, got %q", m.errMsg)
	}
	if !strings.Contains(m.View(), "Invalid credentials") {
		t.Error("expected failure message rendered")
	}
}

func TestLoginSuccessEmitsSucceeded(t *testing.T) {
	m := newTestModel(t)
	m.submitting = true

	_, cmd := m.Update(loginDoneMsg{})
	if cmd == nil {
		t.Fatal("expected a command on success")
	}
	if _, ok := cmd().(SucceededMsg); !ok {
		t.Error("expected SucceededMsg emitted on login success")
	}
}

func TestRegisterSuccessRoutesToLoginWithNotice(t *testing.T) {
	m := newTestModel(t)
	m.switchMode(modeRegister)
	m.submitting = true

	m.Update(registerDoneMsg{})

	if m.mode != modeLogin {
		t.Errorf("expected login mode after registration, got %v", m.mode)
	}
	if m.notice != "Registration successful! Please login." {
		t.Errorf("unexpected notice: %q", m.notice)
	}
	if !strings.Contains(m.View(), "Registration successful") {
		t.Error("expected notice rendered on the login screen")
	}
}

func TestRegisterFailureStaysInRegisterMode(t *testing.T) {
	m := newTestModel(t)
	m.switchMode(modeRegister)
	m.submitting = true

	m.Update(registerDoneMsg{err: errors.New("Email already in use")})

	if m.mode != modeRegister {
		t.Errorf("expected register mode kept on failure, got %v", m.mode)
	}
	if m.errMsg != "Email already in use" {
		t.Errorf("expected failure message, got %q", m.errMsg)
	}
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	m := newTestModel(t)
	m.submitting = true

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != modeLogin {
		t.Errorf("mode switch must be locked out while submitting, got %v", m.mode)
	}
	if !strings.Contains(m.View(), "Signing in...") {
		t.Errorf("expected submitting indicator, got %q", m.View())
	}
}
