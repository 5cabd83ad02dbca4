// ABOUTME: Tests for the alerts screen
// ABOUTME: Covers local search filtering and the per-row acknowledge guard

package alerts

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/storesync/console/internal/api"
)

const alertsBody = `[
	{"_id":"a1","date":"2026-08-30T10:00:00Z","item":{"_id":"i1","name":"USB Cable"},"message":"Low stock for USB Cable","status":"unread"},
	{"_id":"a2","date":"2026-08-29T10:00:00Z","item":{"_id":"i2","name":"HDMI Cable"},"message":"Low stock for HDMI Cable","status":"read"}
]`

func newTestModel(t *testing.T, handler http.Handler) *Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(api.New(srv.URL, nil, 0))
}

func TestSearchFiltersLocally(t *testing.T) {
	var listCalls atomic.Int32
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		w.Write([]byte(alertsBody))
	}))
	m.Update(m.Init()())

	if len(m.visible) != 2 {
		t.Fatalf("expected 2 visible alerts, got %d", len(m.visible))
	}

	m.search.SetValue("hdmi")
	m.rebuildRows()

	if len(m.visible) != 1 || m.visible[0].ID != "a2" {
		t.Errorf("expected only the HDMI alert visible, got %+v", m.visible)
	}
	if calls := listCalls.Load(); calls != 1 {
		t.Errorf("search must not trigger a fetch; server saw %d calls", calls)
	}

	m.search.SetValue("")
	m.rebuildRows()
	if len(m.visible) != 2 {
		t.Errorf("expected all alerts visible after clearing search, got %d", len(m.visible))
	}
}

func TestAcknowledgeSkipsReadAlerts(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(alertsBody))
	}))
	m.Update(m.Init()())

	// Second row is already read.
	m.table.SetCursor(1)
	if cmd := m.acknowledgeSelected(); cmd != nil {
		t.Error("acknowledging a read alert must be a no-op")
	}
}

func TestAcknowledgeGuardsInFlight(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(alertsBody))
	}))
	m.Update(m.Init()())

	m.table.SetCursor(0)
	first := m.acknowledgeSelected()
	if first == nil {
		t.Fatal("expected acknowledge command for unread alert")
	}
	if !m.acking["a1"] {
		t.Error("expected a1 marked in flight")
	}

	if second := m.acknowledgeSelected(); second != nil {
		t.Error("a second acknowledge while in flight must be a no-op")
	}
}

func TestAcknowledgeFailureClearsInFlightRow(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(alertsBody))
	}))
	m.Update(m.Init()())

	m.table.SetCursor(0)
	if cmd := m.acknowledgeSelected(); cmd == nil {
		t.Fatal("expected acknowledge command")
	}
	if m.table.Rows()[0][3] != "marking..." {
		t.Fatalf("expected in-flight status rendered, got %q", m.table.Rows()[0][3])
	}

	m.Update(ackDoneMsg{id: "a1", err: &api.Error{Status: http.StatusInternalServerError, Message: "boom"}})

	if m.acking["a1"] {
		t.Error("expected in-flight flag cleared on failure")
	}
	if m.ackErr != "boom" {
		t.Errorf("expected failure message surfaced, got %q", m.ackErr)
	}
	if got := m.table.Rows()[0][3]; got != "unread" {
		t.Errorf("expected row status restored after failure, got %q", got)
	}
}

func TestAcknowledgeSuccessRefetches(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(alertsBody))
	}))
	m.Update(m.Init()())

	m.table.SetCursor(0)
	cmd := m.acknowledgeSelected()
	msg := cmd().(ackDoneMsg)
	if msg.err != nil {
		t.Fatalf("acknowledge failed: %v", msg.err)
	}

	_, next := m.Update(msg)
	if m.acking["a1"] {
		t.Error("expected in-flight flag cleared")
	}
	if next == nil {
		t.Error("a successful acknowledge must trigger a re-fetch")
	}
}
