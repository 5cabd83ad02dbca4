// ABOUTME: Tests for the analytics fan-out
// ABOUTME: All four aggregates must resolve; the first failure wins

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestFetchAnalyticsMergesAllFour(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()

		switch r.URL.Path {
		case "/analytics/total-stock":
			w.Write([]byte(`{"totalStock":142}`))
		case "/analytics/fast-moving":
			w.Write([]byte(`[{"_id":"i1","name":"USB Cable","movements":9}]`))
		case "/analytics/slow-moving":
			w.Write([]byte(`null`))
		case "/analytics/reliable-suppliers":
			w.Write([]byte(`[{"_id":"s1","name":"Acme","reliability":4.5}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil, 0)
	result, err := c.FetchAnalytics(context.Background())
	if err != nil {
		t.Fatalf("FetchAnalytics failed: %v", err)
	}

	if result.TotalStock != 142 {
		t.Errorf("expected total stock 142, got %d", result.TotalStock)
	}
	if len(result.FastMoving) != 1 || result.FastMoving[0].Movements != 9 {
		t.Errorf("unexpected fast-moving: %+v", result.FastMoving)
	}
	if result.SlowMoving == nil || len(result.SlowMoving) != 0 {
		t.Errorf("expected normalized empty slow-moving, got %+v", result.SlowMoving)
	}
	if len(result.ReliableSuppliers) != 1 || result.ReliableSuppliers[0].Name != "Acme" {
		t.Errorf("unexpected reliable suppliers: %+v", result.ReliableSuppliers)
	}

	for _, path := range []string{
		"/analytics/total-stock",
		"/analytics/fast-moving",
		"/analytics/slow-moving",
		"/analytics/reliable-suppliers",
	} {
		mu.Lock()
		n := hits[path]
		mu.Unlock()
		if n != 1 {
			t.Errorf("expected 1 hit on %s, got %d", path, n)
		}
	}
}

func TestFetchAnalyticsFailsOnAnyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/analytics/slow-moving" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"aggregation failed"}`))
			return
		}
		if r.URL.Path == "/analytics/total-stock" {
			w.Write([]byte(`{"totalStock":10}`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, 0)
	result, err := c.FetchAnalytics(context.Background())
	if err == nil {
		t.Fatal("expected error when one aggregate fails")
	}
	if result != nil {
		t.Errorf("expected nil result on failure, got %+v", result)
	}
	if err.Error() != "aggregation failed" {
		t.Errorf("expected server message, got %q", err.Error())
	}
}
