// ABOUTME: Generic fetch/filter/mutate/re-fetch controller for data screens
// ABOUTME: Discards stale responses so the latest issued request always wins

package syncer

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListFunc fetches the collection with the given filters.
type ListFunc[R any] func(ctx context.Context, filters map[string]string) ([]R, error)

// FetchedMsg carries one list response back into the update loop. Seq
// identifies which issued request it answers.
type FetchedMsg[R any] struct {
	Seq  int
	Rows []R
	Err  error
}

// Failure exposes the error of a result message so the root model can
// intercept authorization failures without knowing the row type.
func (m FetchedMsg[R]) Failure() error { return m.Err }

// MutationDoneMsg reports a completed write operation.
type MutationDoneMsg struct {
	Err error
}

// Failure implements the same interception hook as FetchedMsg.
func (m MutationDoneMsg) Failure() error { return m.Err }

// Failer is any result message carrying a possible failure.
type Failer interface {
	Failure() error
}

// Mutate wraps a write operation in a command.
func Mutate(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return MutationDoneMsg{Err: fn(context.Background())}
	}
}

// Syncer holds a filtered snapshot of one remote collection. The
// snapshot is never patched locally: every successful mutation is
// followed by a full re-fetch, and only the response of the most
// recently issued fetch is kept.
type Syncer[R any] struct {
	list    ListFunc[R]
	filters map[string]string
	rows    []R
	seq     int
	loading bool
	listErr string
}

// New creates a synchronizer around the given list function.
func New[R any](list ListFunc[R]) *Syncer[R] {
	return &Syncer[R]{
		list:    list,
		filters: make(map[string]string),
	}
}

// Rows returns the current snapshot.
func (s *Syncer[R]) Rows() []R { return s.rows }

// Loading reports whether a fetch is in flight.
func (s *Syncer[R]) Loading() bool { return s.loading }

// Err returns the visible list-level error, empty when healthy.
func (s *Syncer[R]) Err() string { return s.listErr }

// Filter returns the current value for one filter key.
func (s *Syncer[R]) Filter(key string) string { return s.filters[key] }

// SetFilter updates one filter field and issues a re-fetch. Empty
// values drop the key entirely so it is never sent as a wildcard.
func (s *Syncer[R]) SetFilter(key, value string) tea.Cmd {
	if value == "" {
		delete(s.filters, key)
	} else {
		s.filters[key] = value
	}
	return s.Fetch()
}

// ClearFilters drops every filter and issues a single re-fetch.
func (s *Syncer[R]) ClearFilters() tea.Cmd {
	s.filters = make(map[string]string)
	return s.Fetch()
}

// Fetch issues a list request with a snapshot of the current filters.
// The returned command is tagged with a sequence number so a response
// that arrives after a later request was issued is discarded.
func (s *Syncer[R]) Fetch() tea.Cmd {
	s.seq++
	s.loading = true

	seq := s.seq
	filters := make(map[string]string, len(s.filters))
	for k, v := range s.filters {
		filters[k] = v
	}
	list := s.list

	return func() tea.Msg {
		rows, err := list(context.Background(), filters)
		return FetchedMsg[R]{Seq: seq, Rows: rows, Err: err}
	}
}

// Apply folds a fetch result into the snapshot. Stale responses are
// dropped and reported as false. A failed fetch sets the list error
// and leaves the previous snapshot untouched.
func (s *Syncer[R]) Apply(msg FetchedMsg[R]) bool {
	if msg.Seq != s.seq {
		return false
	}
	s.loading = false
	if msg.Err != nil {
		s.listErr = msg.Err.Error()
		return true
	}
	s.listErr = ""
	s.rows = msg.Rows
	return true
}
