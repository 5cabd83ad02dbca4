// ABOUTME: Session lifecycle for the storesync console
// ABOUTME: Owns login/register/logout and the derived current identity

package session

import (
	"context"

	"github.com/storesync/console/internal/api"
	"github.com/storesync/console/internal/token"
)

// State is the session readiness state. Dependents must not act on a
// session that is still StateUnknown.
type State int

const (
	// StateUnknown means the token store has not been consulted yet.
	StateUnknown State = iota
	// StateAnonymous means no credential is held.
	StateAnonymous
	// StateAuthenticated means a credential is held. It may still be
	// rejected by the backend; the first 401/403 expires it.
	StateAuthenticated
)

// Session coordinates the token store and the auth endpoints. It is
// constructed once at startup and injected into dependents; the token
// store is its single mutable shared state and Session is its only
// writer.
type Session struct {
	state    State
	identity token.Identity
	store    *token.Store
	api      *api.Client
}

// New creates a session in StateUnknown. Call Init before use.
func New(store *token.Store, client *api.Client) *Session {
	return &Session{
		state: StateUnknown,
		store: store,
		api:   client,
	}
}

// Init consults the token store. A stored credential moves the session
// straight to StateAuthenticated without a validation round-trip; a
// revoked token is caught reactively by the first 401/403 (see Expire).
func (s *Session) Init() {
	cred, err := s.store.Load()
	if err != nil || cred == nil {
		s.state = StateAnonymous
		return
	}
	s.identity = cred.User
	s.state = StateAuthenticated
}

// State returns the current readiness state.
func (s *Session) State() State {
	return s.state
}

// Identity returns the authenticated identity; zero when anonymous.
func (s *Session) Identity() token.Identity {
	return s.identity
}

// Login authenticates against the backend. The token store is written
// only on success; on failure the state is left unchanged and the
// error is returned for the caller to display.
func (s *Session) Login(ctx context.Context, email, password string) error {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	cred := &token.Credential{
		Token: result.Token,
		User:  token.Identity{Name: result.User.Name, Role: result.User.Role},
	}
	if err := s.store.Save(cred); err != nil {
		return err
	}
	s.identity = cred.User
	s.state = StateAuthenticated
	return nil
}

// Register creates a new account. It does not authenticate the new
// user and never writes the token store.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	return s.api.Register(ctx, name, email, password)
}

// Logout clears the credential and returns to StateAnonymous. It is
// purely local and always succeeds.
func (s *Session) Logout() {
	_ = s.store.Clear()
	s.identity = token.Identity{}
	s.state = StateAnonymous
}

// Expire is the implicit logout taken when the backend rejects the
// credential with a 401/403.
func (s *Session) Expire() {
	s.Logout()
}
