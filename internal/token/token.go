// ABOUTME: Durable credential store for the storesync console
// ABOUTME: Persists the bearer token and identity in the XDG config directory

package token

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Identity is the user captured at login time.
type Identity struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Credential is the persisted session state: the bearer token plus the
// identity it was issued to. Absent means unauthenticated.
type Credential struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// Store reads and writes the credential file. It performs no network
// calls and no validation; it is purely storage.
type Store struct {
	configDir string
}

// New creates a store rooted at the given config directory.
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

func (s *Store) credentialFile() string {
	return filepath.Join(s.configDir, "credentials.json")
}

// Load returns the stored credential, or nil if none is stored.
// A corrupt file is treated as absent rather than surfaced.
func (s *Store) Load() (*Credential, error) {
	data, err := os.ReadFile(s.credentialFile())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, nil
	}
	if cred.Token == "" {
		return nil, nil
	}
	return &cred, nil
}

// Save writes the credential with owner-only permissions.
func (s *Store) Save(cred *Credential) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.credentialFile(), data, 0600)
}

// Clear removes the credential file. A missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.credentialFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Token returns the stored bearer token, or "" when unauthenticated.
// It satisfies the transport's token source.
func (s *Store) Token() string {
	cred, err := s.Load()
	if err != nil || cred == nil {
		return ""
	}
	return cred.Token
}
