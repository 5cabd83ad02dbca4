// ABOUTME: Tests for the durable credential store
// ABOUTME: Covers roundtrip, corrupt files, and clearing

package token

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsNil(t *testing.T) {
	s := New(t.TempDir())

	cred, err := s.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cred != nil {
		t.Errorf("expected nil credential for missing file, got %+v", cred)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	saved := &Credential{
		Token: "tok-123",
		User:  Identity{Name: "Ada", Role: "admin"},
	}
	if err := s.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected credential, got nil")
	}
	if loaded.Token != "tok-123" {
		t.Errorf("expected token tok-123, got %q", loaded.Token)
	}
	if loaded.User.Name != "Ada" || loaded.User.Role != "admin" {
		t.Errorf("unexpected identity: %+v", loaded.User)
	}
}

func TestSaveUsesOwnerOnlyPermissions(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.Save(&Credential{Token: "tok"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "credentials.json"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected permissions 0600, got %o", perm)
	}
}

func TestCorruptFileTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "credentials.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s := New(dir)
	cred, err := s.Load()
	if err != nil {
		t.Fatalf("Load returned error for corrupt file: %v", err)
	}
	if cred != nil {
		t.Errorf("expected nil credential for corrupt file, got %+v", cred)
	}
}

func TestEmptyTokenTreatedAsAbsent(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Save(&Credential{Token: ""}); err != nil {
		t.Fatal(err)
	}

	cred, err := s.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cred != nil {
		t.Errorf("expected nil credential for empty token, got %+v", cred)
	}
}

func TestClearRemovesCredential(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Save(&Credential{Token: "tok"}); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	cred, _ := s.Load()
	if cred != nil {
		t.Errorf("expected nil credential after Clear, got %+v", cred)
	}

	// Clearing again must not fail.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestTokenAccessor(t *testing.T) {
	s := New(t.TempDir())

	if tok := s.Token(); tok != "" {
		t.Errorf("expected empty token when anonymous, got %q", tok)
	}

	if err := s.Save(&Credential{Token: "tok-9"}); err != nil {
		t.Fatal(err)
	}
	if tok := s.Token(); tok != "tok-9" {
		t.Errorf("expected tok-9, got %q", tok)
	}
}
