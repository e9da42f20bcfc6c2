package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"homebook/internal/session"
)

func TestInMemoryStore(t *testing.T) {
	s := session.NewStore("")

	if s.IsAuthenticated() {
		t.Error("expected new store to be unauthenticated")
	}
	if err := s.Set("tok-123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Get() != "tok-123" {
		t.Errorf("expected 'tok-123', got %q", s.Get())
	}
	if !s.IsAuthenticated() {
		t.Error("expected store to be authenticated after Set")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected store to be unauthenticated after Clear")
	}
}

func TestTokenSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "token")

	s := session.NewStore(path)
	if err := s.Set("tok-persist"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	reopened := session.NewStore(path)
	if reopened.Get() != "tok-persist" {
		t.Errorf("expected 'tok-persist' after reopen, got %q", reopened.Get())
	}
}

func TestClearRemovesTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s := session.NewStore(path)
	if err := s.Set("tok"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected token file to be removed")
	}

	if session.NewStore(path).IsAuthenticated() {
		t.Error("expected reopened store to be unauthenticated")
	}
}
