package session

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	cookie, err := m.Issue(Identity{Username: "maria", Role: "bhw", Name: "Maria Santos"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cookie.Name != CookieName {
		t.Errorf("expected cookie name %s, got %s", CookieName, cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}

	id, err := m.Parse(cookie.Value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Username != "maria" {
		t.Errorf("expected username maria, got %s", id.Username)
	}
	if id.Role != "bhw" {
		t.Errorf("expected role bhw, got %s", id.Role)
	}
	if id.Name != "Maria Santos" {
		t.Errorf("expected name 'Maria Santos', got %s", id.Name)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	cookie, _ := m.Issue(Identity{Username: "maria", Role: "bhw"})

	other := NewManager("other-secret", time.Hour)
	if _, err := other.Parse(cookie.Value); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParse_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	cookie, _ := m.Issue(Identity{Username: "maria", Role: "bhw"})

	if _, err := m.Parse(cookie.Value); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParse_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	if _, err := m.Parse("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestExpired_ClearsCookie(t *testing.T) {
	cookie := Expired()
	if cookie.Name != CookieName {
		t.Errorf("expected cookie name %s, got %s", CookieName, cookie.Name)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookie.MaxAge)
	}
	if cookie.Value != "" {
		t.Errorf("expected empty value, got %s", cookie.Value)
	}
}
