package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestParseAdminList(t *testing.T) {
	raw := "admin@propamit.com:" + mustHash(t, "admin123") + ":System Administrator," +
		"support@propamit.com:" + mustHash(t, "support123") + ":Support Administrator"

	list, err := ParseAdminList(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if list.Len() != 2 {
		t.Fatalf("expected 2 admins, got %d", list.Len())
	}
	if !list.Contains("admin@propamit.com") || !list.Contains("support@propamit.com") {
		t.Fatalf("configured admins missing from list")
	}
	if list.Contains("ghost@propamit.com") {
		t.Fatalf("unknown email reported as admin")
	}
}

func TestParseAdminList_Empty(t *testing.T) {
	list, err := ParseAdminList("  ")
	if err != nil {
		t.Fatalf("empty list must parse: %v", err)
	}
	if list.Len() != 0 {
		t.Fatalf("expected empty list, got %d entries", list.Len())
	}
}

func TestParseAdminList_Malformed(t *testing.T) {
	for _, raw := range []string{"no-colons", "email-only:", ":hash:name"} {
		if _, err := ParseAdminList(raw); err == nil {
			t.Fatalf("ParseAdminList(%q) must fail", raw)
		}
	}
}

func TestAdminList_Authenticate(t *testing.T) {
	list, err := ParseAdminList("admin@propamit.com:" + mustHash(t, "admin123") + ":System Administrator")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	admin, ok := list.Authenticate("admin@propamit.com", "admin123")
	if !ok {
		t.Fatalf("valid credentials rejected")
	}
	if admin.Name != "System Administrator" {
		t.Fatalf("unexpected admin name %q", admin.Name)
	}

	if _, ok := list.Authenticate("admin@propamit.com", "wrong"); ok {
		t.Fatalf("wrong password accepted")
	}
	if _, ok := list.Authenticate("ghost@propamit.com", "admin123"); ok {
		t.Fatalf("unknown email accepted")
	}
}
