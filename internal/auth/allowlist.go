package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AdminIdentity is one privileged operator. Admins are not user records:
// they live only in the allow-list supplied at startup.
type AdminIdentity struct {
	Email        string
	Name         string
	PasswordHash string
}

// AdminList is the fixed set of administrator identities. Admin login is a
// pure lookup against this list and never touches the credential store.
type AdminList struct {
	byEmail map[string]AdminIdentity
	// dummyHash absorbs a bcrypt comparison for unknown emails so that
	// lookup misses and password mismatches take comparable time.
	dummyHash string
}

// ParseAdminList parses the ADMIN_CREDENTIALS value: comma-separated
// email:bcrypt-hash:name entries, e.g.
//
//	admin@propamit.com:$2a$12$...:System Administrator
//
// The name is free text; bcrypt hashes contain no colons, so SplitN with a
// limit of 3 is unambiguous. Plaintext passwords never appear in configuration.
func ParseAdminList(raw string) (*AdminList, error) {
	list := &AdminList{byEmail: make(map[string]AdminIdentity)}

	dummy, err := bcrypt.GenerateFromPassword([]byte("propamit-allowlist-dummy"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("admin list: generate dummy hash: %w", err)
	}
	list.dummyHash = string(dummy)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return list, nil
	}

	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("admin list: malformed entry %q", entry)
		}
		email := parts[0]
		if _, dup := list.byEmail[email]; dup {
			return nil, fmt.Errorf("admin list: duplicate email %q", email)
		}
		list.byEmail[email] = AdminIdentity{
			Email:        email,
			PasswordHash: parts[1],
			Name:         parts[2],
		}
	}
	return list, nil
}

// Len returns the number of configured administrators.
func (l *AdminList) Len() int { return len(l.byEmail) }

// Contains reports whether email belongs to a configured administrator.
func (l *AdminList) Contains(email string) bool {
	_, ok := l.byEmail[email]
	return ok
}

// Authenticate checks an (email, password) pair against the list. A bcrypt
// comparison runs even when the email is unknown.
func (l *AdminList) Authenticate(email, password string) (AdminIdentity, bool) {
	admin, ok := l.byEmail[email]
	hash := l.dummyHash
	if ok {
		hash = admin.PasswordHash
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return AdminIdentity{}, false
	}
	return admin, ok
}
