package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/waypartner/adminpanel/internal/model"
)

// ErrUnauthorized is returned when a credential matches no allow-list entry.
var ErrUnauthorized = errors.New("unauthorized: admin credentials required")

// Credential is the user-supplied proof of identity. The panel uses a
// phone-only scheme: plaintext equality against a fixed allow-list. This is
// an internal-use gate, not a security boundary; there is deliberately no
// hashing, rate limiting, or lockout.
type Credential struct {
	Phone string `json:"phone"`
}

// ResolvedIdentity is the successful outcome of validating a credential.
type ResolvedIdentity struct {
	Name        string
	Identity    string
	Role        model.Role
	Permissions []model.Permission
}

// Allowlist maps admin phone numbers to their roles.
type Allowlist struct {
	entries map[string]entry
}

type entry struct {
	name string
	role model.Role
}

// DefaultAllowlist returns the canonical two-entry allow-list.
func DefaultAllowlist() *Allowlist {
	al := &Allowlist{entries: map[string]entry{}}
	al.Add("8888888888", "Admin User", model.RoleAdmin)
	al.Add("9999999999", "Super Admin", model.RoleSuperAdmin)
	return al
}

// NewAllowlist returns an empty allow-list.
func NewAllowlist() *Allowlist {
	return &Allowlist{entries: map[string]entry{}}
}

func (al *Allowlist) Add(phone, name string, role model.Role) {
	al.entries[strings.TrimSpace(phone)] = entry{name: name, role: role}
}

// Validate resolves a credential to an identity or ErrUnauthorized. Pure
// function over the static allow-list; no side effects.
func (al *Allowlist) Validate(cred Credential) (ResolvedIdentity, error) {
	e, ok := al.entries[strings.TrimSpace(cred.Phone)]
	if !ok {
		return ResolvedIdentity{}, ErrUnauthorized
	}
	return ResolvedIdentity{
		Name:        e.name,
		Identity:    strings.TrimSpace(cred.Phone),
		Role:        e.role,
		Permissions: model.PermissionsForRole(e.role),
	}, nil
}

// NewToken returns a 32-byte cryptographically random hex string.
func NewToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
