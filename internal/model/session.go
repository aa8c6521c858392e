package model

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Permission is a capability tag derived from a role at login time.
type Permission string

const (
	PermissionAll        Permission = "all"
	PermissionAdminPanel Permission = "admin-panel"
	PermissionAnalytics  Permission = "analytics"
	PermissionUsers      Permission = "users"
	PermissionReports    Permission = "reports"
)

// Session is the in-memory record of the currently authenticated admin
// actor. At most one exists per process; the auth gate is its only writer.
type Session struct {
	Identity    string       `json:"identity"`
	Name        string       `json:"name,omitempty"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
	LoginTime   time.Time    `json:"loginTime"`
	LoggedIn    bool         `json:"-"`
	// Persisted is false when the session store write failed at login.
	// The session is still live; it just will not survive a restart.
	Persisted bool `json:"-"`
}

// Can reports whether the session carries the given permission. The "all"
// tag grants everything.
func (s Session) Can(p Permission) bool {
	for _, have := range s.Permissions {
		if have == PermissionAll || have == p {
			return true
		}
	}
	return false
}

// PermissionsForRole derives the fixed permission set for a role. The
// mapping is set once at login and never edited afterward.
func PermissionsForRole(r Role) []Permission {
	if r == RoleSuperAdmin {
		return []Permission{PermissionAll}
	}
	return []Permission{PermissionAdminPanel, PermissionAnalytics, PermissionUsers, PermissionReports}
}
