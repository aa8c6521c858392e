package auth

import (
	"errors"
	"testing"

	"github.com/waypartner/adminpanel/internal/model"
)

func TestValidateAdminPhone(t *testing.T) {
	id, err := DefaultAllowlist().Validate(Credential{Phone: "8888888888"})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if id.Role != model.RoleAdmin {
		t.Errorf("expected role %q, got %q", model.RoleAdmin, id.Role)
	}
	if id.Name != "Admin User" {
		t.Errorf("expected name Admin User, got %q", id.Name)
	}
	want := []model.Permission{
		model.PermissionAdminPanel,
		model.PermissionAnalytics,
		model.PermissionUsers,
		model.PermissionReports,
	}
	if len(id.Permissions) != len(want) {
		t.Fatalf("expected %d permissions, got %v", len(want), id.Permissions)
	}
	for i, p := range want {
		if id.Permissions[i] != p {
			t.Errorf("permission %d: expected %q, got %q", i, p, id.Permissions[i])
		}
	}
}

func TestValidateSuperAdminPhone(t *testing.T) {
	id, err := DefaultAllowlist().Validate(Credential{Phone: "9999999999"})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if id.Role != model.RoleSuperAdmin {
		t.Errorf("expected role %q, got %q", model.RoleSuperAdmin, id.Role)
	}
	if len(id.Permissions) != 1 || id.Permissions[0] != model.PermissionAll {
		t.Errorf("expected permissions [all], got %v", id.Permissions)
	}
}

func TestValidateUnknownPhones(t *testing.T) {
	al := DefaultAllowlist()
	for _, phone := range []string{"", "1234567890", "888888888", "88888888880", "admin"} {
		if _, err := al.Validate(Credential{Phone: phone}); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("phone %q: expected ErrUnauthorized, got %v", phone, err)
		}
	}
}

func TestValidateTrimsWhitespace(t *testing.T) {
	id, err := DefaultAllowlist().Validate(Credential{Phone: " 8888888888 "})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if id.Identity != "8888888888" {
		t.Errorf("expected trimmed identity, got %q", id.Identity)
	}
}

func TestNewTokenLengthAndUniqueness(t *testing.T) {
	a, b := NewToken(), NewToken()
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("two tokens should not collide")
	}
}
