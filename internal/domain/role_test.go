package domain

import "testing"

func TestAuthority(t *testing.T) {
	if got := RoleUser.Authority(); got != "ROLE_USER" {
		t.Fatalf("Authority: got %q", got)
	}
	if got := RoleService.Authority(); got != "ROLE_SERVICE" {
		t.Fatalf("Authority: got %q", got)
	}
}

func TestAuthoritiesRoundTrip_PreservesOrder(t *testing.T) {
	roles := []Role{RoleAdmin, RoleUser, RoleService}

	wire := Authorities(roles)
	want := []string{"ROLE_ADMIN", "ROLE_USER", "ROLE_SERVICE"}
	for i := range want {
		if wire[i] != want[i] {
			t.Fatalf("Authorities order: got %v want %v", wire, want)
		}
	}

	back := RolesFromAuthorities(wire)
	for i := range roles {
		if back[i] != roles[i] {
			t.Fatalf("round trip order: got %v want %v", back, roles)
		}
	}
}

func TestRoleFromAuthority_UnknownPreserved(t *testing.T) {
	if got := RoleFromAuthority("ROLE_AUDITOR"); got != Role("AUDITOR") {
		t.Fatalf("unknown authority: got %q", got)
	}
	// a value without the prefix passes through unchanged
	if got := RoleFromAuthority("AUDITOR"); got != Role("AUDITOR") {
		t.Fatalf("unprefixed authority: got %q", got)
	}
}
