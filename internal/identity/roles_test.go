package identity

import "testing"

func TestParseRoles(t *testing.T) {
	rs := ParseRoles("buyer, Support,unknown,")
	if !rs.Has(RoleBuyer) {
		t.Error("expected buyer role")
	}
	if !rs.Has(RoleSupport) {
		t.Error("expected support role (case-insensitive)")
	}
	if len(rs) != 2 {
		t.Errorf("expected unknown roles dropped, got %d roles", len(rs))
	}
}

func TestParseRoles_Empty(t *testing.T) {
	if rs := ParseRoles(""); len(rs) != 0 {
		t.Errorf("expected no roles, got %d", len(rs))
	}
}

func TestStaff(t *testing.T) {
	cases := []struct {
		claim string
		staff bool
	}{
		{"buyer", false},
		{"seller", false},
		{"support", true},
		{"admin", true},
		{"buyer,support", true},
	}
	for _, c := range cases {
		if got := ParseRoles(c.claim).Staff(); got != c.staff {
			t.Errorf("Staff(%q) = %v, want %v", c.claim, got, c.staff)
		}
	}
}

func TestStaffRole_AdminWins(t *testing.T) {
	if got := ParseRoles("support,admin").StaffRole(); got != RoleAdmin {
		t.Errorf("StaffRole = %s, want admin", got)
	}
	if got := ParseRoles("support").StaffRole(); got != RoleSupport {
		t.Errorf("StaffRole = %s, want support", got)
	}
}
