package enums

import "testing"

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"admin", "manager"} {
		role, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", raw, err)
		}
		if role.String() != raw {
			t.Fatalf("expected role %q, got %q", raw, role)
		}
	}

	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("expected unknown role to fail")
	}
	if _, err := ParseRole(""); err == nil {
		t.Fatal("expected empty role to fail")
	}
}

func TestDefaultRoleIsValid(t *testing.T) {
	if !DefaultRole.IsValid() {
		t.Fatalf("default role %q must be part of the enum", DefaultRole)
	}
}

func TestParseApplicationStatus(t *testing.T) {
	for _, raw := range []string{"new", "in_progress", "completed", "rejected"} {
		status, err := ParseApplicationStatus(raw)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", raw, err)
		}
		if !status.IsValid() {
			t.Fatalf("parsed status %q reported invalid", status)
		}
	}

	if _, err := ParseApplicationStatus("bogus"); err == nil {
		t.Fatal("expected unknown status to fail")
	}
}

func TestApplicationStatusesOrder(t *testing.T) {
	statuses := ApplicationStatuses()
	if len(statuses) != 4 {
		t.Fatalf("expected 4 statuses, got %d", len(statuses))
	}
	if statuses[0] != ApplicationStatusNew {
		t.Fatalf("expected stats order to start with new, got %q", statuses[0])
	}
}
