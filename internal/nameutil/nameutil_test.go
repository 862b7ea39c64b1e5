package nameutil

import "testing"

func TestValidateName(t *testing.T) {
	if err := ValidateName("update-deploy"); err != nil {
		t.Fatalf("expected valid name, got: %v", err)
	}
	if err := ValidateName("  "); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := ValidateName("bad\x00name"); err == nil {
		t.Fatalf("expected error for control character")
	}
}

func TestSanitizeName(t *testing.T) {
	got, changed := SanitizeName("  push-data\u200B ")
	if got != "push-data" {
		t.Fatalf("expected sanitized name, got %q", got)
	}
	if !changed {
		t.Fatalf("expected changed=true")
	}

	got, changed = SanitizeName("clean")
	if got != "clean" || changed {
		t.Fatalf("expected untouched name, got %q changed=%v", got, changed)
	}
}
