package xattrs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a regular file for attribute tests.
func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	return path
}

// TestRemoveAttrMissingFile verifies that a nonexistent path never counts
// as removed, even in dry-run mode.
func TestRemoveAttrMissingFile(t *testing.T) {
	fake := NewFakeBackend()
	missing := filepath.Join(t.TempDir(), "nope.txt")

	if RemoveAttr(fake, missing, "user.Zone.Identifier", false, true) {
		t.Errorf("RemoveAttr on missing file = true, want false")
	}
	if RemoveAttr(fake, missing, "user.Zone.Identifier", true, true) {
		t.Errorf("RemoveAttr on missing file in dry-run = true, want false")
	}
}

// TestRemoveAttrDirectory verifies directories never qualify.
func TestRemoveAttrDirectory(t *testing.T) {
	fake := NewFakeBackend()
	dir := t.TempDir()

	if RemoveAttr(fake, dir, "user.Zone.Identifier", false, true) {
		t.Errorf("RemoveAttr on directory = true, want false")
	}
}

// TestRemoveAttrDryRun verifies dry-run reports success without probing or
// mutating backend state.
func TestRemoveAttrDryRun(t *testing.T) {
	fake := NewFakeBackend()
	path := writeFile(t, t.TempDir(), "file.txt")

	// Dry-run is optimistic: no attribute needs to be present.
	if !RemoveAttr(fake, path, "user.Zone.Identifier", true, true) {
		t.Errorf("RemoveAttr dry-run = false, want true")
	}

	// An attribute that is present must survive a dry run.
	fake.SetAttr(path, "user.Zone.Identifier", "3")
	if !RemoveAttr(fake, path, "user.Zone.Identifier", true, true) {
		t.Errorf("RemoveAttr dry-run with attr present = false, want true")
	}
	if !fake.HasAttr(path, "user.Zone.Identifier") {
		t.Errorf("dry-run removed the attribute")
	}
}

// TestRemoveAttrRealRun verifies probe-then-remove on a present attribute.
func TestRemoveAttrRealRun(t *testing.T) {
	fake := NewFakeBackend()
	path := writeFile(t, t.TempDir(), "file.txt")
	fake.SetAttr(path, "user.Zone.Identifier", "3")
	fake.SetAttr(path, "user.other", "x")

	if !RemoveAttr(fake, path, "user.Zone.Identifier", false, true) {
		t.Fatalf("RemoveAttr = false, want true")
	}
	if fake.HasAttr(path, "user.Zone.Identifier") {
		t.Errorf("attribute still present after removal")
	}
	// Per-name independence: removing one attribute leaves others alone.
	if !fake.HasAttr(path, "user.other") {
		t.Errorf("unrelated attribute was removed")
	}

	// Absent attribute reports false.
	if RemoveAttr(fake, path, "user.Zone.Identifier", false, true) {
		t.Errorf("RemoveAttr on absent attribute = true, want false")
	}
}

// TestRemoveAttrProbeError verifies backend probe failures degrade to
// "attribute absent".
func TestRemoveAttrProbeError(t *testing.T) {
	fake := NewFakeBackend()
	path := writeFile(t, t.TempDir(), "file.txt")
	fake.SetAttr(path, "user.Zone.Identifier", "3")
	fake.ProbeErr = errors.New("backend tool missing")

	if RemoveAttr(fake, path, "user.Zone.Identifier", false, true) {
		t.Errorf("RemoveAttr with failing probe = true, want false")
	}
}

// TestRemoveAttrConfirmRemoval verifies the two success contracts when the
// probe succeeds but removal fails.
func TestRemoveAttrConfirmRemoval(t *testing.T) {
	tests := []struct {
		name           string
		confirmRemoval bool
		want           bool
	}{
		{"confirmed contract reports failure", true, false},
		{"legacy contract reports probe result", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := NewFakeBackend()
			path := writeFile(t, t.TempDir(), "file.txt")
			fake.SetAttr(path, "user.Zone.Identifier", "3")
			fake.RemoveErr = errors.New("operation not permitted")

			got := RemoveAttr(fake, path, "user.Zone.Identifier", false, tt.confirmRemoval)
			if got != tt.want {
				t.Errorf("RemoveAttr(confirmRemoval=%v) = %v, want %v", tt.confirmRemoval, got, tt.want)
			}
		})
	}
}

// TestNoopBackend verifies the no-op variant reports every attribute absent.
func TestNoopBackend(t *testing.T) {
	b := &noopBackend{}

	if b.Supported() {
		t.Errorf("noop backend Supported() = true, want false")
	}
	present, err := b.Probe("/any/path", "user.Zone.Identifier")
	if present || err != nil {
		t.Errorf("noop Probe = (%v, %v), want (false, nil)", present, err)
	}
	if err := b.Remove("/any/path", "user.Zone.Identifier"); err == nil {
		t.Errorf("noop Remove = nil, want error")
	}
}

// TestForPlatform verifies backend selection returns a usable backend on
// every platform.
func TestForPlatform(t *testing.T) {
	b := ForPlatform()
	if b == nil {
		t.Fatalf("ForPlatform() = nil")
	}
	if b.Name() != "native" && b.Name() != "noop" {
		t.Errorf("ForPlatform().Name() = %q, want native or noop", b.Name())
	}
}
