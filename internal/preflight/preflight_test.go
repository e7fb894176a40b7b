package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := CheckDirectoryAccess("Output directory", dir, unix.R_OK|unix.W_OK|unix.X_OK)
	if !result.Passed {
		t.Fatalf("writable temp dir should pass: %s", result.Detail)
	}

	result = CheckDirectoryAccess("Input directory", filepath.Join(dir, "missing"), unix.R_OK)
	if result.Passed {
		t.Fatal("missing directory must fail")
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	result = CheckDirectoryAccess("Input directory", file, unix.R_OK)
	if result.Passed {
		t.Fatal("regular file must fail the directory check")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	result := CheckFreeSpace("Output free space", t.TempDir())
	if result.Detail == "" {
		t.Fatal("expected a detail string")
	}

	result = CheckFreeSpace("Output free space", filepath.Join(t.TempDir(), "missing"))
	if result.Passed {
		t.Fatal("statfs on a missing path must fail")
	}
}

func TestAllPassed(t *testing.T) {
	if !AllPassed([]Result{{Passed: true}, {Passed: true}}) {
		t.Fatal("all passing should report true")
	}
	if AllPassed([]Result{{Passed: true}, {Passed: false}}) {
		t.Fatal("one failure should report false")
	}
	if !AllPassed(nil) {
		t.Fatal("empty set passes vacuously")
	}
}
