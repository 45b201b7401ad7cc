package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temporary directory for testing and returns a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "newestbench-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to remove temp dir: %v", err)
		}
	}

	return dir, cleanup
}

// TempFile returns the path of name inside a fresh temporary directory that
// is removed when the test finishes. The file itself is not created.
func TempFile(t *testing.T, name string) string {
	t.Helper()

	dir, cleanup := TempDir(t)
	t.Cleanup(cleanup)
	return filepath.Join(dir, name)
}
