package main

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFiles creates every file of a relative-path -> content fixture below
// root and returns root in internal form.
func writeFiles(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return ToInternalPath(root)
}

// newFixture writes files into a fresh temp dir.
func newFixture(t *testing.T, files map[string]string) string {
	t.Helper()
	return writeFiles(t, t.TempDir(), files)
}
