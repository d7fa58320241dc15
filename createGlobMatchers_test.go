package main

import (
	"testing"
)

func TestIgnoreMatchers(t *testing.T) {
	root := "/fs/root/"

	tests := []struct {
		name     string
		pattern  string
		filePath string
		want     bool
	}{
		{"directory with dot and trailing slash in root dir", ".next/", "/fs/root/.next/static/file.js", true},
		{"directory with dot without slash in root dir", ".next", "/fs/root/.next/static/file.js", true},
		{"directory with dot without trailing slash in sub dir", ".next", "/fs/root/sub/sub2/.next/static/file.js", true},
		{"directory with dot with trailing slash in sub dir", ".next/", "/fs/root/sub/sub2/.next/static/file.js", true},
		{"plain name matches node_modules at any depth", "node_modules", "/fs/root/packages/a/node_modules/lib/index.js", true},
		{"filename in root dir", "file.js", "/fs/root/file.js", true},
		{"filename in sub dir", "file.js", "/fs/root/sub/sub2/file.js", true},
		{"double star matches file in root dir", "**/*.log", "/fs/root/data.log", true},
		{"double star matches file in sub dir", "**/*.log", "/fs/root/data/sub/file.log", true},
		{"leading ./ is ignored", "./dist/", "/fs/root/dist/index.js", true},
		{"backslashes are normalized", `dist\*`, "/fs/root/dist/index.js", true},
		{"nested dir/file pattern without wildcards is anchored", "bin/file", "/fs/root/data/bin/file", false},
		{"plain name does not match part of a name", "logs", "/fs/root/data/my-logs", false},
		{"plain name does not match a prefix of a directory", "dist", "/fs/root/distribution/index.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchers := CreateIgnoreMatchers([]string{tt.pattern}, root)
			if got := matchers.Matches(tt.filePath); got != tt.want {
				t.Errorf(`pattern %q on %q: got %v, want %v`, tt.pattern, tt.filePath, got, tt.want)
			}
		})
	}
}

func TestIgnoreMatchersSkipInvalidPatterns(t *testing.T) {
	matchers := CreateIgnoreMatchers([]string{"[", "", "  ", "dist"}, "/fs/root")
	if len(matchers) != 1 {
		t.Fatalf("expected only the valid pattern to compile, got %d matchers", len(matchers))
	}
	if !matchers.Matches("/fs/root/dist/a.js") {
		t.Errorf("expected dist to be ignored")
	}
}

func TestEmptyIgnoreMatchersMatchNothing(t *testing.T) {
	var matchers IgnoreMatchers
	if matchers.Matches("/fs/root/anything.ts") {
		t.Errorf("expected no match")
	}
}
