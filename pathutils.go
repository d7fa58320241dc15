package main

import (
	"path/filepath"
	"strings"
)

// ToInternalPath converts an OS path into the canonical form used for glob
// matching and for every path handed back to callers: cleaned, with forward
// slashes regardless of host conventions.
// Examples:
// - "C:\\project\\src\\file.ts" -> "C:/project/src/file.ts"
// - "/project/src/../lib/" -> "/project/lib"
func ToInternalPath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// ToOSPath converts an internal forward-slash path back to the OS-native
// representation for os.* calls.
func ToOSPath(internal string) string {
	if internal == "" {
		return ""
	}
	return filepath.FromSlash(internal)
}

// NormalizeGlobPattern normalizes glob pattern separators to forward slashes.
func NormalizeGlobPattern(pattern string) string {
	return strings.ReplaceAll(pattern, `\`, "/")
}

// AbsFrom resolves p against base unless p is already absolute.
func AbsFrom(base, p string) string {
	p = ToOSPath(p)
	if filepath.IsAbs(p) {
		return ToInternalPath(p)
	}
	return ToInternalPath(filepath.Join(ToOSPath(base), p))
}

// IsPathWithin reports whether p equals dir or lies below it. Both are
// compared in internal form so "packages/a" does not contain "packages/ab".
func IsPathWithin(dir, p string) bool {
	dir = ToInternalPath(dir)
	p = ToInternalPath(p)
	if dir == "" {
		return false
	}
	if p == dir {
		return true
	}
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return strings.HasPrefix(p, dir)
}
