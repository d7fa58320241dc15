package main

import (
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions are used when no extension filter is configured.
var DefaultExtensions = []string{"ts", "tsx", "js", "jsx"}

type DiscoverOptions struct {
	// Root anchors relative targets and ignore patterns. Defaults to the
	// process working directory.
	Root       string
	Extensions []string
	Ignore     []string
}

// IsGlobPattern reports whether target should be used verbatim as a glob
// instead of being treated as a directory.
func IsGlobPattern(target string) bool {
	return strings.ContainsAny(target, "*?")
}

// extensionsGlob builds "*.ts" or "*.{ts,tsx}" from an extension list with
// optional leading dots.
func extensionsGlob(extensions []string) string {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	switch len(exts) {
	case 0:
		return "*"
	case 1:
		return "*." + exts[0]
	default:
		return "*.{" + strings.Join(exts, ",") + "}"
	}
}

// discoveryPattern splits a target into the directory the walk starts from
// and the pattern matched below it.
func discoveryPattern(target string, root string, extensions []string) (base string, pattern string) {
	if !IsGlobPattern(target) {
		return AbsFrom(root, target), "**/" + extensionsGlob(extensions)
	}
	full := NormalizeGlobPattern(target)
	if !path.IsAbs(full) && !isWindowsAbs(full) {
		full = path.Join(ToInternalPath(root), full)
	}
	return doublestar.SplitPattern(full)
}

func isWindowsAbs(p string) bool {
	return len(p) >= 3 && p[1] == ':' && p[2] == '/'
}

// DiscoveryPattern returns the full glob pattern a target expands to.
func DiscoveryPattern(target string, opts DiscoverOptions) string {
	base, pattern := discoveryPattern(target, discoveryRoot(opts), opts.Extensions)
	if base == "." {
		return pattern
	}
	return strings.TrimSuffix(base, "/") + "/" + pattern
}

func discoveryRoot(opts DiscoverOptions) string {
	if opts.Root != "" {
		return opts.Root
	}
	cwd, _ := os.Getwd()
	return cwd
}

// DiscoverFiles expands a directory or glob target into the sorted list of
// regular source files it covers. Dotfiles and dot-directories are skipped
// unless the pattern names them literally, and ignored or hidden
// directories are never descended into. A missing target or a pattern
// matching nothing yields an empty list.
func DiscoverFiles(target string, opts DiscoverOptions) []string {
	root := discoveryRoot(opts)
	base, pattern := discoveryPattern(target, root, opts.Extensions)
	ignore := CreateIgnoreMatchers(opts.Ignore, root)

	files := []string{}
	if !isDir(base) {
		return files
	}

	literalDotSegments := dotSegments(pattern)
	skipDir := func(rel string) bool {
		return hasHiddenSegment(path.Base(rel), literalDotSegments) ||
			ignore.Matches(path.Join(base, rel))
	}
	matches, err := walkPattern(os.DirFS(ToOSPath(base)), pattern, skipDir)
	if err != nil {
		return files
	}

	for _, match := range matches {
		if hasHiddenSegment(match, literalDotSegments) {
			continue
		}
		filePath := ToInternalPath(path.Join(base, match))
		if ignore.Matches(filePath) || !isRegularFile(filePath) {
			continue
		}
		files = append(files, filePath)
	}

	slices.Sort(files)
	return slices.Compact(files)
}

// walkPattern lists the non-directory entries of fsys whose slash-separated
// path matches pattern. Directories for which skipDir reports true are
// pruned. Unreadable subdirectories are skipped.
func walkPattern(fsys fs.FS, pattern string, skipDir func(rel string) bool) ([]string, error) {
	matches := []string{}
	err := fs.WalkDir(fsys, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			if rel == "." {
				return err
			}
			return nil
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if skipDir(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			matches = append(matches, rel)
		}
		return nil
	})
	return matches, err
}

func dotSegments(pattern string) map[string]bool {
	segments := map[string]bool{}
	for _, segment := range strings.Split(pattern, "/") {
		if strings.HasPrefix(segment, ".") && segment != "." && segment != ".." {
			segments[segment] = true
		}
	}
	return segments
}

func hasHiddenSegment(rel string, allowed map[string]bool) bool {
	for _, segment := range strings.Split(rel, "/") {
		if strings.HasPrefix(segment, ".") && !allowed[segment] {
			return true
		}
	}
	return false
}
