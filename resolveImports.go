package main

import (
	"path"
	"strings"
)

type ResolvedImportKind int8

const (
	// External specifiers name packages outside the project and are never
	// probed on disk.
	External ResolvedImportKind = iota
	LocalFile
	// Unresolved specifiers look local but no matching file exists.
	Unresolved
)

func (kind ResolvedImportKind) String() string {
	switch kind {
	case LocalFile:
		return "local"
	case Unresolved:
		return "unresolved"
	default:
		return "external"
	}
}

type ResolvedImport struct {
	Kind ResolvedImportKind
	// Path is set for LocalFile results.
	Path string
	// Package is the workspace package a workspace import resolved into.
	Package *WorkspacePackage
	// Importer is the workspace package containing the importing file.
	Importer *WorkspacePackage
}

// Probe order matters: the first existing candidate wins.
var (
	directFileExtensions = []string{".ts", ".tsx", ".js", ".jsx", ""}
	indexFileNames       = []string{"index.ts", "index.tsx", "index.js", "index.jsx"}
)

const (
	workspaceProtocol     = "workspace:"
	defaultWorkspaceEntry = "index.js"
)

// ResolveContext bundles the per-run snapshots every resolution reads.
// None of them is mutated after construction.
type ResolveContext struct {
	ProjectRoot string
	Aliases     *AliasMap
	Monorepo    *MonorepoConfig
}

func (rc ResolveContext) Classify(specifier, currentFile string) ResolvedImport {
	return ClassifyImport(specifier, currentFile, rc.ProjectRoot, rc.Aliases, rc.Monorepo)
}

// ResolveFullImportPath returns the file a specifier points at, or false
// when it is external or no file matches.
func ResolveFullImportPath(specifier, currentFile, projectRoot string, aliases *AliasMap, monorepo *MonorepoConfig) (string, bool) {
	resolved := ClassifyImport(specifier, currentFile, projectRoot, aliases, monorepo)
	if resolved.Kind != LocalFile {
		return "", false
	}
	return resolved.Path, true
}

// ClassifyImport runs the resolution steps in order, stopping at the first
// that decides: workspace packages, externality, alias substitution, path
// resolution, then the direct-file and index-file probes.
func ClassifyImport(specifier, currentFile, projectRoot string, aliases *AliasMap, monorepo *MonorepoConfig) ResolvedImport {
	projectRoot = ToInternalPath(projectRoot)
	currentFile = AbsFrom(projectRoot, currentFile)

	var importer *WorkspacePackage
	if monorepo.IsMonorepo() {
		importer = FindPackageForFile(currentFile, monorepo)
		if strings.HasPrefix(specifier, workspaceProtocol) {
			return ResolvedImport{Kind: External, Importer: importer}
		}
		if resolved, pkg, ok := resolveWorkspaceImport(specifier, monorepo); ok {
			return ResolvedImport{Kind: LocalFile, Path: resolved, Package: pkg, Importer: importer}
		}
	}

	if !IsLocalImport(specifier, aliases) {
		return ResolvedImport{Kind: External, Importer: importer}
	}

	substituted, _ := aliases.Substitute(specifier)

	var fullPath string
	switch {
	case strings.HasPrefix(substituted, "."):
		fullPath = AbsFrom(path.Dir(currentFile), substituted)
	case strings.HasPrefix(substituted, "/"):
		fullPath = ToInternalPath(substituted)
	default:
		fullPath = AbsFrom(projectRoot, substituted)
	}

	if found, ok := probeImportFile(fullPath); ok {
		return ResolvedImport{Kind: LocalFile, Path: found, Importer: importer}
	}
	return ResolvedImport{Kind: Unresolved, Importer: importer}
}

// IsLocalImport reports whether a specifier refers to project files: it is
// relative, absolute, "@/"-prefixed, or its first segment is an alias.
func IsLocalImport(specifier string, aliases *AliasMap) bool {
	if strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") || strings.HasPrefix(specifier, "@/") {
		return true
	}
	firstSegment, _, _ := strings.Cut(specifier, "/")
	return aliases.Has(firstSegment)
}

// resolveWorkspaceImport matches a specifier against workspace package
// names in package order. The bare name resolves to the package entry
// (main, then module, then index.js) and "name/sub" to a path below the
// package directory. Entries and subpaths are always joined under the
// package directory, even when they start with "/". The target is not
// checked on disk.
func resolveWorkspaceImport(specifier string, monorepo *MonorepoConfig) (string, *WorkspacePackage, bool) {
	for i := range monorepo.Packages {
		pkg := &monorepo.Packages[i]
		if pkg.Manifest == nil || pkg.Manifest.Name == "" {
			continue
		}
		name := pkg.Manifest.Name

		if specifier == name {
			entry := pkg.Manifest.Main
			if entry == "" {
				entry = pkg.Manifest.Module
			}
			if entry == "" {
				entry = defaultWorkspaceEntry
			}
			return ToInternalPath(path.Join(pkg.Path, entry)), pkg, true
		}

		if subpath, ok := strings.CutPrefix(specifier, name+"/"); ok {
			return ToInternalPath(path.Join(pkg.Path, subpath)), pkg, true
		}
	}
	return "", nil, false
}

// probeImportFile tries the extension candidates as regular files, then the
// index candidates below fullPath. Index candidates only need to exist.
// Any stat failure counts as "does not exist".
func probeImportFile(fullPath string) (string, bool) {
	for _, ext := range directFileExtensions {
		candidate := fullPath + ext
		if isRegularFile(candidate) {
			return candidate, true
		}
	}
	for _, indexName := range indexFileNames {
		candidate := path.Join(fullPath, indexName)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}
