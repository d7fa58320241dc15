package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type WorkspaceType string

const (
	WorkspaceNone      WorkspaceType = "none"
	WorkspacePnpm      WorkspaceType = "pnpm"
	WorkspaceNpm       WorkspaceType = "npm"
	WorkspaceYarn      WorkspaceType = "yarn"
	WorkspaceTurborepo WorkspaceType = "turborepo"
)

const (
	packageJsonFile   = "package.json"
	pnpmWorkspaceFile = "pnpm-workspace.yaml"
	turboConfigFile   = "turbo.json"
)

// PackageJson holds the manifest fields the resolver and the workspace
// dependency check read. Absent fields stay zero.
type PackageJson struct {
	Name             string
	Version          string
	Main             string
	Module           string
	Dependencies     map[string]string
	DevDependencies  map[string]string
	PeerDependencies map[string]string
	Workspaces       json.RawMessage
}

type WorkspacePackage struct {
	Name     string
	Path     string
	Manifest *PackageJson
}

// MonorepoConfig is built once per run by DetectMonorepo and only read
// afterwards, so it can be shared across goroutines without locking.
type MonorepoConfig struct {
	Type     WorkspaceType
	Root     string
	Packages []WorkspacePackage
}

func (cfg *MonorepoConfig) IsMonorepo() bool {
	return cfg != nil && cfg.Type != WorkspaceNone
}

// PackageByName returns the first package whose manifest name equals name.
func (cfg *MonorepoConfig) PackageByName(name string) *WorkspacePackage {
	if cfg == nil || name == "" {
		return nil
	}
	for i := range cfg.Packages {
		pkg := &cfg.Packages[i]
		if pkg.Manifest != nil && pkg.Manifest.Name == name {
			return pkg
		}
	}
	return nil
}

// DetectMonorepo classifies rootDir and indexes its workspace packages.
// The first matching marker wins: pnpm-workspace.yaml, then turbo.json,
// then a "workspaces" field in the root package.json. Unreadable or
// malformed files degrade to an empty package list; detection never fails.
func DetectMonorepo(rootDir string) *MonorepoConfig {
	root := AbsFrom(mustGetwd(), rootDir)
	cfg := &MonorepoConfig{
		Type:     WorkspaceNone,
		Root:     root,
		Packages: []WorkspacePackage{},
	}

	pnpmWorkspacePath := path.Join(root, pnpmWorkspaceFile)
	if fileExists(pnpmWorkspacePath) {
		cfg.Type = WorkspacePnpm
		if patterns, err := readPnpmWorkspacePatterns(pnpmWorkspacePath); err == nil {
			cfg.Packages = expandWorkspacePatterns(root, patterns)
		}
		return cfg
	}

	if fileExists(path.Join(root, turboConfigFile)) {
		cfg.Type = WorkspaceTurborepo
		if _, patterns, err := readRootWorkspaces(root); err == nil {
			cfg.Packages = expandWorkspacePatterns(root, patterns)
		}
		return cfg
	}

	if workspaceType, patterns, err := readRootWorkspaces(root); err == nil {
		cfg.Type = workspaceType
		cfg.Packages = expandWorkspacePatterns(root, patterns)
	}
	return cfg
}

func mustGetwd() string {
	cwd, _ := os.Getwd()
	return cwd
}

func readPnpmWorkspacePatterns(workspacePath string) ([]string, error) {
	content, err := os.ReadFile(ToOSPath(workspacePath))
	if err != nil {
		return nil, err
	}
	var pnpmWorkspace struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(content, &pnpmWorkspace); err != nil {
		return nil, err
	}
	return pnpmWorkspace.Packages, nil
}

var errNoWorkspaces = errors.New("package.json declares no workspaces")

// readRootWorkspaces reads the root manifest's "workspaces" field. A list
// means npm, anything else that is set (typically {"packages": [...]})
// means yarn.
func readRootWorkspaces(root string) (WorkspaceType, []string, error) {
	manifest, err := readPackageJson(path.Join(root, packageJsonFile))
	if err != nil {
		return WorkspaceNone, nil, err
	}
	return parseWorkspacesField(manifest.Workspaces)
}

func parseWorkspacesField(raw json.RawMessage) (WorkspaceType, []string, error) {
	raw = bytes.TrimSpace(raw)
	if isUnsetJsonValue(raw) {
		return WorkspaceNone, nil, errNoWorkspaces
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return WorkspaceNpm, stringEntries(list), nil
	}

	var obj struct {
		Packages []json.RawMessage `json:"packages"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return WorkspaceYarn, stringEntries(obj.Packages), nil
	}
	return WorkspaceYarn, nil, nil
}

// isUnsetJsonValue mirrors a falsy "workspaces" value: absent, null, false,
// 0 or an empty string.
func isUnsetJsonValue(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}

func stringEntries(list []json.RawMessage) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// packageJsonFields is the on-disk shape. Every field stays raw so a
// manifest with an unexpected value type still yields its other fields.
type packageJsonFields struct {
	Name             json.RawMessage `json:"name"`
	Version          json.RawMessage `json:"version"`
	Main             json.RawMessage `json:"main"`
	Module           json.RawMessage `json:"module"`
	Dependencies     json.RawMessage `json:"dependencies"`
	DevDependencies  json.RawMessage `json:"devDependencies"`
	PeerDependencies json.RawMessage `json:"peerDependencies"`
	Workspaces       json.RawMessage `json:"workspaces"`
}

func readPackageJson(manifestPath string) (*PackageJson, error) {
	content, err := os.ReadFile(ToOSPath(manifestPath))
	if err != nil {
		return nil, err
	}
	return parsePackageJson(content)
}

func parsePackageJson(content []byte) (*PackageJson, error) {
	var fields packageJsonFields
	if err := json.Unmarshal(jsonc.ToJSON(content), &fields); err != nil {
		return nil, err
	}
	return &PackageJson{
		Name:             rawString(fields.Name),
		Version:          rawString(fields.Version),
		Main:             rawString(fields.Main),
		Module:           rawString(fields.Module),
		Dependencies:     rawStringMap(fields.Dependencies),
		DevDependencies:  rawStringMap(fields.DevDependencies),
		PeerDependencies: rawStringMap(fields.PeerDependencies),
		Workspaces:       fields.Workspaces,
	}, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func rawStringMap(raw json.RawMessage) map[string]string {
	var entries map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return nil
	}
	out := make(map[string]string, len(entries))
	for key, value := range entries {
		if s := rawString(value); s != "" {
			out[key] = s
		}
	}
	return out
}

// expandWorkspacePatterns turns workspace patterns into packages, in
// pattern order. Negations ("!x") are dropped. A pattern containing "*"
// only lists the immediate subdirectories of its first path segment; any
// other pattern names a single package directory.
func expandWorkspacePatterns(root string, patterns []string) []WorkspacePackage {
	packages := []WorkspacePackage{}

	for _, pattern := range patterns {
		pattern = NormalizeGlobPattern(strings.TrimSpace(pattern))
		if pattern == "" || strings.HasPrefix(pattern, "!") {
			continue
		}

		if strings.Contains(pattern, "*") {
			baseDir := strings.Split(pattern, "/")[0]
			basePath := path.Join(root, baseDir)
			entries, err := os.ReadDir(ToOSPath(basePath))
			if err != nil {
				continue
			}
			for _, entry := range entries {
				entryPath := path.Join(basePath, entry.Name())
				if !isDir(entryPath) {
					continue
				}
				if pkg, ok := loadWorkspacePackage(root, entryPath, entry.Name()); ok {
					packages = append(packages, pkg)
				}
			}
			continue
		}

		if pkg, ok := loadWorkspacePackage(root, path.Join(root, pattern), pattern); ok {
			packages = append(packages, pkg)
		}
	}

	return packages
}

func loadWorkspacePackage(root, dir, fallbackName string) (WorkspacePackage, bool) {
	dir = ToInternalPath(dir)
	if !IsPathWithin(root, dir) {
		return WorkspacePackage{}, false
	}
	manifest, err := readPackageJson(path.Join(dir, packageJsonFile))
	if err != nil {
		return WorkspacePackage{}, false
	}
	name := manifest.Name
	if name == "" {
		name = fallbackName
	}
	return WorkspacePackage{Name: name, Path: dir, Manifest: manifest}, true
}

// FindPackageForFile returns the first package, in list order, whose
// directory contains filePath. Nested packages are not disambiguated.
func FindPackageForFile(filePath string, cfg *MonorepoConfig) *WorkspacePackage {
	if cfg == nil {
		return nil
	}
	for i := range cfg.Packages {
		if IsPathWithin(cfg.Packages[i].Path, filePath) {
			return &cfg.Packages[i]
		}
	}
	return nil
}
