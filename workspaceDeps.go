package main

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type WorkspaceDependencyIssueKind string

const (
	UnknownWorkspace WorkspaceDependencyIssueKind = "unknown-workspace"
	InvalidRange     WorkspaceDependencyIssueKind = "invalid-range"
	VersionMismatch  WorkspaceDependencyIssueKind = "version-mismatch"
)

type WorkspaceDependencyIssue struct {
	Package    string
	Dependency string
	Spec       string
	Kind       WorkspaceDependencyIssueKind
	// Version of the target workspace package, for VersionMismatch.
	Version string
}

// CheckWorkspaceDependencies validates every "workspace:" dependency
// declared by the workspace packages. The target must be a workspace
// package and, when a concrete range is given, its version must satisfy it.
func CheckWorkspaceDependencies(monorepo *MonorepoConfig) []WorkspaceDependencyIssue {
	issues := []WorkspaceDependencyIssue{}
	if !monorepo.IsMonorepo() {
		return issues
	}

	for _, pkg := range monorepo.Packages {
		if pkg.Manifest == nil {
			continue
		}
		for _, deps := range []map[string]string{pkg.Manifest.Dependencies, pkg.Manifest.DevDependencies, pkg.Manifest.PeerDependencies} {
			for depName, spec := range deps {
				if issue, ok := checkWorkspaceDependency(monorepo, pkg.Name, depName, spec); !ok {
					issues = append(issues, issue)
				}
			}
		}
	}

	slices.SortFunc(issues, func(a, b WorkspaceDependencyIssue) int {
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}
		return strings.Compare(a.Dependency, b.Dependency)
	})
	return slices.CompactFunc(issues, func(a, b WorkspaceDependencyIssue) bool {
		return a.Package == b.Package && a.Dependency == b.Dependency && a.Spec == b.Spec
	})
}

func checkWorkspaceDependency(monorepo *MonorepoConfig, pkgName, depName, spec string) (WorkspaceDependencyIssue, bool) {
	versionRange, isWorkspace := strings.CutPrefix(spec, workspaceProtocol)
	if !isWorkspace {
		return WorkspaceDependencyIssue{}, true
	}
	issue := WorkspaceDependencyIssue{Package: pkgName, Dependency: depName, Spec: spec}

	// "workspace:other-name@^1.0.0" aliases another workspace package
	targetName := depName
	switch at := strings.LastIndex(versionRange, "@"); {
	case at > 0:
		targetName = versionRange[:at]
		versionRange = versionRange[at+1:]
	case at == 0:
		targetName = versionRange
		versionRange = ""
	}

	target := monorepo.PackageByName(targetName)
	if target == nil {
		issue.Kind = UnknownWorkspace
		return issue, false
	}

	switch versionRange {
	case "", "*", "^", "~":
		return issue, true
	}

	constraint, err := semver.NewConstraint(versionRange)
	if err != nil {
		issue.Kind = InvalidRange
		return issue, false
	}
	version, err := semver.NewVersion(target.Manifest.Version)
	if err != nil || !constraint.Check(version) {
		issue.Kind = VersionMismatch
		issue.Version = target.Manifest.Version
		return issue, false
	}
	return issue, true
}
