package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// relativePath shortens p for display; paths outside cwd stay absolute.
func relativePath(p string, cwd string) string {
	rel, err := filepath.Rel(ToOSPath(cwd), ToOSPath(p))
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

func PrintMonorepoBanner(w io.Writer, monorepo *MonorepoConfig) {
	if !monorepo.IsMonorepo() {
		return
	}
	fmt.Fprintln(w, gray(fmt.Sprintf("Detected %s monorepo with %d package(s)", monorepo.Type, len(monorepo.Packages))))
}

func PrintWorkspaces(w io.Writer, monorepo *MonorepoConfig, cwd string) {
	fmt.Fprintf(w, "%s %s\n", bold("Type:"), monorepo.Type)
	fmt.Fprintf(w, "%s %s\n", bold("Root:"), monorepo.Root)
	if len(monorepo.Packages) == 0 {
		fmt.Fprintln(w, gray("No workspace packages found."))
		return
	}
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Package\tPath\tVersion")
	for _, pkg := range monorepo.Packages {
		version := ""
		if pkg.Manifest != nil {
			version = pkg.Manifest.Version
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", pkg.Name, relativePath(pkg.Path, cwd), version)
	}
	tw.Flush()
}

func PrintAliases(w io.Writer, aliases *AliasMap, configPath string, cwd string) {
	if aliases.Len() == 0 {
		fmt.Fprintln(w, gray("No path aliases found."))
		return
	}
	fmt.Fprintf(w, "%s %s\n\n", bold("Aliases from"), relativePath(configPath, cwd))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, alias := range aliases.Keys() {
		target, _ := aliases.Get(alias)
		fmt.Fprintf(tw, "%s\t->\t%s\n", alias, relativePath(target, cwd))
	}
	tw.Flush()
}

func PrintResolvedImport(w io.Writer, specifier string, resolved ResolvedImport, cwd string) {
	switch resolved.Kind {
	case LocalFile:
		fmt.Fprintf(w, "%s %s\n", green("local"), relativePath(resolved.Path, cwd))
		if resolved.Package != nil {
			fmt.Fprintf(w, "%s %s\n", gray("workspace package:"), resolved.Package.Name)
		}
	case Unresolved:
		fmt.Fprintf(w, "%s %s\n", red("unresolved"), specifier)
	default:
		fmt.Fprintf(w, "%s %s\n", gray("external"), specifier)
	}
	if resolved.Importer != nil {
		fmt.Fprintf(w, "%s %s\n", gray("imported from package:"), resolved.Importer.Name)
	}
}

// PrintUnresolvedReport renders one row per file that has unresolved local
// imports, followed by a summary line.
func PrintUnresolvedReport(w io.Writer, results []FileCheckResult, cwd string) int {
	type row struct {
		file       string
		specifiers []string
	}
	rows := []row{}
	total := 0
	maxFileLength := len("File")
	maxCountLength := len("Count")
	for _, result := range results {
		if len(result.Unresolved) == 0 {
			continue
		}
		file := relativePath(result.FilePath, cwd)
		rows = append(rows, row{file: file, specifiers: result.Unresolved})
		total += len(result.Unresolved)
		maxFileLength = max(maxFileLength, len(file))
		maxCountLength = max(maxCountLength, len(fmt.Sprint(len(result.Unresolved))))
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, green("No unresolved local imports found."))
		return 0
	}

	separator := gray(strings.Repeat("─", maxFileLength+maxCountLength+50))
	fmt.Fprintln(w, bold(cyan("\nUnresolved Local Imports\n")))
	fmt.Fprintf(w, "%s  %s  %s\n", bold(PadRight("File", ' ', maxFileLength)), bold(PadRight("Count", ' ', maxCountLength)), bold("Imports"))
	fmt.Fprintln(w, separator)
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s  %s\n",
			yellow(PadRight(r.file, ' ', maxFileLength)),
			cyan(PadRight(fmt.Sprint(len(r.specifiers)), ' ', maxCountLength)),
			gray(strings.Join(r.specifiers, ", ")))
	}
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "\n%s %s file(s) with %s unresolved import(s)\n\n", bold("Summary:"), yellow(len(rows)), cyan(total))
	return total
}

func PrintWorkspaceDependencyIssues(w io.Writer, issues []WorkspaceDependencyIssue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, green("All workspace: dependencies resolve to workspace packages."))
		return
	}
	fmt.Fprintln(w, bold("\nWorkspace dependency issues\n"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Package\tDependency\tSpec\tIssue")
	for _, issue := range issues {
		detail := string(issue.Kind)
		if issue.Kind == VersionMismatch {
			detail = fmt.Sprintf("%s (found %q)", issue.Kind, issue.Version)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", issue.Package, issue.Dependency, issue.Spec, red(detail))
	}
	tw.Flush()
}
