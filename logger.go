package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled diagnostics to stderr; stdout is reserved for
// command output.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "sweepp",
		Level:  level,
	})
}

// buildResolveContext computes the per-run snapshots once; every resolution
// afterwards only reads them.
func buildResolveContext(cwd string, logger *log.Logger) ResolveContext {
	monorepo := DetectMonorepo(cwd)
	logger.Debug("detected workspace", "type", monorepo.Type, "packages", len(monorepo.Packages))
	aliases, configPath := ResolvePathAliasesFrom(cwd)
	logger.Debug("resolved path aliases", "config", configPath, "count", aliases.Len())
	return ResolveContext{ProjectRoot: cwd, Aliases: aliases, Monorepo: monorepo}
}
