package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var (
	ErrUnresolvedImports         = errors.New("unresolved local imports found")
	ErrWorkspaceDependencyIssues = errors.New("invalid workspace dependencies found")
)

var (
	currentDir, _ = os.Getwd()
	rootCmd       = &cobra.Command{
		Use:   "sweepp",
		Short: "Resolve JavaScript/TypeScript imports across projects and workspaces",
		Long: `Resolves import specifiers in JavaScript and TypeScript projects to local files,
following pnpm/npm/yarn/turborepo workspaces and tsconfig/jsconfig path aliases.
Reports local imports whose target file does not exist.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

var docsCmd = &cobra.Command{
	Use:   "doc-gen",
	Short: "Generate CLI documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doc.GenMarkdownTree(rootCmd, "./docs")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

// ---------------- shared flags ----------------

var (
	sharedCwd        string
	sharedConfigPath string
)

func addPersistentFlags(command *cobra.Command) {
	command.PersistentFlags().StringVarP(&sharedCwd, "cwd", "c", currentDir,
		"Project root used for workspaces, aliases and relative paths")
	command.PersistentFlags().StringVar(&sharedConfigPath, "config", "",
		"Path to a config file (default: <cwd>/.sweepprc.{yaml,json,toml})")
	command.PersistentFlags().BoolP("verbose", "v", false,
		"Log diagnostics to stderr")
	command.PersistentFlags().Bool("no-color", false,
		"Disable colored output")
}

func addDiscoveryFlags(command *cobra.Command) {
	command.Flags().StringSlice("ext", DefaultExtensions,
		"Comma separated file extensions to scan")
	command.Flags().StringSlice("ignore", []string{"node_modules"},
		"Comma separated ignore globs")
}

// prepareRun loads the layered config for cmd and applies the global
// output settings.
func prepareRun(cmd *cobra.Command) (RunConfig, string, error) {
	cwd := ResolveAbsoluteCwd(sharedCwd)
	cfg, err := LoadRunConfig(cmd.Flags(), sharedConfigPath, cwd)
	if err != nil {
		return RunConfig{}, "", err
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	return cfg, cwd, nil
}

func targetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// ---------------- files ----------------

var filesCount bool

var filesCmd = &cobra.Command{
	Use:   "files [target]",
	Short: "List source files matched by a directory or glob target",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cwd, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

		opts := DiscoverOptions{Root: cwd, Extensions: cfg.Extensions, Ignore: cfg.Ignore}
		logger.Debug("discovering files", "pattern", DiscoveryPattern(targetArg(args), opts), "ignore", cfg.Ignore)
		files := DiscoverFiles(targetArg(args), opts)

		out := cmd.OutOrStdout()
		if filesCount {
			fmt.Fprintln(out, len(files))
			return nil
		}
		for _, file := range files {
			fmt.Fprintln(out, relativePath(file, cwd))
		}
		return nil
	},
}

// ---------------- workspaces ----------------

var workspacesCheckDeps bool

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "Detect the workspace type and list workspace packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cwd, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

		monorepo := DetectMonorepo(cwd)
		logger.Debug("detected workspace", "type", monorepo.Type, "packages", len(monorepo.Packages))

		out := cmd.OutOrStdout()
		PrintWorkspaces(out, monorepo, cwd)
		if !workspacesCheckDeps {
			return nil
		}

		issues := CheckWorkspaceDependencies(monorepo)
		PrintWorkspaceDependencyIssues(out, issues)
		if len(issues) > 0 && !cfg.ZeroExitCode {
			return fmt.Errorf("%w: %d", ErrWorkspaceDependencyIssues, len(issues))
		}
		return nil
	},
}

// ---------------- aliases ----------------

var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Show path aliases read from tsconfig.json or jsconfig.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cwd, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

		aliases, configPath := ResolvePathAliasesFrom(cwd)
		logger.Debug("resolved path aliases", "config", configPath, "count", aliases.Len())
		PrintAliases(cmd.OutOrStdout(), aliases, configPath, cwd)
		return nil
	},
}

// ---------------- resolve ----------------

var resolveFrom string

var resolveCmd = &cobra.Command{
	Use:     "resolve <specifier>",
	Short:   "Resolve a single import specifier as seen from a file",
	Example: "sweepp resolve @/components/Button --from src/pages/index.tsx",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cwd, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

		rc := buildResolveContext(cwd, logger)
		fromFile := AbsFrom(cwd, resolveFrom)
		PrintResolvedImport(cmd.OutOrStdout(), args[0], rc.Classify(args[0], fromFile), cwd)
		return nil
	},
}

// ---------------- check ----------------

var checkCmd = &cobra.Command{
	Use:   "check [target]",
	Short: "Report local imports whose target file does not exist",
	Long: `Discovers source files under the target directory (or glob), then resolves
every import specifier they contain. Local specifiers (relative, absolute,
"@/" or a configured alias) that match no file are reported.
The existence pass only runs with --check-local.`,
	Example: "sweepp check src --check-local --ext ts,tsx",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cwd, err := prepareRun(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
		out := cmd.OutOrStdout()

		rc := buildResolveContext(cwd, logger)
		PrintMonorepoBanner(out, rc.Monorepo)

		opts := DiscoverOptions{Root: cwd, Extensions: cfg.Extensions, Ignore: cfg.Ignore}
		logger.Debug("discovering files", "pattern", DiscoveryPattern(targetArg(args), opts))
		files := DiscoverFiles(targetArg(args), opts)
		logger.Debug("discovered files", "count", len(files))

		if !cfg.CheckLocal {
			fmt.Fprintf(out, "Found %d file(s). Pass --check-local to verify local imports.\n", len(files))
			return nil
		}

		results, err := CheckImports(cmd.Context(), files, EsbuildSpecifierScanner{}, rc, cfg.Concurrency)
		if err != nil {
			return fmt.Errorf("import check interrupted: %w", err)
		}
		for _, result := range results {
			if result.ScanErr != nil {
				logger.Warn("skipped file", "file", relativePath(result.FilePath, cwd), "err", result.ScanErr)
			}
		}

		total := PrintUnresolvedReport(out, results, cwd)
		if total > 0 && !cfg.ZeroExitCode {
			return fmt.Errorf("%w: %d", ErrUnresolvedImports, total)
		}
		return nil
	},
}

func init() {
	addPersistentFlags(rootCmd)

	addDiscoveryFlags(filesCmd)
	filesCmd.Flags().BoolVarP(&filesCount, "count", "n", false,
		"Only display the number of files")

	workspacesCmd.Flags().BoolVar(&workspacesCheckDeps, "check-deps", false,
		"Validate workspace: dependencies against workspace packages")
	workspacesCmd.Flags().Bool("zero-exit-code", false,
		"Always return zero exit code")

	resolveCmd.Flags().StringVarP(&resolveFrom, "from", "f", "",
		"File the specifier is imported from")
	resolveCmd.MarkFlagRequired("from")

	addDiscoveryFlags(checkCmd)
	checkCmd.Flags().Bool("check-local", false,
		"Check that local imports (relative, @/ and path aliases) exist")
	checkCmd.Flags().Int("concurrency", DefaultConcurrency,
		"Maximum number of files resolved in parallel")
	checkCmd.Flags().Bool("zero-exit-code", false,
		"Always return zero exit code")

	rootCmd.AddCommand(checkCmd, filesCmd, workspacesCmd, aliasesCmd, resolveCmd, versionCmd, docsCmd)
}

// defaultCommandArgs routes "sweepp" and "sweepp <target>" to check.
func defaultCommandArgs(args []string) []string {
	if len(args) == 0 {
		return []string{checkCmd.Name()}
	}
	if len(args) == 1 && !isCommandName(args[0]) && !isFlag(args[0]) {
		return []string{checkCmd.Name(), args[0]}
	}
	return args
}

func isCommandName(name string) bool {
	names := []string{"help", "completion"}
	for _, command := range rootCmd.Commands() {
		names = append(names, command.Name())
		names = append(names, command.Aliases...)
	}
	return slices.Contains(names, name)
}

func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SetArgs(defaultCommandArgs(os.Args[1:]))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.SetFlags(0)
		log.SetPrefix(filepath.Base(os.Args[0]) + ": ")
		log.Fatal(err)
	}
}
