package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
)

// SpecifierSource yields the raw import specifiers of a file in source
// order. The check command uses EsbuildSpecifierScanner.
type SpecifierSource interface {
	Specifiers(filePath string) ([]string, error)
}

// EsbuildSpecifierScanner collects specifiers by running esbuild on a single
// file with a resolve hook that records every request made by that file and
// marks it external. Files pulled in by glob-style dynamic imports
// (import(`./dir/${name}.ts`)) load as empty modules, so only the scanned
// file's own specifiers are reported.
type EsbuildSpecifierScanner struct{}

// verbatimModuleSyntax keeps unused value imports in TypeScript files;
// only "import type" is elided.
const scannerTsconfig = `{"compilerOptions":{"verbatimModuleSyntax":true}}`

// A glob-style dynamic import whose directory matches nothing fails with
// this prefix. Every other specifier is external, so it is the only
// resolve error the scan can produce.
const unresolvedGlobPrefix = "Could not resolve"

func (EsbuildSpecifierScanner) Specifiers(filePath string) ([]string, error) {
	entry, err := filepath.Abs(ToOSPath(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", filePath, err)
	}

	var mu sync.Mutex
	seen := map[string]bool{}
	specifiers := []string{}
	empty := ""

	recorder := api.Plugin{
		Name: "record-specifiers",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: ".*"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if args.Kind == api.ResolveEntryPoint {
					return api.OnResolveResult{Path: entry}, nil
				}
				if args.Importer == entry {
					mu.Lock()
					if !seen[args.Path] {
						seen[args.Path] = true
						specifiers = append(specifiers, args.Path)
					}
					mu.Unlock()
				}
				return api.OnResolveResult{Path: args.Path, External: true}, nil
			})
			build.OnLoad(api.OnLoadOptions{Filter: ".*"}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				if args.Path == entry {
					return api.OnLoadResult{}, nil
				}
				return api.OnLoadResult{Contents: &empty, Loader: api.LoaderJS}, nil
			})
		},
	}

	result := api.Build(api.BuildOptions{
		EntryPoints: []string{entry},
		Bundle:      true,
		Write:       false,
		LogLevel:    api.LogLevelSilent,
		Platform:    api.PlatformNeutral,
		TsconfigRaw: scannerTsconfig,
		Loader: map[string]api.Loader{
			".js":  api.LoaderJSX,
			".mjs": api.LoaderJSX,
			".cjs": api.LoaderJSX,
		},
		Plugins: []api.Plugin{recorder},
	})

	for _, message := range result.Errors {
		if strings.HasPrefix(message.Text, unresolvedGlobPrefix) {
			continue
		}
		return nil, fmt.Errorf("failed to scan %s: %w", filePath, errors.New(message.Text))
	}
	return specifiers, nil
}
