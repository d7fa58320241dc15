package main

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

type UnresolvedImport struct {
	FilePath  string
	Specifier string
}

type FileCheckResult struct {
	FilePath   string
	Unresolved []string
	// ScanErr is set when the file's specifiers could not be read; the file
	// is then reported without unresolved entries.
	ScanErr error
}

// CheckImports classifies every specifier of every file against the shared
// resolve context, at most concurrency files at a time. Results are sorted
// by file path. Cancelling ctx stops scheduling further files.
func CheckImports(ctx context.Context, files []string, source SpecifierSource, rc ResolveContext, concurrency int) ([]FileCheckResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]FileCheckResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, filePath := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkFileImports(filePath, source, rc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b FileCheckResult) int {
		return strings.Compare(a.FilePath, b.FilePath)
	})
	return results, nil
}

func checkFileImports(filePath string, source SpecifierSource, rc ResolveContext) FileCheckResult {
	result := FileCheckResult{FilePath: filePath}
	specifiers, err := source.Specifiers(filePath)
	if err != nil {
		result.ScanErr = err
		return result
	}
	for _, specifier := range specifiers {
		if rc.Classify(specifier, filePath).Kind == Unresolved {
			result.Unresolved = append(result.Unresolved, specifier)
		}
	}
	return result
}

// FlattenUnresolved lists every unresolved specifier across results.
func FlattenUnresolved(results []FileCheckResult) []UnresolvedImport {
	unresolved := []UnresolvedImport{}
	for _, result := range results {
		for _, specifier := range result.Unresolved {
			unresolved = append(unresolved, UnresolvedImport{FilePath: result.FilePath, Specifier: specifier})
		}
	}
	return unresolved
}
