package main

import (
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreMatcher is one compiled ignore pattern anchored at patternRoot.
type IgnoreMatcher struct {
	globPattern glob.Glob
	inputString string
	// Plain names (no "/" and no "*") match any file or directory with that
	// exact name at any depth, like .gitignore entries.
	matchesAnyNamedEntry bool
	patternRoot          string
}

type IgnoreMatchers []IgnoreMatcher

// CreateIgnoreMatchers compiles ignore patterns relative to patternsRoot.
// Patterns that fail to compile are dropped.
func CreateIgnoreMatchers(patterns []string, patternsRoot string) IgnoreMatchers {
	matchers := IgnoreMatchers{}
	rootNorm := ToInternalPath(patternsRoot)
	if rootNorm != "" && !strings.HasSuffix(rootNorm, "/") {
		rootNorm += "/"
	}

	for _, pattern := range patterns {
		pattern = NormalizeGlobPattern(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		pattern = strings.TrimPrefix(pattern, "./")

		matchesAnyNamedEntry := !strings.Contains(pattern, "/") && !strings.Contains(pattern, "*")

		if strings.HasSuffix(pattern, "/") && !strings.Contains(pattern, "*") {
			// "dist/" ignores the whole directory recursively
			pattern = "**" + pattern + "**"
		}

		compiled, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		matchers = append(matchers, IgnoreMatcher{
			globPattern:          compiled,
			inputString:          pattern,
			patternRoot:          rootNorm,
			matchesAnyNamedEntry: matchesAnyNamedEntry,
		})

		// gobwas/glob does not let "**/" match zero directories, so
		// "**/*.log" would miss "file.log" at the root. Add the root variant.
		if strings.HasPrefix(pattern, "**/") {
			rootVariant := strings.Replace(pattern, "**/", "", 1)
			if compiledRoot, err := glob.Compile(rootVariant); err == nil {
				matchers = append(matchers, IgnoreMatcher{
					globPattern: compiledRoot,
					inputString: rootVariant,
					patternRoot: rootNorm,
				})
			}
		}
	}
	return matchers
}

// Matches reports whether filePath is ignored by any matcher.
func (matchers IgnoreMatchers) Matches(filePath string) bool {
	fileInternal := ToInternalPath(filePath)
	for _, matcher := range matchers {
		rel := strings.TrimPrefix(fileInternal, matcher.patternRoot)
		if matcher.globPattern.Match(rel) {
			return true
		}
		if !matcher.matchesAnyNamedEntry {
			continue
		}
		name := matcher.inputString
		if rel == name || strings.HasSuffix(rel, "/"+name) {
			return true
		}
		if strings.HasPrefix(rel, name+"/") || strings.Contains(rel, "/"+name+"/") {
			return true
		}
	}
	return false
}
