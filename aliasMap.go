package main

import "strings"

// AliasMap maps an alias prefix ("@", "~utils") to an absolute directory.
// Iteration follows first-insertion order; setting an existing key replaces
// its target but keeps its position. The zero value and a nil *AliasMap are
// both empty maps.
type AliasMap struct {
	keys    []string
	targets map[string]string
}

func NewAliasMap() *AliasMap {
	return &AliasMap{targets: map[string]string{}}
}

func (m *AliasMap) Set(alias, target string) {
	if m.targets == nil {
		m.targets = map[string]string{}
	}
	if _, exists := m.targets[alias]; !exists {
		m.keys = append(m.keys, alias)
	}
	m.targets[alias] = target
}

func (m *AliasMap) Get(alias string) (string, bool) {
	if m == nil {
		return "", false
	}
	target, ok := m.targets[alias]
	return target, ok
}

func (m *AliasMap) Has(alias string) bool {
	_, ok := m.Get(alias)
	return ok
}

func (m *AliasMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the aliases in iteration order.
func (m *AliasMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Substitute replaces the first alias (in iteration order) that equals
// specifier or prefixes it followed by "/" with its target directory.
func (m *AliasMap) Substitute(specifier string) (string, bool) {
	if m == nil {
		return specifier, false
	}
	for _, alias := range m.keys {
		if specifier == alias || strings.HasPrefix(specifier, alias+"/") {
			return m.targets[alias] + specifier[len(alias):], true
		}
	}
	return specifier, false
}
