package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/tidwall/jsonc"
)

// ProjectConfigFiles are tried in order; the first one that exists and
// parses supplies the aliases.
var ProjectConfigFiles = []string{"tsconfig.json", "jsconfig.json"}

// ResolvePathAliases reads compilerOptions.baseUrl and compilerOptions.paths
// from the first usable project config under projectRoot. Only the first
// target of each alias is used, and a trailing "/*" is dropped from both
// sides. A config that cannot be read or parsed is skipped as a whole; when
// none is usable the returned map is empty.
func ResolvePathAliases(projectRoot string) *AliasMap {
	aliases, _ := ResolvePathAliasesFrom(projectRoot)
	return aliases
}

// ResolvePathAliasesFrom is ResolvePathAliases that also reports which
// config file supplied the aliases ("" when none did).
func ResolvePathAliasesFrom(projectRoot string) (*AliasMap, string) {
	root := AbsFrom(mustGetwd(), projectRoot)
	for _, configFile := range ProjectConfigFiles {
		configPath := path.Join(root, configFile)
		if !fileExists(configPath) {
			continue
		}
		content, err := os.ReadFile(ToOSPath(configPath))
		if err != nil {
			continue
		}
		aliases, err := parsePathAliases(content, root)
		if err != nil {
			continue
		}
		return aliases, configPath
	}
	return NewAliasMap(), ""
}

type projectConfig struct {
	CompilerOptions json.RawMessage `json:"compilerOptions"`
}

type compilerOptions struct {
	BaseUrl json.RawMessage `json:"baseUrl"`
	Paths   json.RawMessage `json:"paths"`
}

// parsePathAliases parses one config file. Comments and trailing commas are
// stripped by jsonc before decoding.
func parsePathAliases(content []byte, projectRoot string) (*AliasMap, error) {
	aliases := NewAliasMap()

	var config projectConfig
	if err := json.Unmarshal(jsonc.ToJSON(content), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project config: %w", err)
	}

	var options compilerOptions
	if len(config.CompilerOptions) == 0 || json.Unmarshal(config.CompilerOptions, &options) != nil {
		return aliases, nil
	}
	if isUnsetJsonValue(bytes.TrimSpace(options.Paths)) {
		return aliases, nil
	}

	baseUrl := "."
	if raw := bytes.TrimSpace(options.BaseUrl); !isUnsetJsonValue(raw) {
		if err := json.Unmarshal(raw, &baseUrl); err != nil {
			return nil, fmt.Errorf("baseUrl is not a string: %w", err)
		}
	}
	baseUrlResolved := AbsFrom(projectRoot, baseUrl)

	entries, err := decodeOrderedObject(options.Paths)
	if err != nil {
		return aliases, nil
	}

	for _, entry := range entries {
		var targets []json.RawMessage
		if json.Unmarshal(entry.value, &targets) != nil || len(targets) == 0 {
			continue
		}
		var target string
		if err := json.Unmarshal(targets[0], &target); err != nil {
			return nil, fmt.Errorf("alias %q target is not a string: %w", entry.key, err)
		}
		alias := strings.TrimSuffix(entry.key, "/*")
		target = strings.TrimSuffix(target, "/*")
		aliases.Set(alias, AbsFrom(baseUrlResolved, target))
	}

	return aliases, nil
}

type orderedEntry struct {
	key   string
	value json.RawMessage
}

var errNotAnObject = errors.New("not a JSON object")

// decodeOrderedObject decodes a JSON object keeping its key order, which
// encoding/json maps would lose. A repeated key keeps its first position
// and takes its last value.
func decodeOrderedObject(raw json.RawMessage) ([]orderedEntry, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errNotAnObject
	}

	entries := []orderedEntry{}
	positions := map[string]int{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, errNotAnObject
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, err
		}
		if i, seen := positions[key]; seen {
			entries[i].value = value
			continue
		}
		positions[key] = len(entries)
		entries = append(entries, orderedEntry{key: key, value: value})
	}
	return entries, nil
}
