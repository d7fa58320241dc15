package main

import (
	"reflect"
	"testing"
)

type aliasPair struct {
	Alias  string
	Target string
}

func aliasPairs(m *AliasMap) []aliasPair {
	out := []aliasPair{}
	for _, alias := range m.Keys() {
		target, _ := m.Get(alias)
		out = append(out, aliasPair{alias, target})
	}
	return out
}

func TestResolvePathAliasesBasic(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "baseUrl": ".", "paths": { "@/*": ["src/*"] } } }`,
	})

	aliases := ResolvePathAliases(root)
	want := []aliasPair{{"@", root + "/src"}}
	if got := aliasPairs(aliases); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolvePathAliasesWithCommentsAndOrder(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{
			/* block
			   comment */
			"compilerOptions": {
				"baseUrl": "./src", // line comment
				"paths": {
					"~components/*": ["components/*", "fallback/*"],
					"@utils": ["lib/utils/index.ts"],
					"#empty/*": [],
					"#notalist": "lib",
					"@/*": ["./*"],
				},
			},
		}`,
	})

	aliases, configPath := ResolvePathAliasesFrom(root)
	if configPath != root+"/tsconfig.json" {
		t.Errorf("expected tsconfig.json to be used, got %q", configPath)
	}
	want := []aliasPair{
		{"~components", root + "/src/components"},
		{"@utils", root + "/src/lib/utils/index.ts"},
		{"@", root + "/src"},
	}
	if got := aliasPairs(aliases); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolvePathAliasesDuplicateKeysKeepFirstPosition(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "paths": {
			"@/*": ["src/*"],
			"lib/*": ["lib/*"],
			"@": ["app"]
		} } }`,
	})

	want := []aliasPair{
		{"@", root + "/app"},
		{"lib", root + "/lib"},
	}
	if got := aliasPairs(ResolvePathAliases(root)); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolvePathAliasesRepeatedJsonKeyTakesLastValue(t *testing.T) {
	tests := []struct {
		name  string
		paths string
		want  []aliasPair
	}{
		{
			name:  "last value is not a list",
			paths: `{ "@/*": ["src/*"], "@/*": 5 }`,
			want:  nil,
		},
		{
			name:  "last value replaces earlier target in place",
			paths: `{ "@/*": ["src/*"], "~/*": ["lib/*"], "@/*": ["app/*"] }`,
			want:  []aliasPair{{"@", "/app"}, {"~", "/lib"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newFixture(t, map[string]string{
				"tsconfig.json": `{ "compilerOptions": { "paths": ` + tt.paths + ` } }`,
			})
			var want []aliasPair
			for _, pair := range tt.want {
				want = append(want, aliasPair{pair.Alias, root + pair.Target})
			}
			got := aliasPairs(ResolvePathAliases(root))
			if len(got) != len(want) || (len(want) > 0 && !reflect.DeepEqual(got, want)) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestResolvePathAliasesFallsBackToJsConfig(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "paths": `,
		"jsconfig.json": `{ "compilerOptions": { "baseUrl": "src", "paths": { "~/*": ["*"] } } }`,
	})

	aliases, configPath := ResolvePathAliasesFrom(root)
	if configPath != root+"/jsconfig.json" {
		t.Errorf("expected jsconfig.json, got %q", configPath)
	}
	want := []aliasPair{{"~", root + "/src"}}
	if got := aliasPairs(aliases); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolvePathAliasesFirstValidConfigWinsWithoutMerging(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "strict": true } }`,
		"jsconfig.json": `{ "compilerOptions": { "paths": { "@/*": ["src/*"] } } }`,
	})

	aliases, configPath := ResolvePathAliasesFrom(root)
	if configPath != root+"/tsconfig.json" {
		t.Errorf("expected tsconfig.json, got %q", configPath)
	}
	if aliases.Len() != 0 {
		t.Errorf("expected no aliases, got %v", aliasPairs(aliases))
	}
}

func TestResolvePathAliasesSkipsCandidateOnPartialFailure(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "paths": { "@/*": ["src/*"], "bad/*": [42] } } }`,
		"jsconfig.json": `{ "compilerOptions": { "paths": { "~/*": ["app/*"] } } }`,
	})

	want := []aliasPair{{"~", root + "/app"}}
	if got := aliasPairs(ResolvePathAliases(root)); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolvePathAliasesInvalidBaseUrl(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "baseUrl": 5, "paths": { "@/*": ["src/*"] } } }`,
	})

	if aliases := ResolvePathAliases(root); aliases.Len() != 0 {
		t.Errorf("expected empty map, got %v", aliasPairs(aliases))
	}
}

func TestResolvePathAliasesNoConfig(t *testing.T) {
	aliases, configPath := ResolvePathAliasesFrom(t.TempDir())
	if aliases == nil || aliases.Len() != 0 || configPath != "" {
		t.Errorf("expected empty map and no config, got %v %q", aliasPairs(aliases), configPath)
	}
}

func TestResolvePathAliasesAbsoluteTarget(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "baseUrl": "src", "paths": { "shared/*": ["/opt/shared/*"] } } }`,
	})

	want := []aliasPair{{"shared", "/opt/shared"}}
	if got := aliasPairs(ResolvePathAliases(root)); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolvePathAliasesIsIdempotent(t *testing.T) {
	root := newFixture(t, map[string]string{
		"tsconfig.json": `{ "compilerOptions": { "paths": { "@/*": ["src/*"], "~/*": ["lib/*"] } } }`,
	})

	first := ResolvePathAliases(root)
	for i := 0; i < 3; i++ {
		if again := ResolvePathAliases(root); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs", i)
		}
	}
}

func TestAliasMapSubstitute(t *testing.T) {
	aliases := NewAliasMap()
	aliases.Set("@", "/repo/src")
	aliases.Set("@/components", "/repo/ui")
	aliases.Set("~utils", "/repo/lib/utils")

	tests := []struct {
		specifier string
		want      string
		ok        bool
	}{
		{"@/foo", "/repo/src/foo", true},
		// iteration order decides between overlapping aliases
		{"@/components/Button", "/repo/src/components/Button", true},
		{"~utils", "/repo/lib/utils", true},
		{"~utils/date", "/repo/lib/utils/date", true},
		{"~utilsx/date", "~utilsx/date", false},
		{"lodash", "lodash", false},
	}
	for _, tt := range tests {
		t.Run(tt.specifier, func(t *testing.T) {
			got, ok := aliases.Substitute(tt.specifier)
			if got != tt.want || ok != tt.ok {
				t.Errorf("got (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}

	var nilMap *AliasMap
	if got, ok := nilMap.Substitute("@/x"); ok || got != "@/x" {
		t.Errorf("nil map should not substitute")
	}
}
