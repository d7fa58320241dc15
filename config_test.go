package main

import (
	"testing"

	"github.com/spf13/pflag"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func newTestFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringSlice("ext", DefaultExtensions, "")
	fs.StringSlice("ignore", []string{"node_modules"}, "")
	fs.Bool("check-local", false, "")
	fs.Int("concurrency", DefaultConcurrency, "")
	assert.NilError(t, fs.Parse(args))
	return fs
}

func TestLoadRunConfigDefaults(t *testing.T) {
	cfg, err := LoadRunConfig(newTestFlagSet(t), "", t.TempDir())
	assert.NilError(t, err)

	assert.DeepEqual(t, cfg.Extensions, []string{"ts", "tsx", "js", "jsx"})
	assert.DeepEqual(t, cfg.Ignore, []string{"node_modules"})
	assert.Equal(t, cfg.CheckLocal, false)
	assert.Equal(t, cfg.Concurrency, DefaultConcurrency)
	assert.Equal(t, cfg.ConfigFile, "")
}

func TestLoadRunConfigFromFile(t *testing.T) {
	dir := newFixture(t, map[string]string{
		".sweepprc.yaml": "ext: [vue, ts]\nignore: dist,coverage\ncheck-local: true\nconcurrency: 3\n",
	})

	cfg, err := LoadRunConfig(newTestFlagSet(t), "", dir)
	assert.NilError(t, err)

	assert.DeepEqual(t, cfg.Extensions, []string{"vue", "ts"})
	assert.DeepEqual(t, cfg.Ignore, []string{"dist", "coverage"})
	assert.Equal(t, cfg.CheckLocal, true)
	assert.Equal(t, cfg.Concurrency, 3)
	assert.Assert(t, is.Contains(cfg.ConfigFile, ".sweepprc.yaml"))
}

func TestLoadRunConfigPrecedence(t *testing.T) {
	dir := newFixture(t, map[string]string{
		".sweepprc.json": `{ "concurrency": 3, "check-local": true }`,
	})
	t.Setenv("SWEEPP_CONCURRENCY", "5")
	t.Setenv("SWEEPP_EXT", "ts, mts")

	t.Run("env overrides config file", func(t *testing.T) {
		cfg, err := LoadRunConfig(newTestFlagSet(t), "", dir)
		assert.NilError(t, err)
		assert.Equal(t, cfg.Concurrency, 5)
		assert.Equal(t, cfg.CheckLocal, true)
		assert.DeepEqual(t, cfg.Extensions, []string{"ts", "mts"})
	})

	t.Run("flags override env", func(t *testing.T) {
		cfg, err := LoadRunConfig(newTestFlagSet(t, "--concurrency=2", "--check-local=false", "--ext=tsx"), "", dir)
		assert.NilError(t, err)
		assert.Equal(t, cfg.Concurrency, 2)
		assert.Equal(t, cfg.CheckLocal, false)
		assert.DeepEqual(t, cfg.Extensions, []string{"tsx"})
	})
}

func TestLoadRunConfigExplicitFile(t *testing.T) {
	dir := newFixture(t, map[string]string{
		"custom.toml": "concurrency = 4\n",
	})

	cfg, err := LoadRunConfig(newTestFlagSet(t), dir+"/custom.toml", t.TempDir())
	assert.NilError(t, err)
	assert.Equal(t, cfg.Concurrency, 4)

	_, err = LoadRunConfig(newTestFlagSet(t), dir+"/missing.yaml", t.TempDir())
	assert.ErrorContains(t, err, "failed to read config")
}

func TestSplitList(t *testing.T) {
	assert.DeepEqual(t, SplitList([]string{" ts, tsx ", "", "js,,", "jsx"}), []string{"ts", "tsx", "js", "jsx"})
	assert.DeepEqual(t, SplitList(nil), []string{})
}
