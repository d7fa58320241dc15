package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = ".sweepprc"
	envPrefix      = "SWEEPP"
)

// RunConfig is the merged view of flags, SWEEPP_* environment variables, an
// optional .sweepprc.{yaml,json,toml} file and built-in defaults, in that
// order of precedence.
type RunConfig struct {
	Extensions   []string
	Ignore       []string
	CheckLocal   bool
	Concurrency  int
	Verbose      bool
	NoColor      bool
	ZeroExitCode bool
	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("ext", DefaultExtensions)
	v.SetDefault("ignore", []string{"node_modules"})
	v.SetDefault("check-local", false)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("verbose", false)
	v.SetDefault("no-color", false)
	v.SetDefault("zero-exit-code", false)
}

// LoadRunConfig layers configuration for one command invocation. An
// explicit configFile must exist; the implicit .sweepprc lookup in dir is
// optional.
func LoadRunConfig(flags *pflag.FlagSet, configFile string, dir string) (RunConfig, error) {
	v := viper.New()
	setConfigDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return RunConfig{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(ToOSPath(dir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return RunConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return RunConfig{
		Extensions:   SplitList(v.GetStringSlice("ext")),
		Ignore:       SplitList(v.GetStringSlice("ignore")),
		CheckLocal:   v.GetBool("check-local"),
		Concurrency:  v.GetInt("concurrency"),
		Verbose:      v.GetBool("verbose"),
		NoColor:      v.GetBool("no-color"),
		ZeroExitCode: v.GetBool("zero-exit-code"),
		ConfigFile:   v.ConfigFileUsed(),
	}, nil
}
