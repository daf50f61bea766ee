// Package config loads compiler and service settings from a YAML file, the environment and
// command line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"turingregex/internal/turing"
)

type Config struct {
	Prefix     string `mapstructure:"prefix"`
	Accept     string `mapstructure:"accept"` // empty means <prefix>_accept
	Reject     string `mapstructure:"reject"`
	Mode       string `mapstructure:"mode"`
	Alphabet   string `mapstructure:"alphabet"`
	Format     string `mapstructure:"format"`
	MaxSteps   int    `mapstructure:"max_steps"`
	ListenAddr string `mapstructure:"listen_address"`
	LogLevel   string `mapstructure:"log_level"`
	ConfigFile string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Prefix:     turing.DefaultPrefix,
		Mode:       string(turing.Match),
		Format:     "text",
		MaxSteps:   10000,
		ListenAddr: ":7780",
		LogLevel:   "info",
		ConfigFile: "turingregex",
	}
}

// Load reads the configuration. With an empty path, turingregex.yaml is looked up in the
// working directory and $HOME/.turingregex and may be absent; an explicit path must exist.
// TURINGREGEX_* environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetDefault("prefix", cfg.Prefix)
	v.SetDefault("accept", cfg.Accept)
	v.SetDefault("reject", cfg.Reject)
	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("alphabet", cfg.Alphabet)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("max_steps", cfg.MaxSteps)
	v.SetDefault("listen_address", cfg.ListenAddr)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("config_file", cfg.ConfigFile)

	v.SetEnvPrefix("TURINGREGEX")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(cfg.ConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.turingregex")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
	}
	return cfg, nil
}

// Request builds a compilation request for pattern from the configured defaults.
func (c *Config) Request(pattern string) (turing.Request, error) {
	mode, err := turing.ParseMode(c.Mode)
	if err != nil {
		return turing.Request{}, err
	}
	return turing.Request{
		Pattern:  pattern,
		Alphabet: c.Alphabet,
		Accept:   c.Accept,
		Reject:   c.Reject,
		Prefix:   c.Prefix,
		Mode:     mode,
	}, nil
}
