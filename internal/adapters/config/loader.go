// Package config loads the two configuration surfaces the CLI needs: the
// per-environment --env-file JSON (a fixed external wire format, parsed
// with encoding/json) and the ambient CLI dotfile (a TOML hierarchy
// resolved with viper).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

// envFileDoc mirrors the --env-file JSON's top-level sections (§6.3).
// Every field backed by a value object validates itself during
// json.Unmarshal; LoadEnvFile adds no further checks.
type envFileDoc struct {
	Environment struct {
		Name entities.EnvironmentName `json:"name"`
	} `json:"environment"`
	SshCredentials entities.SshCredentials `json:"ssh_credentials"`
	Provider       entities.ProviderConfig `json:"provider"`
	Tracker        entities.TrackerConfig  `json:"tracker"`
}

// LoadEnvFile reads and parses an --env-file JSON document into the
// request shape CreateEnvironment and Register accept.
func LoadEnvFile(path string) (usecases.CreateEnvironmentRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return usecases.CreateEnvironmentRequest{}, &entities.FileSystemError{Op: "read", Path: path, Err: err}
	}

	var doc envFileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return usecases.CreateEnvironmentRequest{}, &entities.SerializationError{Op: "unmarshal env-file", Err: err}
	}

	return usecases.CreateEnvironmentRequest{
		Name:           doc.Environment.Name,
		SshCredentials: doc.SshCredentials,
		Provider:       doc.Provider,
		Tracker:        doc.Tracker,
	}, nil
}

// CLIConfig holds the ambient defaults resolved from the CLI flag /
// TORRUST_TD_* env var / project deployer.toml / XDG global config.toml /
// built-in default hierarchy, ported from loko's tomlConfig idiom.
type CLIConfig struct {
	WorkingDir      string `mapstructure:"working_dir"`
	LogOutput       string `mapstructure:"log_output"`
	LogDir          string `mapstructure:"log_dir"`
	LogFileFormat   string `mapstructure:"log_file_format"`
	LogStderrFormat string `mapstructure:"log_stderr_format"`
	LogLevel        string `mapstructure:"log_level"`
	DefaultProvider string `mapstructure:"default_provider"`
}

// LoadCLIConfig decodes CLIConfig from viper's merged settings. It reads no
// file itself: the caller has already read and merged the config files and
// bound env vars and flags, as root.go's initConfig does.
func LoadCLIConfig() (CLIConfig, error) {
	var cfg CLIConfig
	decoderOpt := func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
	}
	if err := viper.Unmarshal(&cfg, decoderOpt); err != nil {
		return CLIConfig{}, fmt.Errorf("decode CLI config: %w", err)
	}
	return cfg, nil
}

// EnvPrefix is the environment-variable prefix viper.AutomaticEnv() binds
// against, e.g. TORRUST_TD_WORKING_DIR overrides working_dir.
const EnvPrefix = "TORRUST_TD"

// EnvKeyReplacer maps "." in a config key to "_" for the corresponding
// environment variable name.
var EnvKeyReplacer = strings.NewReplacer(".", "_")
