package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the settings that shape a gpush run.
type Config struct {
	Remote          string `mapstructure:"remote" yaml:"remote"`
	ReferencePrefix string `mapstructure:"reference_prefix" yaml:"reference_prefix"`
	SubmoduleMarker string `mapstructure:"submodule_marker" yaml:"submodule_marker"`
	LogFile         string `mapstructure:"log_file" yaml:"log_file"`
	Verbose         bool   `mapstructure:"verbose" yaml:"verbose"`
}

const (
	DefaultRemote          = "origin"
	DefaultReferencePrefix = "PLUSCONTROL/"
	DefaultSubmoduleMarker = ".git/modules"
	DefaultConfigName      = "config"
	DefaultConfigDir       = "gpush"
	EnvPrefix              = "GPUSH"
)

var defaults = map[string]any{
	"remote":           DefaultRemote,
	"reference_prefix": DefaultReferencePrefix,
	"submodule_marker": DefaultSubmoduleMarker,
	"log_file":         "",
	"verbose":          false,
}

var configFilePath string

// DefaultConfigPath returns $XDG_CONFIG_HOME/gpush/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot find home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, DefaultConfigDir, DefaultConfigName+".yaml"), nil
}

// InitConfig loads cfgFile, or the default config path when cfgFile is
// empty. A missing file is not an error; defaults and GPUSH_* environment
// variables still apply.
func InitConfig(cfgFile string) error {
	path := cfgFile
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	configFilePath = path

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// ConfigFilePath returns the path chosen by the last InitConfig call.
func ConfigFilePath() string {
	return configFilePath
}

// GetConfig returns the effective configuration.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	if cfg.SubmoduleMarker == "" {
		cfg.SubmoduleMarker = DefaultSubmoduleMarker
	}
	return cfg, nil
}

// Keys lists the settable configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SetValue validates and stores one key, then writes the config file with
// owner-only permissions.
func SetValue(key, value string) error {
	def, ok := defaults[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}

	switch def.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not a boolean", key, value)
		}
		viper.Set(key, b)
	default:
		if key == "remote" && strings.TrimSpace(value) == "" {
			return errors.New("remote cannot be empty")
		}
		viper.Set(key, value)
	}
	return SaveConfig()
}

// SaveConfig writes the current settings to ConfigFilePath.
func SaveConfig() error {
	path := configFilePath
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}
	return nil
}

// YAML renders cfg the way it would appear in the config file.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}
