package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "origin", DefaultRemote)
	assert.Equal(t, "PLUSCONTROL/", DefaultReferencePrefix)
	assert.Equal(t, ".git/modules", DefaultSubmoduleMarker)
	assert.Equal(t, "gpush", DefaultConfigDir)
	assert.Equal(t, "GPUSH", EnvPrefix)
}

func TestDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gpush", "config.yaml"), path)
}

func TestInitConfig_MissingFileUsesDefaults(t *testing.T) {
	viper.Reset()
	configFile := filepath.Join(t.TempDir(), "missing.yaml")

	require.NoError(t, InitConfig(configFile))
	assert.Equal(t, configFile, ConfigFilePath())

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Remote:          DefaultRemote,
		ReferencePrefix: DefaultReferencePrefix,
		SubmoduleMarker: DefaultSubmoduleMarker,
	}, cfg)

	_, err = os.Stat(configFile)
	assert.True(t, os.IsNotExist(err), "reading config must not create the file")
}

func TestInitConfig_ExistingConfigFile(t *testing.T) {
	viper.Reset()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	existing := `remote: upstream
reference_prefix: "JIRA-"
log_file: /tmp/gpush.log
verbose: true
`
	require.NoError(t, os.WriteFile(configFile, []byte(existing), 0o644))

	require.NoError(t, InitConfig(configFile))
	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, "JIRA-", cfg.ReferencePrefix)
	assert.Equal(t, DefaultSubmoduleMarker, cfg.SubmoduleMarker)
	assert.Equal(t, "/tmp/gpush.log", cfg.LogFile)
	assert.True(t, cfg.Verbose)
}

func TestInitConfig_InvalidFile(t *testing.T) {
	viper.Reset()
	configFile := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remote: [unterminated\n"), 0o644))

	err := InitConfig(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInitConfig_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("GPUSH_REMOTE", "fork")

	require.NoError(t, InitConfig(filepath.Join(t.TempDir(), "config.yaml")))
	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "fork", cfg.Remote)
}

func TestSetValue(t *testing.T) {
	viper.Reset()
	configFile := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, InitConfig(configFile))

	require.NoError(t, SetValue("remote", "upstream"))
	require.NoError(t, SetValue("verbose", "true"))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(configFile)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	viper.Reset()
	require.NoError(t, InitConfig(configFile))
	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.True(t, cfg.Verbose)
}

func TestSetValue_Rejects(t *testing.T) {
	viper.Reset()
	require.NoError(t, InitConfig(filepath.Join(t.TempDir(), "config.yaml")))

	err := SetValue("colour", "red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")

	err = SetValue("verbose", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a boolean")

	assert.Error(t, SetValue("remote", " "))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"log_file", "reference_prefix", "remote", "submodule_marker", "verbose"}, Keys())
}

func TestConfigYAML(t *testing.T) {
	cfg := &Config{Remote: "origin", ReferencePrefix: "PLUSCONTROL/", SubmoduleMarker: ".git/modules"}

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, out, "remote: origin")
	assert.Contains(t, out, "reference_prefix: PLUSCONTROL/")
	assert.Contains(t, out, "verbose: false")
}
