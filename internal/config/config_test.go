package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/prefsctl/internal/prefs"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.PrefsPath)
	assert.Equal(t, "preferences.yaml", filepath.Base(cfg.PrefsPath))
	assert.Equal(t, prefs.DefaultLanguage, cfg.DefaultLanguage)
	assert.Equal(t, prefs.DefaultKeyringService, cfg.Keyring.Service)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.PrefsPath = "/tmp/prefs.yaml"
	cfg.DefaultLanguage = "de"
	cfg.Keyring.Disabled = true
	cfg.UI.Dense = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_language: it\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "it", cfg.DefaultLanguage)
	assert.Equal(t, DefaultConfig().PrefsPath, cfg.PrefsPath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keyring: [oops"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPrefs, "/var/lib/prefs.yaml")
	t.Setenv(EnvLanguage, "fr")
	t.Setenv(EnvKeyringService, "custom")
	t.Setenv(EnvKeyringDisabled, "true")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/var/lib/prefs.yaml", cfg.PrefsPath)
	assert.Equal(t, "fr", cfg.DefaultLanguage)
	assert.Equal(t, "custom", cfg.Keyring.Service)
	assert.True(t, cfg.Keyring.Disabled)
	assert.IsType(t, prefs.NopVault{}, cfg.Vault())
}

func TestApplyEnv_BadBool(t *testing.T) {
	t.Setenv(EnvKeyringDisabled, "sometimes")

	err := DefaultConfig().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvKeyringDisabled)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrefsPath = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Keyring.Service = ""
	assert.Error(t, cfg.Validate())

	cfg.Keyring.Disabled = true
	assert.NoError(t, cfg.Validate(), "service is irrelevant when the keyring is off")
}

func TestLanguageOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Languages = []string{"en", " fr ", "en", ""}

	assert.Equal(t, []string{"en", "fr"}, cfg.LanguageOptions("fr"))
	assert.Equal(t, []string{"en", "fr", "tlh"}, cfg.LanguageOptions("tlh"))
}

func TestVault_Keyring(t *testing.T) {
	cfg := DefaultConfig()
	v, ok := cfg.Vault().(*prefs.KeyringVault)
	require.True(t, ok)
	assert.Equal(t, prefs.DefaultKeyringService, v.Service)
}

func TestGetConfigPath_Env(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/prefsctl.yaml")
	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/prefsctl.yaml", path)
}

func TestLoadDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_language: es\n"), 0o644))
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvPrefs, "/tmp/p.yaml")

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.DefaultLanguage)
	assert.Equal(t, "/tmp/p.yaml", cfg.PrefsPath)
}
