package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "skymap")
	t.Setenv("SKYMAP_CONFIG_DIR", dir)
	return dir
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("SKYMAP_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "skymap"), GetConfigDir())

	t.Setenv("SKYMAP_CONFIG_DIR", "/etc/skymap")
	assert.Equal(t, "/etc/skymap", GetConfigDir())
	assert.Equal(t, "/etc/skymap/config.yaml", GetConfigPath())
}

func TestLoadConfig_Missing(t *testing.T) {
	useTempDir(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
	assert.Empty(t, GetSavedVPC())
}

func TestSaveAndLoad(t *testing.T) {
	useTempDir(t)

	want := &Config{
		Profile:   "prod",
		Region:    "eu-west-1",
		VPCID:     "vpc-1",
		WebLBName: "shop-web",
		AppLBName: "shop-app",
		LogLevel:  "debug",
	}
	require.NoError(t, SaveConfig(want))

	got, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSetVPC(t *testing.T) {
	useTempDir(t)
	require.NoError(t, SaveConfig(&Config{Profile: "prod"}))

	require.NoError(t, SetVPC("vpc-123"))
	assert.Equal(t, "vpc-123", GetSavedVPC())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Profile)

	require.NoError(t, SetVPC(""))
	assert.Empty(t, GetSavedVPC())

	data, err := os.ReadFile(GetConfigPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "vpc_id")
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := useTempDir(t)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("profile: [unterminated"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Error(t, SetVPC("vpc-1"))
}
