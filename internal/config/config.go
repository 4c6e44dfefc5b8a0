package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the saved settings in config.yaml. Empty fields fall
// through to flags, environment and built-in defaults.
type Config struct {
	Profile   string `yaml:"profile,omitempty"`
	Region    string `yaml:"region,omitempty"`
	VPCID     string `yaml:"vpc_id,omitempty"`
	WebLBName string `yaml:"web_lb_name,omitempty"`
	AppLBName string `yaml:"app_lb_name,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
}

// GetConfigDir returns the config directory path. SKYMAP_CONFIG_DIR wins,
// then $XDG_CONFIG_HOME/skymap, then ~/.config/skymap.
func GetConfigDir() string {
	if dir := os.Getenv("SKYMAP_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skymap")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skymap"
	}
	return filepath.Join(home, ".config", "skymap")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration file. A missing file is an empty config.
func LoadConfig() (*Config, error) {
	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes the configuration file
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SetVPC saves the default VPC. An empty ID clears it.
func SetVPC(vpcID string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	cfg.VPCID = vpcID
	return SaveConfig(cfg)
}

// GetSavedVPC returns the saved default VPC, or ""
func GetSavedVPC() string {
	cfg, err := LoadConfig()
	if err != nil {
		return ""
	}
	return cfg.VPCID
}
