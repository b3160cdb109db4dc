package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/evcraddock/realty-site/internal/db"
)

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	ServerURL    string `yaml:"server_url,omitempty"`
	ContactPhone string `yaml:"contact_phone,omitempty"`
	ImgBBKey     string `yaml:"imgbb_key,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	dir, err := db.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// setting returns the env var if set, else the config value, else fallback.
func setting(envKey string, fromConfig func(CLIConfig) string, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		if v := fromConfig(cfg); v != "" {
			return v
		}
	}
	return fallback
}

// getServerURL returns the API URL from env var, config, or default.
func getServerURL() string {
	return setting("REALTY_API_URL", func(c CLIConfig) string { return c.ServerURL }, "http://localhost:8000")
}

// getContactPhone returns the agency WhatsApp number from env var or config.
func getContactPhone() string {
	return setting("REALTY_CONTACT_PHONE", func(c CLIConfig) string { return c.ContactPhone }, "")
}

// getImgBBKey returns the image host API key from env var or config.
func getImgBBKey() string {
	return setting("IMGBB_API_KEY", func(c CLIConfig) string { return c.ImgBBKey }, "")
}
