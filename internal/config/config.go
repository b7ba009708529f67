// Package config handles global Jumpedia configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global Jumpedia configuration.
type Config struct {
	// DataDir is the directory holding the catalog, batches and index.
	DataDir string `toml:"data_dir"`

	// Prefix is the command prefix the dispatcher strips (default "!").
	Prefix string `toml:"prefix"`

	// AdminIDs are actor IDs with admin rights (approve, nuke).
	AdminIDs []string `toml:"admin_ids"`

	// ModeratorIDs are actor IDs allowed to curate batches.
	ModeratorIDs []string `toml:"moderator_ids"`

	// CooldownSeconds is the large-result cooldown window for list queries.
	CooldownSeconds int `toml:"cooldown_seconds"`

	// AuditLog enables the append-only mutation log in the data directory.
	AuditLog bool `toml:"audit_log"`

	// Paste configures the external paste service for long list output.
	Paste PasteConfig `toml:"paste"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// PasteConfig represents the paste.ee settings for long results.
type PasteConfig struct {
	// Enabled turns paste uploads on; when off, long results print inline.
	Enabled bool `toml:"enabled"`

	// KeyFile is the path of the JSON secret file holding the API key.
	KeyFile string `toml:"key_file"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// DefaultPrefix is used when the config leaves the prefix empty.
const DefaultPrefix = "!"

// DefaultCooldownSeconds is used when the config leaves the cooldown unset.
const DefaultCooldownSeconds = 30

// GetPrefix returns the command prefix, defaulted.
func (c *Config) GetPrefix() string {
	if c.Prefix != "" {
		return c.Prefix
	}
	return DefaultPrefix
}

// GetCooldownSeconds returns the cooldown window, defaulted.
func (c *Config) GetCooldownSeconds() int {
	if c.CooldownSeconds > 0 {
		return c.CooldownSeconds
	}
	return DefaultCooldownSeconds
}

// GetDataDir returns the configured data directory.
func (c *Config) GetDataDir() (string, error) {
	if c.DataDir == "" {
		return "", fmt.Errorf("no data directory configured")
	}
	return c.DataDir, nil
}

// IsAdmin reports whether the actor ID appears in the admin list.
func (c *Config) IsAdmin(id string) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}

// IsModerator reports whether the actor ID appears in the moderator list.
// Admins moderate implicitly.
func (c *Config) IsModerator(id string) bool {
	if c.IsAdmin(id) {
		return true
	}
	for _, mod := range c.ModeratorIDs {
		if mod == id {
			return true
		}
	}
	return false
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/jumpedia/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "jumpedia", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "jumpedia", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Jumpedia Configuration

# Directory holding the jump catalog, batches and user index
# data_dir = "/path/to/jumpedia/data"

# Command prefix for the interactive session
# prefix = "!"

# Actor IDs with admin rights (batch approve/nuke)
# admin_ids = ["1234"]

# Actor IDs allowed to curate batches
# moderator_ids = ["5678"]

# Cooldown in seconds between large list results per user
# cooldown_seconds = 30

# Append-only audit log of catalog and batch mutations
# audit_log = true

# Paste service for long list output
# [paste]
# enabled = true
# key_file = "/path/to/pastee_key.json"

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
