package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/gerunddev/weeknote/internal/dateformat"
)

const appName = "weeknote"

// Defaults for the two note settings.
const (
	DefaultFolder     = "2 - areas/journals/weekly"
	DefaultDateFormat = "YYYY-[W]ww"
)

// Week start values accepted in week_start
const (
	WeekStartSunday = "sunday"
	WeekStartMonday = "monday"
)

// Config represents the weeknote configuration
type Config struct {
	Folder          string   `json:"folder"`
	DateFormat      string   `json:"date_format"`
	Vault           string   `json:"vault"`
	Editor          string   `json:"editor"`
	LogFile         string   `json:"log_file"`
	WeekStart       string   `json:"week_start"`
	ExcludePatterns []string `json:"exclude_patterns"`
	Frontmatter     bool     `json:"frontmatter"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Folder:          DefaultFolder,
		DateFormat:      DefaultDateFormat,
		Vault:           filepath.Join(home, "Documents", "obsidian-vault"),
		Editor:          "",
		LogFile:         filepath.Join(xdg.DataHome, appName, appName+".log"),
		WeekStart:       WeekStartSunday,
		ExcludePatterns: []string{".obsidian", ".obsidian/**", ".trash", ".trash/**"},
		Frontmatter:     false,
	}
}

// ConfigPath returns the path to the config file
// Can be overridden for testing
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.json")
}

// StateFilePath returns the path to the note history file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, appName, "state.json")
}

// Load reads configuration from the XDG config directory
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from path. Keys present in the file
// override the defaults, absent keys keep them. A missing file yields the
// defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err == nil {
		// Unmarshal over the defaults; only keys present in the file change
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if cfg.ExcludePatterns == nil {
		cfg.ExcludePatterns = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the XDG config directory
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes configuration to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Vault == "" {
		return fmt.Errorf("vault cannot be empty")
	}

	switch c.WeekStart {
	case WeekStartSunday, WeekStartMonday:
	default:
		return fmt.Errorf("invalid week_start '%s': must be one of: %s, %s", c.WeekStart, WeekStartSunday, WeekStartMonday)
	}

	return nil
}

// WeekRule returns the week numbering rule selected by week_start
func (c *Config) WeekRule() dateformat.WeekRule {
	if c.WeekStart == WeekStartMonday {
		return dateformat.MondayStart
	}
	return dateformat.SundayStart
}

// VaultName is the name the vault is known by in Obsidian: its directory name
func (c *Config) VaultName() string {
	return filepath.Base(strings.TrimRight(c.Vault, string(filepath.Separator)))
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.Vault, err = expandPath(c.Vault)
	if err != nil {
		return fmt.Errorf("failed to expand vault: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
