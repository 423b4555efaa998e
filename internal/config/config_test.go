package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gerunddev/weeknote/internal/dateformat"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Folder != "2 - areas/journals/weekly" {
		t.Errorf("Folder = %q, want %q", cfg.Folder, "2 - areas/journals/weekly")
	}
	if cfg.DateFormat != "YYYY-[W]ww" {
		t.Errorf("DateFormat = %q, want %q", cfg.DateFormat, "YYYY-[W]ww")
	}
	if cfg.Vault == "" {
		t.Error("Expected Vault to be set")
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if cfg.WeekStart != WeekStartSunday {
		t.Errorf("WeekStart = %q, want %q", cfg.WeekStart, WeekStartSunday)
	}
	if cfg.Frontmatter {
		t.Error("Expected Frontmatter to be off by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "empty vault",
			config: &Config{
				Vault:     "",
				WeekStart: WeekStartSunday,
			},
			wantErr: true,
		},
		{
			name: "monday week start",
			config: &Config{
				Vault:     "/path/to/vault",
				WeekStart: WeekStartMonday,
			},
			wantErr: false,
		},
		{
			name: "unknown week start",
			config: &Config{
				Vault:     "/path/to/vault",
				WeekStart: "friday",
			},
			wantErr: true,
		},
		{
			name: "empty folder and date format are allowed",
			config: &Config{
				Vault:     "/path/to/vault",
				WeekStart: WeekStartSunday,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	// Create a temporary directory for test config
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")

	// Override ConfigPath for testing
	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return testConfigPath
	}
	defer func() {
		ConfigPath = originalConfigPath
	}()

	testCfg := DefaultConfig()
	testCfg.Folder = "X"
	testCfg.DateFormat = "Y"
	testCfg.Vault = filepath.Join(tmpDir, "vault")

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.Folder != "X" {
		t.Errorf("Folder mismatch: got %q, want %q", loadedCfg.Folder, "X")
	}
	if loadedCfg.DateFormat != "Y" {
		t.Errorf("DateFormat mismatch: got %q, want %q", loadedCfg.DateFormat, "Y")
	}
	if loadedCfg.Vault != testCfg.Vault {
		t.Errorf("Vault mismatch: got %q, want %q", loadedCfg.Vault, testCfg.Vault)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(tmpDir, "nonexistent.json"))
	if err != nil {
		t.Fatalf("LoadFrom() should not error on missing file: %v", err)
	}

	if cfg.Folder != DefaultFolder {
		t.Errorf("Folder = %q, want default %q", cfg.Folder, DefaultFolder)
	}
	if cfg.DateFormat != DefaultDateFormat {
		t.Errorf("DateFormat = %q, want default %q", cfg.DateFormat, DefaultDateFormat)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	// Only folder is stored
	if err := os.WriteFile(path, []byte(`{"folder": "journal/weeks"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Folder != "journal/weeks" {
		t.Errorf("Folder = %q, want %q", cfg.Folder, "journal/weeks")
	}
	if cfg.DateFormat != DefaultDateFormat {
		t.Errorf("DateFormat = %q, want default %q", cfg.DateFormat, DefaultDateFormat)
	}
	if len(cfg.ExcludePatterns) == 0 {
		t.Error("ExcludePatterns should keep its defaults")
	}
}

func TestLoadPresentEmptyValueOverridesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(path, []byte(`{"date_format": "", "exclude_patterns": null}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.DateFormat != "" {
		t.Errorf("DateFormat = %q, want empty", cfg.DateFormat)
	}
	if cfg.ExcludePatterns == nil || len(cfg.ExcludePatterns) != 0 {
		t.Errorf("ExcludePatterns = %v, want empty non-nil slice", cfg.ExcludePatterns)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(path, []byte("{ invalid json }"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on malformed JSON")
	}
}

func TestLoadInvalidWeekStart(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(path, []byte(`{"week_start": "tuesday"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should reject an unknown week_start")
	}
}

func TestWeekRule(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.WeekRule() != dateformat.SundayStart {
		t.Errorf("WeekRule() = %+v, want SundayStart", cfg.WeekRule())
	}

	cfg.WeekStart = WeekStartMonday
	if cfg.WeekRule() != dateformat.MondayStart {
		t.Errorf("WeekRule() = %+v, want MondayStart", cfg.WeekRule())
	}
}

func TestVaultName(t *testing.T) {
	cfg := &Config{Vault: "/home/me/Documents/My Vault/"}
	if got := cfg.VaultName(); got != "My Vault" {
		t.Errorf("VaultName() = %q, want %q", got, "My Vault")
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{
			name:     "tilde expansion",
			input:    "~/test",
			contains: homeDir,
		},
		{
			name:     "tilde only",
			input:    "~",
			contains: homeDir,
		},
		{
			name:     "absolute path",
			input:    "/tmp/test",
			contains: "/tmp/test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result == "" {
				t.Error("expandPath() returned empty string")
			}
			if tt.input[0] == '~' && result == tt.input {
				t.Errorf("Path was not expanded: %s", result)
			}
		})
	}
}

func TestConfigPathsExpanded(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")

	testCfg := DefaultConfig()
	testCfg.Vault = "~/Documents/vault"
	testCfg.LogFile = "~/weeknote.log"

	if err := testCfg.SaveTo(testConfigPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := LoadFrom(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.Vault[0] == '~' {
		t.Error("Vault was not expanded")
	}
	if loadedCfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}
