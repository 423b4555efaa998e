package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gerunddev/weeknote/internal/config"
	"github.com/gerunddev/weeknote/internal/editor"
	"github.com/gerunddev/weeknote/internal/logger"
	"github.com/gerunddev/weeknote/internal/note"
	"github.com/gerunddev/weeknote/internal/notice"
	"github.com/gerunddev/weeknote/internal/state"
	"github.com/gerunddev/weeknote/internal/styles"
	"github.com/gerunddev/weeknote/internal/tui"
	"github.com/gerunddev/weeknote/internal/vault"
)

// env holds what every command works with
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	vault   *vault.Dir
	cleanup func()
}

// setup loads the config and opens the log and vault
func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, cleanup := openLogger(cfg.LogFile)
	log.ConfigLoaded(cfg.Vault, cfg.Folder, cfg.DateFormat)

	d, err := vault.NewDir(cfg.Vault, cfg.ExcludePatterns)
	if err != nil {
		cleanup()
		return nil, err
	}
	d.SetLogger(log)

	return &env{cfg: cfg, log: log, vault: d, cleanup: cleanup}, nil
}

// mustSetup is setup for commands that cannot continue without it
func mustSetup() *env {
	e, err := setup()
	if err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error loading config: " + err.Error()))
		os.Exit(1)
	}
	return e
}

// openLogger returns a file logger, or a discarding one when the log
// cannot be opened
func openLogger(path string) (*logger.Logger, func()) {
	if path == "" {
		return logger.Discard(), func() {}
	}
	l, cleanup, err := logger.NewFileLogger(path)
	if err != nil {
		return logger.Discard(), func() {}
	}
	return l, cleanup
}

func (e *env) settings() note.Settings {
	return noteSettings(e.cfg)
}

func noteSettings(cfg *config.Config) note.Settings {
	return note.Settings{
		Folder:      cfg.Folder,
		DateFormat:  cfg.DateFormat,
		WeekRule:    cfg.WeekRule(),
		Frontmatter: cfg.Frontmatter,
	}
}

func (e *env) editor() editor.Editor {
	return editor.New(e.cfg.Editor, e.cfg.VaultName(), e.vault.Root())
}

func (e *env) opener(history note.History) *note.Opener {
	return &note.Opener{
		Vault:    e.vault,
		Editor:   e.editor(),
		Notifier: notice.NewTerminal(os.Stdout),
		Log:      e.log,
		History:  history,
		Now:      time.Now,
	}
}

// saver persists every settings change to the config file
func saver(log *logger.Logger) tui.SaveFunc {
	return func(cfg *config.Config, key string) error {
		if err := cfg.Save(); err != nil {
			log.Error("failed to save config", "key", key, "error", err)
			return err
		}
		log.ConfigSaved(key, settingValue(cfg, key))
		return nil
	}
}

// ApplySetting sets one of the user-editable settings by name
func ApplySetting(cfg *config.Config, key, value string) (string, error) {
	switch key {
	case "folder":
		cfg.Folder = value
		return "folder", nil
	case "date-format", "date_format":
		cfg.DateFormat = value
		return "date_format", nil
	case "week-start", "week_start":
		value = strings.ToLower(value)
		if value != config.WeekStartSunday && value != config.WeekStartMonday {
			return "", fmt.Errorf("invalid week start '%s': must be one of: %s, %s", value, config.WeekStartSunday, config.WeekStartMonday)
		}
		cfg.WeekStart = value
		return "week_start", nil
	}
	return "", fmt.Errorf("unknown setting '%s'", key)
}

func settingValue(cfg *config.Config, key string) string {
	switch key {
	case "date_format":
		return cfg.DateFormat
	case "week_start":
		return cfg.WeekStart
	}
	return cfg.Folder
}

// LastCreated scans the last maxLines of the log for the most recent note
// creation and returns its path and time
func LastCreated(logPath string, maxLines int) (string, time.Time, bool) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return "", time.Time{}, false
	}

	lines := strings.Split(string(content), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !strings.Contains(line, "note created") {
			continue
		}

		// Format: 2026-10-19 09:30:00 INFO note created path=...
		var at time.Time
		if len(line) > 19 {
			if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
				at = t
			}
		}

		idx := strings.Index(line, "path=")
		if idx == -1 {
			continue
		}
		return logValue(line[idx+len("path="):]), at, true
	}

	return "", time.Time{}, false
}

// logValue reads a single key=value value, quoted or bare
func logValue(s string) string {
	if strings.HasPrefix(s, `"`) {
		if quoted, err := strconv.QuotedPrefix(s); err == nil {
			if v, err := strconv.Unquote(quoted); err == nil {
				return v
			}
		}
	}
	if end := strings.IndexByte(s, ' '); end != -1 {
		return s[:end]
	}
	return s
}

// loadState loads note history; a broken state file starts fresh
func loadState(log *logger.Logger) *state.State {
	st, err := state.Load(config.StateFilePath())
	if err != nil {
		log.StateError("load", err)
		return state.NewState()
	}
	return st
}
