// Package note opens the periodic note for the current date, creating the
// folder and file first when they do not exist yet.
package note

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gerunddev/weeknote/internal/dateformat"
	"github.com/gerunddev/weeknote/internal/editor"
	"github.com/gerunddev/weeknote/internal/logger"
	"github.com/gerunddev/weeknote/internal/notice"
	"github.com/gerunddev/weeknote/internal/vault"
)

// Operations reported in CreateError.
const (
	OpFolder = "folder"
	OpFile   = "file"
)

// CreateError reports a folder or file that could not be created.
type CreateError struct {
	Op   string
	Path string
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}

// Settings are the user-facing knobs of the opener.
type Settings struct {
	Folder      string
	DateFormat  string
	WeekRule    dateformat.WeekRule
	Frontmatter bool
}

// History records notes the opener created.
type History interface {
	Record(notePath, absPath string, created time.Time) error
}

// Result describes what an Open call did.
type Result struct {
	Path    string
	Stem    string
	Created bool
	Opened  bool
}

// Opener resolves, creates and opens periodic notes.
type Opener struct {
	Vault    vault.Vault
	Editor   editor.Editor
	Notifier notice.Notifier
	Log      *logger.Logger
	History  History
	Now      func() time.Time
}

// TrimFolder removes a single trailing slash. Nothing else is normalized.
func TrimFolder(folder string) string {
	return strings.TrimSuffix(folder, "/")
}

// TargetPath returns the vault path of the note named stem in folder.
func TargetPath(folder, stem string) string {
	return TrimFolder(folder) + "/" + stem + ".md"
}

// Stem formats t into the note file name, without extension.
func (s Settings) Stem(t time.Time) string {
	return dateformat.FormatWeek(t, s.DateFormat, s.WeekRule)
}

// Resolve returns the folder, stem and note path for t.
func (s Settings) Resolve(t time.Time) (folder, stem, path string) {
	stem = s.Stem(t)
	folder = TrimFolder(s.Folder)
	return folder, stem, TargetPath(folder, stem)
}

// Open opens the note for the current date, creating it when nothing
// exists at its path. An existing entry is never rewritten. Every failure
// is shown as a notice and ends the call.
func (o *Opener) Open(ctx context.Context, s Settings) (*Result, error) {
	now := o.now()
	folder, stem, path := s.Resolve(now)
	res := &Result{Path: path, Stem: stem}
	log := o.logger()

	entry, err := o.Vault.Lookup(path)
	if err != nil {
		o.Notifier.Failure(fmt.Sprintf("Failed to open note: %s", path))
		log.Error("lookup failed", "path", path, "error", err)
		return res, fmt.Errorf("failed to look up %s: %w", path, err)
	}
	log.NoteResolved(path, entry != nil)

	if entry == nil {
		if err := o.ensureFolder(folder); err != nil {
			o.Notifier.Failure(fmt.Sprintf("Failed to create folder: %s", folder))
			return res, &CreateError{Op: OpFolder, Path: folder, Err: err}
		}

		entry, err = o.create(path, stem, now, s.Frontmatter)
		if err != nil {
			o.Notifier.Failure(fmt.Sprintf("Failed to create file: %s", path))
			log.CreateFailed(OpFile, path, err)
			return res, &CreateError{Op: OpFile, Path: path, Err: err}
		}

		res.Created = true
		o.Notifier.Success(fmt.Sprintf("Created weekly note: %s", stem))
		log.NoteCreated(path)
		o.record(path, now)
	}

	// A folder sitting at the note path is left alone.
	if !entry.IsFile() {
		return res, nil
	}

	abs, err := o.Vault.Abs(path)
	if err == nil {
		err = o.Editor.Open(ctx, abs)
	}
	if err != nil {
		o.Notifier.Failure(fmt.Sprintf("Failed to open note: %s", path))
		log.Error("open failed", "path", path, "error", err)
		return res, err
	}

	res.Opened = true
	log.EditorOpened(path, fmt.Sprint(o.Editor))
	return res, nil
}

func (o *Opener) ensureFolder(folder string) error {
	existing, err := o.Vault.Lookup(folder)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if err := o.Vault.CreateFolder(folder); err != nil {
		return err
	}
	o.logger().FolderCreated(folder)
	return nil
}

func (o *Opener) create(path, stem string, now time.Time, frontmatter bool) (*vault.Entry, error) {
	content, err := Content(stem, now, frontmatter)
	if err != nil {
		return nil, err
	}
	return o.Vault.Create(path, content)
}

func (o *Opener) record(path string, now time.Time) {
	if o.History == nil {
		return
	}

	abs, err := o.Vault.Abs(path)
	if err == nil {
		err = o.History.Record(path, abs, now)
	}
	if err != nil {
		o.logger().StateError("record", err)
	}
}

func (o *Opener) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Opener) logger() *logger.Logger {
	if o.Log != nil {
		return o.Log
	}
	return logger.Discard()
}
