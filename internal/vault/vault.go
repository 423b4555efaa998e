// Package vault exposes a notes vault on disk through the small set of
// capabilities the note opener needs: look up an entry, create a folder,
// create a file, and list folders.
//
// Vault paths are slash-separated and relative to the vault root, the way
// note-taking apps address files ("journals/weekly/2026-W43.md").
package vault

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gerunddev/weeknote/internal/logger"
)

// RootPath is the vault path of the root folder as reported by Folders.
const RootPath = "/"

// ErrOutsideVault is returned for paths that resolve outside the vault root.
var ErrOutsideVault = errors.New("path is outside the vault")

// Kind distinguishes files from folders.
type Kind int

const (
	File Kind = iota + 1
	Folder
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Folder:
		return "folder"
	}
	return "unknown"
}

// Entry is a file or folder that exists in the vault.
type Entry struct {
	Path string
	Kind Kind
}

// IsFile reports whether the entry is a regular file.
func (e *Entry) IsFile() bool {
	return e != nil && e.Kind == File
}

// Vault is the filesystem surface the note opener works against.
type Vault interface {
	// Lookup returns the entry at path, or nil when nothing exists there.
	Lookup(path string) (*Entry, error)
	// CreateFolder creates the folder at path along with any missing parents.
	CreateFolder(path string) error
	// Create writes a new file. It fails if any entry already exists at path.
	Create(path, content string) (*Entry, error)
	// Folders lists every folder in the vault, depth first.
	Folders() ([]string, error)
	// Abs maps a vault path to the location an editor can open.
	Abs(path string) (string, error)
}

// Dir is a Vault backed by a directory on the local filesystem.
type Dir struct {
	root    string
	exclude []string
	log     *logger.Logger
	write   func(w io.Writer, s string) (int, error)
}

// NewDir returns a vault rooted at root. Folders matching any of the
// doublestar exclude patterns are left out of Folders.
func NewDir(root string, exclude []string) (*Dir, error) {
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern '%s'", p)
		}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root: %w", err)
	}

	return &Dir{
		root:    abs,
		exclude: exclude,
		log:     logger.Discard(),
		write:   io.WriteString,
	}, nil
}

// SetLogger sets the logger for skipped folders
func (d *Dir) SetLogger(l *logger.Logger) {
	d.log = l
}

// Root returns the absolute path of the vault root.
func (d *Dir) Root() string {
	return d.root
}

// Abs maps a vault path to an absolute filesystem path.
func (d *Dir) Abs(path string) (string, error) {
	abs := filepath.Join(d.root, filepath.FromSlash(path))

	rel, err := filepath.Rel(d.root, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideVault)
	}

	return abs, nil
}

// Lookup returns the entry at path, or nil if nothing exists there.
func (d *Dir) Lookup(path string) (*Entry, error) {
	abs, err := d.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		// A file in place of a parent folder also means nothing is there
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, err
	}

	kind := File
	if info.IsDir() {
		kind = Folder
	}
	return &Entry{Path: path, Kind: kind}, nil
}

// CreateFolder creates the folder at path, including missing parents.
func (d *Dir) CreateFolder(path string) error {
	abs, err := d.Abs(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", path, err)
	}
	return nil
}

// Create writes a new file at path. The parent folder must already exist.
func (d *Dir) Create(path, content string) (*Entry, error) {
	abs, err := d.Abs(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	// A partly written note must not survive, or the next run would open it
	if _, err := d.write(f, content); err != nil {
		f.Close()
		os.Remove(abs)
		return nil, fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(abs)
		return nil, fmt.Errorf("failed to close file %s: %w", path, err)
	}

	return &Entry{Path: path, Kind: File}, nil
}

// Folders walks the vault depth first in lexical order and returns every
// folder path, starting with RootPath. Folders that cannot be read are
// listed but not descended into.
func (d *Dir) Folders() ([]string, error) {
	var folders []string

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path != d.root && errors.Is(err, fs.ErrPermission) {
				d.log.Warn("skipping unreadable folder", "path", path, "error", err)
				return filepath.SkipDir
			}
			return err
		}
		if !entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			folders = append(folders, RootPath)
			return nil
		}

		rel = filepath.ToSlash(rel)
		if d.excluded(rel) {
			return filepath.SkipDir
		}

		folders = append(folders, rel)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return folders, nil
}

func (d *Dir) excluded(rel string) bool {
	for _, p := range d.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
