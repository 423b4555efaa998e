package vault

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDir(t *testing.T, exclude ...string) *Dir {
	t.Helper()
	d, err := NewDir(t.TempDir(), exclude)
	require.NoError(t, err)
	return d
}

func TestLookup(t *testing.T) {
	d := newTestDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(d.Root(), "journals"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(d.Root(), "journals", "a.md"), []byte("# a\n"), 0644))

	entry, err := d.Lookup("journals/a.md")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, File, entry.Kind)
	assert.True(t, entry.IsFile())

	entry, err = d.Lookup("journals")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, Folder, entry.Kind)
	assert.False(t, entry.IsFile())

	entry, err = d.Lookup("journals/missing.md")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestLookupRejectsPathsOutsideVault(t *testing.T) {
	d := newTestDir(t)

	_, err := d.Lookup("../outside.md")
	assert.True(t, errors.Is(err, ErrOutsideVault))

	_, err = d.Lookup("a/../../outside.md")
	assert.True(t, errors.Is(err, ErrOutsideVault))
}

func TestLeadingSlashStaysInVault(t *testing.T) {
	d := newTestDir(t)

	abs, err := d.Abs("/note.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(d.Root(), "note.md"), abs)
}

func TestCreateFolder(t *testing.T) {
	d := newTestDir(t)

	require.NoError(t, d.CreateFolder("2 - areas/journals/weekly"))

	info, err := os.Stat(filepath.Join(d.Root(), "2 - areas", "journals", "weekly"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateFolderOverFileFails(t *testing.T) {
	d := newTestDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(d.Root(), "blocked"), nil, 0644))

	assert.Error(t, d.CreateFolder("blocked/weekly"))
}

func TestCreate(t *testing.T) {
	d := newTestDir(t)

	entry, err := d.Create("note.md", "# note\n\n")
	require.NoError(t, err)
	assert.Equal(t, &Entry{Path: "note.md", Kind: File}, entry)

	data, err := os.ReadFile(filepath.Join(d.Root(), "note.md"))
	require.NoError(t, err)
	assert.Equal(t, "# note\n\n", string(data))
}

func TestCreateDoesNotOverwrite(t *testing.T) {
	d := newTestDir(t)
	path := filepath.Join(d.Root(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

	_, err := d.Create("note.md", "# replaced\n\n")
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestCreateWithoutParentFails(t *testing.T) {
	d := newTestDir(t)

	_, err := d.Create("missing/note.md", "x")
	assert.Error(t, err)
}

func TestFoldersDepthFirst(t *testing.T) {
	d := newTestDir(t, ".obsidian", ".obsidian/**")
	for _, dir := range []string{"b", "a/z", "a/c/d", ".obsidian/plugins"} {
		require.NoError(t, os.MkdirAll(filepath.Join(d.Root(), filepath.FromSlash(dir)), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(d.Root(), "a", "file.md"), nil, 0644))

	folders, err := d.Folders()
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "a", "a/c", "a/c/d", "a/z", "b"}, folders)
}

func TestFoldersExcludeGlob(t *testing.T) {
	d := newTestDir(t, "**/archive")
	for _, dir := range []string{"journals/archive/2019", "journals/weekly"} {
		require.NoError(t, os.MkdirAll(filepath.Join(d.Root(), filepath.FromSlash(dir)), 0755))
	}

	folders, err := d.Folders()
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "journals", "journals/weekly"}, folders)
}

func TestNewDirRejectsBadPattern(t *testing.T) {
	_, err := NewDir(t.TempDir(), []string{"[unclosed"})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "file", File.String())
	assert.Equal(t, "folder", Folder.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestCreateRemovesPartialFile(t *testing.T) {
	d := newTestDir(t)
	d.write = func(w io.Writer, s string) (int, error) {
		n, _ := io.WriteString(w, s[:3])
		return n, errors.New("disk full")
	}

	_, err := d.Create("note.md", "# 2026-W43\n\n")
	require.Error(t, err)

	entry, err := d.Lookup("note.md")
	require.NoError(t, err)
	assert.Nil(t, entry, "a failed create must not leave a file behind")

	// Nothing blocks the next attempt
	d.write = io.WriteString
	_, err = d.Create("note.md", "# 2026-W43\n\n")
	assert.NoError(t, err)
}

func TestFoldersSkipsUnreadableFolder(t *testing.T) {
	d := newTestDir(t)
	for _, dir := range []string{"a", "locked/inner", "z"} {
		require.NoError(t, os.MkdirAll(filepath.Join(d.Root(), filepath.FromSlash(dir)), 0755))
	}
	locked := filepath.Join(d.Root(), "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	folders, err := d.Folders()
	require.NoError(t, err)
	assert.Contains(t, folders, "a")
	assert.Contains(t, folders, "locked")
	assert.Contains(t, folders, "z")
	if os.Geteuid() != 0 {
		assert.NotContains(t, folders, "locked/inner")
	}
}
