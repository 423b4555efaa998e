package editor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func recorder(calls *[]call, err error) Runner {
	return func(ctx context.Context, name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return err
	}
}

func TestNewCommandFallbacks(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	assert.Equal(t, &Command{Name: "code", Args: []string{"--wait"}}, NewCommand("code --wait"))
	assert.Equal(t, &Command{Name: "vi"}, NewCommand(""))

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, &Command{Name: "nano", Args: []string{}}, NewCommand("  "))

	t.Setenv("VISUAL", "hx")
	assert.Equal(t, "hx", NewCommand("").Name)
}

func TestCommandOpen(t *testing.T) {
	var calls []call
	c := &Command{Name: "nvim", Args: []string{"+$"}, Run: recorder(&calls, nil)}

	require.NoError(t, c.Open(context.Background(), "/vault/weekly/2026-W43.md"))
	require.Len(t, calls, 1)
	assert.Equal(t, "nvim", calls[0].name)
	assert.Equal(t, []string{"+$", "/vault/weekly/2026-W43.md"}, calls[0].args)

	// Args must not grow between invocations
	require.NoError(t, c.Open(context.Background(), "/vault/other.md"))
	assert.Equal(t, []string{"+$", "/vault/other.md"}, calls[1].args)
	assert.Equal(t, []string{"+$"}, c.Args)
}

func TestCommandOpenError(t *testing.T) {
	var calls []call
	c := &Command{Name: "missing-editor", Run: recorder(&calls, errors.New("not found"))}

	err := c.Open(context.Background(), "/vault/a.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-editor")
}

func TestObsidianURI(t *testing.T) {
	root := filepath.FromSlash("/home/me/My Vault")
	o := &Obsidian{VaultName: "My Vault", Root: root}

	uri, err := o.URI(filepath.Join(root, "2 - areas", "journals", "weekly", "2026-W43.md"))
	require.NoError(t, err)
	assert.Equal(t, "obsidian://open?vault=My%20Vault&file=2%20-%20areas%2Fjournals%2Fweekly%2F2026-W43.md", uri)
}

func TestObsidianOpen(t *testing.T) {
	var calls []call
	root := filepath.FromSlash("/vault")
	o := &Obsidian{VaultName: "vault", Root: root, Run: recorder(&calls, nil)}

	require.NoError(t, o.Open(context.Background(), filepath.Join(root, "a&b.md")))
	require.Len(t, calls, 1)

	args := calls[0].args
	assert.Equal(t, "obsidian://open?vault=vault&file=a%26b.md", args[len(args)-1])
}

func TestNewSelectsEditor(t *testing.T) {
	_, ok := New("obsidian", "vault", "/vault").(*Obsidian)
	assert.True(t, ok)

	c, ok := New("emacsclient -n", "vault", "/vault").(*Command)
	require.True(t, ok)
	assert.Equal(t, "emacsclient -n", c.String())
}
