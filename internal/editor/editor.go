// Package editor hands a note to the program the user edits notes with.
package editor

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ObsidianName selects the Obsidian URI editor in the editor setting.
const ObsidianName = "obsidian"

// Editor opens a file for editing.
type Editor interface {
	Open(ctx context.Context, path string) error
}

// Runner runs a command to completion.
type Runner func(ctx context.Context, name string, args ...string) error

// RunAttached runs the command with the terminal attached.
func RunAttached(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// New returns the editor selected by setting. "obsidian" opens notes in the
// Obsidian app for the vault at root; anything else is a command line.
func New(setting, vaultName, root string) Editor {
	if setting == ObsidianName {
		return &Obsidian{VaultName: vaultName, Root: root}
	}
	return NewCommand(setting)
}

// Command launches a terminal or GUI editor with the file as last argument.
type Command struct {
	Name string
	Args []string
	Run  Runner
}

// NewCommand parses command, falling back to $VISUAL, $EDITOR and vi.
func NewCommand(command string) *Command {
	for _, c := range []string{command, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if fields := strings.Fields(c); len(fields) > 0 {
			return &Command{Name: fields[0], Args: fields[1:]}
		}
	}
	return &Command{Name: "vi"}
}

func (c *Command) Open(ctx context.Context, path string) error {
	run := c.Run
	if run == nil {
		run = RunAttached
	}

	args := append(append([]string{}, c.Args...), path)
	if err := run(ctx, c.Name, args...); err != nil {
		return fmt.Errorf("failed to run %s: %w", c.Name, err)
	}
	return nil
}

func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Obsidian opens notes through the obsidian:// URI scheme.
type Obsidian struct {
	VaultName string
	Root      string
	Run       Runner
}

func (o *Obsidian) Open(ctx context.Context, path string) error {
	uri, err := o.URI(path)
	if err != nil {
		return err
	}

	run := o.Run
	if run == nil {
		run = RunAttached
	}

	name, args := platformOpener()
	if err := run(ctx, name, append(args, uri)...); err != nil {
		return fmt.Errorf("failed to open %s: %w", uri, err)
	}
	return nil
}

// URI builds the obsidian://open link for the file at path.
func (o *Obsidian) URI(path string) (string, error) {
	rel, err := filepath.Rel(o.Root, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve note path: %w", err)
	}

	return fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		encode(o.VaultName), encode(filepath.ToSlash(rel))), nil
}

func (o *Obsidian) String() string {
	return ObsidianName
}

// encode escapes like encodeURIComponent: spaces become %20, not '+'.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func platformOpener() (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
