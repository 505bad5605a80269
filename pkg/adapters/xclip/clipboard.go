// Package xclip copies files to the X clipboard through the xclip tool.
package xclip

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/user/xsnap/pkg/ports"
)

// Runner starts an external command and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

// runCommand runs name without attaching pipes: xclip forks a child that
// keeps serving the selection, and waiting on inherited pipes would block
// until that child exits.
func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Clipboard implements ports.Clipboard.
type Clipboard struct {
	command   string
	selection string
	run       Runner
}

// New creates a Clipboard. Empty arguments fall back to "xclip" and the
// "clipboard" selection.
func New(command, selection string) *Clipboard {
	if command == "" {
		command = "xclip"
	}
	if selection == "" {
		selection = "clipboard"
	}
	return &Clipboard{
		command:   command,
		selection: selection,
		run:       runCommand,
	}
}

// WithRunner replaces the command runner.
func (c *Clipboard) WithRunner(run Runner) *Clipboard {
	c.run = run
	return c
}

// CopyFile hands path to xclip as mimeType.
func (c *Clipboard) CopyFile(ctx context.Context, path, mimeType string) error {
	args := []string{"-selection", c.selection, "-t", mimeType, "-i", path}
	if err := c.run(ctx, c.command, args...); err != nil {
		return fmt.Errorf("%s: %w", c.command, err)
	}
	return nil
}

var _ ports.Clipboard = (*Clipboard)(nil)
