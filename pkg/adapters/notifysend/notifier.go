// Package notifysend shows desktop notifications by running notify-send.
package notifysend

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/user/xsnap/pkg/ports"
)

// Runner starts an external command and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil && len(out) > 0 {
		return fmt.Errorf("%w: %s", err, out)
	}
	return err
}

// Notifier implements ports.Notifier.
type Notifier struct {
	appName string
	command string
	run     Runner
}

// New creates a Notifier that tags notifications with appName.
func New(appName string) *Notifier {
	return &Notifier{
		appName: appName,
		command: "notify-send",
		run:     runCommand,
	}
}

// WithRunner replaces the command runner.
func (n *Notifier) WithRunner(run Runner) *Notifier {
	n.run = run
	return n
}

func (n *Notifier) Notify(ctx context.Context, note ports.Notification) error {
	args := []string{"--app-name", n.appName}
	if note.IconPath != "" {
		args = append(args, "--icon", note.IconPath)
	}
	if note.TimeoutMs > 0 {
		args = append(args, "--expire-time", strconv.Itoa(note.TimeoutMs))
	}
	args = append(args, "--", note.Summary)
	if note.Body != "" {
		args = append(args, note.Body)
	}

	if err := n.run(ctx, n.command, args...); err != nil {
		return fmt.Errorf("%s: %w", n.command, err)
	}
	return nil
}

var _ ports.Notifier = (*Notifier)(nil)
