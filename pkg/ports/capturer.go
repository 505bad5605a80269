package ports

import (
	"context"
	"errors"
	"image"
)

// CaptureMode selects what gets captured.
type CaptureMode string

const (
	// ModeScreen captures the whole root window.
	ModeScreen CaptureMode = "screen"
	// ModeSelect lets the user click the window to capture.
	ModeSelect CaptureMode = "select"
	// ModeActive captures the currently focused window.
	ModeActive CaptureMode = "active"
)

// ParseCaptureMode parses a mode name. Unknown names return false.
func ParseCaptureMode(s string) (CaptureMode, bool) {
	switch CaptureMode(s) {
	case ModeScreen, ModeSelect, ModeActive:
		return CaptureMode(s), true
	}
	return "", false
}

var (
	// ErrSelectionCancelled is returned when the user aborts window selection.
	ErrSelectionCancelled = errors.New("window selection cancelled")
	// ErrNoActiveWindow is returned when the window manager reports no focused window.
	ErrNoActiveWindow = errors.New("no active window")
)

// Capture is a grabbed frame together with where it came from.
type Capture struct {
	Frame Frame
	// Bounds is the captured rectangle in root window coordinates.
	Bounds image.Rectangle
	// Window is the source window id, or the root window for screen captures.
	Window uint32
}

// Capturer abstracts the display server.
type Capturer interface {
	// CaptureScreen grabs the whole screen.
	CaptureScreen(ctx context.Context) (Capture, error)

	// CaptureWindow grabs the on-screen area covered by the given window.
	CaptureWindow(ctx context.Context, window uint32) (Capture, error)

	// SelectWindow blocks until the user clicks a window and returns its id.
	SelectWindow(ctx context.Context) (uint32, error)

	// ActiveWindow returns the focused window id.
	ActiveWindow(ctx context.Context) (uint32, error)

	// Close releases the display connection.
	Close() error
}
