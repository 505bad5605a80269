// Package capture implements the screen capture stage.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/user/xsnap/pkg/pipeline"
	"github.com/user/xsnap/pkg/ports"
)

// Stage waits for the requested delay, resolves the target window and
// grabs its pixels.
type Stage struct {
	capturer ports.Capturer
	logger   ports.Logger
	now      func() time.Time
}

// New creates a new capture stage.
func New(capturer ports.Capturer, logger ports.Logger) *Stage {
	return &Stage{
		capturer: capturer,
		logger:   logger.WithComponent("capture"),
		now:      time.Now,
	}
}

// Execute runs the capture.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{Mode: input.Mode}

	if input.Delay < 0 {
		return result, fmt.Errorf("negative delay %s", input.Delay)
	}
	if err := s.wait(ctx, input.Delay); err != nil {
		return result, err
	}

	start := s.now()
	var capture ports.Capture
	var err error

	switch input.Mode {
	case ports.ModeScreen, "":
		result.Mode = ports.ModeScreen
		s.logger.Debug("Capturing the whole screen")
		capture, err = s.capturer.CaptureScreen(ctx)

	case ports.ModeSelect:
		s.logger.Info("Click a window to capture it, right-click to cancel")
		var window uint32
		window, err = s.capturer.SelectWindow(ctx)
		if err != nil {
			return result, fmt.Errorf("select window: %w", err)
		}
		start = s.now()
		s.logger.Debug("Capturing window 0x%x", window)
		capture, err = s.capturer.CaptureWindow(ctx, window)

	case ports.ModeActive:
		var window uint32
		window, err = s.capturer.ActiveWindow(ctx)
		if err != nil {
			return result, fmt.Errorf("active window: %w", err)
		}
		s.logger.Debug("Capturing window 0x%x", window)
		capture, err = s.capturer.CaptureWindow(ctx, window)

	default:
		return result, fmt.Errorf("unknown capture mode %q", input.Mode)
	}
	if err != nil {
		return result, fmt.Errorf("grab pixels: %w", err)
	}

	result.Frame = capture.Frame
	result.Window = capture.Window
	result.Bounds = capture.Bounds
	result.CapturedAt = start
	result.DurationMs = int(s.now().Sub(start).Milliseconds())

	s.logger.Info("Captured %dx%d pixels", capture.Bounds.Dx(), capture.Bounds.Dy())
	return result, nil
}

// wait blocks for d or until ctx is done.
func (s *Stage) wait(ctx context.Context, d time.Duration) error {
	if d == 0 {
		return ctx.Err()
	}
	s.logger.Info("Capturing in %d seconds", int((d+time.Second-1)/time.Second))

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
