// Package deliver hands a finished screenshot to the clipboard and the
// desktop notification daemon.
package deliver

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/ideamans/go-l10n"

	"github.com/user/xsnap/pkg/frame"
	"github.com/user/xsnap/pkg/pipeline"
	"github.com/user/xsnap/pkg/pngenc"
	"github.com/user/xsnap/pkg/ports"
)

// MIMEType is offered to the clipboard.
const MIMEType = "image/png"

// Stage delivers the saved PNG. A failed hand-off is reported as a
// warning and never turns into an error: the file on disk is already
// complete at this point.
type Stage struct {
	clipboard   ports.Clipboard   // nil disables clipboard copy
	notifier    ports.Notifier    // nil disables notifications
	thumbnailer ports.Thumbnailer // nil disables the notification icon
	fs          ports.FileSystem
	logger      ports.Logger
}

// New creates a new deliver stage.
func New(
	clipboard ports.Clipboard,
	notifier ports.Notifier,
	thumbnailer ports.Thumbnailer,
	fs ports.FileSystem,
	logger ports.Logger,
) *Stage {
	return &Stage{
		clipboard:   clipboard,
		notifier:    notifier,
		thumbnailer: thumbnailer,
		fs:          fs,
		logger:      logger.WithComponent("deliver"),
	}
}

// Execute copies and announces input.Path.
func (s *Stage) Execute(ctx context.Context, input pipeline.DeliverInput) (pipeline.DeliverResult, error) {
	result := pipeline.DeliverResult{}

	if input.Path == "" {
		return result, fmt.Errorf("nothing to deliver")
	}

	if input.Clipboard && s.clipboard != nil {
		if err := s.clipboard.CopyFile(ctx, input.Path, MIMEType); err != nil {
			s.warn(&result, l10n.F("Failed to copy to clipboard: %s", err))
		} else {
			result.Copied = true
			s.logger.Info("Copied to clipboard")
		}
	}

	if input.Notify && s.notifier != nil {
		note := ports.Notification{
			Summary:   l10n.T("Screenshot saved"),
			Body:      fmt.Sprintf("%s (%s)", input.Path, humanBytes(input.FileSize)),
			TimeoutMs: input.NotifyTimeoutMs,
		}

		if input.Thumbnail && s.thumbnailer != nil && input.Frame != nil {
			data, err := s.writeThumbnail(input)
			if err != nil {
				s.warn(&result, l10n.F("Failed to create thumbnail: %s", err))
			} else {
				result.ThumbnailPNG = data
				result.ThumbnailPath = input.ThumbnailPath
				note.IconPath = input.ThumbnailPath
			}
		}

		if err := s.notifier.Notify(ctx, note); err != nil {
			s.warn(&result, l10n.F("Failed to send notification: %s", err))
		} else {
			result.Notified = true
		}
	}

	return result, nil
}

// writeThumbnail renders the icon and stores it at input.ThumbnailPath.
func (s *Stage) writeThumbnail(input pipeline.DeliverInput) ([]byte, error) {
	if input.ThumbnailPath == "" {
		return nil, fmt.Errorf("no thumbnail path")
	}

	img, err := s.thumbnailer.Thumbnail(input.Frame, input.ThumbnailSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pngenc.New(pngenc.Options{Workers: 1}).Encode(frame.FromImage(img), &buf); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(input.ThumbnailPath); dir != "." {
		if err := s.fs.MkdirAll(dir); err != nil {
			return nil, err
		}
	}
	if err := s.fs.WriteFile(input.ThumbnailPath, buf.Bytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Stage) warn(result *pipeline.DeliverResult, msg string) {
	s.logger.Warn("%s", msg)
	result.Warnings = append(result.Warnings, msg)
}

// humanBytes formats n with a binary unit.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
