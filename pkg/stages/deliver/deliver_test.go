package deliver

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ideamans/go-l10n"

	"github.com/user/xsnap/pkg/adapters/logger"
	"github.com/user/xsnap/pkg/mocks"
	"github.com/user/xsnap/pkg/pipeline"
	"github.com/user/xsnap/pkg/ports"
)

var thumbPath = filepath.Join("cache", "thumbnail.png")

func fullInput() pipeline.DeliverInput {
	return pipeline.DeliverInput{
		Frame:           mocks.TestFrame(8, 6),
		Path:            "screenshot.png",
		FileSize:        2048,
		Clipboard:       true,
		Notify:          true,
		NotifyTimeoutMs: 5000,
		Thumbnail:       true,
		ThumbnailSize:   64,
		ThumbnailPath:   thumbPath,
	}
}

func TestStage_DeliversEverything(t *testing.T) {
	clip := &mocks.Clipboard{}
	notifier := &mocks.Notifier{}
	thumbs := &mocks.Thumbnailer{}
	fs := mocks.NewFileSystem()
	stage := New(clip, notifier, thumbs, fs, logger.NewNoop())

	result, err := stage.Execute(context.Background(), fullInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(clip.Calls) != 1 || clip.Calls[0].Path != "screenshot.png" || clip.Calls[0].MimeType != "image/png" {
		t.Errorf("unexpected clipboard calls %v", clip.Calls)
	}
	if !result.Copied || !result.Notified {
		t.Errorf("expected copy and notify to succeed, got %+v", result)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}

	if len(notifier.Notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.Notifications))
	}
	note := notifier.Notifications[0]
	if note.Summary != l10n.T("Screenshot saved") {
		t.Errorf("unexpected summary %q", note.Summary)
	}
	if note.Body != "screenshot.png (2.0 KiB)" {
		t.Errorf("unexpected body %q", note.Body)
	}
	if note.IconPath != thumbPath || note.TimeoutMs != 5000 {
		t.Errorf("unexpected notification %+v", note)
	}

	if thumbs.Calls != 1 {
		t.Errorf("expected 1 thumbnail, got %d", thumbs.Calls)
	}
	data, ok := fs.GetFile(thumbPath)
	if !ok {
		t.Fatal("expected thumbnail file")
	}
	if !bytes.Equal(data, result.ThumbnailPNG) {
		t.Error("expected result to carry the thumbnail bytes")
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("thumbnail is not a PNG: %v", err)
	}
}

func TestStage_ClipboardFailureIsWarning(t *testing.T) {
	clip := &mocks.Clipboard{
		CopyFileFunc: func(ctx context.Context, path, mimeType string) error {
			return errors.New("xclip: executable file not found")
		},
	}
	notifier := &mocks.Notifier{}
	stage := New(clip, notifier, nil, mocks.NewFileSystem(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), fullInput())
	if err != nil {
		t.Fatalf("expected delivery failure to be a warning, got %v", err)
	}
	if result.Copied {
		t.Error("expected Copied to be false")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "executable file not found") {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}
	if !result.Notified {
		t.Error("expected notification despite clipboard failure")
	}
}

func TestStage_NotifyFailureIsWarning(t *testing.T) {
	notifier := &mocks.Notifier{
		NotifyFunc: func(ctx context.Context, n ports.Notification) error {
			return errors.New("org.freedesktop.DBus.Error.ServiceUnknown")
		},
	}
	stage := New(&mocks.Clipboard{}, notifier, &mocks.Thumbnailer{}, mocks.NewFileSystem(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), fullInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Notified || !result.Copied {
		t.Errorf("unexpected result %+v", result)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", result.Warnings)
	}
}

func TestStage_ThumbnailFailureStillNotifies(t *testing.T) {
	thumbs := &mocks.Thumbnailer{
		ThumbnailFunc: func(frame ports.Frame, maxSize int) (image.Image, error) {
			return nil, errors.New("too small")
		},
	}
	notifier := &mocks.Notifier{}
	stage := New(nil, notifier, thumbs, mocks.NewFileSystem(), logger.NewNoop())

	result, err := stage.Execute(context.Background(), fullInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.Notifications) != 1 || notifier.Notifications[0].IconPath != "" {
		t.Errorf("expected a notification without icon, got %v", notifier.Notifications)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", result.Warnings)
	}
}

func TestStage_Disabled(t *testing.T) {
	clip := &mocks.Clipboard{}
	notifier := &mocks.Notifier{}
	thumbs := &mocks.Thumbnailer{}
	fs := mocks.NewFileSystem()
	stage := New(clip, notifier, thumbs, fs, logger.NewNoop())

	input := fullInput()
	input.Clipboard = false
	input.Notify = false

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clip.Calls) != 0 || len(notifier.Notifications) != 0 || thumbs.Calls != 0 {
		t.Error("expected no collaborator calls")
	}
	if result.Copied || result.Notified {
		t.Errorf("unexpected result %+v", result)
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected no thumbnail file")
	}
}

func TestStage_NoThumbnailWhenTurnedOff(t *testing.T) {
	notifier := &mocks.Notifier{}
	thumbs := &mocks.Thumbnailer{}
	stage := New(nil, notifier, thumbs, mocks.NewFileSystem(), logger.NewNoop())

	input := fullInput()
	input.Thumbnail = false

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thumbs.Calls != 0 {
		t.Error("expected thumbnailer not to be called")
	}
	if notifier.Notifications[0].IconPath != "" {
		t.Error("expected no icon")
	}
}

func TestStage_NoPath(t *testing.T) {
	stage := New(&mocks.Clipboard{}, &mocks.Notifier{}, nil, mocks.NewFileSystem(), logger.NewNoop())

	if _, err := stage.Execute(context.Background(), pipeline.DeliverInput{Clipboard: true}); err == nil {
		t.Fatal("expected error without a path")
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
