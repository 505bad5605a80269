package summarizer

import (
	"image"
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithCapture(t *testing.T) {
	summary := NewBuilder().
		WithCapture(CaptureInfo{
			Mode:       "select",
			Window:     0x1200007,
			Bounds:     image.Rect(10, 20, 110, 70),
			Delay:      5 * time.Second,
			DurationMs: 14,
		}).
		Build()

	if summary.Capture.Mode != "select" {
		t.Errorf("expected mode 'select', got '%s'", summary.Capture.Mode)
	}
	if summary.Capture.Window != 0x1200007 {
		t.Errorf("expected window 0x1200007, got 0x%x", summary.Capture.Window)
	}
	if summary.Capture.Bounds.Dx() != 100 || summary.Capture.Bounds.Dy() != 50 {
		t.Errorf("unexpected bounds %v", summary.Capture.Bounds)
	}
}

func TestBuilder_WithOutput(t *testing.T) {
	summary := NewBuilder().
		WithOutput(OutputInfo{Path: "shot.png", Width: 100, Height: 50, FileSize: 4096, EncodeMs: 2}).
		Build()

	if summary.Output.Path != "shot.png" || summary.Output.FileSize != 4096 {
		t.Errorf("unexpected output %+v", summary.Output)
	}
}

func TestBuilder_WithSettings(t *testing.T) {
	summary := NewBuilder().
		WithSettings(Settings{Workers: 8, Compression: "best", Filter: "adaptive"}).
		Build()

	if summary.Settings.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", summary.Settings.Workers)
	}
	if summary.Settings.Compression != "best" {
		t.Errorf("expected compression 'best', got '%s'", summary.Settings.Compression)
	}
}

func TestBuilder_WithDelivery(t *testing.T) {
	summary := NewBuilder().
		WithDelivery(true, false, []string{"no notification daemon"}).
		Build()

	if !summary.Delivery.Copied || summary.Delivery.Notified {
		t.Errorf("unexpected delivery %+v", summary.Delivery)
	}
	if len(summary.Delivery.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(summary.Delivery.Warnings))
	}
}
