package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/user/xsnap/pkg/adapters/logger"
	"github.com/user/xsnap/pkg/mocks"
	"github.com/user/xsnap/pkg/pipeline"
	"github.com/user/xsnap/pkg/ports"
	"github.com/user/xsnap/pkg/stages/capture"
	"github.com/user/xsnap/pkg/stages/deliver"
	"github.com/user/xsnap/pkg/stages/encode"
)

// mockCaptureStage is a mock for the capture stage.
type mockCaptureStage struct {
	result pipeline.CaptureResult
	err    error
	input  pipeline.CaptureInput
}

func (m *mockCaptureStage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.CaptureResult{}, m.err
	}
	return m.result, nil
}

// mockEncodeStage is a mock for the encode stage.
type mockEncodeStage struct {
	result pipeline.EncodeResult
	err    error
	called bool
	input  pipeline.EncodeInput
}

func (m *mockEncodeStage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	m.called = true
	m.input = input
	if m.err != nil {
		return pipeline.EncodeResult{}, m.err
	}
	return m.result, nil
}

// mockDeliverStage is a mock for the deliver stage.
type mockDeliverStage struct {
	result pipeline.DeliverResult
	err    error
	called bool
	input  pipeline.DeliverInput
}

func (m *mockDeliverStage) Execute(ctx context.Context, input pipeline.DeliverInput) (pipeline.DeliverResult, error) {
	m.called = true
	m.input = input
	if m.err != nil {
		return pipeline.DeliverResult{}, m.err
	}
	return m.result, nil
}

func newMockStages() (*mockCaptureStage, *mockEncodeStage, *mockDeliverStage) {
	captureStage := &mockCaptureStage{
		result: pipeline.CaptureResult{
			Frame:      mocks.TestFrame(8, 6),
			Mode:       ports.ModeActive,
			Window:     0x3400002,
			Bounds:     image.Rect(10, 20, 18, 26),
			CapturedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			DurationMs: 12,
		},
	}
	encodeStage := &mockEncodeStage{
		result: pipeline.EncodeResult{
			Path:        "screenshot.png",
			FileSize:    321,
			Width:       8,
			Height:      6,
			Workers:     4,
			Compression: "default",
			Filter:      "adaptive",
			DurationMs:  3,
		},
	}
	deliverStage := &mockDeliverStage{
		result: pipeline.DeliverResult{
			Copied:       true,
			Notified:     true,
			ThumbnailPNG: []byte{0x89, 'P', 'N', 'G'},
		},
	}
	return captureStage, encodeStage, deliverStage
}

func TestOrchestrator_Run(t *testing.T) {
	captureStage, encodeStage, deliverStage := newMockStages()
	orch := New(captureStage, encodeStage, deliverStage, mocks.NewDebugSink(false), logger.NewNoop())

	config := DefaultConfig()
	config.Mode = ports.ModeActive
	config.Delay = 5 * time.Second
	config.Workers = 4
	config.ThumbnailPath = "thumb.png"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captureStage.input.Mode != ports.ModeActive || captureStage.input.Delay != 5*time.Second {
		t.Errorf("unexpected capture input %+v", captureStage.input)
	}
	if encodeStage.input.Frame != captureStage.result.Frame {
		t.Error("expected the captured frame to be encoded")
	}
	if !encodeStage.input.Timestamp.Equal(captureStage.result.CapturedAt) {
		t.Error("expected capture time to name the output")
	}
	if encodeStage.input.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", encodeStage.input.Workers)
	}
	if deliverStage.input.Path != "screenshot.png" || deliverStage.input.FileSize != 321 {
		t.Errorf("unexpected deliver input %+v", deliverStage.input)
	}
	if !deliverStage.input.Clipboard || !deliverStage.input.Notify || deliverStage.input.ThumbnailPath != "thumb.png" {
		t.Errorf("expected delivery settings to be forwarded, got %+v", deliverStage.input)
	}

	if result.OutputPath != "screenshot.png" || result.FileSize != 321 {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Window != 0x3400002 || result.Mode != ports.ModeActive {
		t.Errorf("unexpected capture info %+v", result)
	}
	if !result.Copied || !result.Notified {
		t.Error("expected delivery flags in result")
	}
}

func TestOrchestrator_CaptureErrorStopsRun(t *testing.T) {
	captureStage, encodeStage, deliverStage := newMockStages()
	captureStage.err = ports.ErrSelectionCancelled
	orch := New(captureStage, encodeStage, deliverStage, mocks.NewDebugSink(true), logger.NewNoop())

	_, err := orch.Run(context.Background(), DefaultConfig())
	if !errors.Is(err, ports.ErrSelectionCancelled) {
		t.Fatalf("expected ErrSelectionCancelled, got %v", err)
	}
	if encodeStage.called || deliverStage.called {
		t.Error("expected no downstream stage after a capture error")
	}
}

func TestOrchestrator_EncodeErrorStopsRun(t *testing.T) {
	captureStage, encodeStage, deliverStage := newMockStages()
	encodeStage.err = errors.New("disk full")
	orch := New(captureStage, encodeStage, deliverStage, mocks.NewDebugSink(false), logger.NewNoop())

	if _, err := orch.Run(context.Background(), DefaultConfig()); err == nil {
		t.Fatal("expected error")
	}
	if deliverStage.called {
		t.Error("expected no delivery after an encode error")
	}
}

func TestOrchestrator_DeliverErrorIsWarning(t *testing.T) {
	captureStage, encodeStage, deliverStage := newMockStages()
	deliverStage.err = errors.New("nothing to deliver")
	orch := New(captureStage, encodeStage, deliverStage, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := orch.Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("expected delivery error to be tolerated, got %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", result.Warnings)
	}
	if result.OutputPath != "screenshot.png" {
		t.Error("expected output path despite delivery error")
	}
}

func TestOrchestrator_WithDebugSink(t *testing.T) {
	captureStage, encodeStage, deliverStage := newMockStages()
	sink := mocks.NewDebugSink(true)
	orch := New(captureStage, encodeStage, deliverStage, sink, logger.NewNoop())

	if _, err := orch.Run(context.Background(), DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Contains(sink.CaptureJSON, []byte(`"mode": "active"`)) {
		t.Errorf("expected capture JSON with mode, got %s", sink.CaptureJSON)
	}
	if !bytes.Contains(sink.EncodeJSON, []byte(`"fileSize": 321`)) {
		t.Errorf("expected encode JSON with size, got %s", sink.EncodeJSON)
	}
	if !bytes.Equal(sink.Thumbnail, deliverStage.result.ThumbnailPNG) {
		t.Error("expected thumbnail to be saved")
	}
}

func TestOrchestrator_DebugSinkDisabled(t *testing.T) {
	captureStage, encodeStage, deliverStage := newMockStages()
	sink := mocks.NewDebugSink(false)
	orch := New(captureStage, encodeStage, deliverStage, sink, logger.NewNoop())

	if _, err := orch.Run(context.Background(), DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.CaptureJSON) != 0 || len(sink.EncodeJSON) != 0 || len(sink.Thumbnail) != 0 {
		t.Error("expected nothing saved with a disabled sink")
	}
}

func TestOrchestrator_RealStages(t *testing.T) {
	log := logger.NewNoop()
	fs := mocks.NewFileSystem()
	capturer := &mocks.Capturer{}
	clip := &mocks.Clipboard{}
	notifier := &mocks.Notifier{}

	orch := New(
		capture.New(capturer, log),
		encode.NewStage(fs, log),
		deliver.New(clip, notifier, &mocks.Thumbnailer{}, fs, log),
		mocks.NewDebugSink(false),
		log,
	)

	config := DefaultConfig()
	config.ThumbnailPath = "thumb.png"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := fs.GetFile("screenshot.png")
	if !ok {
		t.Fatal("expected screenshot.png")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	want := mocks.TestFrame(8, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			p := want.Packed(uint32(x), uint32(y))
			if r>>8 != p>>16&0xff || g>>8 != p>>8&0xff || b>>8 != p&0xff {
				t.Fatalf("pixel (%d,%d) mismatch", x, y)
			}
		}
	}

	if len(clip.Calls) != 1 || clip.Calls[0].Path != "screenshot.png" {
		t.Errorf("expected clipboard copy of screenshot.png, got %v", clip.Calls)
	}
	if len(notifier.Notifications) != 1 || notifier.Notifications[0].IconPath != "thumb.png" {
		t.Errorf("unexpected notifications %v", notifier.Notifications)
	}
	if result.FileSize != int64(len(data)) {
		t.Errorf("expected size %d, got %d", len(data), result.FileSize)
	}
}

func TestOrchestrator_InvalidFrameNoDelivery(t *testing.T) {
	log := logger.NewNoop()
	fs := mocks.NewFileSystem()
	capturer := &mocks.Capturer{
		CaptureScreenFunc: func(ctx context.Context) (ports.Capture, error) {
			return ports.Capture{Frame: mocks.TestFrame(0, 0)}, nil
		},
	}
	clip := &mocks.Clipboard{}
	notifier := &mocks.Notifier{}

	orch := New(
		capture.New(capturer, log),
		encode.NewStage(fs, log),
		deliver.New(clip, notifier, nil, fs, log),
		mocks.NewDebugSink(false),
		log,
	)

	if _, err := orch.Run(context.Background(), DefaultConfig()); err == nil {
		t.Fatal("expected error for an empty frame")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Errorf("expected no files, got %v", fs.GetAllFiles())
	}
	if len(clip.Calls) != 0 || len(notifier.Notifications) != 0 {
		t.Error("expected no delivery for a failed encode")
	}
}
