// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/user/xsnap/pkg/pipeline"
	"github.com/user/xsnap/pkg/pngenc"
	"github.com/user/xsnap/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Capture
	Mode  ports.CaptureMode
	Delay time.Duration

	// Output
	OutputPath  string
	Workers     int
	Compression pngenc.CompressionLevel
	Filter      pngenc.FilterMode

	// Delivery
	Clipboard       bool
	Notify          bool
	NotifyTimeoutMs int
	Thumbnail       bool
	ThumbnailSize   int
	ThumbnailPath   string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Mode:            ports.ModeScreen,
		OutputPath:      "screenshot.png",
		Compression:     pngenc.DefaultCompression,
		Filter:          pngenc.FilterAdaptive,
		Clipboard:       true,
		Notify:          true,
		NotifyTimeoutMs: 5000,
		Thumbnail:       true,
		ThumbnailSize:   128,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	encodeStage  pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	deliverStage pipeline.Stage[pipeline.DeliverInput, pipeline.DeliverResult]
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	deliverStage pipeline.Stage[pipeline.DeliverInput, pipeline.DeliverResult],
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		captureStage: captureStage,
		encodeStage:  encodeStage,
		deliverStage: deliverStage,
		sink:         sink,
		logger:       logger,
	}
}

// Run executes the complete pipeline. A capture or encode failure stops
// the run before any later stage is called.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	// 1. Capture
	captured, err := o.captureStage.Execute(ctx, pipeline.CaptureInput{
		Mode:  config.Mode,
		Delay: config.Delay,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("capture stage: %w", err)
	}

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(captured, "", "  "); err == nil {
			if err := o.sink.SaveCaptureJSON(data); err != nil {
				o.logger.Debug("Failed to save debug output: %s", err)
			}
		}
	}

	// 2. Encode
	encoded, err := o.encodeStage.Execute(ctx, pipeline.EncodeInput{
		Frame:       captured.Frame,
		OutputPath:  config.OutputPath,
		Timestamp:   captured.CapturedAt,
		Workers:     config.Workers,
		Compression: config.Compression,
		Filter:      config.Filter,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("encode stage: %w", err)
	}
	o.logger.Info("Saved %s (%d bytes)", encoded.Path, encoded.FileSize)

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(encoded, "", "  "); err == nil {
			if err := o.sink.SaveEncodeJSON(data); err != nil {
				o.logger.Debug("Failed to save debug output: %s", err)
			}
		}
	}

	// 3. Deliver
	delivered, err := o.deliverStage.Execute(ctx, pipeline.DeliverInput{
		Frame:           captured.Frame,
		Path:            encoded.Path,
		FileSize:        encoded.FileSize,
		Clipboard:       config.Clipboard,
		Notify:          config.Notify,
		NotifyTimeoutMs: config.NotifyTimeoutMs,
		Thumbnail:       config.Thumbnail,
		ThumbnailSize:   config.ThumbnailSize,
		ThumbnailPath:   config.ThumbnailPath,
	})
	if err != nil {
		// The PNG is complete; a delivery problem does not fail the run.
		o.logger.Warn("Delivery skipped: %s", err)
		delivered.Warnings = append(delivered.Warnings, err.Error())
	}

	if o.sink.Enabled() && len(delivered.ThumbnailPNG) > 0 {
		if err := o.sink.SaveThumbnail(delivered.ThumbnailPNG); err != nil {
			o.logger.Debug("Failed to save debug output: %s", err)
		}
	}

	return RunResult{
		Mode:        captured.Mode,
		Window:      captured.Window,
		Bounds:      captured.Bounds,
		CapturedAt:  captured.CapturedAt,
		CaptureMs:   captured.DurationMs,
		OutputPath:  encoded.Path,
		Width:       encoded.Width,
		Height:      encoded.Height,
		FileSize:    encoded.FileSize,
		Workers:     encoded.Workers,
		Compression: encoded.Compression,
		Filter:      encoded.Filter,
		EncodeMs:    encoded.DurationMs,
		Copied:      delivered.Copied,
		Notified:    delivered.Notified,
		Warnings:    delivered.Warnings,
	}, nil
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	// Capture information
	Mode       ports.CaptureMode
	Window     uint32
	Bounds     image.Rectangle
	CapturedAt time.Time
	CaptureMs  int

	// Output information
	OutputPath  string
	Width       int
	Height      int
	FileSize    int64
	Workers     int
	Compression string
	Filter      string
	EncodeMs    int

	// Delivery information
	Copied   bool
	Notified bool
	Warnings []string
}
