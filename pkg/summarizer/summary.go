// Package summarizer provides summary generation for capture results.
package summarizer

import (
	"image"
	"time"
)

// Summary contains all data collected during a capture run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Capture details
	Capture CaptureInfo

	// PNG output details
	Output OutputInfo

	// Encoder settings
	Settings Settings

	// Clipboard and notification results
	Delivery DeliveryInfo
}

// CaptureInfo describes what was grabbed.
type CaptureInfo struct {
	Mode       string
	Window     uint32
	Bounds     image.Rectangle
	Delay      time.Duration
	CapturedAt time.Time
	DurationMs int
}

// OutputInfo describes the written PNG.
type OutputInfo struct {
	Path     string
	Width    int
	Height   int
	FileSize int64
	EncodeMs int
}

// Settings contains the encoder configuration.
type Settings struct {
	Workers     int
	Compression string
	Filter      string
}

// DeliveryInfo records the hand-offs after saving.
type DeliveryInfo struct {
	Copied   bool
	Notified bool
	Warnings []string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithCapture sets capture information.
func (b *Builder) WithCapture(capture CaptureInfo) *Builder {
	b.summary.Capture = capture
	return b
}

// WithOutput sets output file information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// WithSettings sets encoder settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithDelivery sets delivery results.
func (b *Builder) WithDelivery(copied, notified bool, warnings []string) *Builder {
	b.summary.Delivery = DeliveryInfo{
		Copied:   copied,
		Notified: notified,
		Warnings: warnings,
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
