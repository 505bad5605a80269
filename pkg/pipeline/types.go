package pipeline

import (
	"image"
	"time"

	"github.com/user/xsnap/pkg/pngenc"
	"github.com/user/xsnap/pkg/ports"
)

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput selects what to capture and when.
type CaptureInput struct {
	Mode  ports.CaptureMode
	Delay time.Duration // Wait before grabbing; must not be negative
}

// CaptureResult is the grabbed frame and where it came from.
type CaptureResult struct {
	Frame  ports.Frame       `json:"-"`
	Mode   ports.CaptureMode `json:"mode"`
	Window uint32            `json:"window"`
	Bounds image.Rectangle   `json:"bounds"`

	// CapturedAt is the time the pixels were read, after the delay.
	CapturedAt time.Time `json:"capturedAt"`
	// DurationMs covers the server round trip, not the delay.
	DurationMs int `json:"durationMs"`
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// TimePlaceholder in an output path is replaced with the capture time.
const TimePlaceholder = "{time}"

// TimeLayout formats TimePlaceholder.
const TimeLayout = "20060102-150405"

// EncodeInput contains the frame and the PNG encoder settings.
type EncodeInput struct {
	Frame      ports.Frame
	OutputPath string    // May contain TimePlaceholder
	Timestamp  time.Time // Substituted for TimePlaceholder

	Workers     int
	Compression pngenc.CompressionLevel
	Filter      pngenc.FilterMode
}

// EncodeResult describes the written PNG.
type EncodeResult struct {
	Path        string `json:"path"`
	FileSize    int64  `json:"fileSize"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Workers     int    `json:"workers"`
	Compression string `json:"compression"`
	Filter      string `json:"filter"`
	DurationMs  int    `json:"durationMs"`
}

// =============================================================================
// Deliver Stage Types
// =============================================================================

// DeliverInput lists the hand-offs for a saved PNG.
type DeliverInput struct {
	Frame    ports.Frame // Source of the thumbnail
	Path     string      // The finished PNG
	FileSize int64

	Clipboard bool

	Notify          bool
	NotifyTimeoutMs int
	Thumbnail       bool
	ThumbnailSize   int    // Longest side in pixels
	ThumbnailPath   string // Where the icon PNG is written
}

// DeliverResult reports which hand-offs succeeded. Failures are collected
// as warnings rather than returned as errors.
type DeliverResult struct {
	Copied        bool
	Notified      bool
	ThumbnailPath string
	ThumbnailPNG  []byte
	Warnings      []string
}
