package pngenc

import (
	"runtime"

	"github.com/klauspost/compress/zlib"
)

// CompressionLevel selects the zlib effort used for IDAT.
type CompressionLevel int

const (
	DefaultCompression CompressionLevel = iota
	NoCompression
	BestSpeed
	BestCompression
)

// ParseCompressionLevel parses "default", "none", "fast" or "best".
func ParseCompressionLevel(s string) (CompressionLevel, bool) {
	switch s {
	case "", "default":
		return DefaultCompression, true
	case "none":
		return NoCompression, true
	case "fast":
		return BestSpeed, true
	case "best":
		return BestCompression, true
	}
	return DefaultCompression, false
}

func (l CompressionLevel) String() string {
	switch l {
	case NoCompression:
		return "none"
	case BestSpeed:
		return "fast"
	case BestCompression:
		return "best"
	default:
		return "default"
	}
}

func (l CompressionLevel) zlibLevel() int {
	switch l {
	case NoCompression:
		return zlib.NoCompression
	case BestSpeed:
		return zlib.BestSpeed
	case BestCompression:
		return zlib.BestCompression
	default:
		return zlib.DefaultCompression
	}
}

// FilterMode selects per-row PNG filtering.
type FilterMode int

const (
	// FilterAdaptive picks the filter with the smallest residual per row.
	FilterAdaptive FilterMode = iota
	// FilterNone writes every row unfiltered.
	FilterNone
)

// ParseFilterMode parses "adaptive" or "none".
func ParseFilterMode(s string) (FilterMode, bool) {
	switch s {
	case "", "adaptive":
		return FilterAdaptive, true
	case "none":
		return FilterNone, true
	}
	return FilterAdaptive, false
}

func (m FilterMode) String() string {
	if m == FilterNone {
		return "none"
	}
	return "adaptive"
}

// DefaultMaxPixels caps the frame area accepted by Encode.
const DefaultMaxPixels = 1 << 27

// Options configures an Encoder. The zero value is usable.
type Options struct {
	Workers   int // <=0 uses runtime.NumCPU()
	Level     CompressionLevel
	Filter    FilterMode
	MaxPixels int64 // <=0 uses DefaultMaxPixels
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	// Stored streams are written unfiltered.
	if o.Level == NoCompression {
		o.Filter = FilterNone
	}
	return o
}
