package ports

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveCaptureJSON saves capture metadata (mode, geometry, window id).
	SaveCaptureJSON(data []byte) error

	// SaveEncodeJSON saves encoder settings and output statistics.
	SaveEncodeJSON(data []byte) error

	// SaveThumbnail saves the PNG-encoded notification thumbnail.
	SaveThumbnail(data []byte) error
}
