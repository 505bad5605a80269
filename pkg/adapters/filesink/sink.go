// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"path/filepath"

	"github.com/user/xsnap/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveCaptureJSON saves capture metadata as capture.json.
func (s *Sink) SaveCaptureJSON(data []byte) error {
	return s.save("capture.json", data)
}

// SaveEncodeJSON saves encoder statistics as encode.json.
func (s *Sink) SaveEncodeJSON(data []byte) error {
	return s.save("encode.json", data)
}

// SaveThumbnail saves the notification thumbnail as thumbnail.png.
func (s *Sink) SaveThumbnail(data []byte) error {
	return s.save("thumbnail.png", data)
}

func (s *Sink) save(name string, data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return fmt.Errorf("create debug dir: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
