// Package encode implements the PNG encoding stage.
package encode

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/xsnap/pkg/pipeline"
	"github.com/user/xsnap/pkg/pngenc"
	"github.com/user/xsnap/pkg/ports"
)

// Stage writes a captured frame to disk as a PNG file.
type Stage struct {
	fs     ports.FileSystem
	logger ports.Logger
	now    func() time.Time
}

// NewStage creates a new encode stage.
func NewStage(fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		logger: logger.WithComponent("encode"),
		now:    time.Now,
	}
}

// ExpandPath substitutes pipeline.TimePlaceholder in path with ts.
func ExpandPath(path string, ts time.Time) string {
	return strings.ReplaceAll(path, pipeline.TimePlaceholder, ts.Format(pipeline.TimeLayout))
}

// Execute encodes the frame into the output path.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	if input.OutputPath == "" {
		return result, fmt.Errorf("no output path")
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	ts := input.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	path := ExpandPath(input.OutputPath, ts)

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir); err != nil {
			return result, fmt.Errorf("create output dir: %w", err)
		}
	}

	enc := pngenc.New(pngenc.Options{
		Workers: input.Workers,
		Level:   input.Compression,
		Filter:  input.Filter,
	})
	opts := enc.Options()

	if input.Frame != nil {
		s.logger.Info("Encoding %dx%d PNG with %d workers", input.Frame.Width(), input.Frame.Height(), opts.Workers)
	}

	start := s.now()
	size, err := enc.WriteFile(s.fs, path, input.Frame)
	if err != nil {
		return result, err
	}

	result.Path = path
	result.FileSize = size
	result.Width = int(input.Frame.Width())
	result.Height = int(input.Frame.Height())
	result.Workers = opts.Workers
	result.Compression = opts.Level.String()
	result.Filter = opts.Filter.String()
	result.DurationMs = int(s.now().Sub(start).Milliseconds())

	s.logger.Debug("Wrote %d bytes in %d ms", size, result.DurationMs)
	return result, nil
}
