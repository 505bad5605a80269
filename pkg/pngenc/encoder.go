// Package pngenc encodes packed-pixel frames as 8-bit RGB PNG streams.
//
// Scanlines are converted and filtered in parallel into one contiguous
// arena, then streamed top-to-bottom through a single zlib writer, so the
// output bytes depend only on the frame and the options.
package pngenc

import (
	"bufio"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/sync/errgroup"

	"github.com/user/xsnap/pkg/ports"
)

const bytesPerPixel = 3

// Encoder writes frames as PNG.
type Encoder struct {
	opts Options
}

// New creates an Encoder.
func New(opts Options) *Encoder {
	return &Encoder{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (e *Encoder) Options() Options {
	return e.opts
}

// Encode writes frame to w with default options.
func Encode(frame ports.Frame, w io.Writer) error {
	return New(Options{}).Encode(frame, w)
}

// Encode writes frame to w as a complete PNG stream. Nothing is written
// when the frame is invalid or the arena cannot be sized.
func (e *Encoder) Encode(frame ports.Frame, w io.Writer) error {
	if err := validate(frame); err != nil {
		return err
	}
	width, height := frame.Width(), frame.Height()

	lines, err := e.scanlines(frame)
	if err != nil {
		return err
	}

	if err := writeHeader(w, width, height); err != nil {
		return newError(KindWrite, "write header", err)
	}

	chunks := bufio.NewWriterSize(idatWriter{w: w}, idatBufferSize)
	zw, err := zlib.NewWriterLevel(chunks, e.opts.Level.zlibLevel())
	if err != nil {
		return newError(KindEncoderInit, "create zlib writer", err)
	}
	if _, err := zw.Write(lines); err != nil {
		return newError(KindWrite, "write IDAT", err)
	}
	if err := zw.Close(); err != nil {
		return newError(KindWrite, "close zlib stream", err)
	}
	if err := chunks.Flush(); err != nil {
		return newError(KindWrite, "flush IDAT", err)
	}

	if err := writeChunk(w, "IEND", nil); err != nil {
		return newError(KindWrite, "write IEND", err)
	}
	return nil
}

func validate(frame ports.Frame) error {
	if frame == nil {
		return newError(KindInvalidFrame, "nil frame", nil)
	}
	if frame.Width() == 0 || frame.Height() == 0 {
		return newError(KindInvalidFrame, "zero dimension", nil)
	}
	return nil
}

// arenaSize returns the filtered scanline arena size:
// height rows of one filter byte plus width*3 sample bytes.
func (e *Encoder) arenaSize(width, height uint32) (rowLen, total int, err error) {
	pixels := uint64(width) * uint64(height)
	if pixels > uint64(e.opts.MaxPixels) {
		return 0, 0, newError(KindAllocation, "frame exceeds pixel limit", nil)
	}
	row := 1 + uint64(width)*bytesPerPixel
	size := row * uint64(height)
	if size > uint64(math.MaxInt) {
		return 0, 0, newError(KindAllocation, "arena size overflows", nil)
	}
	return int(row), int(size), nil
}

// scanlines converts the frame into filtered PNG rows.
func (e *Encoder) scanlines(frame ports.Frame) ([]byte, error) {
	width, height := frame.Width(), frame.Height()
	rowLen, total, err := e.arenaSize(width, height)
	if err != nil {
		return nil, err
	}
	lines := make([]byte, total)

	if e.opts.Filter == FilterNone {
		e.parallelRows(int(height), func(y int) {
			row := lines[y*rowLen : (y+1)*rowLen]
			convertRow(frame, uint32(y), row[1:])
		})
		return lines, nil
	}

	// Filters read the previous unfiltered row, so conversion finishes
	// for every row before any row is filtered.
	sampleLen := rowLen - 1
	raw := make([]byte, sampleLen*int(height))
	e.parallelRows(int(height), func(y int) {
		convertRow(frame, uint32(y), raw[y*sampleLen:(y+1)*sampleLen])
	})

	zero := make([]byte, sampleLen)
	e.parallelBands(int(height), func(start, end int) {
		f := newFilterer(sampleLen)
		for y := start; y < end; y++ {
			prev := zero
			if y > 0 {
				prev = raw[(y-1)*sampleLen : y*sampleLen]
			}
			f.filter(raw[y*sampleLen:(y+1)*sampleLen], prev, lines[y*rowLen:(y+1)*rowLen])
		}
	})
	return lines, nil
}

// convertRow unpacks one frame row into RGB samples.
func convertRow(frame ports.Frame, y uint32, dst []byte) {
	width := frame.Width()
	for x := uint32(0); x < width; x++ {
		p := frame.Packed(x, y)
		i := x * bytesPerPixel
		dst[i] = byte(p >> 16)
		dst[i+1] = byte(p >> 8)
		dst[i+2] = byte(p)
	}
}

func (e *Encoder) parallelRows(height int, fn func(y int)) {
	e.parallelBands(height, func(start, end int) {
		for y := start; y < end; y++ {
			fn(y)
		}
	})
}

// parallelBands splits [0, height) into contiguous bands processed by at
// most Workers goroutines. Every row is written by exactly one band.
func (e *Encoder) parallelBands(height int, fn func(start, end int)) {
	workers := e.opts.Workers
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	band := (height + workers*4 - 1) / (workers * 4)
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < height; start += band {
		start, end := start, min(start+band, height)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
