package pngenc

import (
	"bufio"
	"io"

	"github.com/user/xsnap/pkg/ports"
)

// PartialSuffix is appended to the destination while it is being written.
const PartialSuffix = ".part"

// countingWriter tracks how many bytes reached the sink.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteFile encodes frame into path. The PNG is written to a partial file
// that is renamed onto path only after it has been flushed and closed; on
// any failure the partial file is removed and path is left untouched.
// It returns the number of bytes in the finished file.
func (e *Encoder) WriteFile(fs ports.FileSystem, path string, frame ports.Frame) (n int64, err error) {
	if err := validate(frame); err != nil {
		return 0, err
	}

	partial := path + PartialSuffix
	f, err := fs.Create(partial)
	if err != nil {
		return 0, newError(KindSinkOpen, "create "+partial, err)
	}

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			f.Close()
		}
		fs.Remove(partial)
	}()

	cw := &countingWriter{w: f}
	bw := bufio.NewWriterSize(cw, idatBufferSize)
	if err := e.Encode(frame, bw); err != nil {
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		return 0, newError(KindWrite, "flush "+partial, err)
	}

	closed = true
	if err := f.Close(); err != nil {
		return 0, newError(KindWrite, "close "+partial, err)
	}
	if err := fs.Rename(partial, path); err != nil {
		return 0, newError(KindSinkOpen, "rename onto "+path, err)
	}
	return cw.n, nil
}

// WriteFile encodes frame into path with an Encoder built from opts.
func WriteFile(fs ports.FileSystem, path string, frame ports.Frame, opts Options) (int64, error) {
	return New(opts).WriteFile(fs, path, frame)
}
