package mocks

import (
	"image"

	"github.com/user/xsnap/pkg/ports"
)

// Thumbnailer is a mock implementation of ports.Thumbnailer.
type Thumbnailer struct {
	ThumbnailFunc func(frame ports.Frame, maxSize int) (image.Image, error)

	Calls int
}

func (m *Thumbnailer) Thumbnail(frame ports.Frame, maxSize int) (image.Image, error) {
	m.Calls++
	if m.ThumbnailFunc != nil {
		return m.ThumbnailFunc(frame, maxSize)
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

var _ ports.Thumbnailer = (*Thumbnailer)(nil)
