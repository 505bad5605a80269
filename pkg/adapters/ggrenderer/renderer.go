// Package ggrenderer draws notification thumbnails using the gg library.
package ggrenderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/xsnap/pkg/frame"
	"github.com/user/xsnap/pkg/ports"
)

// MinThumbnailSize leaves room for the border and one pixel of content.
const MinThumbnailSize = 3

// DefaultBorder is the colour of the thumbnail frame.
var DefaultBorder = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}

// Renderer implements ports.Thumbnailer using the gg library.
type Renderer struct {
	border color.Color
}

// New creates a new Renderer with the default border colour.
func New() *Renderer {
	return &Renderer{border: DefaultBorder}
}

// WithBorder sets the border colour.
func (r *Renderer) WithBorder(c color.Color) *Renderer {
	r.border = c
	return r
}

// Thumbnail scales f to fit in maxSize x maxSize, border included.
// Frames that already fit are not enlarged.
func (r *Renderer) Thumbnail(f ports.Frame, maxSize int) (image.Image, error) {
	if f == nil || f.Width() == 0 || f.Height() == 0 {
		return nil, fmt.Errorf("thumbnail of empty frame")
	}
	if maxSize < MinThumbnailSize {
		return nil, fmt.Errorf("thumbnail size %d is below %d", maxSize, MinThumbnailSize)
	}

	innerW, innerH := fitInside(int(f.Width()), int(f.Height()), maxSize-2)

	scaled := image.NewRGBA(image.Rect(0, 0, innerW, innerH))
	src := frame.ToRGBA(f)
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	dc := gg.NewContext(innerW+2, innerH+2)
	dc.SetColor(r.border)
	dc.Clear()
	dc.DrawImage(scaled, 1, 1)
	return dc.Image(), nil
}

// fitInside returns w x h scaled down so the longer side is at most limit.
func fitInside(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		sh := (h*limit + w/2) / w
		if sh < 1 {
			sh = 1
		}
		return limit, sh
	}
	sw := (w*limit + h/2) / h
	if sw < 1 {
		sw = 1
	}
	return sw, limit
}

var _ ports.Thumbnailer = (*Renderer)(nil)
