// Package frame provides an in-memory packed-pixel frame buffer.
package frame

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math/bits"

	"github.com/user/xsnap/pkg/ports"
)

// Buffer is a row-major grid of packed 0x00RRGGBB pixels.
type Buffer struct {
	W, H uint32
	Pix  []uint32
}

// New allocates a black frame of the given size.
func New(width, height uint32) *Buffer {
	return &Buffer{
		W:   width,
		H:   height,
		Pix: make([]uint32, int(width)*int(height)),
	}
}

// Width returns the frame width in pixels.
func (b *Buffer) Width() uint32 { return b.W }

// Height returns the frame height in pixels.
func (b *Buffer) Height() uint32 { return b.H }

// Packed returns the packed pixel at (x, y).
func (b *Buffer) Packed(x, y uint32) uint32 {
	return b.Pix[int(y)*int(b.W)+int(x)]
}

// Set stores a packed pixel at (x, y).
func (b *Buffer) Set(x, y, p uint32) {
	b.Pix[int(y)*int(b.W)+int(x)] = p
}

// Layout describes how an X11 ZPixmap stores pixels.
type Layout struct {
	BitsPerPixel int
	ScanlinePad  int // in bits
	ByteOrder    binary.ByteOrder

	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32
}

// DefaultLayout is the common 32 bpp little-endian TrueColor layout.
var DefaultLayout = Layout{
	BitsPerPixel: 32,
	ScanlinePad:  32,
	ByteOrder:    binary.LittleEndian,
	RedMask:      0xff0000,
	GreenMask:    0x00ff00,
	BlueMask:     0x0000ff,
}

// Stride returns the number of bytes per row for the given width.
func (l Layout) Stride(width int) int {
	pad := l.ScanlinePad
	if pad <= 0 {
		pad = l.BitsPerPixel
	}
	rowBits := width * l.BitsPerPixel
	return (rowBits + pad - 1) / pad * pad / 8
}

// FromZPixmap converts raw GetImage data into a Buffer.
func FromZPixmap(data []byte, width, height int, layout Layout) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	switch layout.BitsPerPixel {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported bits per pixel: %d", layout.BitsPerPixel)
	}
	order := layout.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}

	stride := layout.Stride(width)
	if len(data) < stride*(height-1)+width*layout.BitsPerPixel/8 {
		return nil, fmt.Errorf("short pixmap: %d bytes for %dx%d at %d bpp", len(data), width, height, layout.BitsPerPixel)
	}

	rgb := layout.RedMask == 0xff0000 && layout.GreenMask == 0x00ff00 && layout.BlueMask == 0x0000ff
	buf := New(uint32(width), uint32(height))
	bpp := layout.BitsPerPixel / 8
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		out := buf.Pix[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			v := readPixel(row[x*bpp:], bpp, order)
			if rgb {
				out[x] = v & 0xffffff
				continue
			}
			out[x] = channel(v, layout.RedMask)<<16 | channel(v, layout.GreenMask)<<8 | channel(v, layout.BlueMask)
		}
	}
	return buf, nil
}

func readPixel(b []byte, bpp int, order binary.ByteOrder) uint32 {
	switch bpp {
	case 4:
		return order.Uint32(b)
	case 3:
		if order == binary.BigEndian {
			return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		}
		return uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
	default:
		return uint32(order.Uint16(b))
	}
}

// channel extracts a masked channel and scales it to 8 bits, replicating
// high bits into the low ones for narrow channels (5 bits -> abcde -> abcdeabc).
func channel(v, mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(mask)
	width := bits.OnesCount32(mask)
	c := (v & mask) >> shift
	if width >= 8 {
		return c >> (width - 8)
	}
	out := c << (8 - width)
	for s := width; s < 8; s *= 2 {
		out |= out >> s
	}
	return out & 0xff
}

// FromImage copies any image into a Buffer, dropping alpha.
func FromImage(img image.Image) *Buffer {
	b := img.Bounds()
	buf := New(uint32(b.Dx()), uint32(b.Dy()))
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := rgba.Pix[y*rgba.Stride:]
			for x := 0; x < b.Dx(); x++ {
				p := row[x*4:]
				buf.Pix[y*b.Dx()+x] = uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
			}
		}
		return buf
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			buf.Pix[y*b.Dx()+x] = (r>>8)<<16 | (g>>8)<<8 | bl>>8
		}
	}
	return buf
}

// ToRGBA renders any frame as an opaque *image.RGBA.
func ToRGBA(f ports.Frame) *image.RGBA {
	w, h := int(f.Width()), int(f.Height())
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := f.Packed(uint32(x), uint32(y))
			img.SetRGBA(x, y, color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 255})
		}
	}
	return img
}

// Ensure Buffer implements ports.Frame
var _ ports.Frame = (*Buffer)(nil)
