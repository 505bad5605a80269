// Package x11capture grabs screen and window contents from an X server.
package x11capture

import (
	"context"
	"encoding/binary"
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/user/xsnap/pkg/frame"
	"github.com/user/xsnap/pkg/ports"
)

// Capturer implements ports.Capturer over a single X connection.
type Capturer struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
	logger ports.Logger
}

// New connects to display ("" uses $DISPLAY).
func New(display string, logger ports.Logger) (*Capturer, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("open display: %w", err)
	}
	setup := xproto.Setup(conn)
	return &Capturer{
		conn:   conn,
		setup:  setup,
		screen: setup.DefaultScreen(conn),
		logger: logger.WithComponent("x11"),
	}, nil
}

// Close closes the X connection.
func (c *Capturer) Close() error {
	c.conn.Close()
	return nil
}

// CaptureScreen grabs the whole root window.
func (c *Capturer) CaptureScreen(ctx context.Context) (ports.Capture, error) {
	bounds := c.screenBounds()
	return c.captureRect(ctx, bounds, uint32(c.screen.Root))
}

// CaptureWindow grabs the part of the screen covered by window.
func (c *Capturer) CaptureWindow(ctx context.Context, window uint32) (ports.Capture, error) {
	win := xproto.Window(window)
	if win == c.screen.Root {
		return c.CaptureScreen(ctx)
	}

	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return ports.Capture{}, fmt.Errorf("get geometry of window 0x%x: %w", window, err)
	}
	origin, err := xproto.TranslateCoordinates(c.conn, win, c.screen.Root, 0, 0).Reply()
	if err != nil {
		return ports.Capture{}, fmt.Errorf("translate window 0x%x: %w", window, err)
	}

	rect := image.Rect(
		int(origin.DstX),
		int(origin.DstY),
		int(origin.DstX)+int(geom.Width),
		int(origin.DstY)+int(geom.Height),
	)
	visible := rect.Intersect(c.screenBounds())
	if visible.Empty() {
		return ports.Capture{}, fmt.Errorf("window 0x%x at %v is off screen", window, rect)
	}
	c.logger.Debug("Window 0x%x covers %v", window, visible)

	return c.captureRect(ctx, visible, window)
}

func (c *Capturer) screenBounds() image.Rectangle {
	return image.Rect(0, 0, int(c.screen.WidthInPixels), int(c.screen.HeightInPixels))
}

// captureRect reads rect of the root window as a ZPixmap.
func (c *Capturer) captureRect(ctx context.Context, rect image.Rectangle, window uint32) (ports.Capture, error) {
	if err := ctx.Err(); err != nil {
		return ports.Capture{}, err
	}

	reply, err := xproto.GetImage(
		c.conn,
		xproto.ImageFormatZPixmap,
		xproto.Drawable(c.screen.Root),
		int16(rect.Min.X), int16(rect.Min.Y),
		uint16(rect.Dx()), uint16(rect.Dy()),
		0xffffffff,
	).Reply()
	if err != nil {
		return ports.Capture{}, fmt.Errorf("get image %v: %w", rect, err)
	}

	layout, err := layoutFor(c.setup, c.screen, reply.Depth, reply.Visual)
	if err != nil {
		return ports.Capture{}, err
	}
	c.logger.Debug("Got %d bytes at depth %d, %d bpp", len(reply.Data), reply.Depth, layout.BitsPerPixel)

	buf, err := frame.FromZPixmap(reply.Data, rect.Dx(), rect.Dy(), layout)
	if err != nil {
		return ports.Capture{}, fmt.Errorf("convert pixmap: %w", err)
	}

	return ports.Capture{
		Frame:  buf,
		Bounds: rect,
		Window: window,
	}, nil
}

// layoutFor derives the pixel layout of a GetImage reply from the
// connection setup: bits per pixel and padding from the pixmap format of
// the reply depth, channel masks from its visual.
func layoutFor(setup *xproto.SetupInfo, screen *xproto.ScreenInfo, depth byte, visual xproto.Visualid) (frame.Layout, error) {
	layout := frame.Layout{ByteOrder: binary.LittleEndian}
	if setup.ImageByteOrder == xproto.ImageOrderMSBFirst {
		layout.ByteOrder = binary.BigEndian
	}

	found := false
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			layout.BitsPerPixel = int(f.BitsPerPixel)
			layout.ScanlinePad = int(f.ScanlinePad)
			found = true
			break
		}
	}
	if !found {
		return layout, fmt.Errorf("no pixmap format for depth %d", depth)
	}

	if visual == 0 {
		visual = screen.RootVisual
	}
	for _, d := range screen.AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId != visual {
				continue
			}
			if v.Class != xproto.VisualClassTrueColor && v.Class != xproto.VisualClassDirectColor {
				return layout, fmt.Errorf("unsupported visual class %d", v.Class)
			}
			layout.RedMask = v.RedMask
			layout.GreenMask = v.GreenMask
			layout.BlueMask = v.BlueMask
			return layout, nil
		}
	}
	return layout, fmt.Errorf("visual 0x%x not found", visual)
}

var _ ports.Capturer = (*Capturer)(nil)
