package x11capture

import (
	"context"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/user/xsnap/pkg/ports"
)

// Glyphs from the standard X cursor font.
const (
	xcCrosshair     = 34
	xcCrosshairMask = xcCrosshair + 1
)

// Pointer buttons.
const (
	buttonLeft  = 1
	buttonRight = 3
)

// SelectWindow grabs the pointer with a crosshair and waits for a click.
// A left click picks the top-level window under the pointer, or the root
// window on the desktop background. A right click cancels.
func (c *Capturer) SelectWindow(ctx context.Context) (uint32, error) {
	cursor, err := c.crosshair()
	if err != nil {
		c.logger.Debug("Crosshair cursor unavailable: %s", err)
		cursor = xproto.CursorNone
	} else {
		defer xproto.FreeCursor(c.conn, cursor)
	}

	grab, err := xproto.GrabPointer(
		c.conn,
		false,
		c.screen.Root,
		uint16(xproto.EventMaskButtonPress),
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		cursor,
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return 0, fmt.Errorf("grab pointer: %w", err)
	}
	if grab.Status != xproto.GrabStatusSuccess {
		return 0, fmt.Errorf("grab pointer: status %d", grab.Status)
	}
	defer xproto.UngrabPointer(c.conn, xproto.TimeCurrentTime)

	c.logger.Debug("Pointer grabbed, waiting for click")

	// WaitForEvent cannot be interrupted; a pending wait ends when the
	// connection is closed.
	presses := make(chan xproto.ButtonPressEvent, 1)
	failures := make(chan error, 1)
	go func() {
		for {
			ev, xerr := c.conn.WaitForEvent()
			if ev == nil && xerr == nil {
				failures <- fmt.Errorf("connection closed while selecting")
				return
			}
			if xerr != nil {
				failures <- fmt.Errorf("x error while selecting: %s", xerr)
				return
			}
			if press, ok := ev.(xproto.ButtonPressEvent); ok {
				presses <- press
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case err := <-failures:
		return 0, err
	case press := <-presses:
		return pickWindow(press, c.screen.Root)
	}
}

// pickWindow maps a button press on the root grab to the chosen window.
func pickWindow(press xproto.ButtonPressEvent, root xproto.Window) (uint32, error) {
	switch press.Detail {
	case buttonLeft:
		if press.Child == xproto.WindowNone {
			return uint32(root), nil
		}
		return uint32(press.Child), nil
	case buttonRight:
		return 0, ports.ErrSelectionCancelled
	default:
		return 0, fmt.Errorf("%w: button %d", ports.ErrSelectionCancelled, press.Detail)
	}
}

func (c *Capturer) crosshair() (xproto.Cursor, error) {
	font, err := xproto.NewFontId(c.conn)
	if err != nil {
		return 0, err
	}
	const name = "cursor"
	if err := xproto.OpenFontChecked(c.conn, font, uint16(len(name)), name).Check(); err != nil {
		return 0, err
	}
	defer xproto.CloseFont(c.conn, font)

	cursor, err := xproto.NewCursorId(c.conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateGlyphCursorChecked(
		c.conn, cursor, font, font,
		xcCrosshair, xcCrosshairMask,
		0xffff, 0x0000, 0x0000, // red crosshair
		0x0000, 0x0000, 0x0000,
	).Check()
	if err != nil {
		return 0, err
	}
	return cursor, nil
}

// ActiveWindow reads _NET_ACTIVE_WINDOW from the root window.
func (c *Capturer) ActiveWindow(ctx context.Context) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	const name = "_NET_ACTIVE_WINDOW"
	atom, err := xproto.InternAtom(c.conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	if atom.Atom == xproto.AtomNone {
		return 0, fmt.Errorf("%w: window manager does not support %s", ports.ErrNoActiveWindow, name)
	}

	prop, err := xproto.GetProperty(c.conn, false, c.screen.Root, atom.Atom, xproto.AtomWindow, 0, 1).Reply()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	return activeFromProperty(prop)
}

func activeFromProperty(prop *xproto.GetPropertyReply) (uint32, error) {
	if prop == nil || prop.Format != 32 || len(prop.Value) < 4 {
		return 0, ports.ErrNoActiveWindow
	}
	win := xgb.Get32(prop.Value)
	if win == 0 {
		return 0, ports.ErrNoActiveWindow
	}
	return win, nil
}
