package mocks

import (
	"context"
	"image"

	"github.com/user/xsnap/pkg/frame"
	"github.com/user/xsnap/pkg/ports"
)

// Capturer is a mock implementation of ports.Capturer.
type Capturer struct {
	CaptureScreenFunc func(ctx context.Context) (ports.Capture, error)
	CaptureWindowFunc func(ctx context.Context, window uint32) (ports.Capture, error)
	SelectWindowFunc  func(ctx context.Context) (uint32, error)
	ActiveWindowFunc  func(ctx context.Context) (uint32, error)

	// Recorded calls for verification
	ScreenCalls int
	WindowCalls []uint32
	SelectCalls int
	ActiveCalls int
	Closed      bool
}

// TestFrame returns a small frame with a recognisable pattern.
func TestFrame(width, height uint32) *frame.Buffer {
	buf := frame.New(width, height)
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			buf.Set(x, y, (x*37&0xff)<<16|(y*53&0xff)<<8|(x+y)&0xff)
		}
	}
	return buf
}

func (m *Capturer) CaptureScreen(ctx context.Context) (ports.Capture, error) {
	m.ScreenCalls++
	if m.CaptureScreenFunc != nil {
		return m.CaptureScreenFunc(ctx)
	}
	return ports.Capture{
		Frame:  TestFrame(8, 6),
		Bounds: image.Rect(0, 0, 8, 6),
		Window: 1,
	}, nil
}

func (m *Capturer) CaptureWindow(ctx context.Context, window uint32) (ports.Capture, error) {
	m.WindowCalls = append(m.WindowCalls, window)
	if m.CaptureWindowFunc != nil {
		return m.CaptureWindowFunc(ctx, window)
	}
	return ports.Capture{
		Frame:  TestFrame(4, 3),
		Bounds: image.Rect(10, 20, 14, 23),
		Window: window,
	}, nil
}

func (m *Capturer) SelectWindow(ctx context.Context) (uint32, error) {
	m.SelectCalls++
	if m.SelectWindowFunc != nil {
		return m.SelectWindowFunc(ctx)
	}
	return 0x1200007, nil
}

func (m *Capturer) ActiveWindow(ctx context.Context) (uint32, error) {
	m.ActiveCalls++
	if m.ActiveWindowFunc != nil {
		return m.ActiveWindowFunc(ctx)
	}
	return 0x3400002, nil
}

func (m *Capturer) Close() error {
	m.Closed = true
	return nil
}

var _ ports.Capturer = (*Capturer)(nil)
