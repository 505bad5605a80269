package mocks

import (
	"sync"

	"github.com/user/xsnap/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	CaptureJSON []byte
	EncodeJSON  []byte
	Thumbnail   []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveCaptureJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CaptureJSON = data
	return nil
}

func (m *DebugSink) SaveEncodeJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EncodeJSON = data
	return nil
}

func (m *DebugSink) SaveThumbnail(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Thumbnail = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                     { return false }
func (m *NullSink) SaveCaptureJSON(data []byte) error { return nil }
func (m *NullSink) SaveEncodeJSON(data []byte) error  { return nil }
func (m *NullSink) SaveThumbnail(data []byte) error   { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
