package mocks

import (
	"context"
	"sync"

	"github.com/user/xsnap/pkg/ports"
)

// CopyCall records a call to CopyFile.
type CopyCall struct {
	Path     string
	MimeType string
}

// Clipboard is a mock implementation of ports.Clipboard.
type Clipboard struct {
	mu sync.Mutex

	CopyFileFunc func(ctx context.Context, path, mimeType string) error
	Calls        []CopyCall
}

func (m *Clipboard) CopyFile(ctx context.Context, path, mimeType string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, CopyCall{Path: path, MimeType: mimeType})
	m.mu.Unlock()
	if m.CopyFileFunc != nil {
		return m.CopyFileFunc(ctx, path, mimeType)
	}
	return nil
}

var _ ports.Clipboard = (*Clipboard)(nil)

// Notifier is a mock implementation of ports.Notifier.
type Notifier struct {
	mu sync.Mutex

	NotifyFunc    func(ctx context.Context, n ports.Notification) error
	Notifications []ports.Notification
}

func (m *Notifier) Notify(ctx context.Context, n ports.Notification) error {
	m.mu.Lock()
	m.Notifications = append(m.Notifications, n)
	m.mu.Unlock()
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, n)
	}
	return nil
}

var _ ports.Notifier = (*Notifier)(nil)
