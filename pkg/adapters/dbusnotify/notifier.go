// Package dbusnotify sends desktop notifications over the D-Bus session bus
// using the org.freedesktop.Notifications interface.
package dbusnotify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/user/xsnap/pkg/ports"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	method     = busName + ".Notify"
)

// busObject is the part of dbus.BusObject the notifier uses.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Notifier implements ports.Notifier.
type Notifier struct {
	appName string
	obj     busObject
}

// New connects to the session bus. The connection is shared with other
// users of dbus.SessionBus and is not closed by the notifier.
func New(appName string) (*Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return newWithObject(appName, conn.Object(busName, objectPath)), nil
}

func newWithObject(appName string, obj busObject) *Notifier {
	return &Notifier{appName: appName, obj: obj}
}

// Notify sends n and waits for the daemon to assign it an id.
func (n *Notifier) Notify(ctx context.Context, note ports.Notification) error {
	hints := map[string]dbus.Variant{}
	if note.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(note.IconPath)
	}
	timeout := int32(-1)
	if note.TimeoutMs > 0 {
		timeout = int32(note.TimeoutMs)
	}

	call := n.obj.CallWithContext(ctx, method, 0,
		n.appName,
		uint32(0), // replaces_id
		note.IconPath,
		note.Summary,
		note.Body,
		[]string{}, // actions
		hints,
		timeout,
	)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify reply: %w", err)
	}
	return nil
}

var _ ports.Notifier = (*Notifier)(nil)
