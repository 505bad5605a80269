package ports

import "context"

// Notification is a desktop notification request.
type Notification struct {
	Summary   string
	Body      string
	IconPath  string // Optional image shown next to the text
	TimeoutMs int    // <=0 leaves the timeout to the daemon
}

// Notifier shows desktop notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
