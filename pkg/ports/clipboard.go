package ports

import "context"

// Clipboard copies files onto the desktop clipboard.
type Clipboard interface {
	// CopyFile places the contents of path on the clipboard as mimeType.
	CopyFile(ctx context.Context, path, mimeType string) error
}
