package ports

import (
	"image"
)

// Thumbnailer produces small previews of captured frames.
type Thumbnailer interface {
	// Thumbnail scales frame so that its longest side is at most maxSize
	// pixels and draws a thin border around it.
	Thumbnail(frame Frame, maxSize int) (image.Image, error)
}
