// Package ports defines interfaces for external dependencies.
package ports

// Frame is a captured rectangular grid of pixels.
//
// Packed returns the pixel at (x, y) as a 32-bit value whose bits 16-23,
// 8-15 and 0-7 hold red, green and blue. The upper byte is padding or alpha
// and is ignored by consumers. Implementations must be safe for concurrent
// reads.
type Frame interface {
	Width() uint32
	Height() uint32
	Packed(x, y uint32) uint32
}
