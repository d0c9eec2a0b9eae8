// Package qr renders payload strings as QR code PNG images: encode at error
// correction level High, rasterize with configurable module size, border and
// colours, and optionally stamp a logo in the centre.
package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Grid is a square matrix of QR modules without quiet zone. Modules[y][x] is
// true for a dark module.
type Grid struct {
	Size    int
	Modules [][]bool
}

// Set reports whether the module at (x, y) is dark.
func (g *Grid) Set(x, y int) bool {
	return g.Modules[y][x]
}

// Encode encodes content at error correction level High using the smallest
// QR version that fits. Content that does not fit version 40 yields
// ErrCapacityExceeded.
func Encode(content string) (*Grid, error) {
	if content == "" {
		return nil, ErrEmptyPayload
	}

	q, err := qrcode.New(content, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrCapacityExceeded, len(content), err)
	}
	// The quiet zone is drawn by Render from the configured border.
	q.DisableBorder = true

	bitmap := q.Bitmap()
	return &Grid{Size: len(bitmap), Modules: bitmap}, nil
}
