package qr

import (
	"fmt"
	"image/color"
)

// Limits for Options.
const (
	MinModuleSize = 1
	MaxModuleSize = 20
	MinBorder     = 1
	MaxBorder     = 10
)

// Options controls how a QR code is drawn. Error correction is always High
// and the version is always the smallest that fits.
type Options struct {
	ModuleSize int        // pixels per module side
	Border     int        // quiet zone width in modules
	Foreground color.RGBA // dark modules
	Background color.RGBA // light modules and border
	Escape     bool       // escape special characters in vCard and Wi-Fi fields
}

// DefaultOptions returns black on white, 10 px modules and a 4 module border.
func DefaultOptions() Options {
	return Options{
		ModuleSize: 10,
		Border:     4,
		Foreground: color.RGBA{A: 0xff},
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Validate checks that module size and border are within their limits.
func (o Options) Validate() error {
	if o.ModuleSize < MinModuleSize || o.ModuleSize > MaxModuleSize {
		return fmt.Errorf("%w: module size %d not in [%d,%d]", ErrInvalidOptions, o.ModuleSize, MinModuleSize, MaxModuleSize)
	}
	if o.Border < MinBorder || o.Border > MaxBorder {
		return fmt.Errorf("%w: border %d not in [%d,%d]", ErrInvalidOptions, o.Border, MinBorder, MaxBorder)
	}
	return nil
}
