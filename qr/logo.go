package qr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LogoScale is the ratio between the base image side and the logo side.
const LogoScale = 5

// LogoRect returns where a logo lands on an image with the given bounds:
// one LogoScale-th of each dimension, centred, using floor division.
func LogoRect(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	lw, lh := w/LogoScale, h/LogoScale
	x := bounds.Min.X + (w-lw)/2
	y := bounds.Min.Y + (h-lh)/2
	return image.Rect(x, y, x+lw, y+lh)
}

// MaxLogoPixels caps the decoded size of a logo. Compressed formats can
// declare dimensions far beyond what the upload size suggests.
const MaxLogoPixels = 89_478_485

// DecodeLogo decodes raw image bytes in any registered format (PNG, JPEG,
// GIF, BMP, TIFF, WebP). Images larger than MaxLogoPixels are rejected from
// their header, before any pixel data is allocated.
func DecodeLogo(data []byte) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrLogoDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxLogoPixels {
		return nil, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrLogoDecode, cfg.Width, cfg.Height, MaxLogoPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrLogoDecode, err)
	}
	return img, format, nil
}

// Composite pastes logo onto base at LogoRect, blending through the logo's
// alpha channel. base is modified in place and returned. Empty logo data
// returns base untouched.
func Composite(base *image.RGBA, logo []byte) (*image.RGBA, error) {
	if len(logo) == 0 {
		return base, nil
	}

	src, _, err := DecodeLogo(logo)
	if err != nil {
		return nil, err
	}

	rect := LogoRect(base.Bounds())
	if rect.Empty() {
		return base, nil
	}

	// Stretch to the target box; the logo's aspect ratio is not preserved.
	scaled := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	draw.Draw(base, rect, scaled, image.Point{}, draw.Over)
	return base, nil
}
