package qr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"testing"
)

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func whiteBase(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func pngLogo(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
	return buf.Bytes()
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func nearColor(a, b color.RGBA) bool {
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

func TestLogoRect(t *testing.T) {
	tests := []struct {
		w, h int
		want image.Rectangle
	}{
		{500, 500, image.Rect(200, 200, 300, 300)},
		{290, 290, image.Rect(116, 116, 174, 174)},
		{29, 29, image.Rect(12, 12, 17, 17)},
		{4, 4, image.Rect(2, 2, 2, 2)},
	}
	for _, tt := range tests {
		got := LogoRect(image.Rect(0, 0, tt.w, tt.h))
		if got != tt.want {
			t.Errorf("LogoRect(%dx%d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestCompositeNoLogo(t *testing.T) {
	base := whiteBase(50, 50)
	got, err := Composite(base, nil)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if got != base {
		t.Fatal("Composite without logo should return base unchanged")
	}
}

func TestCompositePlacement(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	// Non-square source: the logo is stretched, not letterboxed.
	logo := pngLogo(t, 37, 53, color.NRGBA{R: 0xff, A: 0xff})

	img, err := Composite(whiteBase(500, 500), logo)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	inside := []image.Point{{200, 200}, {299, 299}, {250, 250}, {200, 299}, {299, 200}}
	for _, p := range inside {
		if got := img.RGBAAt(p.X, p.Y); !nearColor(got, red) {
			t.Errorf("pixel %v = %v, want logo red", p, got)
		}
	}
	outside := []image.Point{{199, 250}, {300, 250}, {250, 199}, {250, 300}, {0, 0}}
	for _, p := range outside {
		if got := img.RGBAAt(p.X, p.Y); got != white {
			t.Errorf("pixel %v = %v, want untouched white", p, got)
		}
	}
}

func TestCompositeAlphaBlend(t *testing.T) {
	t.Run("transparent", func(t *testing.T) {
		img, err := Composite(whiteBase(100, 100), pngLogo(t, 10, 10, color.NRGBA{R: 0xff}))
		if err != nil {
			t.Fatalf("Composite: %v", err)
		}
		if got := img.RGBAAt(50, 50); got != white {
			t.Fatalf("transparent logo changed pixel to %v", got)
		}
	})

	t.Run("half", func(t *testing.T) {
		img, err := Composite(whiteBase(100, 100), pngLogo(t, 10, 10, color.NRGBA{R: 0xff, A: 0x80}))
		if err != nil {
			t.Fatalf("Composite: %v", err)
		}
		want := color.RGBA{R: 0xff, G: 0x7f, B: 0x7f, A: 0xff}
		if got := img.RGBAAt(50, 50); !nearColor(got, want) {
			t.Fatalf("half transparent logo pixel = %v, want about %v", got, want)
		}
	})
}

func TestCompositeJPEGLogo(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 40))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{B: 0xff, A: 0xff}), image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	img, err := Composite(whiteBase(200, 200), buf.Bytes())
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	got := img.RGBAAt(100, 100)
	if got.B < 0xf0 || got.R > 0x10 || got.A != 0xff {
		t.Fatalf("jpeg logo pixel = %v, want opaque blue", got)
	}
}

func TestCompositeBadLogo(t *testing.T) {
	_, err := Composite(whiteBase(100, 100), []byte("definitely not an image"))
	if !errors.Is(err, ErrLogoDecode) {
		t.Fatalf("error = %v, want ErrLogoDecode", err)
	}
}

// resizedHeader rewrites the IHDR dimensions of a PNG without touching its
// pixel data, producing a file whose header claims a much larger image.
func resizedHeader(t *testing.T, data []byte, w, h uint32) []byte {
	t.Helper()
	out := append([]byte(nil), data...)
	if string(out[12:16]) != "IHDR" {
		t.Fatalf("unexpected first chunk %q", out[12:16])
	}
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestDecodeLogoRejectsHugeDimensions(t *testing.T) {
	small := pngLogo(t, 4, 4, color.NRGBA{R: 0xff, A: 0xff})

	tests := []struct {
		name string
		w, h uint32
	}{
		{"square", 12000, 12000},
		{"one row", 100_000_000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			huge := resizedHeader(t, small, tt.w, tt.h)
			if len(huge) > 1<<10 {
				t.Fatalf("header rewrite grew the file to %d bytes", len(huge))
			}
			_, _, err := DecodeLogo(huge)
			if !errors.Is(err, ErrLogoDecode) {
				t.Fatalf("error = %v, want ErrLogoDecode", err)
			}
			if _, err := Composite(whiteBase(100, 100), huge); !errors.Is(err, ErrLogoDecode) {
				t.Fatalf("Composite error = %v, want ErrLogoDecode", err)
			}
		})
	}
}
