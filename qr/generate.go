package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/openclaw/qrgen/payload"
)

// Download metadata for generated images.
const (
	FileName = "qr_code.png"
	MIMEType = "image/png"
)

// Result is a generated QR code.
type Result struct {
	Payload string // the encoded string
	Version int    // QR version, 1 to 40
	Width   int    // image side in pixels
	PNG     []byte
}

// Generate runs the whole pipeline for one request: format the record,
// encode it, render it, composite the optional logo and encode the image as
// PNG. Any failure aborts the call; no partial image is returned.
func Generate(record payload.Record, opts Options, logo []byte) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	content := payload.Format(record)
	if opts.Escape {
		content = payload.FormatEscaped(record)
	}
	if content == "" || payload.Empty(record) {
		return nil, ErrEmptyPayload
	}

	grid, err := Encode(content)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", record.Kind(), err)
	}

	img := Render(grid, opts.ModuleSize, opts.Border, opts.Foreground, opts.Background)

	img, err = Composite(img, logo)
	if err != nil {
		return nil, fmt.Errorf("composite logo: %w", err)
	}

	data, err := EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return &Result{
		Payload: content,
		Version: (grid.Size - 17) / 4,
		Width:   img.Bounds().Dx(),
		PNG:     data,
	}, nil
}

// EncodePNG serializes img as PNG with default compression.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
