package qr

import "errors"

var (
	// ErrEmptyPayload means no data type was selected or every field was blank.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrCapacityExceeded means the payload does not fit the largest QR version
	// at error correction level High.
	ErrCapacityExceeded = errors.New("payload exceeds QR code capacity")
	// ErrLogoDecode means the supplied logo bytes are not a decodable image.
	ErrLogoDecode = errors.New("logo is not a decodable image")
	// ErrInvalidOptions means a render option is out of range or malformed.
	ErrInvalidOptions = errors.New("invalid render options")
)

// Short kind strings reported to API clients.
const (
	KindEmptyPayload     = "empty_payload"
	KindCapacityExceeded = "capacity_exceeded"
	KindLogoDecode       = "logo_decode"
	KindInvalidOptions   = "invalid_options"
	KindInternal         = "internal"
)

// Kind classifies err as one of the Kind* strings.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrEmptyPayload):
		return KindEmptyPayload
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, ErrLogoDecode):
		return KindLogoDecode
	case errors.Is(err, ErrInvalidOptions):
		return KindInvalidOptions
	}
	return KindInternal
}
