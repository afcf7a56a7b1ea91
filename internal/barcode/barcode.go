// Package barcode renders machine-readable codes as PNG data URIs for embedding in templates.
package barcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
)

// Kind selects a symbology
type Kind string

// Supported symbologies
const (
	KindCode128 Kind = "code128"
	KindQR      Kind = "qr"
	KindPDF417  Kind = "pdf417"
)

// pdf417SecurityLevel is the error correction level used for license codes
const pdf417SecurityLevel = 2

var (
	ErrEmptyContent    = errors.New("barcode content is empty")
	ErrUnsupportedKind = errors.New("unsupported barcode kind")
)

// Encode builds a barcode of the given kind scaled to at least width x height
func Encode(kind Kind, content string, width, height int) (barcode.Barcode, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	var (
		code barcode.Barcode
		err  error
	)
	switch kind {
	case KindCode128:
		code, err = code128.Encode(content)
	case KindQR:
		code, err = qr.Encode(content, qr.M, qr.Auto)
	case KindPDF417:
		code, err = pdf417.Encode(content, pdf417SecurityLevel)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", kind, err)
	}

	// Scale only enlarges; keep the natural size when the target is smaller
	natural := code.Bounds()
	width = max(width, natural.Dx())
	height = max(height, natural.Dy())

	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to scale %s: %w", kind, err)
	}
	return scaled, nil
}

// DataURI encodes a barcode and returns it as a base64 PNG data URI
func DataURI(kind Kind, content string, width, height int) (string, error) {
	code, err := Encode(kind, content, width, height)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return "", fmt.Errorf("failed to encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
