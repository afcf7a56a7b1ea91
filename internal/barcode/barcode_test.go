package barcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name          string
		kind          Kind
		content       string
		width, height int
	}{
		{name: "code128 receipt number", kind: KindCode128, content: "483920", width: 240, height: 50},
		{name: "qr invoice payload", kind: KindQR, content: "INV-0042|1234.56|USD", width: 120, height: 120},
		{name: "pdf417 license payload", kind: KindPDF417, content: "DAQA1234567\nDCSDOE\nDACJANE", width: 600, height: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Encode(tt.kind, tt.content, tt.width, tt.height)
			require.NoError(t, err)

			bounds := code.Bounds()
			assert.GreaterOrEqual(t, bounds.Dx(), tt.width)
			assert.GreaterOrEqual(t, bounds.Dy(), tt.height)
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Run("empty content", func(t *testing.T) {
		_, err := Encode(KindQR, "", 100, 100)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Encode("ean13", "123", 100, 100)
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	})
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(KindCode128, "100234", 200, 40)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, img.Bounds().Dx(), 200)
	assert.GreaterOrEqual(t, img.Bounds().Dy(), 40)
}
