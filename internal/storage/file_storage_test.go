package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return img
}

func TestFileName(t *testing.T) {
	tests := []struct {
		class    string
		index    int
		format   ImageFormat
		expected string
	}{
		{"tax-form", 1, FormatJPEG, "synthetic_tax-form_0001.jpg"},
		{"pay-statement", 42, FormatPNG, "synthetic_pay-statement_0042.png"},
		{"miscellaneous", 12345, FormatJPEG, "synthetic_miscellaneous_12345.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileName(tt.class, tt.index, tt.format))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"jpg", "JPEG", ".jpg"} {
		f, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, FormatJPEG, f)
	}

	f, err := ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = ParseFormat("tiff")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLocalFileStorage_SaveFile(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	fs := NewLocalFileStorage(tempDir, logger)

	t.Run("saves file successfully", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "tax-form", "synthetic_tax-form_0001.jpg")
		content := []byte("jpeg content here")

		require.NoError(t, fs.SaveFile(fullPath, content))

		saved, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, content, saved)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "deep", "nested", "file.png")

		require.NoError(t, fs.SaveFile(fullPath, []byte("content")))
		assert.FileExists(t, fullPath)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "overwrite", "file.jpg")

		require.NoError(t, fs.SaveFile(fullPath, []byte("original")))
		require.NoError(t, fs.SaveFile(fullPath, []byte("updated")))

		content, _ := os.ReadFile(fullPath)
		assert.Equal(t, []byte("updated"), content)
	})

	t.Run("rejects paths outside base", func(t *testing.T) {
		err := fs.SaveFile(filepath.Join(tempDir, "..", "escaped.jpg"), []byte("x"))
		assert.ErrorIs(t, err, ErrPathEscapesBase)
	})

	t.Run("leaves no temporary files and uses 0644", func(t *testing.T) {
		dir := filepath.Join(tempDir, "atomic")
		fullPath := filepath.Join(dir, "synthetic_miscellaneous_0001.png")

		require.NoError(t, fs.SaveFile(fullPath, []byte("png")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "synthetic_miscellaneous_0001.png", entries[0].Name())

		info, err := os.Stat(fullPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	})
}

var _ FileStorage = (*LocalFileStorage)(nil)

func TestLocalFileStorage_ValidatePath(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid path within base", path: filepath.Join(tempDir, "tax-form", "a.jpg")},
		{name: "base directory itself", path: tempDir},
		{name: "path traversal", path: filepath.Join(tempDir, "..", "..", "etc", "passwd"), wantErr: true},
		{name: "absolute path outside base", path: "/etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestImageSaver_Save(t *testing.T) {
	t.Run("writes jpeg into class folder", func(t *testing.T) {
		root := t.TempDir()
		saver := NewImageSaver(root, FormatJPEG, 90, zap.NewNop())

		path, err := saver.Save("tax-form", 3, testImage())

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "tax-form", "synthetic_tax-form_0003.jpg"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		decoded, err := jpeg.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 40, 30), decoded.Bounds())
	})

	t.Run("writes png losslessly", func(t *testing.T) {
		root := t.TempDir()
		saver := NewImageSaver(root, FormatPNG, 0, zap.NewNop())
		src := testImage()

		path, err := saver.Save("miscellaneous", 1, src)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		decoded, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)

		r1, g1, b1, _ := src.At(10, 5).RGBA()
		r2, g2, b2, _ := decoded.At(10, 5).RGBA()
		assert.Equal(t, []uint32{r1, g1, b1}, []uint32{r2, g2, b2})
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		saver := NewImageSaver(t.TempDir(), ImageFormat("bmp"), 90, zap.NewNop())

		_, err := saver.Save("tax-form", 1, testImage())
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
