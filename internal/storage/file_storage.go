package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ImageFormat is the encoding of saved documents
type ImageFormat string

// Supported image formats
const (
	FormatJPEG ImageFormat = "jpg"
	FormatPNG  ImageFormat = "png"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrPathEscapesBase   = errors.New("path escapes base directory")
)

// ParseFormat accepts jpg, jpeg and png in any case
func ParseFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FileName returns synthetic_<class>_<NNNN>.<ext> for a 1-based index
func FileName(class string, index int, format ImageFormat) string {
	return fmt.Sprintf("synthetic_%s_%04d.%s", class, index, format)
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile writes content to fullPath
	SaveFile(fullPath string, content []byte) error
	// ValidatePath checks path security (no traversal, within base)
	ValidatePath(fullPath string) error
}

// LocalFileStorage implements FileStorage for local filesystem
type LocalFileStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalFileStorage creates a new LocalFileStorage
func NewLocalFileStorage(baseDir string, logger *zap.Logger) *LocalFileStorage {
	return &LocalFileStorage{
		baseDir: baseDir,
		logger:  logger,
	}
}

// SaveFile writes content to fullPath through a temporary sibling and a
// rename, so readers never see a partially written image
func (s *LocalFileStorage) SaveFile(fullPath string, content []byte) error {
	if err := s.ValidatePath(fullPath); err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", fullPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", fullPath, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", fullPath, err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", fullPath, err)
	}

	s.logger.Debug("Saved file", zap.String("path", fullPath), zap.Int("bytes", len(content)))
	return nil
}

// ValidatePath checks that the path is safe and within baseDir
func (s *LocalFileStorage) ValidatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("%w: %s", ErrPathEscapesBase, fullPath)
	}

	return nil
}

// ImageSaver encodes generated documents into the class folders of an output root
type ImageSaver struct {
	folders     *FolderManager
	files       FileStorage
	format      ImageFormat
	jpegQuality int
	logger      *zap.Logger
}

// NewImageSaver creates a saver writing format files under root
func NewImageSaver(root string, format ImageFormat, jpegQuality int, logger *zap.Logger) *ImageSaver {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 85
	}
	return &ImageSaver{
		folders:     NewFolderManager(root, logger),
		files:       NewLocalFileStorage(root, logger),
		format:      format,
		jpegQuality: jpegQuality,
		logger:      logger,
	}
}

// Folders exposes the folder manager of the output root
func (s *ImageSaver) Folders() *FolderManager {
	return s.folders
}

// Save encodes img as document index of class and returns the written path
func (s *ImageSaver) Save(class string, index int, img image.Image) (string, error) {
	folder, err := s.folders.CreateClassFolder(class)
	if err != nil {
		return "", err
	}

	content, err := s.encode(img)
	if err != nil {
		return "", err
	}

	path := filepath.Join(folder, FileName(class, index, s.format))
	if err := s.files.SaveFile(path, content); err != nil {
		return "", err
	}
	return path, nil
}

func (s *ImageSaver) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	switch s.format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.jpegQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.format)
	}
	return buf.Bytes(), nil
}
