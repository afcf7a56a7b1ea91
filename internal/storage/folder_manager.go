package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

// ErrEmptyClass is returned when a class folder is requested for ""
var ErrEmptyClass = errors.New("empty class name")

// only these survive in a folder name; dots and separators never do
var unsafeFolderChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// FolderManager owns the <root>/<class>/ layout of generated images
type FolderManager struct {
	baseDir string
	logger  *zap.Logger
}

// NewFolderManager creates a new FolderManager
func NewFolderManager(baseDir string, logger *zap.Logger) *FolderManager {
	return &FolderManager{baseDir: baseDir, logger: logger}
}

// BaseDir returns the output root
func (m *FolderManager) BaseDir() string {
	return m.baseDir
}

// CreateClassFolder creates the folder for class if needed and returns it
func (m *FolderManager) CreateClassFolder(class string) (string, error) {
	if class == "" {
		return "", fmt.Errorf("cannot create folder: %w", ErrEmptyClass)
	}

	dir := m.ClassFolderPath(class)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", dir, err)
	}

	m.logger.Debug("Class folder ready", zap.String("class", class), zap.String("dir", dir))
	return dir, nil
}

// ClassFolderPath returns the folder of a class without creating it
func (m *FolderManager) ClassFolderPath(class string) string {
	return filepath.Join(m.baseDir, m.SanitizeFolderName(class))
}

// FolderExists reports whether the class folder is present
func (m *FolderManager) FolderExists(class string) bool {
	info, err := os.Stat(m.ClassFolderPath(class))
	return err == nil && info.IsDir()
}

// CleanClassFolder removes a class folder and everything generated in it.
// A missing folder is not an error.
func (m *FolderManager) CleanClassFolder(class string) error {
	dir := m.ClassFolderPath(class)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete folder %s: %w", dir, err)
	}

	m.logger.Info("Cleaned class folder", zap.String("class", class), zap.String("dir", dir))
	return nil
}

// SanitizeFolderName keeps only letters, digits, hyphens and underscores
func (m *FolderManager) SanitizeFolderName(name string) string {
	return unsafeFolderChars.ReplaceAllString(name, "")
}
