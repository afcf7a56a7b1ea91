package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ValidateCount checks a requested document count against an upper limit
func ValidateCount(count, max int) error {
	if count < 0 {
		return fmt.Errorf("count must not be negative: %d", count)
	}
	if max > 0 && count > max {
		return fmt.Errorf("count exceeds maximum limit: %d > %d", count, max)
	}
	return nil
}

// ValidateRelativeDir checks that dir is a relative path that stays inside
// its parent, as required for output roots chosen by API clients
func ValidateRelativeDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory must not be empty")
	}
	if filepath.IsAbs(dir) {
		return fmt.Errorf("directory must be relative: %s", dir)
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("directory escapes its parent: %s", dir)
	}
	return nil
}

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
