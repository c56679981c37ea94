package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Output template suffix; the extension is chosen by the download tool
const (
	ExtensionTemplate = ".%(ext)s"
)

// SanitizeTitle replaces every character outside [A-Za-z0-9 ._] with an
// underscore so the result is safe as a filesystem path component. The
// operation is idempotent and preserves rune length.
func SanitizeTitle(title string) string {
	runes := []rune(title)
	for i, r := range runes {
		if !isAllowedRune(r) {
			runes[i] = '_'
		}
	}
	return string(runes)
}

// isAllowedRune reports whether the rune may appear in a path component
func isAllowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '.' || r == '_':
		return true
	}
	return false
}

// ChapterDirName returns the directory name for a chapter, prefixed with
// its 1-based position within the course
func ChapterDirName(index int, title string) string {
	return fmt.Sprintf("%d. %s", index, SanitizeTitle(title))
}

// VideoFileStem returns the filename stem for a video, prefixed with its
// 1-based position within the chapter
func VideoFileStem(index int, title string) string {
	return fmt.Sprintf("%d. %s", index, SanitizeTitle(title))
}

// OutputTemplate joins a directory and a file stem into the output
// template handed to the download tool
func OutputTemplate(dir, stem string) string {
	return filepath.Join(dir, stem+ExtensionTemplate)
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}
