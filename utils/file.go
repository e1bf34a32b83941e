package utils

import (
	"fmt"
	"strings"
)

// IsImageContentType reports whether a MIME type names an image.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// FileSizeString renders a byte count the way the photo picker shows it.
func FileSizeString(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
	}
}

// MegabytesString renders a byte limit as whole megabytes, e.g. "5MB".
// Limits that are not a whole number of megabytes fall back to FileSizeString.
func MegabytesString(bytes int64) string {
	const mb = 1024 * 1024
	if bytes > 0 && bytes%mb == 0 {
		return fmt.Sprintf("%dMB", bytes/mb)
	}
	return FileSizeString(bytes)
}
