package constants

import "strings"

// AllowedExtensions holds the file extensions accepted for document uploads.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// MimeTypes maps a normalized extension to its MIME type.
var MimeTypes = map[string]string{
	"pdf": "application/pdf",
	"jpg": "image/jpeg",
	"png": "image/png",
}

const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// NormalizeExt lowercases, trims the dot, and folds jpeg into jpg.
func NormalizeExt(ext string) string {
	e := strings.ToLower(strings.TrimPrefix(ext, "."))
	if e == "jpeg" {
		return "jpg"
	}
	return e
}

// AllowedExt reports whether ext (already normalized) may be ingested.
func AllowedExt(ext string) bool {
	_, ok := AllowedExtensions[ext]
	return ok
}

// MapExtToFormat returns PDF or IMAGE for a normalized extension,
// or "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch ext {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png":
		return IMAGE
	default:
		return ""
	}
}
