package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// Upload kinds with their allowed MIME types and size caps. Videos carry
// the raw footage a business hands off and the edited clip coming back;
// covers are the listing images.
var allowedMimeTypes = map[string][]string{
	"raw_footage": {"video/mp4", "video/webm", "video/quicktime"},
	"clip_video":  {"video/mp4", "video/webm", "video/quicktime"},
	"cover_image": {"image/jpeg", "image/png", "image/webp"},
}

var maxFileSizes = map[string]int64{
	"raw_footage": 500 * 1024 * 1024,
	"clip_video":  200 * 1024 * 1024,
	"cover_image": 10 * 1024 * 1024,
}

// ValidateAndBuffer reads the upload into memory, checks its size and
// sniffed MIME type against the kind's allowances, and returns the buffer
// ready for storage.
func ValidateAndBuffer(reader io.Reader, kind, filename string) (*bytes.Buffer, string, error) {
	maxSize, ok := maxFileSizes[kind]
	if !ok {
		return nil, "", fmt.Errorf("unknown upload kind: %s", kind)
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	mimeType := detectMime(data, filename)
	allowed := false
	for _, t := range allowedMimeTypes[kind] {
		if t == mimeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, "", ErrInvalidMimeType
	}

	return bytes.NewBuffer(data), mimeType, nil
}

// detectMime sniffs magic bytes, falling back to the file extension for
// container formats the sniffer does not recognize (e.g. QuickTime).
func detectMime(data []byte, filename string) string {
	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if mimeType != "application/octet-stream" {
		return mimeType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mov", ".qt":
		return "video/quicktime"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return mimeType
	}
}

// ExtensionForMime returns the canonical file extension for a MIME type
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ""
	}
}
