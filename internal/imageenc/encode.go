// Package imageenc turns user-selected image files into data URLs for
// the draft preview. Encoding runs on a background worker; results are
// delivered to a callback that must check the draft token for staleness.
package imageenc

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes caps the size of an encoded file.
const DefaultMaxBytes = 5 << 20

var (
	ErrTooLarge = errors.New("image file too large")
	ErrNotImage = errors.New("file is not an image")
)

// EncodeFile reads path and returns a base64 data URL. Files larger than
// maxBytes are rejected; maxBytes <= 0 means DefaultMaxBytes.
func EncodeFile(path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, filepath.Base(path), maxBytes)
	}

	mimeType, err := detectType(path, data)
	if err != nil {
		return "", err
	}
	return DataURL(mimeType, data), nil
}

// DataURL formats raw bytes as a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// detectType sniffs the content first and falls back to the extension
// for formats the sniffer reports as text (SVG).
func detectType(path string, data []byte) (string, error) {
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed, nil
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); strings.HasPrefix(byExt, "image/") {
		if i := strings.IndexByte(byExt, ';'); i >= 0 {
			byExt = byExt[:i]
		}
		return byExt, nil
	}
	return "", fmt.Errorf("%w: %s looks like %s", ErrNotImage, filepath.Base(path), sniffed)
}
