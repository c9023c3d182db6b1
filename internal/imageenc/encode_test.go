package imageenc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestEncodeFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     []byte
		wantMime string
	}{
		{"png", "a.png", pngHeader, "image/png"},
		{"gif", "b.gif", []byte("GIF89a\x01\x00\x01\x00"), "image/gif"},
		{"svg by extension", "c.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), "image/svg+xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.data)
			url, err := EncodeFile(path, 0)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			prefix := "data:" + tt.wantMime + ";base64,"
			if !strings.HasPrefix(url, prefix) {
				t.Fatalf("url %q does not start with %q", url, prefix)
			}
			decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
			if err != nil {
				t.Fatalf("payload is not base64: %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Fatal("payload does not round-trip")
			}
		})
	}
}

func TestEncodeFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		max     int64
		wantErr error
	}{
		{"too large", func(t *testing.T) string { return writeFile(t, "big.png", pngHeader) }, 4, ErrTooLarge},
		{"not an image", func(t *testing.T) string { return writeFile(t, "notes.txt", []byte("eggs, flour")) }, 0, ErrNotImage},
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone.png") }, 0, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeFile(tt.path(t), tt.max)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
