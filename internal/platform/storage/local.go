// Package storage keeps uploaded pet pictures on the local filesystem under
// a directory that the HTTP server also exposes read-only.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// DefaultURLPrefix is where the upload directory is served.
const DefaultURLPrefix = "/uploads"

// MaxFilenameLength bounds the sanitised name so the stored URL stays
// within the image_url column.
const MaxFilenameLength = 100

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// LocalStorage writes files into dir and returns URLs under urlPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalStorage creates dir when it is missing.
func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("upload directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	return &LocalStorage{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Dir is the directory files are written to.
func (s *LocalStorage) Dir() string { return s.dir }

// URLPrefix is the public path the directory is served under.
func (s *LocalStorage) URLPrefix() string { return s.urlPrefix }

// Save stores content under a sanitised, collision-free name and returns its URL.
func (s *LocalStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := SanitizeFilename(filename)
	if name == "" {
		name = "image"
	}
	name = uuid.NewString()[:8] + "_" + name

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}

// Delete removes a file previously returned by Save. Unknown or foreign
// locations are ignored.
func (s *LocalStorage) Delete(_ context.Context, location string) error {
	name := strings.TrimPrefix(location, s.urlPrefix+"/")
	if name == location || name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SanitizeFilename keeps the base name and replaces anything outside
// letters, digits, dot, dash and underscore. Long names are truncated to
// MaxFilenameLength, keeping a short extension.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	base := path.Base(strings.TrimSpace(filename))
	if base == "." || base == "/" {
		return ""
	}
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.TrimLeft(base, "._")
	if len(base) <= MaxFilenameLength {
		return base
	}
	ext := path.Ext(base)
	if len(ext) > 16 {
		ext = ""
	}
	return base[:MaxFilenameLength-len(ext)] + ext
}
