// Package imagestore persists uploaded images on the local filesystem and is
// the only place disk paths and public URLs are derived from stored path keys.
package imagestore

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trailpost/tourcms/pkg/apperr"
)

// allowedTypes is the accepted image MIME set.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload describes an incoming file.
type Upload struct {
	OriginalName string
	ContentType  string
	Size         int64
}

// Store is a filesystem-backed image store rooted at a single directory.
// Stored path keys are bare generated filenames, never absolute and never
// prefixed with the uploads segment.
type Store struct {
	root     string
	baseURL  string
	maxBytes int64
	logger   zerolog.Logger
}

// New returns a store rooted at root, creating the directory if needed.
func New(root, baseURL string, maxBytes int64, logger zerolog.Logger) (*Store, error) {
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to create uploads root", err)
	}
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes, logger: logger}, nil
}

// Root returns the uploads root directory.
func (s *Store) Root() string {
	return s.root
}

// Save validates and persists an upload, returning the generated path key.
// Writes go through a temp file and rename so a partially-written file is
// never visible under its final name.
func (s *Store) Save(r io.Reader, up Upload) (string, error) {
	ext, ok := allowedTypes[strings.ToLower(up.ContentType)]
	if !ok {
		return "", apperr.New(apperr.KindUnsupportedMedia,
			fmt.Sprintf("unsupported image type %q (allowed: jpeg, png, gif, webp)", up.ContentType))
	}
	if s.maxBytes > 0 && up.Size > s.maxBytes {
		return "", apperr.New(apperr.KindPayloadTooLarge,
			fmt.Sprintf("file exceeds %d byte limit", s.maxBytes))
	}

	name := generateName(up.OriginalName, ext)
	dest := filepath.Join(s.root, name)

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "failed to create temp file", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	// LimitReader guards against a lying Content-Length.
	limit := up.Size
	if s.maxBytes > 0 {
		limit = s.maxBytes + 1
	}
	written, err := io.Copy(tmp, io.LimitReader(r, limit))
	if err != nil {
		_ = tmp.Close()
		return "", apperr.Wrap(apperr.KindStorage, "failed to write upload", err)
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		_ = tmp.Close()
		return "", apperr.New(apperr.KindPayloadTooLarge,
			fmt.Sprintf("file exceeds %d byte limit", s.maxBytes))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", apperr.Wrap(apperr.KindStorage, "failed to sync upload", err)
	}
	if err := tmp.Close(); err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "failed to close upload", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", apperr.Wrap(apperr.KindStorage, "failed to place upload", err)
	}

	return name, nil
}

// Delete removes the file for a path key. A missing file is treated as
// success so a previously-orphaned reference never blocks record mutation;
// other failures are logged and returned as storage errors.
func (s *Store) Delete(path string) error {
	if path == "" {
		return nil
	}
	abs, err := s.Abs(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.logger.Warn().Str("path", path).Err(err).Msg("image delete failed")
		return apperr.Wrap(apperr.KindStorage, "failed to delete image", err)
	}
	return nil
}

// Exists reports whether a file is present for the path key.
func (s *Store) Exists(path string) bool {
	abs, err := s.Abs(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// Abs resolves a stored path key to an absolute filesystem path,
// rejecting traversal and absolute keys.
func (s *Store) Abs(path string) (string, error) {
	clean, err := sanitizePath(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, clean), nil
}

// Open opens the stored file for reading.
func (s *Store) Open(path string) (fs.File, error) {
	abs, err := s.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.Open(abs)
}

// PublicURL resolves a stored path key to a public URL. Idempotent: an
// already-absolute URL is returned unchanged, so re-wrapping at call sites
// can never double-prefix.
func (s *Store) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	trimmed := strings.TrimPrefix(path, "uploads/")
	if s.baseURL == "" {
		return "/uploads/" + trimmed
	}
	return s.baseURL + "/uploads/" + trimmed
}

// sanitizePath normalizes a path key and forbids traversal and absolute keys.
func sanitizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", apperr.New(apperr.KindStorage, "empty image path")
	}
	if strings.Contains(path, "..") {
		return "", apperr.New(apperr.KindStorage, "invalid image path")
	}
	if strings.HasPrefix(path, "/") {
		return "", apperr.New(apperr.KindStorage, "invalid absolute image path")
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if strings.HasPrefix(clean, "..") {
		return "", apperr.New(apperr.KindStorage, "invalid image path")
	}
	return clean, nil
}

// generateName builds {timestamp}-{randomSuffix}-{sanitizedOriginal}{ext}.
func generateName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = sanitizeBase(base)
	if base == "" {
		base = "image"
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d-%s-%s%s", time.Now().UnixMilli(), suffix, base, ext)
}

func sanitizeBase(base string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-_")
}
