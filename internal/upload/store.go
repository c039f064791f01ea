// AngelaMos | 2026
// store.go

package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/carterperez-dev/glowguard-api/internal/config"
	"github.com/carterperez-dev/glowguard-api/internal/core"
)

var (
	ErrUnsupportedExtension = fmt.Errorf("%w: unsupported file extension", core.ErrInvalidInput)
	ErrFileTooLarge         = fmt.Errorf("%w: file too large", core.ErrInvalidInput)
	ErrCorruptImage         = fmt.Errorf("%w: file is not a valid image", core.ErrInvalidInput)
	ErrEmptyFile            = fmt.Errorf("%w: file is empty", core.ErrInvalidInput)
	ErrImageTooLarge        = fmt.Errorf("%w: image dimensions too large", core.ErrInvalidInput)
)

// DefaultMaxPixels bounds decoded image area when the config leaves it unset.
const DefaultMaxPixels = 16_000_000

// Store validates uploaded images and writes them under a single directory.
// Names are generated, files are created exclusively and never rewritten.
type Store struct {
	dir        string
	publicPath string
	maxBytes   int64
	maxPixels  int64
	allowed    map[string]struct{}
	now        func() time.Time
}

func NewStore(cfg config.UploadConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[normalizeExt(ext)] = struct{}{}
	}

	maxPixels := cfg.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	return &Store{
		dir:        cfg.Dir,
		publicPath: strings.TrimRight(cfg.PublicPath, "/"),
		maxBytes:   cfg.MaxBytes,
		maxPixels:  maxPixels,
		allowed:    allowed,
		now:        time.Now,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

func (s *Store) MaxPixels() int64 {
	return s.maxPixels
}

// Validate checks extension, size, declared dimensions and decodability
// without touching disk. Dimensions are read from the header so a small
// file claiming a huge canvas is rejected before any pixel is allocated.
// It returns the normalized extension and the full payload.
func (s *Store) Validate(filename string, r io.Reader) (string, []byte, error) {
	ext := normalizeExt(filepath.Ext(filename))
	if _, ok := s.allowed[ext]; !ok || ext == "" {
		return "", nil, ErrUnsupportedExtension
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}

	if int64(len(data)) > s.maxBytes {
		return "", nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return "", nil, ErrEmptyFile
	}

	if err := CheckDimensions(bytes.NewReader(data), s.maxPixels); err != nil {
		return "", nil, err
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}

	return ext, data, nil
}

// CheckDimensions reads only the image header from r and rejects images
// whose area exceeds maxPixels.
func CheckDimensions(r io.Reader, maxPixels int64) error {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrCorruptImage, cfg.Width, cfg.Height)
	}

	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	return nil
}

// Save validates the upload and writes it to a freshly generated path,
// which it returns.
func (s *Store) Save(
	ctx context.Context,
	filename string,
	r io.Reader,
) (string, error) {
	ext, data, err := s.Validate(filename, r)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf(
		"%s_%s.%s",
		s.now().UTC().Format("20060102_150405"),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		ext,
	)
	dest := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()       //nolint:errcheck // cleanup on write failure
		_ = os.Remove(dest) //nolint:errcheck // cleanup on write failure
		return "", fmt.Errorf("write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(dest) //nolint:errcheck // cleanup on close failure
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return dest, nil
}

func (s *Store) Remove(p string) error {
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// PublicURL maps a stored path onto the static mount.
func (s *Store) PublicURL(p string) string {
	return path.Join(s.publicPath, filepath.Base(p))
}

// Reason names a validation failure for metrics; empty for anything else.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedExtension):
		return "extension"
	case errors.Is(err, ErrFileTooLarge):
		return "size"
	case errors.Is(err, ErrImageTooLarge):
		return "dimensions"
	case errors.Is(err, ErrCorruptImage):
		return "corrupt"
	case errors.Is(err, ErrEmptyFile):
		return "empty"
	default:
		return ""
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
