package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ImageKind selects the naming scheme of an uploaded image
type ImageKind string

const (
	KindProductMain  ImageKind = "product-main"
	KindProductExtra ImageKind = "product-extra"
	KindHero         ImageKind = "hero"
)

// Valid reports whether k is a known kind
func (k ImageKind) Valid() bool {
	switch k {
	case KindProductMain, KindProductExtra, KindHero:
		return true
	}
	return false
}

// maxPixels bounds the decoded size of an upload. A small compressed file can
// declare dimensions whose pixel buffer would exhaust memory.
const maxPixels = 40_000_000

var (
	ErrInvalidImage = errors.New("file is not a supported image")
	ErrTooLarge     = errors.New("image exceeds the upload size limit")
)

// ImageStore saves uploaded images and returns their public URL
type ImageStore interface {
	Save(ctx context.Context, kind ImageKind, r io.Reader) (string, error)
}

// LocalOptions configures a LocalImageStore
type LocalOptions struct {
	Dir           string
	PublicBaseURL string // e.g. https://shop.example; files are served under /uploads/
	MaxDimension  int
	JPEGQuality   int
	MaxBytes      int64
}

// LocalImageStore resizes images and writes them as JPEG files on local disk
type LocalImageStore struct {
	opts   LocalOptions
	logger *slog.Logger
	now    func() time.Time
}

func NewLocalImageStore(opts LocalOptions, logger *slog.Logger) (*LocalImageStore, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{opts: opts, logger: logger, now: time.Now}, nil
}

// Save decodes the image, shrinks it so neither side exceeds MaxDimension and
// stores it as JPEG
func (s *LocalImageStore) Save(ctx context.Context, kind ImageKind, r io.Reader) (string, error) {
	if s.opts.MaxBytes > 0 {
		r = io.LimitReader(r, s.opts.MaxBytes+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if s.opts.MaxBytes > 0 && int64(len(raw)) > s.opts.MaxBytes {
		return "", ErrTooLarge
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := Optimize(raw, s.opts.MaxDimension, s.opts.JPEGQuality)
	if err != nil {
		return "", err
	}

	name, err := s.fileName(kind)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.opts.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	s.logger.Info("image stored", "kind", kind, "file", name, "bytes", len(data))
	return s.opts.PublicBaseURL + "/uploads/" + name, nil
}

func (s *LocalImageStore) fileName(kind ImageKind) (string, error) {
	ms := s.now().UnixMilli()
	switch kind {
	case KindProductMain:
		return fmt.Sprintf("%d-main.jpg", ms), nil
	case KindHero:
		return fmt.Sprintf("hero-%d.jpg", ms), nil
	default:
		suffix := make([]byte, 5)
		if _, err := rand.Read(suffix); err != nil {
			return "", fmt.Errorf("random file suffix: %w", err)
		}
		return fmt.Sprintf("%d-%s.jpg", ms, hex.EncodeToString(suffix)), nil
	}
}

// Optimize decodes imageData, resizes it to fit within maxDim on both sides
// keeping the aspect ratio, and encodes it as JPEG at quality
func Optimize(imageData []byte, maxDim, quality int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels is too large", ErrInvalidImage, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	if maxDim > 0 && (bounds.Dx() > maxDim || bounds.Dy() > maxDim) {
		// a zero dimension makes imaging keep the aspect ratio
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
