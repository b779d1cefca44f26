// Package service contains the application's business logic layer.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"os"
	"path"
	"path/filepath"
	"strings"

	"ladle/internal/config"
	"ladle/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMediaDir    = "/tmp/ladle/media"
	MaxImageUploadSize = 10 * 1024 * 1024
	MasterMaxSize      = 2048
	ThumbnailSize      = 256
	JPEGQuality        = 82
	WebPQuality        = 70
	MediaURLPrefix     = "/media"
)

// ImageService stores recipe images on disk. Payloads arrive as data URLs
// (data:image/<fmt>;base64,...); each accepted image is written as a JPEG
// master plus a WebP thumbnail under a random name.
type ImageService struct {
	mediaDir string
}

// NewImageService creates an ImageService rooted at the configured media directory.
func NewImageService(cfg *config.Config) *ImageService {
	dir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		dir = cfg.MediaDir
	}
	return &ImageService{mediaDir: dir}
}

// SaveDataURL decodes and stores a data-URL image payload, returning the public
// URL of the stored master image. A payload that is not a data URL is assumed
// to be an already-stored URL or path and is returned unchanged.
func (s *ImageService) SaveDataURL(_ context.Context, payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, "data:") {
		return payload, nil
	}

	raw, err := decodeDataURL(payload)
	if err != nil {
		return "", models.NewValidationError("Invalid image payload")
	}
	if len(raw) > MaxImageUploadSize {
		return "", models.NewValidationError(fmt.Sprintf("Image too large (max %dMB)", MaxImageUploadSize/(1024*1024)))
	}

	decoded, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if !isSupportedImageFormat(format) {
		return "", models.NewValidationError("Unsupported image format")
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	thumbnail := resizeToFit(decoded, ThumbnailSize, ThumbnailSize)

	masterJPG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	thumbWebP, err := encodeWebP(thumbnail, WebPQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String()
	masterRel := name + ".jpg"
	thumbRel := name + ".webp"

	if err := writeBytesToFile(filepath.Join(s.mediaDir, masterRel), masterJPG); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := writeBytesToFile(filepath.Join(s.mediaDir, thumbRel), thumbWebP); err != nil {
		_ = os.Remove(filepath.Join(s.mediaDir, masterRel))
		return "", models.NewInternalError(err)
	}

	return path.Join(MediaURLPrefix, masterRel), nil
}

// decodeDataURL extracts the base64 body of a data URL.
func decodeDataURL(payload string) ([]byte, error) {
	rest := strings.TrimPrefix(payload, "data:")
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return nil, fmt.Errorf("missing data separator")
	}
	meta := rest[:sep]
	if !strings.HasPrefix(meta, "image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URL header %q", meta)
	}
	return base64.StdEncoding.DecodeString(rest[sep+1:])
}

func isSupportedImageFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
