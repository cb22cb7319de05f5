package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/startupsaga/internal/db"
	"golang.org/x/image/draw"
	"gorm.io/gorm"

	_ "image/gif"
)

var (
	ErrMediaNotFound    = errors.New("media item not found")
	ErrInvalidImageData = errors.New("invalid image data")
)

// thumbnailMaxEdge bounds the longest edge of generated thumbnails.
const thumbnailMaxEdge = 480

// MediaService stores uploaded and base64-embedded images under the upload
// directory and tracks them in the media library.
type MediaService struct {
	db        *gorm.DB
	uploadDir string
	uploadURL string
}

// NewMediaService creates a MediaService instance.
func NewMediaService(gdb *gorm.DB, uploadDir, uploadURL string) *MediaService {
	return &MediaService{
		db:        gdb,
		uploadDir: uploadDir,
		uploadURL: strings.TrimRight(uploadURL, "/"),
	}
}

// List returns media library items, newest first.
func (s *MediaService) List() ([]db.MediaItem, error) {
	var items []db.MediaItem
	if err := s.db.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SaveBase64Image decodes a data:image/...;base64 payload, writes it and a
// downscaled thumbnail to disk, and returns the public URL of the original.
// filenamePrefix keeps the stored name recognizable, e.g. a slug.
// Payloads that are not data URLs yield ErrInvalidImageData.
func (s *MediaService) SaveBase64Image(payload, filenamePrefix string) (string, error) {
	if !strings.HasPrefix(payload, "data:image") {
		return "", ErrInvalidImageData
	}
	head, data, found := strings.Cut(payload, ";base64,")
	if !found {
		return "", ErrInvalidImageData
	}
	ext := strings.TrimPrefix(head, "data:image/")
	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return "", ErrInvalidImageData
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", ErrInvalidImageData
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s.%s", sanitizeFilePrefix(filenamePrefix), uuid.New().String(), ext)
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}

	// Thumbnails are best effort; a format the decoder cannot read still
	// leaves a valid original behind.
	_, _ = s.writeThumbnail(raw, name)

	return s.uploadURL + "/" + name, nil
}

// SaveBase64ToLibrary stores an embedded image and registers it as a media
// library item.
func (s *MediaService) SaveBase64ToLibrary(payload, title, altText string) (*db.MediaItem, error) {
	fileURL, err := s.SaveBase64Image(payload, Slugify(title))
	if err != nil {
		return nil, err
	}

	item := db.MediaItem{
		Title:        title,
		FileURL:      fileURL,
		ThumbnailURL: thumbnailURLFor(fileURL),
		FileType:     strings.TrimPrefix(filepath.Ext(fileURL), "."),
		AltText:      altText,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// writeThumbnail decodes raw image bytes and writes a bounded-size variant
// next to the original, returning the thumbnail filename.
func (s *MediaService) writeThumbnail(raw []byte, originalName string) (string, error) {
	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= thumbnailMaxEdge && height <= thumbnailMaxEdge {
		return "", nil
	}

	scale := float64(thumbnailMaxEdge) / float64(width)
	if height > width {
		scale = float64(thumbnailMaxEdge) / float64(height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(width)*scale), int(float64(height)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	name := thumbnailNameFor(originalName)
	out, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	switch format {
	case "png":
		err = png.Encode(out, dst)
	default:
		err = jpeg.Encode(out, dst, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func thumbnailNameFor(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-thumb" + ext
}

func thumbnailURLFor(fileURL string) string {
	ext := filepath.Ext(fileURL)
	return strings.TrimSuffix(fileURL, ext) + "-thumb" + ext
}

func sanitizeFilePrefix(prefix string) string {
	cleaned := Slugify(prefix)
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}

// Delete removes a media library row. The file on disk is kept; published
// content may still reference it.
func (s *MediaService) Delete(id uint) error {
	result := s.db.Delete(&db.MediaItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMediaNotFound
	}
	return nil
}
