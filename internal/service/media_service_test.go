package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/startupsaga/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMediaService(t *testing.T) *MediaService {
	t.Helper()
	dsn := fmt.Sprintf("file:media-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.MediaItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewMediaService(gdb, t.TempDir(), "/static/uploads/")
}

// pngDataURL encodes a blank PNG of the given size as a data URL.
func pngDataURL(t *testing.T, width, height int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestSaveBase64ImageWritesFile(t *testing.T) {
	svc := setupMediaService(t)

	url, err := svc.SaveBase64Image(pngDataURL(t, 10, 10), "Acme Logo")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/static/uploads/acme-logo-") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("expected a .png url, got %q", url)
	}

	name := strings.TrimPrefix(url, "/static/uploads/")
	if _, err := os.Stat(filepath.Join(svc.uploadDir, name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	// Small images get no thumbnail.
	if _, err := os.Stat(filepath.Join(svc.uploadDir, thumbnailNameFor(name))); !os.IsNotExist(err) {
		t.Fatalf("expected no thumbnail for a small image, stat err: %v", err)
	}
}

func TestSaveBase64ImageWritesThumbnailForLargeImages(t *testing.T) {
	svc := setupMediaService(t)

	url, err := svc.SaveBase64Image(pngDataURL(t, 1200, 600), "banner")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	name := strings.TrimPrefix(url, "/static/uploads/")
	thumbPath := filepath.Join(svc.uploadDir, thumbnailNameFor(name))
	f, err := os.Open(thumbPath)
	if err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
	defer f.Close()

	thumb, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if w := thumb.Bounds().Dx(); w != thumbnailMaxEdge {
		t.Fatalf("expected thumbnail width %d, got %d", thumbnailMaxEdge, w)
	}
}

func TestSaveBase64ImageRejectsNonDataURLs(t *testing.T) {
	svc := setupMediaService(t)

	for _, payload := range []string{
		"https://example.com/logo.png",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,not-base64!!",
		"data:image/../evil;base64,aGVsbG8=",
	} {
		if _, err := svc.SaveBase64Image(payload, "x"); !errors.Is(err, ErrInvalidImageData) {
			t.Fatalf("expected ErrInvalidImageData for %q, got %v", payload, err)
		}
	}
}

func TestSaveBase64ToLibraryTracksItem(t *testing.T) {
	svc := setupMediaService(t)

	item, err := svc.SaveBase64ToLibrary(pngDataURL(t, 10, 10), "Team Photo", "the founding team")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if item.FileType != "png" {
		t.Fatalf("expected file type png, got %q", item.FileType)
	}
	if item.ThumbnailURL != thumbnailURLFor(item.FileURL) {
		t.Fatalf("thumbnail url mismatch: %q", item.ThumbnailURL)
	}

	items, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 library item, got %d", len(items))
	}

	if err := svc.Delete(item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(item.ID); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}
