package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/startupsaga/internal/service"
)

// UploadImage stores a multipart image upload and returns its public URL.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no image supplied")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	if err := os.MkdirAll(a.cfg.UploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.cfg.UploadDir, newFilename)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save upload")
		return
	}

	fileURL := fmt.Sprintf("%s/%s", strings.TrimRight(a.cfg.UploadURLPath, "/"), newFilename)
	c.JSON(http.StatusOK, gin.H{"url": fileURL})
}

// ListMedia serves the media library for the dashboard picker.
func (a *API) ListMedia(c *gin.Context) {
	items, err := a.media.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load media library")
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": items})
}

// CreateMedia stores a base64-embedded image in the media library.
func (a *API) CreateMedia(c *gin.Context) {
	var payload struct {
		Title   string `json:"title"`
		AltText string `json:"alt_text"`
		Data    string `json:"data"`
	}
	if !bindJSON(c, &payload, "invalid media payload") {
		return
	}

	item, err := a.media.SaveBase64ToLibrary(payload.Data, payload.Title, payload.AltText)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImageData) {
			respondError(c, http.StatusBadRequest, "data must be a base64 image payload")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to store media item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"media": item})
}

// DeleteMedia removes a media library entry.
func (a *API) DeleteMedia(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.media.Delete(id); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			respondError(c, http.StatusNotFound, "media item not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete media item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "media item deleted"})
}
