package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

// GetLayoutSettings serves the key/value layout settings.
func (a *API) GetLayoutSettings(c *gin.Context) {
	settings, err := a.settings.LayoutSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load layout settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpsertLayoutSettings bulk-saves layout settings from the dashboard.
func (a *API) UpsertLayoutSettings(c *gin.Context) {
	var payload struct {
		Settings []struct {
			Key         string `json:"key"`
			Value       string `json:"value"`
			SettingType string `json:"setting_type"`
			Description string `json:"description"`
		} `json:"settings"`
	}
	if !bindJSON(c, &payload, "invalid settings payload") {
		return
	}

	inputs := make([]service.LayoutSettingInput, 0, len(payload.Settings))
	for _, s := range payload.Settings {
		inputs = append(inputs, service.LayoutSettingInput{
			Key:         s.Key,
			Value:       s.Value,
			SettingType: s.SettingType,
			Description: s.Description,
		})
	}
	if err := a.settings.UpsertLayoutSettings(inputs); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save layout settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "layout settings saved"})
}

// GetSEOSettings serves the site-wide SEO defaults.
func (a *API) GetSEOSettings(c *gin.Context) {
	settings, err := a.settings.SEOSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load seo settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpsertSEOSettings bulk-saves SEO defaults from the dashboard.
func (a *API) UpsertSEOSettings(c *gin.Context) {
	var payload struct {
		Settings []struct {
			Key         string `json:"key"`
			Value       string `json:"value"`
			Description string `json:"description"`
		} `json:"settings"`
	}
	if !bindJSON(c, &payload, "invalid settings payload") {
		return
	}

	inputs := make([]service.SEOSettingInput, 0, len(payload.Settings))
	for _, s := range payload.Settings {
		inputs = append(inputs, service.SEOSettingInput{
			Key:         s.Key,
			Value:       s.Value,
			Description: s.Description,
		})
	}
	if err := a.settings.UpsertSEOSettings(inputs); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save seo settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "seo settings saved"})
}

// GetFooterSettings serves the active footer columns.
func (a *API) GetFooterSettings(c *gin.Context) {
	settings, err := a.settings.FooterSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load footer settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
