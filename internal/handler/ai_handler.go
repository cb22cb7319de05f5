package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

// GenerateSEO produces SEO metadata suggestions for a piece of content.
func (a *API) GenerateSEO(c *gin.Context) {
	var payload struct {
		Type        string `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
	}
	if !bindJSON(c, &payload, "invalid seo payload") {
		return
	}

	suggestion, err := a.seo.GenerateSEO(c.Request.Context(), service.SEOInput{
		Type:        payload.Type,
		Title:       payload.Title,
		Description: payload.Description,
		Content:     payload.Content,
	})
	if err != nil {
		if errors.Is(err, service.ErrAIKeyMissing) {
			respondError(c, http.StatusServiceUnavailable, "ai generation is not configured")
			return
		}
		respondError(c, http.StatusBadGateway, "seo generation failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

// GeneratePrompted runs a named prompt template with caller-supplied
// placeholder values and returns the raw model reply.
func (a *API) GeneratePrompted(c *gin.Context) {
	var payload struct {
		PromptName string            `json:"prompt_name"`
		Context    map[string]string `json:"context"`
	}
	if !bindJSON(c, &payload, "invalid generation payload") {
		return
	}

	reply, err := a.seo.GenerateNamed(c.Request.Context(), payload.PromptName, payload.Context)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAIKeyMissing):
			respondError(c, http.StatusServiceUnavailable, "ai generation is not configured")
		case errors.Is(err, service.ErrPromptNotFound):
			respondError(c, http.StatusNotFound, "prompt not found")
		default:
			respondError(c, http.StatusBadGateway, "content generation failed")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": reply})
}
