package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

type promptPayload struct {
	Name       *string `json:"name"`
	PromptText *string `json:"prompt_text"`
	Category   *string `json:"category"`
	IsActive   *bool   `json:"is_active"`
}

// ListPrompts serves every stored prompt template.
func (a *API) ListPrompts(c *gin.Context) {
	prompts, err := a.prompts.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load prompts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

// GetPrompt serves one prompt template by id.
func (a *API) GetPrompt(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	prompt, err := a.prompts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			respondError(c, http.StatusNotFound, "prompt not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load prompt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}

// CreatePrompt stores a new prompt template.
func (a *API) CreatePrompt(c *gin.Context) {
	var payload promptPayload
	if !bindJSON(c, &payload, "invalid prompt payload") {
		return
	}

	input := service.PromptInput{IsActive: payload.IsActive}
	if payload.Name != nil {
		input.Name = *payload.Name
	}
	if payload.PromptText != nil {
		input.PromptText = *payload.PromptText
	}
	if payload.Category != nil {
		input.Category = *payload.Category
	}

	prompt, err := a.prompts.Create(input)
	if err != nil {
		if errors.Is(err, service.ErrPromptNameRequired) {
			respondError(c, http.StatusBadRequest, "prompt name is required")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create prompt")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"prompt": prompt})
}

// UpdatePrompt applies a partial update to a prompt template.
func (a *API) UpdatePrompt(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload promptPayload
	if !bindJSON(c, &payload, "invalid prompt payload") {
		return
	}

	prompt, err := a.prompts.Update(id, service.PromptUpdateInput{
		Name:       payload.Name,
		PromptText: payload.PromptText,
		Category:   payload.Category,
		IsActive:   payload.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			respondError(c, http.StatusNotFound, "prompt not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update prompt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}

// DeletePrompt removes a prompt template.
func (a *API) DeletePrompt(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.prompts.Delete(id); err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			respondError(c, http.StatusNotFound, "prompt not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete prompt")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "prompt deleted"})
}

// ApplyDefaultPrompts seeds any missing built-in prompt templates.
func (a *API) ApplyDefaultPrompts(c *gin.Context) {
	created, err := a.prompts.ApplyDefaults()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to apply default prompts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}
