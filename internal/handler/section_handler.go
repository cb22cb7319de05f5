package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

type sectionPayload struct {
	PageKey     *string                 `json:"page_key"`
	PageID      *uint                   `json:"page_id"`
	SectionType *string                 `json:"section_type"`
	Title       *string                 `json:"title"`
	Subtitle    *string                 `json:"subtitle"`
	Description *string                 `json:"description"`
	Content     *string                 `json:"content"`
	ImageURL    *string                 `json:"image_url"`
	IconURL     *string                 `json:"icon_url"`
	LinkText    *string                 `json:"link_text"`
	LinkURL     *string                 `json:"link_url"`
	SortOrder   *int                    `json:"sort_order"`
	IsActive    *bool                   `json:"is_active"`
	Settings    *map[string]interface{} `json:"settings"`
}

// ListSections serves active sections for a well-known page key, the feed
// the storefront composes pages from.
func (a *API) ListSections(c *gin.Context) {
	pageKey := strings.TrimSpace(c.Query("page"))
	if pageKey == "" {
		pageKey = "homepage"
	}
	sections, err := a.sections.ListForPageKey(pageKey)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// AdminListSections serves sections for the dashboard composer, by page key
// or by custom page id.
func (a *API) AdminListSections(c *gin.Context) {
	if pageID := parseUintQuery(c, "page_id"); pageID != 0 {
		sections, err := a.sections.ListForPage(pageID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to load sections")
			return
		}
		c.JSON(http.StatusOK, gin.H{"sections": sections})
		return
	}
	a.ListSections(c)
}

// CreateSection adds a section block from the dashboard composer.
func (a *API) CreateSection(c *gin.Context) {
	var payload sectionPayload
	if !bindJSON(c, &payload, "invalid section payload") {
		return
	}

	input := service.SectionInput{
		PageID:   payload.PageID,
		IsActive: payload.IsActive,
	}
	if payload.PageKey != nil {
		input.PageKey = *payload.PageKey
	}
	if payload.SectionType != nil {
		input.SectionType = *payload.SectionType
	}
	if payload.Title != nil {
		input.Title = *payload.Title
	}
	if payload.Subtitle != nil {
		input.Subtitle = *payload.Subtitle
	}
	if payload.Description != nil {
		input.Description = *payload.Description
	}
	if payload.Content != nil {
		input.Content = *payload.Content
	}
	if payload.ImageURL != nil {
		input.ImageURL = a.storeInlineImage(*payload.ImageURL, "section-image")
	}
	if payload.IconURL != nil {
		input.IconURL = a.storeInlineImage(*payload.IconURL, "section-icon")
	}
	if payload.LinkText != nil {
		input.LinkText = *payload.LinkText
	}
	if payload.LinkURL != nil {
		input.LinkURL = *payload.LinkURL
	}
	if payload.SortOrder != nil {
		input.SortOrder = *payload.SortOrder
	}
	if payload.Settings != nil {
		input.Settings = *payload.Settings
	}

	section, err := a.sections.Create(input)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create section")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": section})
}

// UpdateSection applies a partial update to a section block.
func (a *API) UpdateSection(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload sectionPayload
	if !bindJSON(c, &payload, "invalid section payload") {
		return
	}

	if payload.ImageURL != nil {
		stored := a.storeInlineImage(*payload.ImageURL, "section-image")
		payload.ImageURL = &stored
	}
	if payload.IconURL != nil {
		stored := a.storeInlineImage(*payload.IconURL, "section-icon")
		payload.IconURL = &stored
	}

	section, err := a.sections.Update(id, service.SectionUpdateInput{
		PageKey:     payload.PageKey,
		SectionType: payload.SectionType,
		Title:       payload.Title,
		Subtitle:    payload.Subtitle,
		Description: payload.Description,
		Content:     payload.Content,
		ImageURL:    payload.ImageURL,
		IconURL:     payload.IconURL,
		LinkText:    payload.LinkText,
		LinkURL:     payload.LinkURL,
		SortOrder:   payload.SortOrder,
		IsActive:    payload.IsActive,
		Settings:    payload.Settings,
	})
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			respondError(c, http.StatusNotFound, "section not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

// DeleteSection removes a section block.
func (a *API) DeleteSection(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.sections.Delete(id); err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			respondError(c, http.StatusNotFound, "section not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "section deleted"})
}
