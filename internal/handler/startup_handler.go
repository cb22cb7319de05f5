package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/db"
	"github.com/startupsaga/internal/service"
)

// startupPayload carries the admin create/update body. Pointer fields on
// update distinguish "absent" from an explicit zero value.
type startupPayload struct {
	Name          *string           `json:"name"`
	Slug          *string           `json:"slug"`
	Tagline       *string           `json:"tagline"`
	Description   *string           `json:"description"`
	WebsiteURL    *string           `json:"website_url"`
	FoundedYear   *int              `json:"founded_year"`
	CategoryID    *uint             `json:"category_id"`
	CityID        *uint             `json:"city_id"`
	FundingStage  *string           `json:"funding_stage"`
	BusinessModel *string           `json:"business_model"`
	TeamSize      *string           `json:"team_size"`
	IndustryTags  *[]string         `json:"industry_tags"`
	FoundersData  *[]db.FounderInfo `json:"founders_data"`
	IsFeatured    *bool             `json:"is_featured"`
	Status        *string           `json:"status"`

	MetaTitle         *string `json:"meta_title"`
	MetaDescription   *string `json:"meta_description"`
	MetaKeywords      *string `json:"meta_keywords"`
	ImageAlt          *string `json:"image_alt"`
	CanonicalOverride *string `json:"canonical_override"`
	NoIndex           *bool   `json:"no_index"`
	LogoURL           *string `json:"logo_url"`
	OGImageURL        *string `json:"og_image_url"`
}

// ListStartups serves the public directory listing with filters and paging.
func (a *API) ListStartups(c *gin.Context) {
	filter := service.StartupFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Status:     "published",
		CategoryID: parseUintQuery(c, "category_id"),
		CityID:     parseUintQuery(c, "city_id"),
		Featured:   parseBoolQuery(c, "featured"),
		Page:       parseIntQuery(c, "page", 1),
		PerPage:    parseIntQuery(c, "per_page", 20),
	}
	a.renderStartupList(c, filter)
}

// AdminListStartups serves the dashboard listing across all statuses.
func (a *API) AdminListStartups(c *gin.Context) {
	filter := service.StartupFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Status:     strings.TrimSpace(c.Query("status")),
		CategoryID: parseUintQuery(c, "category_id"),
		CityID:     parseUintQuery(c, "city_id"),
		Featured:   parseBoolQuery(c, "featured"),
		Page:       parseIntQuery(c, "page", 1),
		PerPage:    parseIntQuery(c, "per_page", 20),
	}
	a.renderStartupList(c, filter)
}

func (a *API) renderStartupList(c *gin.Context, filter service.StartupFilter) {
	result, err := a.startups.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load startups")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"startups":    result.Startups,
		"total":       result.Total,
		"total_pages": result.TotalPages,
		"page":        result.Page,
		"per_page":    result.PerPage,
	})
}

// GetStartupBySlug serves the public detail page payload.
func (a *API) GetStartupBySlug(c *gin.Context) {
	startup, err := a.startups.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			a.respondWithRedirectOrNotFound(c, "startups", "startup not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load startup")
		return
	}
	c.JSON(http.StatusOK, gin.H{"startup": startup})
}

// GetStartup serves a startup by id for the dashboard editor.
func (a *API) GetStartup(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	startup, err := a.startups.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			respondError(c, http.StatusNotFound, "startup not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load startup")
		return
	}
	c.JSON(http.StatusOK, gin.H{"startup": startup})
}

// CreateStartup creates a directory entry from the dashboard.
func (a *API) CreateStartup(c *gin.Context) {
	var payload startupPayload
	if !bindJSON(c, &payload, "invalid startup payload") {
		return
	}

	input := service.StartupCreateInput{
		FoundedYear: payload.FoundedYear,
		CategoryID:  payload.CategoryID,
		CityID:      payload.CityID,
	}
	if payload.Name != nil {
		input.Name = *payload.Name
	}
	if payload.Slug != nil {
		input.Slug = *payload.Slug
	}
	if payload.Tagline != nil {
		input.Tagline = *payload.Tagline
	}
	if payload.Description != nil {
		input.Description = *payload.Description
	}
	if payload.WebsiteURL != nil {
		input.WebsiteURL = *payload.WebsiteURL
	}
	if payload.FundingStage != nil {
		input.FundingStage = *payload.FundingStage
	}
	if payload.BusinessModel != nil {
		input.BusinessModel = *payload.BusinessModel
	}
	if payload.TeamSize != nil {
		input.TeamSize = *payload.TeamSize
	}
	if payload.IndustryTags != nil {
		input.IndustryTags = *payload.IndustryTags
	}
	if payload.FoundersData != nil {
		input.FoundersData = *payload.FoundersData
	}
	if payload.IsFeatured != nil {
		input.IsFeatured = *payload.IsFeatured
	}
	if payload.Status != nil {
		input.Status = *payload.Status
	}
	if payload.MetaTitle != nil {
		input.MetaTitle = *payload.MetaTitle
	}
	if payload.MetaDescription != nil {
		input.MetaDescription = *payload.MetaDescription
	}
	if payload.MetaKeywords != nil {
		input.MetaKeywords = *payload.MetaKeywords
	}
	if payload.ImageAlt != nil {
		input.ImageAlt = *payload.ImageAlt
	}
	if payload.LogoURL != nil {
		input.LogoURL = a.storeInlineImage(*payload.LogoURL, input.Name)
	}
	if payload.OGImageURL != nil {
		input.OGImageURL = a.storeInlineImage(*payload.OGImageURL, input.Name)
	}

	startup, err := a.startups.Create(input)
	if err != nil {
		a.respondStartupError(c, err, "failed to create startup")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"startup": startup})
}

// UpdateStartup applies a partial update from the dashboard editor.
func (a *API) UpdateStartup(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload startupPayload
	if !bindJSON(c, &payload, "invalid startup payload") {
		return
	}

	if payload.LogoURL != nil {
		stored := a.storeInlineImage(*payload.LogoURL, "startup-logo")
		payload.LogoURL = &stored
	}
	if payload.OGImageURL != nil {
		stored := a.storeInlineImage(*payload.OGImageURL, "startup-og")
		payload.OGImageURL = &stored
	}

	startup, err := a.startups.Update(id, service.StartupUpdateInput{
		Name:              payload.Name,
		Slug:              payload.Slug,
		Tagline:           payload.Tagline,
		Description:       payload.Description,
		WebsiteURL:        payload.WebsiteURL,
		FoundedYear:       payload.FoundedYear,
		CategoryID:        payload.CategoryID,
		CityID:            payload.CityID,
		FundingStage:      payload.FundingStage,
		BusinessModel:     payload.BusinessModel,
		TeamSize:          payload.TeamSize,
		IndustryTags:      payload.IndustryTags,
		FoundersData:      payload.FoundersData,
		IsFeatured:        payload.IsFeatured,
		Status:            payload.Status,
		MetaTitle:         payload.MetaTitle,
		MetaDescription:   payload.MetaDescription,
		MetaKeywords:      payload.MetaKeywords,
		ImageAlt:          payload.ImageAlt,
		CanonicalOverride: payload.CanonicalOverride,
		NoIndex:           payload.NoIndex,
		LogoURL:           payload.LogoURL,
		OGImageURL:        payload.OGImageURL,
	})
	if err != nil {
		a.respondStartupError(c, err, "failed to update startup")
		return
	}
	c.JSON(http.StatusOK, gin.H{"startup": startup})
}

// DeleteStartup removes a directory entry. Redirects pointing at it stay in
// the ledger.
func (a *API) DeleteStartup(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.startups.Delete(id); err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			respondError(c, http.StatusNotFound, "startup not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete startup")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "startup deleted"})
}

func (a *API) respondStartupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrStartupNotFound):
		respondError(c, http.StatusNotFound, "startup not found")
	case errors.Is(err, service.ErrStartupNameRequired):
		respondError(c, http.StatusBadRequest, "startup name is required")
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, http.StatusConflict, "slug already in use")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// storeInlineImage persists data-URL images and passes plain URLs through.
func (a *API) storeInlineImage(value, prefix string) string {
	if !strings.HasPrefix(value, "data:image") {
		return value
	}
	url, err := a.media.SaveBase64Image(value, prefix)
	if err != nil {
		return ""
	}
	return url
}
