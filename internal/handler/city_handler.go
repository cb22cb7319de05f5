package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

type cityPayload struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Tier         *string `json:"tier"`
	StartupCount *int    `json:"startup_count"`
	UnicornCount *int    `json:"unicorn_count"`
	Description  *string `json:"description"`
	IsFeatured   *bool   `json:"is_featured"`
	Status       *string `json:"status"`

	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	MetaKeywords    *string `json:"meta_keywords"`
	ImageURL        *string `json:"image_url"`
	OGImageURL      *string `json:"og_image_url"`
}

// ListCities serves the public hub listing, published rows only.
func (a *API) ListCities(c *gin.Context) {
	cities, err := a.cities.List(true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load cities")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// AdminListCities serves all city rows for the dashboard.
func (a *API) AdminListCities(c *gin.Context) {
	cities, err := a.cities.List(false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load cities")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// GetCityBySlug serves the public hub detail.
func (a *API) GetCityBySlug(c *gin.Context) {
	city, err := a.cities.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			a.respondWithRedirectOrNotFound(c, "cities", "city not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load city")
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city})
}

// CreateCity creates a hub from the dashboard.
func (a *API) CreateCity(c *gin.Context) {
	var payload cityPayload
	if !bindJSON(c, &payload, "invalid city payload") {
		return
	}

	input := service.CityCreateInput{}
	if payload.Name != nil {
		input.Name = *payload.Name
	}
	if payload.Slug != nil {
		input.Slug = *payload.Slug
	}
	if payload.Tier != nil {
		input.Tier = *payload.Tier
	}
	if payload.StartupCount != nil {
		input.StartupCount = *payload.StartupCount
	}
	if payload.UnicornCount != nil {
		input.UnicornCount = *payload.UnicornCount
	}
	if payload.Description != nil {
		input.Description = *payload.Description
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
	if payload.ImageURL != nil {
		input.ImageURL = a.storeInlineImage(*payload.ImageURL, input.Name)
	}
	if payload.OGImageURL != nil {
		input.OGImageURL = a.storeInlineImage(*payload.OGImageURL, input.Name)
	}

	city, err := a.cities.Create(input)
	if err != nil {
		a.respondCityError(c, err, "failed to create city")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"city": city})
}

// UpdateCity applies a partial update. Renaming regenerates the slug and
// records a redirect from the old address.
func (a *API) UpdateCity(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload cityPayload
	if !bindJSON(c, &payload, "invalid city payload") {
		return
	}

	if payload.ImageURL != nil {
		stored := a.storeInlineImage(*payload.ImageURL, "city-image")
		payload.ImageURL = &stored
	}
	if payload.OGImageURL != nil {
		stored := a.storeInlineImage(*payload.OGImageURL, "city-og")
		payload.OGImageURL = &stored
	}

	city, err := a.cities.Update(id, service.CityUpdateInput{
		Name:            payload.Name,
		Slug:            payload.Slug,
		Tier:            payload.Tier,
		StartupCount:    payload.StartupCount,
		UnicornCount:    payload.UnicornCount,
		Description:     payload.Description,
		IsFeatured:      payload.IsFeatured,
		Status:          payload.Status,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		MetaKeywords:    payload.MetaKeywords,
		ImageURL:        payload.ImageURL,
		OGImageURL:      payload.OGImageURL,
	})
	if err != nil {
		a.respondCityError(c, err, "failed to update city")
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city})
}

// DeleteCity removes a hub row.
func (a *API) DeleteCity(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.cities.Delete(id); err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			respondError(c, http.StatusNotFound, "city not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete city")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "city deleted"})
}

func (a *API) respondCityError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCityNotFound):
		respondError(c, http.StatusNotFound, "city not found")
	case errors.Is(err, service.ErrCityNameRequired):
		respondError(c, http.StatusBadRequest, "city name is required")
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, http.StatusConflict, "slug already in use")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
