package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

type categoryPayload struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IconName    *string `json:"icon_name"`
	IsFeatured  *bool   `json:"is_featured"`
	Status      *string `json:"status"`

	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	MetaKeywords    *string `json:"meta_keywords"`
	OGImageURL      *string `json:"og_image_url"`
}

// ListCategories serves the public category listing, published rows only.
func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.categories.List(true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// AdminListCategories serves all category rows for the dashboard.
func (a *API) AdminListCategories(c *gin.Context) {
	categories, err := a.categories.List(false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryBySlug serves the public category detail.
func (a *API) GetCategoryBySlug(c *gin.Context) {
	category, err := a.categories.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			a.respondWithRedirectOrNotFound(c, "categories", "category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// CreateCategory creates a category from the dashboard.
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload, "invalid category payload") {
		return
	}

	input := service.CategoryCreateInput{}
	if payload.Name != nil {
		input.Name = *payload.Name
	}
	if payload.Slug != nil {
		input.Slug = *payload.Slug
	}
	if payload.Description != nil {
		input.Description = *payload.Description
	}
	if payload.IconName != nil {
		input.IconName = *payload.IconName
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
	if payload.OGImageURL != nil {
		input.OGImageURL = a.storeInlineImage(*payload.OGImageURL, input.Name)
	}

	category, err := a.categories.Create(input)
	if err != nil {
		a.respondCategoryError(c, err, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory applies a partial update. Renaming regenerates the slug
// and records a redirect from the old address.
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload categoryPayload
	if !bindJSON(c, &payload, "invalid category payload") {
		return
	}

	if payload.OGImageURL != nil {
		stored := a.storeInlineImage(*payload.OGImageURL, "category-og")
		payload.OGImageURL = &stored
	}

	category, err := a.categories.Update(id, service.CategoryUpdateInput{
		Name:            payload.Name,
		Slug:            payload.Slug,
		Description:     payload.Description,
		IconName:        payload.IconName,
		IsFeatured:      payload.IsFeatured,
		Status:          payload.Status,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		MetaKeywords:    payload.MetaKeywords,
		OGImageURL:      payload.OGImageURL,
	})
	if err != nil {
		a.respondCategoryError(c, err, "failed to update category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category row.
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.categories.Delete(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

func (a *API) respondCategoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, "category not found")
	case errors.Is(err, service.ErrCategoryNameRequired):
		respondError(c, http.StatusBadRequest, "category name is required")
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, http.StatusConflict, "slug already in use")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
