package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

type pagePayload struct {
	Title           *string                 `json:"title"`
	Slug            *string                 `json:"slug"`
	Content         *string                 `json:"content"`
	MetaTitle       *string                 `json:"meta_title"`
	MetaDescription *string                 `json:"meta_description"`
	Status          *string                 `json:"status"`
	ThemeOverrides  *map[string]interface{} `json:"theme_overrides"`
}

// ListPages serves every page, system pages seeded on first call.
func (a *API) ListPages(c *gin.Context) {
	pages, err := a.pages.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPageBySlug serves a published page with its active sections and the
// merged theme, the full payload a storefront render needs.
func (a *API) GetPageBySlug(c *gin.Context) {
	slug := c.Param("slug")
	page, err := a.pages.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.respondWithRedirectOrNotFound(c, "pages", "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}

	sections, err := a.sections.ListForPageSlug(slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load page sections")
		return
	}
	theme, err := a.themes.ForPageSlug(slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load page theme")
		return
	}

	rendered, err := service.RenderMarkdown(page.Content)
	if err != nil {
		rendered = ""
	}
	c.JSON(http.StatusOK, gin.H{
		"page":         page,
		"sections":     sections,
		"theme":        theme,
		"content_html": rendered,
	})
}

// GetPage serves a page by id for the dashboard editor.
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := a.pages.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// CreatePage creates a custom page from the dashboard.
func (a *API) CreatePage(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	input := service.PageCreateInput{}
	if payload.Title != nil {
		input.Title = *payload.Title
	}
	if payload.Slug != nil {
		input.Slug = *payload.Slug
	}
	if payload.Content != nil {
		input.Content = *payload.Content
	}
	if payload.MetaTitle != nil {
		input.MetaTitle = *payload.MetaTitle
	}
	if payload.MetaDescription != nil {
		input.MetaDescription = *payload.MetaDescription
	}
	if payload.Status != nil {
		input.Status = *payload.Status
	}
	if payload.ThemeOverrides != nil {
		input.ThemeOverrides = *payload.ThemeOverrides
	}

	page, err := a.pages.Create(input)
	if err != nil {
		a.respondPageError(c, err, "failed to create page")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"page": page})
}

// UpdatePage applies a partial update from the dashboard editor.
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload pagePayload
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.pages.Update(id, service.PageUpdateInput{
		Title:           payload.Title,
		Slug:            payload.Slug,
		Content:         payload.Content,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		Status:          payload.Status,
		ThemeOverrides:  payload.ThemeOverrides,
	})
	if err != nil {
		a.respondPageError(c, err, "failed to update page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// DeletePage removes a page and its sections.
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.pages.Delete(id); err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "page deleted"})
}

func (a *API) respondPageError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		respondError(c, http.StatusNotFound, "page not found")
	case errors.Is(err, service.ErrPageTitleRequired):
		respondError(c, http.StatusBadRequest, "page title is required")
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, http.StatusConflict, "slug already in use")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// GetGlobalTheme serves the site-wide theme settings.
func (a *API) GetGlobalTheme(c *gin.Context) {
	theme, err := a.themes.GlobalTheme()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load theme")
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// GetPageTheme serves the merged theme for a well-known page key.
func (a *API) GetPageTheme(c *gin.Context) {
	pageKey := strings.TrimSpace(c.Param("key"))
	theme, err := a.themes.ForPageKey(pageKey)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load page theme")
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// SetPageTheme stores per-page-key theme overrides from the dashboard.
func (a *API) SetPageTheme(c *gin.Context) {
	pageKey := strings.TrimSpace(c.Param("key"))
	var payload struct {
		ThemeOverrides map[string]interface{} `json:"theme_overrides"`
	}
	if !bindJSON(c, &payload, "invalid theme payload") {
		return
	}

	override, err := a.themes.SetPageKeyOverride(pageKey, payload.ThemeOverrides)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save page theme")
		return
	}
	c.JSON(http.StatusOK, gin.H{"override": override})
}
