package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/db"
	"github.com/startupsaga/internal/service"
)

type storyPayload struct {
	Title              *string            `json:"title"`
	Slug               *string            `json:"slug"`
	Excerpt            *string            `json:"excerpt"`
	Content            *string            `json:"content"`
	CategoryID         *uint              `json:"category_id"`
	CityID             *uint              `json:"city_id"`
	RelatedStartupSlug *string            `json:"related_startup_slug"`
	Author             *string            `json:"author"`
	ReadTime           *int               `json:"read_time"`
	Sections           *[]db.StorySection `json:"sections"`
	IsFeatured         *bool              `json:"is_featured"`
	Stage              *string            `json:"stage"`
	Status             *string            `json:"status"`

	MetaTitle           *string `json:"meta_title"`
	MetaDescription     *string `json:"meta_description"`
	MetaKeywords        *string `json:"meta_keywords"`
	ImageAlt            *string `json:"image_alt"`
	ShowTableOfContents *bool   `json:"show_table_of_contents"`
	CanonicalOverride   *string `json:"canonical_override"`
	NoIndex             *bool   `json:"no_index"`
	ThumbnailURL        *string `json:"thumbnail_url"`
	OGImageURL          *string `json:"og_image_url"`
}

// ListStories serves the public story listing.
func (a *API) ListStories(c *gin.Context) {
	filter := service.StoryFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		Status:       "published",
		CategorySlug: strings.TrimSpace(c.Query("category")),
		CitySlug:     strings.TrimSpace(c.Query("city")),
		Featured:     parseBoolQuery(c, "featured"),
		Page:         parseIntQuery(c, "page", 1),
		PerPage:      parseIntQuery(c, "per_page", 12),
	}
	a.renderStoryList(c, filter)
}

// AdminListStories serves the dashboard listing across all statuses.
func (a *API) AdminListStories(c *gin.Context) {
	filter := service.StoryFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		Status:       strings.TrimSpace(c.Query("status")),
		CategorySlug: strings.TrimSpace(c.Query("category")),
		CitySlug:     strings.TrimSpace(c.Query("city")),
		Featured:     parseBoolQuery(c, "featured"),
		Page:         parseIntQuery(c, "page", 1),
		PerPage:      parseIntQuery(c, "per_page", 20),
	}
	a.renderStoryList(c, filter)
}

func (a *API) renderStoryList(c *gin.Context, filter service.StoryFilter) {
	result, err := a.stories.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load stories")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stories":     result.Stories,
		"total":       result.Total,
		"total_pages": result.TotalPages,
		"page":        result.Page,
		"per_page":    result.PerPage,
	})
}

// TrendingStories serves the homepage trending strip.
func (a *API) TrendingStories(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 6)
	stories, err := a.stories.Trending(limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load trending stories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

// GetStoryBySlug serves the public story detail and bumps its view count.
func (a *API) GetStoryBySlug(c *gin.Context) {
	story, err := a.stories.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrStoryNotFound) {
			a.respondWithRedirectOrNotFound(c, "stories", "story not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load story")
		return
	}

	rendered, err := service.RenderMarkdown(story.Content)
	if err != nil {
		rendered = ""
	}
	c.JSON(http.StatusOK, gin.H{"story": story, "content_html": rendered})
}

// GetStory serves a story by id for the dashboard editor.
func (a *API) GetStory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	story, err := a.stories.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrStoryNotFound) {
			respondError(c, http.StatusNotFound, "story not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load story")
		return
	}
	c.JSON(http.StatusOK, gin.H{"story": story})
}

// CreateStory creates an article from the dashboard.
func (a *API) CreateStory(c *gin.Context) {
	var payload storyPayload
	if !bindJSON(c, &payload, "invalid story payload") {
		return
	}

	input := service.StoryCreateInput{
		CategoryID: payload.CategoryID,
		CityID:     payload.CityID,
		ReadTime:   payload.ReadTime,
	}
	if payload.Title != nil {
		input.Title = *payload.Title
	}
	if payload.Slug != nil {
		input.Slug = *payload.Slug
	}
	if payload.Excerpt != nil {
		input.Excerpt = *payload.Excerpt
	}
	if payload.Content != nil {
		input.Content = *payload.Content
	}
	if payload.RelatedStartupSlug != nil {
		input.RelatedStartupSlug = *payload.RelatedStartupSlug
	}
	if payload.Author != nil {
		input.Author = *payload.Author
	}
	if payload.Sections != nil {
		input.Sections = *payload.Sections
	}
	if payload.IsFeatured != nil {
		input.IsFeatured = *payload.IsFeatured
	}
	if payload.Stage != nil {
		input.Stage = *payload.Stage
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
	input.ShowTableOfContents = payload.ShowTableOfContents
	if payload.ThumbnailURL != nil {
		input.ThumbnailURL = a.storeInlineImage(*payload.ThumbnailURL, input.Title)
	}
	if payload.OGImageURL != nil {
		input.OGImageURL = a.storeInlineImage(*payload.OGImageURL, input.Title)
	}

	story, err := a.stories.Create(input)
	if err != nil {
		a.respondStoryError(c, err, "failed to create story")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"story": story})
}

// UpdateStory applies a partial update from the dashboard editor.
func (a *API) UpdateStory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload storyPayload
	if !bindJSON(c, &payload, "invalid story payload") {
		return
	}

	if payload.ThumbnailURL != nil {
		stored := a.storeInlineImage(*payload.ThumbnailURL, "story-thumbnail")
		payload.ThumbnailURL = &stored
	}
	if payload.OGImageURL != nil {
		stored := a.storeInlineImage(*payload.OGImageURL, "story-og")
		payload.OGImageURL = &stored
	}

	story, err := a.stories.Update(id, service.StoryUpdateInput{
		Title:               payload.Title,
		Slug:                payload.Slug,
		Excerpt:             payload.Excerpt,
		Content:             payload.Content,
		CategoryID:          payload.CategoryID,
		CityID:              payload.CityID,
		RelatedStartupSlug:  payload.RelatedStartupSlug,
		Author:              payload.Author,
		ReadTime:            payload.ReadTime,
		Sections:            payload.Sections,
		IsFeatured:          payload.IsFeatured,
		Stage:               payload.Stage,
		Status:              payload.Status,
		MetaTitle:           payload.MetaTitle,
		MetaDescription:     payload.MetaDescription,
		MetaKeywords:        payload.MetaKeywords,
		ImageAlt:            payload.ImageAlt,
		ShowTableOfContents: payload.ShowTableOfContents,
		CanonicalOverride:   payload.CanonicalOverride,
		NoIndex:             payload.NoIndex,
		ThumbnailURL:        payload.ThumbnailURL,
		OGImageURL:          payload.OGImageURL,
	})
	if err != nil {
		a.respondStoryError(c, err, "failed to update story")
		return
	}
	c.JSON(http.StatusOK, gin.H{"story": story})
}

// DeleteStory removes an article. Its redirects stay in the ledger.
func (a *API) DeleteStory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.stories.Delete(id); err != nil {
		if errors.Is(err, service.ErrStoryNotFound) {
			respondError(c, http.StatusNotFound, "story not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete story")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "story deleted"})
}

func (a *API) respondStoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrStoryNotFound):
		respondError(c, http.StatusNotFound, "story not found")
	case errors.Is(err, service.ErrStoryTitleRequired):
		respondError(c, http.StatusBadRequest, "story title is required")
	case errors.Is(err, service.ErrStartupNotFound):
		respondError(c, http.StatusBadRequest, "related startup not found")
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, http.StatusConflict, "slug already in use")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
