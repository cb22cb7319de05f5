package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

type navItemPayload struct {
	Label     *string                 `json:"label"`
	URL       *string                 `json:"url"`
	ParentID  *uint                   `json:"parent_id"`
	Icon      *string                 `json:"icon"`
	SortOrder *int                    `json:"sort_order"`
	Position  *string                 `json:"position"`
	IsActive  *bool                   `json:"is_active"`
	Settings  *map[string]interface{} `json:"settings"`
}

// GetNavigation serves the nested menu tree for one position, header by
// default.
func (a *API) GetNavigation(c *gin.Context) {
	position := strings.TrimSpace(c.Query("position"))
	if position == "" {
		position = "header"
	}
	items, err := a.navigation.ListByPosition(position)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load navigation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AdminListNavigation serves the flat item list for the dashboard.
func (a *API) AdminListNavigation(c *gin.Context) {
	items, err := a.navigation.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load navigation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateNavItem adds a menu entry.
func (a *API) CreateNavItem(c *gin.Context) {
	var payload navItemPayload
	if !bindJSON(c, &payload, "invalid navigation payload") {
		return
	}

	input := service.NavItemInput{
		ParentID: payload.ParentID,
		IsActive: payload.IsActive,
	}
	if payload.Label != nil {
		input.Label = *payload.Label
	}
	if payload.URL != nil {
		input.URL = *payload.URL
	}
	if payload.Icon != nil {
		input.Icon = *payload.Icon
	}
	if payload.SortOrder != nil {
		input.SortOrder = *payload.SortOrder
	}
	if payload.Position != nil {
		input.Position = *payload.Position
	}
	if payload.Settings != nil {
		input.Settings = *payload.Settings
	}

	item, err := a.navigation.Create(input)
	if err != nil {
		if errors.Is(err, service.ErrNavItemLabelRequired) {
			respondError(c, http.StatusBadRequest, "navigation label is required")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create navigation item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateNavItem applies a partial update to a menu entry.
func (a *API) UpdateNavItem(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload navItemPayload
	if !bindJSON(c, &payload, "invalid navigation payload") {
		return
	}

	item, err := a.navigation.Update(id, service.NavItemUpdateInput{
		Label:     payload.Label,
		URL:       payload.URL,
		ParentID:  payload.ParentID,
		Icon:      payload.Icon,
		SortOrder: payload.SortOrder,
		Position:  payload.Position,
		IsActive:  payload.IsActive,
		Settings:  payload.Settings,
	})
	if err != nil {
		if errors.Is(err, service.ErrNavItemNotFound) {
			respondError(c, http.StatusNotFound, "navigation item not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update navigation item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteNavItem removes a menu entry; its children move to the top level.
func (a *API) DeleteNavItem(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.navigation.Delete(id); err != nil {
		if errors.Is(err, service.ErrNavItemNotFound) {
			respondError(c, http.StatusNotFound, "navigation item not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete navigation item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "navigation item deleted"})
}
