package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

// ResolveRedirect looks up a moved path and reports where it went.
// Clients call this on a 404 before giving up.
func (a *API) ResolveRedirect(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondError(c, http.StatusBadRequest, "path query parameter is required")
		return
	}

	redirect, err := a.redirects.Resolve(path)
	if err != nil {
		if errors.Is(err, service.ErrRedirectNotFound) {
			respondError(c, http.StatusNotFound, "no redirect for this path")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to resolve redirect")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from_path":    redirect.FromPath,
		"to_path":      redirect.ToPath,
		"is_permanent": redirect.IsPermanent,
	})
}

// AdminListRedirects serves the full redirect ledger.
func (a *API) AdminListRedirects(c *gin.Context) {
	redirects, err := a.redirects.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load redirects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirects": redirects})
}

// respondWithRedirectOrNotFound checks the ledger when a public slug lookup
// misses. A hit answers 301 with the new location so clients can follow.
func (a *API) respondWithRedirectOrNotFound(c *gin.Context, prefix, message string) {
	path := "/" + prefix + "/" + c.Param("slug") + "/"
	redirect, err := a.redirects.Resolve(path)
	if err != nil {
		respondError(c, http.StatusNotFound, message)
		return
	}

	status := http.StatusMovedPermanently
	if !redirect.IsPermanent {
		status = http.StatusFound
	}
	c.JSON(status, gin.H{"redirect_to": redirect.ToPath})
}

// Sitemap serves sitemap.xml for crawlers.
func (a *API) Sitemap(c *gin.Context) {
	body, err := a.sitemap.Sitemap()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to build sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots serves robots.txt.
func (a *API) Robots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", a.sitemap.Robots())
}
