package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

// CreateSubmission handles the public "submit your startup" form.
func (a *API) CreateSubmission(c *gin.Context) {
	var payload struct {
		StartupName   string `json:"startup_name"`
		FounderName   string `json:"founder_name"`
		Email         string `json:"email"`
		Website       string `json:"website"`
		Description   string `json:"description"`
		FullStory     string `json:"full_story"`
		City          string `json:"city"`
		Category      string `json:"category"`
		FundingStage  string `json:"funding_stage"`
		BusinessModel string `json:"business_model"`
		LogoURL       string `json:"logo_url"`
		ThumbnailURL  string `json:"thumbnail_url"`
	}
	if !bindJSON(c, &payload, "invalid submission payload") {
		return
	}

	submission, err := a.submissions.Create(service.SubmissionInput{
		StartupName:   payload.StartupName,
		FounderName:   payload.FounderName,
		Email:         payload.Email,
		Website:       payload.Website,
		Description:   payload.Description,
		FullStory:     payload.FullStory,
		City:          payload.City,
		Category:      payload.Category,
		FundingStage:  payload.FundingStage,
		BusinessModel: payload.BusinessModel,
		LogoURL:       a.storeInlineImage(payload.LogoURL, payload.StartupName),
		ThumbnailURL:  a.storeInlineImage(payload.ThumbnailURL, payload.StartupName),
	})
	if err != nil {
		if errors.Is(err, service.ErrSubmissionInvalid) {
			respondError(c, http.StatusBadRequest, "startup name and email are required")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to record submission")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submission": submission})
}

// AdminListSubmissions serves the review queue, optionally by status.
func (a *API) AdminListSubmissions(c *gin.Context) {
	submissions, err := a.submissions.List(strings.TrimSpace(c.Query("status")))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load submissions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// GetSubmission serves one submission for review.
func (a *API) GetSubmission(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	submission, err := a.submissions.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			respondError(c, http.StatusNotFound, "submission not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// ApproveSubmission promotes a submission to a draft startup entry.
func (a *API) ApproveSubmission(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	startup, err := a.submissions.Approve(id, a.cities, a.categories)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			respondError(c, http.StatusNotFound, "submission not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to approve submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"startup": startup})
}

// RejectSubmission marks a submission rejected.
func (a *API) RejectSubmission(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	submission, err := a.submissions.SetStatus(id, "rejected")
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			respondError(c, http.StatusNotFound, "submission not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to reject submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// DeleteSubmission removes a submission from the queue.
func (a *API) DeleteSubmission(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.submissions.Delete(id); err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			respondError(c, http.StatusNotFound, "submission not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "submission deleted"})
}
