package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/service"
)

// SubscribeNewsletter handles the public signup form.
func (a *API) SubscribeNewsletter(c *gin.Context) {
	var payload struct {
		Email string `json:"email"`
	}
	if !bindJSON(c, &payload, "invalid subscription payload") {
		return
	}

	sub, err := a.newsletter.Subscribe(payload.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(c, http.StatusBadRequest, "a valid email address is required")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to subscribe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed", "email": sub.Email})
}

// UnsubscribeNewsletter handles the one-click link in digest footers.
// Email and token arrive as query parameters.
func (a *API) UnsubscribeNewsletter(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	token := strings.TrimSpace(c.Query("token"))

	if err := a.newsletter.Unsubscribe(email, token); err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriptionNotFound):
			respondError(c, http.StatusNotFound, "subscription not found")
		case errors.Is(err, service.ErrInvalidToken):
			respondError(c, http.StatusForbidden, "invalid unsubscribe token")
		default:
			respondError(c, http.StatusInternalServerError, "failed to unsubscribe")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// AdminListSubscribers serves the full subscriber roll.
func (a *API) AdminListSubscribers(c *gin.Context) {
	subs, err := a.newsletter.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load subscribers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// ListNewsletterTemplates serves every digest template.
func (a *API) ListNewsletterTemplates(c *gin.Context) {
	templates, err := a.newsletter.Templates()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load templates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

type newsletterTemplatePayload struct {
	Name           string `json:"name"`
	SubjectFormat  string `json:"subject_format"`
	LogoURL        string `json:"logo_url"`
	FontFamily     string `json:"font_family"`
	HeaderTitle    string `json:"header_title"`
	HeaderSubtitle string `json:"header_subtitle"`
	BodyIntro      string `json:"body_intro"`
	FooterText     string `json:"footer_text"`
	AccentColor    string `json:"accent_color"`
	IsActive       bool   `json:"is_active"`
}

func (p newsletterTemplatePayload) toInput() service.TemplateInput {
	return service.TemplateInput{
		Name:           p.Name,
		SubjectFormat:  p.SubjectFormat,
		LogoURL:        p.LogoURL,
		FontFamily:     p.FontFamily,
		HeaderTitle:    p.HeaderTitle,
		HeaderSubtitle: p.HeaderSubtitle,
		BodyIntro:      p.BodyIntro,
		FooterText:     p.FooterText,
		AccentColor:    p.AccentColor,
		IsActive:       p.IsActive,
	}
}

// CreateNewsletterTemplate stores a digest template.
func (a *API) CreateNewsletterTemplate(c *gin.Context) {
	var payload newsletterTemplatePayload
	if !bindJSON(c, &payload, "invalid template payload") {
		return
	}
	template, err := a.newsletter.CreateTemplate(payload.toInput())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create template")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// UpdateNewsletterTemplate replaces a digest template's fields.
func (a *API) UpdateNewsletterTemplate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload newsletterTemplatePayload
	if !bindJSON(c, &payload, "invalid template payload") {
		return
	}
	template, err := a.newsletter.UpdateTemplate(id, payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			respondError(c, http.StatusNotFound, "template not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeleteNewsletterTemplate removes a digest template.
func (a *API) DeleteNewsletterTemplate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.newsletter.DeleteTemplate(id); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			respondError(c, http.StatusNotFound, "template not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}

// PreviewNewsletter renders the current digest without sending anything.
func (a *API) PreviewNewsletter(c *gin.Context) {
	digest, err := a.mailer.BuildDigest()
	if err != nil {
		if errors.Is(err, service.ErrNoRecentStories) {
			respondError(c, http.StatusNotFound, "no stories published this week")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to build digest")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subject":   digest.Subject,
		"html_body": digest.HTMLBody,
		"text_body": digest.TextBody,
	})
}

// SendNewsletter delivers the weekly digest to all active subscribers.
func (a *API) SendNewsletter(c *gin.Context) {
	dryRun := false
	if v := parseBoolQuery(c, "dry_run"); v != nil {
		dryRun = *v
	}

	sent, err := a.mailer.SendWeekly(dryRun)
	if err != nil {
		if errors.Is(err, service.ErrNoRecentStories) {
			respondError(c, http.StatusNotFound, "no stories published this week")
			return
		}
		respondError(c, http.StatusInternalServerError, "newsletter delivery failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "dry_run": dryRun})
}
