package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	maxMetaDescriptionLen = 160
	maxSEOContentLen      = 1000
)

// SEOInput describes the content a suggestion is generated for.
type SEOInput struct {
	// Type is the content kind shown to the model: story, startup, hub, page.
	Type        string
	Title       string
	Description string
	Content     string
}

// SEOSuggestion is the structured metadata returned by the model.
type SEOSuggestion struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`
	ImageAlt        string `json:"image_alt"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
}

// SEOGenerator produces SEO metadata suggestions, injectable for tests.
type SEOGenerator interface {
	GenerateSEO(ctx context.Context, input SEOInput) (SEOSuggestion, error)
}

// ContentGenerator produces free-form editorial content.
type ContentGenerator interface {
	GenerateFromPrompt(ctx context.Context, promptText string) (string, error)
	GenerateNamed(ctx context.Context, promptName string, contextData map[string]string) (string, error)
}

// AISEOService generates SEO metadata and editorial content through the
// Gemini API, using the editable prompt templates when present.
type AISEOService struct {
	client  *geminiClient
	prompts *PromptService
}

// NewAISEOService constructs an AISEOService.
func NewAISEOService(prompts *PromptService, apiKey, model string) *AISEOService {
	return &AISEOService{
		client:  newGeminiClient(apiKey, model),
		prompts: prompts,
	}
}

// SetHTTPClient overrides the HTTP client, mainly for tests.
func (s *AISEOService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetBaseURL overrides the Gemini endpoint, mainly for tests.
func (s *AISEOService) SetBaseURL(base string) {
	s.client.SetBaseURL(base)
}

const fallbackSEOPrompt = `Act as an SEO Expert. Analyze the following content for a {type} named "{title}".
Description: {description}
Content Snippet: {content}

Generate SEO Metadata in valid JSON format with these exact keys:
- meta_title (max 60 chars)
- meta_description (MUST BE EXACTLY 160 characters OR LESS. Do not exceed this limit.)
- keywords (comma separated)
- image_alt (max 100 chars, descriptive but concise alt text for the featured image)
- og_title
- og_description

Do not include markdown formatting. Just return the raw JSON string.`

// GenerateSEO asks the model for metadata suggestions. The "Global SEO
// Generator" template is used when active, the built-in prompt otherwise.
// meta_description is clamped to 160 characters regardless of what the
// model returns.
func (s *AISEOService) GenerateSEO(ctx context.Context, input SEOInput) (SEOSuggestion, error) {
	contentType := input.Type
	if contentType == "" {
		contentType = "page"
	}

	template := fallbackSEOPrompt
	if prompt, err := s.prompts.ActiveByName("Global SEO Generator"); err == nil {
		template = prompt.PromptText
	}

	prompt := substitutePlaceholders(template, map[string]string{
		"type":        contentType,
		"title":       input.Title,
		"description": input.Description,
		"content":     truncateRunes(input.Content, maxSEOContentLen),
	})

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return SEOSuggestion{}, err
	}

	var suggestion SEOSuggestion
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &suggestion); err != nil {
		return SEOSuggestion{}, fmt.Errorf("parse seo suggestion: %w", err)
	}
	suggestion.MetaDescription = truncateRunes(suggestion.MetaDescription, maxMetaDescriptionLen)
	return suggestion, nil
}

// GenerateFromPrompt sends free prompt text straight to the model.
func (s *AISEOService) GenerateFromPrompt(ctx context.Context, promptText string) (string, error) {
	return s.client.GenerateContent(ctx, promptText)
}

// GenerateNamed renders the named prompt template with contextData and
// sends it to the model.
func (s *AISEOService) GenerateNamed(ctx context.Context, promptName string, contextData map[string]string) (string, error) {
	prompt, err := s.prompts.ActiveByName(promptName)
	if err != nil {
		if errors.Is(err, ErrPromptNotFound) {
			return "", fmt.Errorf("prompt %q not found", promptName)
		}
		return "", err
	}
	return s.client.GenerateContent(ctx, substitutePlaceholders(prompt.PromptText, contextData))
}

// substitutePlaceholders replaces {key} and {{key}} markers in a template.
func substitutePlaceholders(template string, contextData map[string]string) string {
	out := template
	for key, value := range contextData {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// extractJSONObject pulls the first JSON object out of a model reply that
// may be wrapped in markdown code fences or prose.
func extractJSONObject(text string) string {
	cleaned := strings.TrimSpace(text)
	if idx := strings.Index(cleaned, "```json"); idx >= 0 {
		cleaned = cleaned[idx+len("```json"):]
	}
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return strings.TrimSpace(cleaned)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
