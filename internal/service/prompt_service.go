package service

import (
	"errors"
	"strings"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPromptNotFound     = errors.New("prompt not found")
	ErrPromptNameRequired = errors.New("prompt name is required")
	ErrPromptTextRequired = errors.New("prompt text is required")
)

// defaultPrompts is the single source of truth for the system templates.
var defaultPrompts = []db.AIPrompt{
	{
		Name:       "Story Content Generator",
		Category:   "story_write",
		PromptText: "Write an inspiring 800-word startup success story for: {title}. Include sections: The Problem, The Solution, Founder Journey, and Revenue Model. Use professional editorial tone.",
		IsActive:   true,
	},
	{
		Name:       "Story SEO Generator",
		Category:   "seo_gen",
		PromptText: "Generate a compiled SEO meta title and meta description for a startup story titled \"{title}\".\nContent Snippet: {content}\n\nReturn strictly a JSON object with keys: \"meta_title\" and \"meta_description\".",
		IsActive:   true,
	},
	{
		Name:       "Story Alt Text Generator",
		Category:   "desc_gen",
		PromptText: "Write a concise, descriptive alt text (max 15 words) for a cover image of a startup story titled \"{title}\". Focus on the subject matter or business context. Do not include \"image of\".",
		IsActive:   true,
	},
	{
		Name:       "Slug Generator",
		Category:   "general",
		PromptText: "Generate a short, SEO-friendly URL slug (lowercase, hyphens only, max 5 words) for this title: \"{title}\". Return ONLY the slug, nothing else.",
		IsActive:   true,
	},
	{
		Name:       "City SEO Generator",
		Category:   "seo_gen",
		PromptText: "Generate SEO metadata for a startup hub page for the city: {title}.\nDescription: {description}.\n\nReturn strictly a JSON object with keys: meta_title, meta_description, keywords.",
		IsActive:   true,
	},
	{
		Name:       "City Description",
		Category:   "desc_gen",
		PromptText: "Rewrite and enhance this city description for a startup ecosystem portal: {name}.\nCurrent description: {description}\n\nMake it professional, engaging, and highlight why it's a great place for startups. Use about 150-200 words.",
		IsActive:   true,
	},
	{
		Name:       "City Alt Text",
		Category:   "desc_gen",
		PromptText: "Write a professional alt text for a cover image representing the startup ecosystem of {name}. Focus on the city skyline or innovation vibe. Max 15 words.",
		IsActive:   true,
	},
	{
		Name:       "Global SEO Generator",
		Category:   "seo_gen",
		PromptText: "Act as an SEO Expert. Analyze the following content for a {type} named \"{title}\".\nDescription: {description}\nContent Snippet: {content}\n\nGenerate SEO Metadata in valid JSON format with these exact keys: meta_title, meta_description, keywords, image_alt, og_title, og_description.\n\nThe meta_description MUST BE EXACTLY 160 characters OR LESS. Do not include markdown formatting.",
		IsActive:   true,
	},
}

// PromptService wraps AI prompt template persistence.
type PromptService struct {
	db *gorm.DB
}

// NewPromptService creates a PromptService instance.
func NewPromptService(gdb *gorm.DB) *PromptService {
	return &PromptService{db: gdb}
}

// PromptInput represents fields accepted when creating a prompt.
type PromptInput struct {
	Name       string
	PromptText string
	Category   string
	IsActive   *bool
}

// PromptUpdateInput enumerates the updatable fields.
type PromptUpdateInput struct {
	Name       *string
	PromptText *string
	Category   *string
	IsActive   *bool
}

// List returns all prompts, inactive ones included, newest first.
func (s *PromptService) List() ([]db.AIPrompt, error) {
	var prompts []db.AIPrompt
	if err := s.db.Order("created_at desc").Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

// Defaults returns the built-in system prompt templates.
func (s *PromptService) Defaults() []db.AIPrompt {
	return defaultPrompts
}

// Get fetches a prompt by id.
func (s *PromptService) Get(id uint) (*db.AIPrompt, error) {
	var prompt db.AIPrompt
	if err := s.db.First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &prompt, nil
}

// ActiveByName fetches the active prompt with the given name.
func (s *PromptService) ActiveByName(name string) (*db.AIPrompt, error) {
	var prompt db.AIPrompt
	if err := s.db.Where("name = ? AND is_active = ?", name, true).
		First(&prompt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &prompt, nil
}

// Create inserts a new prompt template.
func (s *PromptService) Create(input PromptInput) (*db.AIPrompt, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPromptNameRequired
	}
	if strings.TrimSpace(input.PromptText) == "" {
		return nil, ErrPromptTextRequired
	}
	category := input.Category
	if category == "" {
		category = "general"
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	prompt := db.AIPrompt{
		Name:       name,
		PromptText: input.PromptText,
		Category:   category,
		IsActive:   active,
	}
	if err := s.db.Create(&prompt).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

// Update modifies an existing prompt template.
func (s *PromptService) Update(id uint, input PromptUpdateInput) (*db.AIPrompt, error) {
	var prompt db.AIPrompt
	if err := s.db.First(&prompt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrPromptNameRequired
		}
		prompt.Name = name
	}
	if input.PromptText != nil {
		if strings.TrimSpace(*input.PromptText) == "" {
			return nil, ErrPromptTextRequired
		}
		prompt.PromptText = *input.PromptText
	}
	if input.Category != nil {
		prompt.Category = *input.Category
	}
	if input.IsActive != nil {
		prompt.IsActive = *input.IsActive
	}

	if err := s.db.Save(&prompt).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

// Delete removes a prompt template.
func (s *PromptService) Delete(id uint) error {
	result := s.db.Delete(&db.AIPrompt{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromptNotFound
	}
	return nil
}

// ApplyDefaults inserts any missing system prompts without overwriting
// edited ones.
func (s *PromptService) ApplyDefaults() (int, error) {
	created := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, def := range defaultPrompts {
			var existing db.AIPrompt
			err := tx.Where("name = ?", def.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			prompt := def
			if err := tx.Create(&prompt).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
