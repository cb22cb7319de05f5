package db

import "gorm.io/gorm"

// AIPrompt is an editable prompt template for the AI endpoints.
// Placeholders like {title} are substituted at generation time.
type AIPrompt struct {
	gorm.Model
	Name       string `gorm:"uniqueIndex;not null"`
	PromptText string `gorm:"type:text;not null"`
	// Category is one of story_write, seo_gen, desc_gen, general.
	Category string `gorm:"default:general"`
	IsActive bool   `gorm:"default:true"`
}
