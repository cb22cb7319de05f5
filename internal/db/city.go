package db

import "gorm.io/gorm"

// City is a startup hub. Tier follows the Indian city tier convention.
type City struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Slug         string `gorm:"uniqueIndex;not null"`
	Tier         string `gorm:"default:1"`
	StartupCount int
	UnicornCount int
	Description  string `gorm:"type:text"`
	ImageURL     string
	IsFeatured   bool
	Status       string `gorm:"default:published"`

	MetaTitle       string
	MetaDescription string `gorm:"type:text"`
	MetaKeywords    string `gorm:"type:text"`
	OGImageURL      string
}
