package db

import "gorm.io/gorm"

// Category groups startups and stories by industry vertical.
type Category struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	IconURL     string
	// IconName is a Lucide icon name such as credit-card or shopping-cart.
	IconName   string
	IsFeatured bool
	Status     string `gorm:"default:published"`

	MetaTitle       string
	MetaDescription string `gorm:"type:text"`
	MetaKeywords    string `gorm:"type:text"`
	OGImageURL      string
}
