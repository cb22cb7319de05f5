package db

import "gorm.io/gorm"

// StartupSubmission is a founder-submitted listing awaiting moderation.
type StartupSubmission struct {
	gorm.Model
	StartupName   string `gorm:"not null"`
	FounderName   string
	Email         string `gorm:"not null"`
	Website       string
	Description   string `gorm:"type:text"`
	FullStory     string `gorm:"type:text"`
	City          string
	Category      string
	FundingStage  string
	BusinessModel string
	LogoURL       string
	ThumbnailURL  string
	// Status is one of pending, approved, rejected.
	Status string `gorm:"default:pending"`
}
