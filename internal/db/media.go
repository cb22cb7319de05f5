package db

import "gorm.io/gorm"

// MediaItem is an admin-managed asset in the media library.
type MediaItem struct {
	gorm.Model
	Title        string `gorm:"not null"`
	FileURL      string `gorm:"not null"`
	ThumbnailURL string
	FileType     string
	AltText      string
}
