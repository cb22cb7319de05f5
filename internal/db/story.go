package db

import (
	"time"

	"gorm.io/gorm"
)

// StorySection is one structured block of a story's sections JSON column,
// e.g. The Problem, The Solution, Founder Journey.
type StorySection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Story is an editorial article about a startup or the ecosystem.
type Story struct {
	gorm.Model
	Title            string `gorm:"not null"`
	Slug             string `gorm:"uniqueIndex;not null"`
	Excerpt          string `gorm:"type:text"`
	Content          string `gorm:"type:text"`
	ThumbnailURL     string
	CategoryID       *uint
	Category         *Category
	CityID           *uint
	City             *City
	RelatedStartupID *uint
	RelatedStartup   *Startup
	Author           string `gorm:"default:Editorial Team"`
	// ReadTime is an estimate in minutes.
	ReadTime *int
	Sections []StorySection `gorm:"serializer:json"`

	MetaTitle            string
	MetaDescription      string `gorm:"type:text"`
	MetaKeywords         string `gorm:"type:text"`
	ImageAlt             string
	ShowTableOfContents  bool `gorm:"default:true"`
	OGImageURL           string
	CanonicalOverride    string
	NoIndex              bool

	IsFeatured    bool
	Stage         string
	ViewCount     int
	TrendingScore float64
	// Status lifecycle: draft, pending, published, archived.
	Status      string `gorm:"default:draft"`
	PublishedAt *time.Time
}
