package db

import "gorm.io/gorm"

// FounderInfo is one entry of a startup's founders_data JSON column.
type FounderInfo struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	LinkedIn string `json:"linkedin,omitempty"`
	Image    string `json:"image,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// Startup is a directory listing for one company.
type Startup struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Slug         string `gorm:"uniqueIndex;not null"`
	LogoURL      string
	Tagline      string
	Description  string `gorm:"type:text"`
	WebsiteURL   string
	FoundedYear  *int
	CityID       *uint
	City         *City
	CategoryID   *uint
	Category     *Category
	FundingStage string
	// BusinessModel is one of b2b, b2c, b2b2c, d2c, saas, marketplace,
	// subscription, freemium, platform, other.
	BusinessModel string
	TeamSize      string
	IndustryTags  []string      `gorm:"serializer:json"`
	FoundersData  []FounderInfo `gorm:"serializer:json"`
	IsFeatured    bool
	// Status lifecycle: draft, pending, published, blocked.
	Status string `gorm:"default:draft"`

	MetaTitle         string
	MetaDescription   string `gorm:"type:text"`
	MetaKeywords      string `gorm:"type:text"`
	OGImageURL        string
	ImageAlt          string
	CanonicalOverride string
	NoIndex           bool
}

// Founder is a standalone founder profile linked to a startup. Newer data
// lives in Startup.FoundersData, this table backs older records.
type Founder struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Designation string
	Bio         string `gorm:"type:text"`
	LinkedIn    string
	PhotoURL    string
	StartupID   *uint
	SortOrder   int `gorm:"default:0"`
}
