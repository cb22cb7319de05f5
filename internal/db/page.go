package db

import "gorm.io/gorm"

// Page is a static CMS page: About, Contact, Privacy, custom landings.
type Page struct {
	gorm.Model
	Title   string `gorm:"not null"`
	Slug    string `gorm:"uniqueIndex;not null"`
	Content string `gorm:"type:text"`

	MetaTitle         string
	MetaDescription   string `gorm:"type:text"`
	OGImageURL        string
	CanonicalOverride string
	NoIndex           bool

	Status string `gorm:"default:published"`
	// ThemeOverrides holds per-page styling: bg_color, font_family,
	// accent_color and friends.
	ThemeOverrides map[string]interface{} `gorm:"serializer:json"`
}

// PageSection is one ordered layout block of a built-in or custom page.
type PageSection struct {
	gorm.Model
	// PageKey is a built-in page identifier (homepage, stories, startups,
	// city, category, footer) or custom when PageID is set.
	PageKey     string `gorm:"column:page;index"`
	PageID      *uint
	SectionType string `gorm:"not null"`
	Title       string
	Subtitle    string
	Description string `gorm:"type:text"`
	Content     string `gorm:"type:text"`
	ImageURL    string
	IconURL     string
	LinkText    string
	LinkURL     string
	SortOrder   int  `gorm:"column:sort_order;default:0"`
	IsActive    bool `gorm:"default:true"`
	// Settings holds section styling: bg_color, font_size, border_radius.
	Settings map[string]interface{} `gorm:"serializer:json"`
}

// PageThemeOverride stores theming for built-in pages that have no Page row.
type PageThemeOverride struct {
	gorm.Model
	PageKey        string                 `gorm:"uniqueIndex;not null"`
	ThemeOverrides map[string]interface{} `gorm:"serializer:json"`
}
