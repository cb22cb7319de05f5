package db

import "gorm.io/gorm"

// LayoutSetting is one key of the global theme dictionary, e.g.
// primary_color or font_family. Value may be a string, hex color or JSON.
type LayoutSetting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;not null"`
	Value string `gorm:"type:text"`
	// SettingType is one of color, text, boolean, json.
	SettingType string `gorm:"default:text"`
	Description string
}

// SEOSetting is a global SEO default such as default_meta_title.
type SEOSetting struct {
	gorm.Model
	Key         string `gorm:"uniqueIndex;not null"`
	Value       string `gorm:"type:text"`
	Description string
}

// FooterSetting is one footer column, Shopify-style.
type FooterSetting struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Content     string `gorm:"type:text"`
	ColumnOrder int    `gorm:"default:0"`
	IsActive    bool   `gorm:"default:true"`
}
