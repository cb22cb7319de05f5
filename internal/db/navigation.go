package db

import "gorm.io/gorm"

// NavigationItem is a menu entry. Position picks the menu it belongs to:
// header, footer, footer_company, footer_links, sidebar, dashboard_sidebar.
type NavigationItem struct {
	gorm.Model
	Label     string `gorm:"not null"`
	URL       string
	ParentID  *uint
	Icon      string
	SortOrder int    `gorm:"column:sort_order;default:0"`
	Position  string `gorm:"index;not null"`
	IsActive  bool   `gorm:"default:true"`
	// Settings holds styling such as color, weight, is_mega_menu.
	Settings map[string]interface{} `gorm:"serializer:json"`
}
