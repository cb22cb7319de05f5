package service

import (
	"errors"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

// ThemeService composes the site theme: global layout settings overlaid
// with per-page overrides.
type ThemeService struct {
	db *gorm.DB
}

// NewThemeService creates a ThemeService instance.
func NewThemeService(gdb *gorm.DB) *ThemeService {
	return &ThemeService{db: gdb}
}

// GlobalTheme returns the layout settings as a theme dictionary, keys like
// primary_color and font_family.
func (s *ThemeService) GlobalTheme() (map[string]interface{}, error) {
	var settings []db.LayoutSetting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	theme := make(map[string]interface{}, len(settings))
	for _, setting := range settings {
		theme[setting.Key] = setting.Value
	}
	return theme, nil
}

// MergeTheme overlays overrides onto base, skipping nil and empty-string
// values so a blank override never erases a global setting.
func MergeTheme(base, overrides map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok && str == "" {
			continue
		}
		merged[k] = v
	}
	return merged
}

// ForPageKey returns the merged theme for a built-in page. An unknown key
// yields the global theme unchanged.
func (s *ThemeService) ForPageKey(pageKey string) (map[string]interface{}, error) {
	global, err := s.GlobalTheme()
	if err != nil {
		return nil, err
	}

	var override db.PageThemeOverride
	err = s.db.Where("page_key = ?", pageKey).First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MergeTheme(global, nil), nil
		}
		return nil, err
	}
	return MergeTheme(global, override.ThemeOverrides), nil
}

// ForPageSlug returns the merged theme for a published custom page. A
// missing or unpublished page yields the global theme unchanged.
func (s *ThemeService) ForPageSlug(slug string) (map[string]interface{}, error) {
	global, err := s.GlobalTheme()
	if err != nil {
		return nil, err
	}

	var page db.Page
	err = s.db.Where("slug = ? AND status = ?", slug, "published").First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MergeTheme(global, nil), nil
		}
		return nil, err
	}
	return MergeTheme(global, page.ThemeOverrides), nil
}

// SetPageKeyOverride upserts the theme override row for a built-in page.
func (s *ThemeService) SetPageKeyOverride(pageKey string, overrides map[string]interface{}) (*db.PageThemeOverride, error) {
	var override db.PageThemeOverride
	err := s.db.Where("page_key = ?", pageKey).First(&override).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		override = db.PageThemeOverride{PageKey: pageKey, ThemeOverrides: overrides}
		if err := s.db.Create(&override).Error; err != nil {
			return nil, err
		}
		return &override, nil
	}

	override.ThemeOverrides = overrides
	if err := s.db.Save(&override).Error; err != nil {
		return nil, err
	}
	return &override, nil
}
