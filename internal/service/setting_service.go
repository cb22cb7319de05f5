package service

import (
	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingService wraps the key-value layout, SEO and footer settings.
type SettingService struct {
	db *gorm.DB
}

// NewSettingService creates a SettingService instance.
func NewSettingService(gdb *gorm.DB) *SettingService {
	return &SettingService{db: gdb}
}

// LayoutSettingInput is one key to upsert.
type LayoutSettingInput struct {
	Key         string
	Value       string
	SettingType string
	Description string
}

// SEOSettingInput is one key to upsert.
type SEOSettingInput struct {
	Key         string
	Value       string
	Description string
}

// LayoutSettings returns every layout setting row.
func (s *SettingService) LayoutSettings() ([]db.LayoutSetting, error) {
	var settings []db.LayoutSetting
	if err := s.db.Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpsertLayoutSettings writes the given keys, inserting or updating each.
func (s *SettingService) UpsertLayoutSettings(inputs []LayoutSettingInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, input := range inputs {
			if input.Key == "" {
				continue
			}
			settingType := input.SettingType
			if settingType == "" {
				settingType = "text"
			}
			setting := db.LayoutSetting{
				Key:         input.Key,
				Value:       input.Value,
				SettingType: settingType,
				Description: input.Description,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "setting_type", "description"}),
			}).Create(&setting).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SEOSettings returns every global SEO default row.
func (s *SettingService) SEOSettings() ([]db.SEOSetting, error) {
	var settings []db.SEOSetting
	if err := s.db.Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpsertSEOSettings writes the given keys, inserting or updating each.
func (s *SettingService) UpsertSEOSettings(inputs []SEOSettingInput) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, input := range inputs {
			if input.Key == "" {
				continue
			}
			setting := db.SEOSetting{
				Key:         input.Key,
				Value:       input.Value,
				Description: input.Description,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "description"}),
			}).Create(&setting).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FooterSettings returns active footer columns in display order.
func (s *SettingService) FooterSettings() ([]db.FooterSetting, error) {
	var settings []db.FooterSetting
	if err := s.db.Where("is_active = ?", true).
		Order("column_order asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
