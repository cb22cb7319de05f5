package service

import (
	"errors"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var ErrSectionNotFound = errors.New("section not found")

// SectionService wraps page layout section persistence.
type SectionService struct {
	db *gorm.DB
}

// NewSectionService creates a SectionService instance.
func NewSectionService(gdb *gorm.DB) *SectionService {
	return &SectionService{db: gdb}
}

// SectionInput represents fields accepted when creating a section.
type SectionInput struct {
	PageKey     string
	PageID      *uint
	SectionType string
	Title       string
	Subtitle    string
	Description string
	Content     string
	ImageURL    string
	IconURL     string
	LinkText    string
	LinkURL     string
	SortOrder   int
	IsActive    *bool
	Settings    map[string]interface{}
}

// SectionUpdateInput enumerates the updatable fields.
type SectionUpdateInput struct {
	PageKey     *string
	SectionType *string
	Title       *string
	Subtitle    *string
	Description *string
	Content     *string
	ImageURL    *string
	IconURL     *string
	LinkText    *string
	LinkURL     *string
	SortOrder   *int
	IsActive    *bool
	Settings    *map[string]interface{}
}

// ListForPageKey returns active sections of a built-in page in order.
func (s *SectionService) ListForPageKey(pageKey string) ([]db.PageSection, error) {
	var sections []db.PageSection
	if err := s.db.Where("page = ? AND is_active = ?", pageKey, true).
		Order("sort_order asc").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// ListForPageSlug returns active custom sections of the page with the given
// slug, in order. The page is fetched by slug without a status filter;
// published-only access is enforced by the page detail path, and filtering
// here would silently hide sections of valid published pages.
func (s *SectionService) ListForPageSlug(slug string) ([]db.PageSection, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []db.PageSection{}, nil
		}
		return nil, err
	}

	var sections []db.PageSection
	if err := s.db.Where("page_id = ? AND page = ? AND is_active = ?", page.ID, "custom", true).
		Order("sort_order asc").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// ListForPage returns every section attached to a page row, for the editor.
func (s *SectionService) ListForPage(pageID uint) ([]db.PageSection, error) {
	var sections []db.PageSection
	if err := s.db.Where("page_id = ?", pageID).
		Order("sort_order asc").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// Create inserts a new section.
func (s *SectionService) Create(input SectionInput) (*db.PageSection, error) {
	pageKey := input.PageKey
	if pageKey == "" {
		pageKey = "homepage"
	}
	sectionType := input.SectionType
	if sectionType == "" {
		sectionType = "banner"
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	section := db.PageSection{
		PageKey:     pageKey,
		PageID:      input.PageID,
		SectionType: sectionType,
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		Description: input.Description,
		Content:     input.Content,
		ImageURL:    input.ImageURL,
		IconURL:     input.IconURL,
		LinkText:    input.LinkText,
		LinkURL:     input.LinkURL,
		SortOrder:   input.SortOrder,
		IsActive:    active,
		Settings:    input.Settings,
	}
	if input.PageID != nil {
		section.PageKey = "custom"
	}

	if err := s.db.Create(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// Update modifies an existing section.
func (s *SectionService) Update(id uint, input SectionUpdateInput) (*db.PageSection, error) {
	var section db.PageSection
	if err := s.db.First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	if input.PageKey != nil {
		section.PageKey = *input.PageKey
	}
	if input.SectionType != nil {
		section.SectionType = *input.SectionType
	}
	if input.Title != nil {
		section.Title = *input.Title
	}
	if input.Subtitle != nil {
		section.Subtitle = *input.Subtitle
	}
	if input.Description != nil {
		section.Description = *input.Description
	}
	if input.Content != nil {
		section.Content = *input.Content
	}
	if input.ImageURL != nil {
		section.ImageURL = *input.ImageURL
	}
	if input.IconURL != nil {
		section.IconURL = *input.IconURL
	}
	if input.LinkText != nil {
		section.LinkText = *input.LinkText
	}
	if input.LinkURL != nil {
		section.LinkURL = *input.LinkURL
	}
	if input.SortOrder != nil {
		section.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}
	if input.Settings != nil {
		section.Settings = *input.Settings
	}

	if err := s.db.Save(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// Delete removes a section.
func (s *SectionService) Delete(id uint) error {
	result := s.db.Delete(&db.PageSection{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}
