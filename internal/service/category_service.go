package service

import (
	"errors"
	"strings"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
)

const categoryPathPrefix = "categories"

// CategoryService wraps industry category persistence.
type CategoryService struct {
	db        *gorm.DB
	redirects *RedirectService
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB, redirects *RedirectService) *CategoryService {
	return &CategoryService{db: gdb, redirects: redirects}
}

// CategoryCreateInput represents fields accepted when creating a category.
type CategoryCreateInput struct {
	Name        string
	Slug        string
	Description string
	IconName    string
	IsFeatured  bool
	Status      string

	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	OGImageURL      string
}

// CategoryUpdateInput enumerates the updatable fields.
type CategoryUpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	IconName    *string
	IsFeatured  *bool
	Status      *string

	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
	OGImageURL      *string
}

// List returns categories, optionally only published ones, ordered by name.
func (s *CategoryService) List(publishedOnly bool) ([]db.Category, error) {
	query := s.db.Order("name asc")
	if publishedOnly {
		query = query.Where("status = ?", "published")
	}
	var categories []db.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug fetches a category by slug.
func (s *CategoryService) GetBySlug(slug string) (*db.Category, error) {
	var category db.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// EnsureByName finds a category by case-insensitive name, creating a
// published one when absent. Story authoring uses this for free-text
// category fields.
func (s *CategoryService) EnsureByName(name string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	var category db.Category
	err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.Create(CategoryCreateInput{Name: name})
}

// Create persists a category with a collision-free slug.
func (s *CategoryService) Create(input CategoryCreateInput) (*db.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	base := Slugify(input.Slug)
	if base == "" {
		base = Slugify(name)
	}
	if base == "" {
		return nil, ErrCategoryNameRequired
	}

	iconName := input.IconName
	if iconName == "" {
		iconName = "help-circle"
	}
	status := input.Status
	if status == "" {
		status = "published"
	}

	category := db.Category{
		Name:            name,
		Description:     input.Description,
		IconName:        iconName,
		IsFeatured:      input.IsFeatured,
		Status:          status,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		MetaKeywords:    input.MetaKeywords,
		OGImageURL:      input.OGImageURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, &db.Category{}, base, 0)
		if err != nil {
			return err
		}
		category.Slug = slug
		if err := tx.Create(&category).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlugConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update applies field updates by id. A rename regenerates the slug from
// the new name unless an explicit slug comes with it; slug changes land a
// redirect in the same transaction.
func (s *CategoryService) Update(id uint, input CategoryUpdateInput) (*db.Category, error) {
	var category db.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		oldSlug := category.Slug

		renamed := false
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return ErrCategoryNameRequired
			}
			renamed = name != category.Name
			category.Name = name
		}
		if input.Description != nil {
			category.Description = *input.Description
		}
		if input.IconName != nil {
			category.IconName = *input.IconName
		}
		if input.IsFeatured != nil {
			category.IsFeatured = *input.IsFeatured
		}
		if input.Status != nil {
			category.Status = *input.Status
		}
		if input.MetaTitle != nil {
			category.MetaTitle = *input.MetaTitle
		}
		if input.MetaDescription != nil {
			category.MetaDescription = *input.MetaDescription
		}
		if input.MetaKeywords != nil {
			category.MetaKeywords = *input.MetaKeywords
		}
		if input.OGImageURL != nil {
			category.OGImageURL = *input.OGImageURL
		}

		switch {
		case input.Slug != nil:
			base := Slugify(*input.Slug)
			if base != "" && base != category.Slug {
				slug, err := uniqueSlug(tx, &db.Category{}, base, category.ID)
				if err != nil {
					return err
				}
				category.Slug = slug
			}
		case renamed:
			base := Slugify(category.Name)
			if base != "" && base != category.Slug {
				slug, err := uniqueSlug(tx, &db.Category{}, base, category.ID)
				if err != nil {
					return err
				}
				category.Slug = slug
			}
		}

		if err := tx.Save(&category).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlugConflict
			}
			return err
		}

		return s.redirects.Register(tx, oldSlug, category.Slug, categoryPathPrefix)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(id uint) error {
	result := s.db.Delete(&db.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
