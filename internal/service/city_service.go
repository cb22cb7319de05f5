package service

import (
	"errors"
	"strings"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCityNotFound     = errors.New("city not found")
	ErrCityNameRequired = errors.New("city name is required")
)

const cityPathPrefix = "cities"

// CityService wraps startup-hub city persistence.
type CityService struct {
	db        *gorm.DB
	redirects *RedirectService
}

// NewCityService creates a CityService instance.
func NewCityService(gdb *gorm.DB, redirects *RedirectService) *CityService {
	return &CityService{db: gdb, redirects: redirects}
}

// CityCreateInput represents fields accepted when creating a city.
type CityCreateInput struct {
	Name         string
	Slug         string
	Tier         string
	StartupCount int
	UnicornCount int
	Description  string
	IsFeatured   bool
	Status       string

	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	ImageURL        string
	OGImageURL      string
}

// CityUpdateInput enumerates the updatable fields.
type CityUpdateInput struct {
	Name         *string
	Slug         *string
	Tier         *string
	StartupCount *int
	UnicornCount *int
	Description  *string
	IsFeatured   *bool
	Status       *string

	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
	ImageURL        *string
	OGImageURL      *string
}

// List returns cities, optionally only published ones, ordered by name.
func (s *CityService) List(publishedOnly bool) ([]db.City, error) {
	query := s.db.Order("name asc")
	if publishedOnly {
		query = query.Where("status = ?", "published")
	}
	var cities []db.City
	if err := query.Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// GetBySlug fetches a city by slug.
func (s *CityService) GetBySlug(slug string) (*db.City, error) {
	var city db.City
	if err := s.db.Where("slug = ?", slug).First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &city, nil
}

// EnsureByName finds a city by case-insensitive name, creating a published
// one when absent. Story authoring uses this for free-text city fields.
func (s *CityService) EnsureByName(name string) (*db.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCityNameRequired
	}
	var city db.City
	err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&city).Error
	if err == nil {
		return &city, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.Create(CityCreateInput{Name: name})
}

// Create persists a city with a collision-free slug.
func (s *CityService) Create(input CityCreateInput) (*db.City, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCityNameRequired
	}

	base := Slugify(input.Slug)
	if base == "" {
		base = Slugify(name)
	}
	if base == "" {
		return nil, ErrCityNameRequired
	}

	tier := input.Tier
	if tier == "" {
		tier = "1"
	}
	status := input.Status
	if status == "" {
		status = "published"
	}

	city := db.City{
		Name:            name,
		Tier:            tier,
		StartupCount:    input.StartupCount,
		UnicornCount:    input.UnicornCount,
		Description:     input.Description,
		IsFeatured:      input.IsFeatured,
		Status:          status,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		MetaKeywords:    input.MetaKeywords,
		ImageURL:        input.ImageURL,
		OGImageURL:      input.OGImageURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, &db.City{}, base, 0)
		if err != nil {
			return err
		}
		city.Slug = slug
		if err := tx.Create(&city).Error; err != nil {
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
	return &city, nil
}

// Update applies field updates by id. Renaming a city regenerates its slug
// from the new name unless an explicit slug is supplied in the same call;
// either way a slug change lands a redirect in the ledger atomically with
// the city write.
func (s *CityService) Update(id uint, input CityUpdateInput) (*db.City, error) {
	var city db.City
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&city, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCityNotFound
			}
			return err
		}
		oldSlug := city.Slug

		renamed := false
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return ErrCityNameRequired
			}
			renamed = name != city.Name
			city.Name = name
		}
		if input.Tier != nil {
			city.Tier = *input.Tier
		}
		if input.StartupCount != nil {
			city.StartupCount = *input.StartupCount
		}
		if input.UnicornCount != nil {
			city.UnicornCount = *input.UnicornCount
		}
		if input.Description != nil {
			city.Description = *input.Description
		}
		if input.IsFeatured != nil {
			city.IsFeatured = *input.IsFeatured
		}
		if input.Status != nil {
			city.Status = *input.Status
		}
		if input.MetaTitle != nil {
			city.MetaTitle = *input.MetaTitle
		}
		if input.MetaDescription != nil {
			city.MetaDescription = *input.MetaDescription
		}
		if input.MetaKeywords != nil {
			city.MetaKeywords = *input.MetaKeywords
		}
		if input.ImageURL != nil {
			city.ImageURL = *input.ImageURL
		}
		if input.OGImageURL != nil {
			city.OGImageURL = *input.OGImageURL
		}

		switch {
		case input.Slug != nil:
			base := Slugify(*input.Slug)
			if base != "" && base != city.Slug {
				slug, err := uniqueSlug(tx, &db.City{}, base, city.ID)
				if err != nil {
					return err
				}
				city.Slug = slug
			}
		case renamed:
			base := Slugify(city.Name)
			if base != "" && base != city.Slug {
				slug, err := uniqueSlug(tx, &db.City{}, base, city.ID)
				if err != nil {
					return err
				}
				city.Slug = slug
			}
		}

		if err := tx.Save(&city).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlugConflict
			}
			return err
		}

		return s.redirects.Register(tx, oldSlug, city.Slug, cityPathPrefix)
	})
	if err != nil {
		return nil, err
	}
	return &city, nil
}

// Delete removes a city.
func (s *CityService) Delete(id uint) error {
	result := s.db.Delete(&db.City{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCityNotFound
	}
	return nil
}
