package service

import (
	"errors"
	"strings"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrStartupNotFound     = errors.New("startup not found")
	ErrStartupNameRequired = errors.New("startup name is required")
	// ErrSlugConflict reports a slug race lost at the storage layer: the
	// unique index rejected a slug the in-transaction check saw as free.
	ErrSlugConflict = errors.New("slug already in use")
)

const startupPathPrefix = "startups"

// StartupService wraps startup directory persistence and the slug/redirect
// bookkeeping tied to it.
type StartupService struct {
	db        *gorm.DB
	redirects *RedirectService
}

// NewStartupService creates a StartupService instance.
func NewStartupService(gdb *gorm.DB, redirects *RedirectService) *StartupService {
	return &StartupService{db: gdb, redirects: redirects}
}

// StartupFilter describes filters for listing startups.
type StartupFilter struct {
	Search     string
	Status     string
	CategoryID uint
	CityID     uint
	Featured   *bool
	Page       int
	PerPage    int
}

// StartupListResult aggregates paginated list data.
type StartupListResult struct {
	Startups   []db.Startup
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// StartupCreateInput represents fields accepted when creating a startup.
type StartupCreateInput struct {
	Name          string
	Slug          string
	Tagline       string
	Description   string
	WebsiteURL    string
	FoundedYear   *int
	CategoryID    *uint
	CityID        *uint
	FundingStage  string
	BusinessModel string
	TeamSize      string
	IndustryTags  []string
	FoundersData  []db.FounderInfo
	IsFeatured    bool
	Status        string

	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	ImageAlt        string
	LogoURL         string
	OGImageURL      string
}

// StartupUpdateInput enumerates the updatable fields. Nil pointers leave
// the stored value untouched.
type StartupUpdateInput struct {
	Name        *string
	Slug        *string
	Tagline     *string
	Description *string
	WebsiteURL  *string
	// FoundedYear 0 clears the stored year; CategoryID/CityID 0 detach
	// the relation.
	FoundedYear   *int
	CategoryID    *uint
	CityID        *uint
	FundingStage  *string
	BusinessModel *string
	TeamSize      *string
	IndustryTags  *[]string
	FoundersData  *[]db.FounderInfo
	IsFeatured    *bool
	Status        *string

	MetaTitle         *string
	MetaDescription   *string
	MetaKeywords      *string
	ImageAlt          *string
	CanonicalOverride *string
	NoIndex           *bool
	LogoURL           *string
	OGImageURL        *string
}

// List returns startups matching the filter, newest first.
func (s *StartupService) List(filter StartupFilter) (StartupListResult, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	query := s.db.Model(&db.Startup{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR tagline LIKE ? OR description LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.CityID > 0 {
		query = query.Where("city_id = ?", filter.CityID)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return StartupListResult{}, err
	}

	var startups []db.Startup
	if err := query.Preload("City").Preload("Category").
		Order("created_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&startups).Error; err != nil {
		return StartupListResult{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return StartupListResult{
		Startups:   startups,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// GetBySlug fetches a startup by slug with relations preloaded.
func (s *StartupService) GetBySlug(slug string) (*db.Startup, error) {
	var startup db.Startup
	if err := s.db.Preload("City").Preload("Category").
		Where("slug = ?", slug).First(&startup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return &startup, nil
}

// Get fetches a startup by id.
func (s *StartupService) Get(id uint) (*db.Startup, error) {
	var startup db.Startup
	if err := s.db.Preload("City").Preload("Category").First(&startup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return &startup, nil
}

// Create persists a startup with a collision-free slug. An explicit slug is
// honored as the base candidate, otherwise the name is slugified.
func (s *StartupService) Create(input StartupCreateInput) (*db.Startup, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrStartupNameRequired
	}

	base := Slugify(input.Slug)
	if base == "" {
		base = Slugify(name)
	}
	if base == "" {
		return nil, ErrStartupNameRequired
	}

	status := input.Status
	if status == "" {
		status = "published"
	}

	startup := db.Startup{
		Name:            name,
		Tagline:         input.Tagline,
		Description:     input.Description,
		WebsiteURL:      input.WebsiteURL,
		FoundedYear:     input.FoundedYear,
		CategoryID:      input.CategoryID,
		CityID:          input.CityID,
		FundingStage:    input.FundingStage,
		BusinessModel:   input.BusinessModel,
		TeamSize:        input.TeamSize,
		IndustryTags:    input.IndustryTags,
		FoundersData:    input.FoundersData,
		IsFeatured:      input.IsFeatured,
		Status:          status,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		MetaKeywords:    input.MetaKeywords,
		ImageAlt:        input.ImageAlt,
		LogoURL:         input.LogoURL,
		OGImageURL:      input.OGImageURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, &db.Startup{}, base, 0)
		if err != nil {
			return err
		}
		startup.Slug = slug
		if err := tx.Create(&startup).Error; err != nil {
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
	return &startup, nil
}

// Update applies field updates. A changed slug is re-uniquified with the
// startup's own row excluded and the old path gets a permanent redirect;
// the entity write and the redirect insert commit together or not at all.
func (s *StartupService) Update(id uint, input StartupUpdateInput) (*db.Startup, error) {
	var startup db.Startup
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&startup, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStartupNotFound
			}
			return err
		}
		oldSlug := startup.Slug

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return ErrStartupNameRequired
			}
			startup.Name = name
		}
		if input.Tagline != nil {
			startup.Tagline = *input.Tagline
		}
		if input.Description != nil {
			startup.Description = *input.Description
		}
		if input.WebsiteURL != nil {
			startup.WebsiteURL = *input.WebsiteURL
		}
		if input.FoundedYear != nil {
			if *input.FoundedYear == 0 {
				startup.FoundedYear = nil
			} else {
				year := *input.FoundedYear
				startup.FoundedYear = &year
			}
		}
		if input.CategoryID != nil {
			if *input.CategoryID == 0 {
				startup.CategoryID = nil
			} else {
				id := *input.CategoryID
				startup.CategoryID = &id
			}
		}
		if input.CityID != nil {
			if *input.CityID == 0 {
				startup.CityID = nil
			} else {
				id := *input.CityID
				startup.CityID = &id
			}
		}
		if input.FundingStage != nil {
			startup.FundingStage = *input.FundingStage
		}
		if input.BusinessModel != nil {
			startup.BusinessModel = *input.BusinessModel
		}
		if input.TeamSize != nil {
			startup.TeamSize = *input.TeamSize
		}
		if input.IndustryTags != nil {
			startup.IndustryTags = *input.IndustryTags
		}
		if input.FoundersData != nil {
			startup.FoundersData = *input.FoundersData
		}
		if input.IsFeatured != nil {
			startup.IsFeatured = *input.IsFeatured
		}
		if input.Status != nil {
			startup.Status = *input.Status
		}
		if input.MetaTitle != nil {
			startup.MetaTitle = *input.MetaTitle
		}
		if input.MetaDescription != nil {
			startup.MetaDescription = *input.MetaDescription
		}
		if input.MetaKeywords != nil {
			startup.MetaKeywords = *input.MetaKeywords
		}
		if input.ImageAlt != nil {
			startup.ImageAlt = *input.ImageAlt
		}
		if input.CanonicalOverride != nil {
			startup.CanonicalOverride = *input.CanonicalOverride
		}
		if input.NoIndex != nil {
			startup.NoIndex = *input.NoIndex
		}
		if input.LogoURL != nil {
			startup.LogoURL = *input.LogoURL
		}
		if input.OGImageURL != nil {
			startup.OGImageURL = *input.OGImageURL
		}

		if input.Slug != nil {
			base := Slugify(*input.Slug)
			if base != "" && base != startup.Slug {
				slug, err := uniqueSlug(tx, &db.Startup{}, base, startup.ID)
				if err != nil {
					return err
				}
				startup.Slug = slug
			}
		}

		if err := tx.Save(&startup).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlugConflict
			}
			return err
		}

		return s.redirects.Register(tx, oldSlug, startup.Slug, startupPathPrefix)
	})
	if err != nil {
		return nil, err
	}
	return &startup, nil
}

// Delete removes a startup. Redirects pointing at its paths stay in the
// ledger untouched.
func (s *StartupService) Delete(id uint) error {
	result := s.db.Delete(&db.Startup{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStartupNotFound
	}
	return nil
}
