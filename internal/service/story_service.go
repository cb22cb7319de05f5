package service

import (
	"errors"
	"strings"
	"time"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrStoryNotFound      = errors.New("story not found")
	ErrStoryTitleRequired = errors.New("story title is required")
)

const storyPathPrefix = "stories"

// StoryService wraps editorial story persistence.
type StoryService struct {
	db        *gorm.DB
	redirects *RedirectService
}

// NewStoryService creates a StoryService instance.
func NewStoryService(gdb *gorm.DB, redirects *RedirectService) *StoryService {
	return &StoryService{db: gdb, redirects: redirects}
}

// StoryFilter describes filters for listing stories.
type StoryFilter struct {
	Search       string
	Status       string
	CategorySlug string
	CitySlug     string
	Featured     *bool
	Page         int
	PerPage      int
}

// StoryListResult aggregates paginated list data.
type StoryListResult struct {
	Stories    []db.Story
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// StoryCreateInput represents fields accepted when creating a story.
type StoryCreateInput struct {
	Title              string
	Slug               string
	Excerpt            string
	Content            string
	CategoryID         *uint
	CityID             *uint
	RelatedStartupSlug string
	Author             string
	ReadTime           *int
	Sections           []db.StorySection
	IsFeatured         bool
	Stage              string
	Status             string

	MetaTitle           string
	MetaDescription     string
	MetaKeywords        string
	ImageAlt            string
	ShowTableOfContents *bool
	ThumbnailURL        string
	OGImageURL          string
}

// StoryUpdateInput enumerates the updatable fields. Nil pointers leave the
// stored value untouched.
type StoryUpdateInput struct {
	Title              *string
	Slug               *string
	Excerpt            *string
	Content            *string
	CategoryID         *uint
	CityID             *uint
	RelatedStartupSlug *string
	Author             *string
	ReadTime           *int
	Sections           *[]db.StorySection
	IsFeatured         *bool
	Stage              *string
	Status             *string

	MetaTitle           *string
	MetaDescription     *string
	MetaKeywords        *string
	ImageAlt            *string
	ShowTableOfContents *bool
	CanonicalOverride   *string
	NoIndex             *bool
	ThumbnailURL        *string
	OGImageURL          *string
}

// List returns stories matching the filter, newest first.
func (s *StoryService) List(filter StoryFilter) (StoryListResult, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	query := s.db.Model(&db.Story{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR excerpt LIKE ? OR content LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategorySlug != "" {
		query = query.Where("category_id IN (?)",
			s.db.Model(&db.Category{}).Select("id").Where("slug = ?", filter.CategorySlug))
	}
	if filter.CitySlug != "" {
		query = query.Where("city_id IN (?)",
			s.db.Model(&db.City{}).Select("id").Where("slug = ?", filter.CitySlug))
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return StoryListResult{}, err
	}

	var stories []db.Story
	if err := query.Preload("Category").Preload("City").Preload("RelatedStartup").
		Order("created_at desc").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&stories).Error; err != nil {
		return StoryListResult{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return StoryListResult{
		Stories:    stories,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// Trending returns published stories ordered by trending score.
func (s *StoryService) Trending(limit int) ([]db.Story, error) {
	if limit < 1 {
		limit = 6
	}
	var stories []db.Story
	if err := s.db.Preload("Category").Preload("City").
		Where("status = ?", "published").
		Order("trending_score desc, view_count desc").
		Limit(limit).Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

// PublishedSince returns up to limit published stories newer than cutoff,
// most recent first. The newsletter digest is built from this.
func (s *StoryService) PublishedSince(cutoff time.Time, limit int) ([]db.Story, error) {
	var stories []db.Story
	if err := s.db.Where("status = ? AND published_at >= ?", "published", cutoff).
		Order("published_at desc").Limit(limit).Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

// GetBySlug fetches a story by slug and counts the visit.
func (s *StoryService) GetBySlug(slug string) (*db.Story, error) {
	var story db.Story
	if err := s.db.Preload("Category").Preload("City").Preload("RelatedStartup").
		Where("slug = ?", slug).First(&story).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	s.db.Model(&story).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	story.ViewCount++
	return &story, nil
}

// Get fetches a story by id.
func (s *StoryService) Get(id uint) (*db.Story, error) {
	var story db.Story
	if err := s.db.Preload("Category").Preload("City").Preload("RelatedStartup").
		First(&story, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return &story, nil
}

// Create persists a story with a collision-free slug. Publishing at create
// time stamps published_at.
func (s *StoryService) Create(input StoryCreateInput) (*db.Story, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrStoryTitleRequired
	}

	base := Slugify(input.Slug)
	if base == "" {
		base = Slugify(title)
	}
	if base == "" {
		return nil, ErrStoryTitleRequired
	}

	status := input.Status
	if status == "" {
		status = "draft"
	}

	showTOC := true
	if input.ShowTableOfContents != nil {
		showTOC = *input.ShowTableOfContents
	}

	story := db.Story{
		Title:               title,
		Excerpt:             input.Excerpt,
		Content:             input.Content,
		CategoryID:          input.CategoryID,
		CityID:              input.CityID,
		Author:              strings.TrimSpace(input.Author),
		ReadTime:            input.ReadTime,
		Sections:            input.Sections,
		IsFeatured:          input.IsFeatured,
		Stage:               input.Stage,
		Status:              status,
		MetaTitle:           input.MetaTitle,
		MetaDescription:     input.MetaDescription,
		MetaKeywords:        input.MetaKeywords,
		ImageAlt:            input.ImageAlt,
		ShowTableOfContents: showTOC,
		ThumbnailURL:        input.ThumbnailURL,
		OGImageURL:          input.OGImageURL,
	}
	if status == "published" {
		now := time.Now()
		story.PublishedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if slug := strings.TrimSpace(input.RelatedStartupSlug); slug != "" {
			var startup db.Startup
			if err := tx.Where("slug = ?", slug).First(&startup).Error; err == nil {
				story.RelatedStartupID = &startup.ID
				if story.Author == "" {
					story.Author = startup.Name
				}
				// Fall back to the startup's artwork when the story
				// carries none.
				if story.ThumbnailURL == "" {
					story.ThumbnailURL = startup.LogoURL
				}
				if story.OGImageURL == "" {
					story.OGImageURL = startup.OGImageURL
				}
			}
		}
		if story.Author == "" {
			story.Author = "Editorial Team"
		}

		slug, err := uniqueSlug(tx, &db.Story{}, base, 0)
		if err != nil {
			return err
		}
		story.Slug = slug
		if err := tx.Create(&story).Error; err != nil {
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
	return &story, nil
}

// Update applies field updates. A changed slug is re-uniquified and the old
// path registered in the redirect ledger, inside the same transaction as
// the story write. A first transition to published stamps published_at.
func (s *StoryService) Update(id uint, input StoryUpdateInput) (*db.Story, error) {
	var story db.Story
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&story, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoryNotFound
			}
			return err
		}
		oldSlug := story.Slug

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return ErrStoryTitleRequired
			}
			story.Title = title
		}
		if input.Excerpt != nil {
			story.Excerpt = *input.Excerpt
		}
		if input.Content != nil {
			story.Content = *input.Content
		}
		if input.CategoryID != nil {
			if *input.CategoryID == 0 {
				story.CategoryID = nil
			} else {
				cid := *input.CategoryID
				story.CategoryID = &cid
			}
		}
		if input.CityID != nil {
			if *input.CityID == 0 {
				story.CityID = nil
			} else {
				cid := *input.CityID
				story.CityID = &cid
			}
		}
		if input.RelatedStartupSlug != nil {
			slug := strings.TrimSpace(*input.RelatedStartupSlug)
			if slug == "" {
				story.RelatedStartupID = nil
			} else {
				var startup db.Startup
				if err := tx.Where("slug = ?", slug).First(&startup).Error; err == nil {
					story.RelatedStartupID = &startup.ID
				}
			}
		}
		if input.Author != nil {
			author := strings.TrimSpace(*input.Author)
			if author == "" {
				author = "Editorial Team"
			}
			story.Author = author
		}
		if input.ReadTime != nil {
			if *input.ReadTime == 0 {
				story.ReadTime = nil
			} else {
				rt := *input.ReadTime
				story.ReadTime = &rt
			}
		}
		if input.Sections != nil {
			story.Sections = *input.Sections
		}
		if input.IsFeatured != nil {
			story.IsFeatured = *input.IsFeatured
		}
		if input.Stage != nil {
			story.Stage = *input.Stage
		}
		if input.Status != nil {
			story.Status = *input.Status
			if story.Status == "published" && story.PublishedAt == nil {
				now := time.Now()
				story.PublishedAt = &now
			}
		}
		if input.MetaTitle != nil {
			story.MetaTitle = *input.MetaTitle
		}
		if input.MetaDescription != nil {
			story.MetaDescription = *input.MetaDescription
		}
		if input.MetaKeywords != nil {
			story.MetaKeywords = *input.MetaKeywords
		}
		if input.ImageAlt != nil {
			story.ImageAlt = *input.ImageAlt
		}
		if input.ShowTableOfContents != nil {
			story.ShowTableOfContents = *input.ShowTableOfContents
		}
		if input.CanonicalOverride != nil {
			story.CanonicalOverride = *input.CanonicalOverride
		}
		if input.NoIndex != nil {
			story.NoIndex = *input.NoIndex
		}
		if input.ThumbnailURL != nil {
			story.ThumbnailURL = *input.ThumbnailURL
		}
		if input.OGImageURL != nil {
			story.OGImageURL = *input.OGImageURL
		}

		if input.Slug != nil {
			base := Slugify(*input.Slug)
			if base != "" && base != story.Slug {
				slug, err := uniqueSlug(tx, &db.Story{}, base, story.ID)
				if err != nil {
					return err
				}
				story.Slug = slug
			}
		}

		if err := tx.Save(&story).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlugConflict
			}
			return err
		}

		return s.redirects.Register(tx, oldSlug, story.Slug, storyPathPrefix)
	})
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// Delete removes a story, leaving any redirects it earned in place.
func (s *StoryService) Delete(id uint) error {
	result := s.db.Delete(&db.Story{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStoryNotFound
	}
	return nil
}
