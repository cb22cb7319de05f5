package service

import (
	"errors"
	"strings"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound      = errors.New("page not found")
	ErrPageTitleRequired = errors.New("page title is required")
)

const pagePathPrefix = "pages"

// systemPages are always present so their sections and theme can be edited.
var systemPages = []struct {
	Slug  string
	Title string
}{
	{Slug: "home", Title: "Homepage"},
	{Slug: "stories", Title: "Stories Listing"},
	{Slug: "startups", Title: "Startups Listing"},
}

// PageService wraps static CMS page persistence.
type PageService struct {
	db        *gorm.DB
	redirects *RedirectService
}

// NewPageService creates a PageService instance.
func NewPageService(gdb *gorm.DB, redirects *RedirectService) *PageService {
	return &PageService{db: gdb, redirects: redirects}
}

// PageCreateInput represents fields accepted when creating a page.
type PageCreateInput struct {
	Title           string
	Slug            string
	Content         string
	MetaTitle       string
	MetaDescription string
	Status          string
	ThemeOverrides  map[string]interface{}
}

// PageUpdateInput enumerates the updatable fields.
type PageUpdateInput struct {
	Title           *string
	Slug            *string
	Content         *string
	MetaTitle       *string
	MetaDescription *string
	Status          *string
	// ThemeOverrides replaces the stored overrides wholesale. Section rows
	// are managed through the section API, never here.
	ThemeOverrides *map[string]interface{}
}

// IsSystemPage reports whether slug names a built-in page.
func IsSystemPage(slug string) bool {
	for _, sp := range systemPages {
		if sp.Slug == slug {
			return true
		}
	}
	return false
}

// List returns all pages, seeding the built-in system pages on first use
// so the dashboard can always edit them.
func (s *PageService) List() ([]db.Page, error) {
	for _, sp := range systemPages {
		var page db.Page
		err := s.db.Where(db.Page{Slug: sp.Slug}).
			Attrs(db.Page{
				Title:   sp.Title,
				Status:  "published",
				Content: "<p>System page content managed via sections.</p>",
			}).
			FirstOrCreate(&page).Error
		if err != nil {
			return nil, err
		}
	}

	var pages []db.Page
	if err := s.db.Order("title asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// GetBySlug fetches a published page by slug for the public site.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ? AND status = ?", slug, "published").
		First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Get fetches any page by id, drafts included, for the dashboard editor.
func (s *PageService) Get(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Create persists a page with a collision-free slug.
func (s *PageService) Create(input PageCreateInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPageTitleRequired
	}

	base := Slugify(input.Slug)
	if base == "" {
		base = Slugify(title)
	}
	if base == "" {
		return nil, ErrPageTitleRequired
	}

	status := input.Status
	if status == "" {
		status = "draft"
	}

	page := db.Page{
		Title:           title,
		Content:         input.Content,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		Status:          status,
		ThemeOverrides:  input.ThemeOverrides,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, &db.Page{}, base, 0)
		if err != nil {
			return err
		}
		page.Slug = slug
		if err := tx.Create(&page).Error; err != nil {
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
	return &page, nil
}

// Update applies field updates, re-uniquifying a changed slug and recording
// the redirect in the same transaction.
func (s *PageService) Update(id uint, input PageUpdateInput) (*db.Page, error) {
	var page db.Page
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&page, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}
		oldSlug := page.Slug

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return ErrPageTitleRequired
			}
			page.Title = title
		}
		if input.Content != nil {
			page.Content = *input.Content
		}
		if input.MetaTitle != nil {
			page.MetaTitle = *input.MetaTitle
		}
		if input.MetaDescription != nil {
			page.MetaDescription = *input.MetaDescription
		}
		if input.Status != nil {
			page.Status = *input.Status
		}
		if input.ThemeOverrides != nil {
			page.ThemeOverrides = *input.ThemeOverrides
		}

		if input.Slug != nil {
			base := Slugify(*input.Slug)
			if base != "" && base != page.Slug {
				slug, err := uniqueSlug(tx, &db.Page{}, base, page.ID)
				if err != nil {
					return err
				}
				page.Slug = slug
			}
		}

		if err := tx.Save(&page).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlugConflict
			}
			return err
		}

		return s.redirects.Register(tx, oldSlug, page.Slug, pagePathPrefix)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete removes a page and its sections.
func (s *PageService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&db.Page{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPageNotFound
		}
		return tx.Where("page_id = ?", id).Delete(&db.PageSection{}).Error
	})
}
