package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

// SitemapService renders sitemap.xml and robots.txt for the public site.
type SitemapService struct {
	db      *gorm.DB
	baseURL string
}

// NewSitemapService creates a SitemapService instance.
func NewSitemapService(gdb *gorm.DB, baseURL string) *SitemapService {
	return &SitemapService{db: gdb, baseURL: strings.TrimRight(baseURL, "/")}
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// slugRow is the projection used when walking published content tables.
type slugRow struct {
	Slug      string
	UpdatedAt time.Time
}

// Sitemap builds the sitemap.xml document covering the home page and every
// published startup, story, city, category and page.
func (s *SitemapService) Sitemap() ([]byte, error) {
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: s.baseURL + "/"}},
	}

	sections := []struct {
		model  interface{}
		prefix string
	}{
		{&db.Startup{}, startupPathPrefix},
		{&db.Story{}, storyPathPrefix},
		{&db.City{}, cityPathPrefix},
		{&db.Category{}, categoryPathPrefix},
		{&db.Page{}, pagePathPrefix},
	}
	for _, section := range sections {
		var rows []slugRow
		err := s.db.Model(section.model).
			Where("status = ?", "published").
			Order("updated_at desc").
			Select("slug", "updated_at").
			Find(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:     s.baseURL + entityPath(section.prefix, row.Slug),
				LastMod: row.UpdatedAt.UTC().Format("2006-01-02"),
			})
		}
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// Robots renders robots.txt pointing crawlers at the sitemap and keeping
// them out of the admin surface.
func (s *SitemapService) Robots() []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Allow: /\n\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", s.baseURL)
	return []byte(b.String())
}
