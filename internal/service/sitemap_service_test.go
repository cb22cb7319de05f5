package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/startupsaga/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSitemapTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:sitemap-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(
		&db.Startup{}, &db.Story{}, &db.City{}, &db.Category{},
		&db.Page{}, &db.Redirect{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestSitemapListsPublishedContentOnly(t *testing.T) {
	gdb := setupSitemapTestDB(t)
	redirects := NewRedirectService(gdb)
	startups := NewStartupService(gdb, redirects)
	stories := NewStoryService(gdb, redirects)

	if _, err := startups.Create(StartupCreateInput{Name: "Zerodha"}); err != nil {
		t.Fatalf("create startup: %v", err)
	}
	if _, err := stories.Create(StoryCreateInput{Title: "Bootstrapped to a billion", Status: "published"}); err != nil {
		t.Fatalf("create story: %v", err)
	}
	if _, err := stories.Create(StoryCreateInput{Title: "Unfinished draft"}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	svc := NewSitemapService(gdb, "https://startupsaga.in/")
	body, err := svc.Sitemap()
	if err != nil {
		t.Fatalf("sitemap: %v", err)
	}
	out := string(body)

	if !strings.HasPrefix(out, "<?xml") {
		t.Fatal("missing XML declaration")
	}
	if !strings.Contains(out, "<loc>https://startupsaga.in/</loc>") {
		t.Fatal("missing home page entry")
	}
	if !strings.Contains(out, "<loc>https://startupsaga.in/startups/zerodha/</loc>") {
		t.Fatal("missing published startup entry")
	}
	if !strings.Contains(out, "<loc>https://startupsaga.in/stories/bootstrapped-to-a-billion/</loc>") {
		t.Fatal("missing published story entry")
	}
	if strings.Contains(out, "unfinished-draft") {
		t.Fatal("draft content leaked into the sitemap")
	}
	if !strings.Contains(out, "<lastmod>"+time.Now().UTC().Format("2006-01-02")+"</lastmod>") {
		t.Fatal("missing lastmod on content entries")
	}
}

func TestRobotsBlocksAdmin(t *testing.T) {
	svc := NewSitemapService(setupSitemapTestDB(t), "https://startupsaga.in")
	out := string(svc.Robots())

	if !strings.Contains(out, "Disallow: /admin/") {
		t.Fatal("robots.txt must keep crawlers out of the admin")
	}
	if !strings.Contains(out, "Sitemap: https://startupsaga.in/sitemap.xml") {
		t.Fatal("robots.txt must point at the sitemap")
	}
}
