package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/startupsaga/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStartupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:startup-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Startup{}, &db.City{}, &db.Category{}, &db.Redirect{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func newStartupService(t *testing.T) (*StartupService, *gorm.DB) {
	t.Helper()
	gdb := setupStartupTestDB(t)
	return NewStartupService(gdb, NewRedirectService(gdb)), gdb
}

func TestStartupCreateDefaultsToPublished(t *testing.T) {
	svc, _ := newStartupService(t)

	startup, err := svc.Create(StartupCreateInput{Name: "Razorpay"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if startup.Status != "published" {
		t.Fatalf("expected status published, got %q", startup.Status)
	}
	if startup.Slug != "razorpay" {
		t.Fatalf("expected slug razorpay, got %q", startup.Slug)
	}
}

func TestStartupCreateRequiresName(t *testing.T) {
	svc, _ := newStartupService(t)

	if _, err := svc.Create(StartupCreateInput{Name: "   "}); !errors.Is(err, ErrStartupNameRequired) {
		t.Fatalf("expected ErrStartupNameRequired, got %v", err)
	}
}

func TestStartupCreateHonorsExplicitSlugAndStatus(t *testing.T) {
	svc, _ := newStartupService(t)

	startup, err := svc.Create(StartupCreateInput{
		Name:   "PhonePe",
		Slug:   "PhonePe UPI!",
		Status: "draft",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if startup.Slug != "phonepe-upi" {
		t.Fatalf("expected slug phonepe-upi, got %q", startup.Slug)
	}
	if startup.Status != "draft" {
		t.Fatalf("expected status draft, got %q", startup.Status)
	}
}

func TestStartupUpdatePartialFields(t *testing.T) {
	svc, _ := newStartupService(t)

	startup, err := svc.Create(StartupCreateInput{
		Name:    "Meesho",
		Tagline: "Social commerce",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tagline := "Online shopping for everyone"
	year := 2015
	updated, err := svc.Update(startup.ID, StartupUpdateInput{
		Tagline:     &tagline,
		FoundedYear: &year,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Tagline != tagline {
		t.Fatalf("expected updated tagline, got %q", updated.Tagline)
	}
	if updated.FoundedYear == nil || *updated.FoundedYear != 2015 {
		t.Fatalf("expected founded year 2015, got %v", updated.FoundedYear)
	}
	// Untouched fields survive.
	if updated.Name != "Meesho" || updated.Slug != "meesho" {
		t.Fatalf("unrelated fields changed: %q %q", updated.Name, updated.Slug)
	}
}

func TestStartupUpdateClearsRelationsOnZero(t *testing.T) {
	svc, gdb := newStartupService(t)

	city := db.City{Name: "Bengaluru", Slug: "bengaluru"}
	if err := gdb.Create(&city).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}

	startup, err := svc.Create(StartupCreateInput{Name: "Swiggy", CityID: &city.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var zero uint
	updated, err := svc.Update(startup.ID, StartupUpdateInput{CityID: &zero})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CityID != nil {
		t.Fatalf("expected city detached, got %v", *updated.CityID)
	}
}

func TestStartupUpdateUnknownID(t *testing.T) {
	svc, _ := newStartupService(t)

	name := "Ghost"
	if _, err := svc.Update(999, StartupUpdateInput{Name: &name}); !errors.Is(err, ErrStartupNotFound) {
		t.Fatalf("expected ErrStartupNotFound, got %v", err)
	}
}

func TestStartupDelete(t *testing.T) {
	svc, _ := newStartupService(t)

	startup, err := svc.Create(StartupCreateInput{Name: "Dunzo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(startup.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(startup.ID); !errors.Is(err, ErrStartupNotFound) {
		t.Fatalf("expected ErrStartupNotFound on second delete, got %v", err)
	}
}

func TestStartupListFilters(t *testing.T) {
	svc, _ := newStartupService(t)

	if _, err := svc.Create(StartupCreateInput{Name: "CRED", Status: "published"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(StartupCreateInput{Name: "Slice", Status: "draft"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	published, err := svc.List(StartupFilter{Status: "published"})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if published.Total != 1 || published.Startups[0].Name != "CRED" {
		t.Fatalf("expected only CRED, got total %d", published.Total)
	}

	search, err := svc.List(StartupFilter{Search: "slice"})
	if err != nil {
		t.Fatalf("list search: %v", err)
	}
	if search.Total != 1 || search.Startups[0].Name != "Slice" {
		t.Fatalf("expected search hit for Slice, got total %d", search.Total)
	}
}
