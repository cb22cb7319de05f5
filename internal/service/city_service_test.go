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

func setupCityTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:city-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.City{}, &db.Redirect{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func newCityService(t *testing.T) (*CityService, *gorm.DB) {
	t.Helper()
	gdb := setupCityTestDB(t)
	return NewCityService(gdb, NewRedirectService(gdb)), gdb
}

func TestCityCreateDefaults(t *testing.T) {
	svc, _ := newCityService(t)

	city, err := svc.Create(CityCreateInput{Name: "Bengaluru"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if city.Slug != "bengaluru" {
		t.Fatalf("expected slug bengaluru, got %q", city.Slug)
	}
	if city.Status != "published" {
		t.Fatalf("expected published, got %q", city.Status)
	}
	if city.Tier != "1" {
		t.Fatalf("expected tier 1, got %q", city.Tier)
	}
}

func TestCityRenameRegeneratesSlugAndRedirects(t *testing.T) {
	svc, gdb := newCityService(t)

	city, err := svc.Create(CityCreateInput{Name: "Gurgaon"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Gurugram"
	updated, err := svc.Update(city.ID, CityUpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.Slug != "gurugram" {
		t.Fatalf("expected slug gurugram, got %q", updated.Slug)
	}

	var record db.Redirect
	if err := gdb.Where("from_path = ?", "/cities/gurgaon/").First(&record).Error; err != nil {
		t.Fatalf("expected redirect: %v", err)
	}
	if record.ToPath != "/cities/gurugram/" {
		t.Fatalf("expected /cities/gurugram/, got %q", record.ToPath)
	}
}

func TestCityExplicitSlugWinsOverRename(t *testing.T) {
	svc, _ := newCityService(t)

	city, err := svc.Create(CityCreateInput{Name: "Bombay"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Mumbai"
	slug := "mumbai-maharashtra"
	updated, err := svc.Update(city.ID, CityUpdateInput{Name: &name, Slug: &slug})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "mumbai-maharashtra" {
		t.Fatalf("expected explicit slug to win, got %q", updated.Slug)
	}
}

func TestCityEnsureByNameIsCaseInsensitive(t *testing.T) {
	svc, gdb := newCityService(t)

	first, err := svc.EnsureByName("Pune")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	second, err := svc.EnsureByName("pune")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same row, got %d and %d", first.ID, second.ID)
	}

	var count int64
	gdb.Model(&db.City{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one city, got %d", count)
	}
}

func TestCityListPublishedOnly(t *testing.T) {
	svc, _ := newCityService(t)

	if _, err := svc.Create(CityCreateInput{Name: "Chennai"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(CityCreateInput{Name: "Indore", Status: "draft"}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	published, err := svc.List(true)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 1 || published[0].Name != "Chennai" {
		t.Fatalf("expected only Chennai, got %d rows", len(published))
	}

	all, err := svc.List(false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}
}

func TestCityDeleteUnknown(t *testing.T) {
	svc, _ := newCityService(t)
	if err := svc.Delete(42); !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
}
