package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/startupsaga/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSlugTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:slug-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Category{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple lowercase", "Zomato", "zomato"},
		{"spaces become hyphens", "Razorpay Payments", "razorpay-payments"},
		{"punctuation collapses", "D2C & SaaS -- India!", "d2c-saas-india"},
		{"leading and trailing stripped", "  --Hello World--  ", "hello-world"},
		{"unicode drops out", "Café Coffee Day", "caf-coffee-day"},
		{"symbols only", "???", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestUniqueSlugSuffixesOnCollision(t *testing.T) {
	gdb := setupSlugTestDB(t)
	for _, slug := range []string{"fintech", "fintech-1"} {
		if err := gdb.Create(&db.Category{Name: slug, Slug: slug}).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	got, err := uniqueSlug(gdb, &db.Category{}, "fintech", 0)
	if err != nil {
		t.Fatalf("uniqueSlug: %v", err)
	}
	if got != "fintech-2" {
		t.Fatalf("expected fintech-2, got %q", got)
	}
}

func TestUniqueSlugKeepsOwnSlug(t *testing.T) {
	gdb := setupSlugTestDB(t)
	category := db.Category{Name: "Fintech", Slug: "fintech"}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	got, err := uniqueSlug(gdb, &db.Category{}, "fintech", category.ID)
	if err != nil {
		t.Fatalf("uniqueSlug: %v", err)
	}
	if got != "fintech" {
		t.Fatalf("expected slug to stay fintech, got %q", got)
	}
}

func TestUniqueSlugFreeBaseReturnedAsIs(t *testing.T) {
	gdb := setupSlugTestDB(t)
	got, err := uniqueSlug(gdb, &db.Category{}, "agritech", 0)
	if err != nil {
		t.Fatalf("uniqueSlug: %v", err)
	}
	if got != "agritech" {
		t.Fatalf("expected agritech, got %q", got)
	}
}
