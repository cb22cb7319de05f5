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

type submissionFixture struct {
	submissions *SubmissionService
	startups    *StartupService
	cities      *CityService
	categories  *CategoryService
	db          *gorm.DB
}

func setupSubmissionFixture(t *testing.T) submissionFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:submission-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(
		&db.StartupSubmission{}, &db.Startup{},
		&db.City{}, &db.Category{}, &db.Redirect{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	redirects := NewRedirectService(gdb)
	startups := NewStartupService(gdb, redirects)
	return submissionFixture{
		submissions: NewSubmissionService(gdb, startups),
		startups:    startups,
		cities:      NewCityService(gdb, redirects),
		categories:  NewCategoryService(gdb, redirects),
		db:          gdb,
	}
}

func TestSubmissionCreateQueuesPending(t *testing.T) {
	f := setupSubmissionFixture(t)

	submission, err := f.submissions.Create(SubmissionInput{
		StartupName: "ChaiPoint",
		FounderName: "Amuleek Singh",
		Email:       "hello@chaipoint.in",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if submission.Status != "pending" {
		t.Fatalf("expected pending, got %q", submission.Status)
	}

	if _, err := f.submissions.Create(SubmissionInput{Email: "nobody@x.in"}); !errors.Is(err, ErrSubmissionInvalid) {
		t.Fatalf("expected ErrSubmissionInvalid without a name, got %v", err)
	}
	if _, err := f.submissions.Create(SubmissionInput{StartupName: "NoMail"}); !errors.Is(err, ErrSubmissionInvalid) {
		t.Fatalf("expected ErrSubmissionInvalid without an email, got %v", err)
	}
}

func TestSubmissionListFiltersByStatus(t *testing.T) {
	f := setupSubmissionFixture(t)

	first, err := f.submissions.Create(SubmissionInput{StartupName: "One", Email: "a@x.in"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.submissions.Create(SubmissionInput{StartupName: "Two", Email: "b@x.in"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.submissions.SetStatus(first.ID, "rejected"); err != nil {
		t.Fatalf("set status: %v", err)
	}

	pending, err := f.submissions.List("pending")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 1 || pending[0].StartupName != "Two" {
		t.Fatalf("unexpected pending queue %+v", pending)
	}
	all, err := f.submissions.List("")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(all))
	}
}

func TestSubmissionApproveCreatesDraftStartup(t *testing.T) {
	f := setupSubmissionFixture(t)

	submission, err := f.submissions.Create(SubmissionInput{
		StartupName: "Rapido",
		FounderName: "Aravind Sanka",
		Email:       "team@rapido.bike",
		Description: "Bike taxis for Indian cities",
		FullStory:   "Started in Bengaluru with two bikes.",
		City:        "Bengaluru",
		Category:    "Mobility",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	startup, err := f.submissions.Approve(submission.ID, f.cities, f.categories)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if startup.Status != "draft" {
		t.Fatalf("approved startups land as drafts, got %q", startup.Status)
	}
	if startup.Slug != "rapido" {
		t.Fatalf("expected slug rapido, got %q", startup.Slug)
	}
	if len(startup.FoundersData) != 1 || startup.FoundersData[0].Name != "Aravind Sanka" {
		t.Fatalf("founder not carried over: %+v", startup.FoundersData)
	}

	city, err := f.cities.EnsureByName("Bengaluru")
	if err != nil {
		t.Fatalf("ensure city: %v", err)
	}
	if startup.CityID == nil || *startup.CityID != city.ID {
		t.Fatal("startup not linked to the resolved city")
	}
	var cityCount int64
	if err := f.db.Model(&db.City{}).Count(&cityCount).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if cityCount != 1 {
		t.Fatalf("approve must reuse the created city, got %d rows", cityCount)
	}

	reloaded, err := f.submissions.Get(submission.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != "approved" {
		t.Fatalf("expected approved, got %q", reloaded.Status)
	}
}

func TestSubmissionDeleteUnknownID(t *testing.T) {
	f := setupSubmissionFixture(t)

	if err := f.submissions.Delete(99); !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}
