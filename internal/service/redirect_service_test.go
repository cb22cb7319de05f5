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

func setupRedirectTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:redirect-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Redirect{}, &db.Startup{}, &db.City{}, &db.Category{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestRedirectRegisterAndResolve(t *testing.T) {
	gdb := setupRedirectTestDB(t)
	svc := NewRedirectService(gdb)

	if err := svc.Register(gdb, "old-name", "new-name", "stories"); err != nil {
		t.Fatalf("register: %v", err)
	}

	record, err := svc.Resolve("/stories/old-name/")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if record.ToPath != "/stories/new-name/" {
		t.Fatalf("expected /stories/new-name/, got %q", record.ToPath)
	}
	if !record.IsPermanent {
		t.Fatal("expected a permanent redirect")
	}
}

func TestRedirectResolveNormalizesPath(t *testing.T) {
	gdb := setupRedirectTestDB(t)
	svc := NewRedirectService(gdb)

	if err := svc.Register(gdb, "old-name", "new-name", "stories"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Missing trailing slash and missing leading slash both resolve.
	for _, path := range []string{"/stories/old-name", "stories/old-name/", "stories/old-name"} {
		if _, err := svc.Resolve(path); err != nil {
			t.Fatalf("resolve %q: %v", path, err)
		}
	}
}

func TestRedirectMissReturnsNotFound(t *testing.T) {
	gdb := setupRedirectTestDB(t)
	svc := NewRedirectService(gdb)

	_, err := svc.Resolve("/stories/never-existed/")
	if !errors.Is(err, ErrRedirectNotFound) {
		t.Fatalf("expected ErrRedirectNotFound, got %v", err)
	}
}

func TestRedirectFirstWriteWins(t *testing.T) {
	gdb := setupRedirectTestDB(t)
	svc := NewRedirectService(gdb)

	if err := svc.Register(gdb, "alpha", "beta", "startups"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// A later slug change tries to claim the same from_path.
	if err := svc.Register(gdb, "alpha", "gamma", "startups"); err != nil {
		t.Fatalf("second register: %v", err)
	}

	record, err := svc.Resolve("/startups/alpha/")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if record.ToPath != "/startups/beta/" {
		t.Fatalf("expected first write to win, got %q", record.ToPath)
	}
}

func TestRedirectNoOpOnEqualOrEmptySlugs(t *testing.T) {
	gdb := setupRedirectTestDB(t)
	svc := NewRedirectService(gdb)

	if err := svc.Register(gdb, "same", "same", "cities"); err != nil {
		t.Fatalf("equal slugs: %v", err)
	}
	if err := svc.Register(gdb, "", "new", "cities"); err != nil {
		t.Fatalf("empty old slug: %v", err)
	}
	if err := svc.Register(gdb, "old", "", "cities"); err != nil {
		t.Fatalf("empty new slug: %v", err)
	}

	var count int64
	gdb.Model(&db.Redirect{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected empty ledger, got %d records", count)
	}
}

func TestRedirectResolutionIsSingleHop(t *testing.T) {
	gdb := setupRedirectTestDB(t)
	svc := NewRedirectService(gdb)

	if err := svc.Register(gdb, "a", "b", "categories"); err != nil {
		t.Fatalf("register a->b: %v", err)
	}
	if err := svc.Register(gdb, "b", "c", "categories"); err != nil {
		t.Fatalf("register b->c: %v", err)
	}

	record, err := svc.Resolve("/categories/a/")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// One hop only: /categories/a/ answers with b, never chases to c.
	if record.ToPath != "/categories/b/" {
		t.Fatalf("expected single hop to /categories/b/, got %q", record.ToPath)
	}
}

// Renaming to a slug that is already taken must keep suffixing past every
// occupied candidate, including the row's own current slug.
func TestRedirectSlugCollisionOnExplicitRename(t *testing.T) {
	gdb := setupRedirectTestDB(t)
	redirects := NewRedirectService(gdb)
	startups := NewStartupService(gdb, redirects)

	first, err := startups.Create(StartupCreateInput{Name: "Zomato"})
	if err != nil {
		t.Fatalf("create first startup: %v", err)
	}
	if first.Slug != "zomato" {
		t.Fatalf("expected slug zomato, got %q", first.Slug)
	}

	second, err := startups.Create(StartupCreateInput{Name: "Zomato"})
	if err != nil {
		t.Fatalf("create second startup: %v", err)
	}
	if second.Slug != "zomato-1" {
		t.Fatalf("expected slug zomato-1, got %q", second.Slug)
	}

	// Explicitly asking the second startup for "zomato" cannot be honored:
	// zomato and zomato-1 are both taken, so it lands on zomato-2.
	wanted := "zomato"
	updated, err := startups.Update(second.ID, StartupUpdateInput{Slug: &wanted})
	if err != nil {
		t.Fatalf("rename second startup: %v", err)
	}
	if updated.Slug != "zomato-2" {
		t.Fatalf("expected slug zomato-2, got %q", updated.Slug)
	}

	record, err := redirects.Resolve("/startups/zomato-1/")
	if err != nil {
		t.Fatalf("resolve old address: %v", err)
	}
	if record.ToPath != "/startups/zomato-2/" {
		t.Fatalf("expected /startups/zomato-2/, got %q", record.ToPath)
	}
}

func TestRedirectLedgerSurvivesEntityDelete(t *testing.T) {
	gdb := setupRedirectTestDB(t)
	redirects := NewRedirectService(gdb)
	startups := NewStartupService(gdb, redirects)

	startup, err := startups.Create(StartupCreateInput{Name: "Byju's"})
	if err != nil {
		t.Fatalf("create startup: %v", err)
	}
	newSlug := "think-and-learn"
	if _, err := startups.Update(startup.ID, StartupUpdateInput{Slug: &newSlug}); err != nil {
		t.Fatalf("change slug: %v", err)
	}
	if err := startups.Delete(startup.ID); err != nil {
		t.Fatalf("delete startup: %v", err)
	}

	if _, err := redirects.Resolve("/startups/byju-s/"); err != nil {
		t.Fatalf("expected ledger entry to outlive the entity: %v", err)
	}
}
