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

func setupNavigationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:nav-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.NavigationItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestNavigationCreateDefaults(t *testing.T) {
	svc := NewNavigationService(setupNavigationTestDB(t))

	if _, err := svc.Create(NavItemInput{URL: "/stories/"}); !errors.Is(err, ErrNavItemLabelRequired) {
		t.Fatalf("expected ErrNavItemLabelRequired, got %v", err)
	}

	item, err := svc.Create(NavItemInput{Label: "Stories", URL: "/stories/"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Position != "header" {
		t.Fatalf("expected header position default, got %q", item.Position)
	}
	if !item.IsActive {
		t.Fatal("new items default to active")
	}
}

func TestNavigationListByPositionNestsChildren(t *testing.T) {
	svc := NewNavigationService(setupNavigationTestDB(t))

	parent, err := svc.Create(NavItemInput{Label: "Explore", SortOrder: 1})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if _, err := svc.Create(NavItemInput{Label: "Cities", URL: "/cities/", ParentID: &parent.ID, SortOrder: 2}); err != nil {
		t.Fatalf("create child: %v", err)
	}
	inactive := false
	if _, err := svc.Create(NavItemInput{Label: "Hidden", IsActive: &inactive, SortOrder: 3}); err != nil {
		t.Fatalf("create inactive: %v", err)
	}
	if _, err := svc.Create(NavItemInput{Label: "Company", Position: "footer"}); err != nil {
		t.Fatalf("create footer item: %v", err)
	}

	nodes, err := svc.ListByPosition("header")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 header root, got %d", len(nodes))
	}
	if nodes[0].Item.Label != "Explore" {
		t.Fatalf("unexpected root %q", nodes[0].Item.Label)
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].Label != "Cities" {
		t.Fatalf("child not nested under its parent: %+v", nodes[0].Children)
	}
}

func TestNavigationUpdateDetachesParentWithZero(t *testing.T) {
	svc := NewNavigationService(setupNavigationTestDB(t))

	parent, err := svc.Create(NavItemInput{Label: "Explore"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := svc.Create(NavItemInput{Label: "Cities", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	var zero uint
	updated, err := svc.Update(child.ID, NavItemUpdateInput{ParentID: &zero})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ParentID != nil {
		t.Fatal("expected parent detached")
	}
}

func TestNavigationDeletePromotesChildren(t *testing.T) {
	svc := NewNavigationService(setupNavigationTestDB(t))

	parent, err := svc.Create(NavItemInput{Label: "Explore"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := svc.Create(NavItemInput{Label: "Cities", ParentID: &parent.ID})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	if err := svc.Delete(parent.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	promoted, err := svc.Get(child.ID)
	if err != nil {
		t.Fatalf("get child: %v", err)
	}
	if promoted.ParentID != nil {
		t.Fatal("expected child promoted to the top level")
	}

	if err := svc.Delete(parent.ID); !errors.Is(err, ErrNavItemNotFound) {
		t.Fatalf("expected ErrNavItemNotFound on second delete, got %v", err)
	}
}
