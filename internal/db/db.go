package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the shared database handle for the application.
var DB *gorm.DB

// Init opens the database connection and runs auto migration.
// An empty databasePath falls back to startupsaga.db.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "startupsaga.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	return AutoMigrate(DB)
}

// AutoMigrate creates or updates tables for every model the CMS owns.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&User{},
		&Category{},
		&City{},
		&Startup{},
		&Founder{},
		&Story{},
		&Page{},
		&PageSection{},
		&PageThemeOverride{},
		&NavigationItem{},
		&LayoutSetting{},
		&SEOSetting{},
		&FooterSetting{},
		&AIPrompt{},
		&MediaItem{},
		&Redirect{},
		&StartupSubmission{},
		&NewsletterSubscription{},
		&NewsletterTemplate{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
