package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/startupsaga/internal/config"
	"github.com/startupsaga/internal/db"
	"github.com/startupsaga/internal/service"
)

// Sends the weekly digest to all active subscribers. Meant to run from cron
// once a week; --dry-run reports the recipient count without sending.
func main() {
	dryRun := flag.Bool("dry-run", false, "build the digest and count recipients without sending")
	flag.Parse()

	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	redirects := service.NewRedirectService(db.DB)
	stories := service.NewStoryService(db.DB, redirects)
	newsletter := service.NewNewsletterService(db.DB)
	mailer := service.NewMailer(&cfg, stories, newsletter)

	sent, err := mailer.SendWeekly(*dryRun)
	if err != nil {
		log.Fatalf("newsletter send failed: %v", err)
	}

	if *dryRun {
		fmt.Printf("dry run: digest would reach %d subscribers\n", sent)
		return
	}
	fmt.Printf("digest sent to %d subscribers\n", sent)
}
