package service

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/startupsaga/internal/config"
	"github.com/startupsaga/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMailerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:mailer-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(
		&db.Story{}, &db.Startup{}, &db.Redirect{},
		&db.NewsletterSubscription{}, &db.NewsletterTemplate{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func newTestMailer(t *testing.T) (*Mailer, *NewsletterService, *StoryService) {
	t.Helper()
	gdb := setupMailerTestDB(t)
	stories := NewStoryService(gdb, NewRedirectService(gdb))
	newsletter := NewNewsletterService(gdb)
	cfg := &config.AppConfig{
		SiteBaseURL:    "https://startupsaga.in",
		SMTPHost:       "localhost",
		SMTPPort:       "2525",
		NewsletterFrom: "digest@startupsaga.in",
	}
	return NewMailer(cfg, stories, newsletter), newsletter, stories
}

func TestBuildDigestSubstitutesSubject(t *testing.T) {
	m, _, stories := newTestMailer(t)

	if _, err := stories.Create(StoryCreateInput{
		Title:   "Razorpay crosses a billion payments",
		Excerpt: "A milestone week for fintech.",
		Status:  "published",
	}); err != nil {
		t.Fatalf("create story: %v", err)
	}

	digest, err := m.BuildDigest()
	if err != nil {
		t.Fatalf("build digest: %v", err)
	}
	want := "StartupSaga Weekly: Razorpay crosses a billion payments"
	if digest.Subject != want {
		t.Fatalf("expected subject %q, got %q", want, digest.Subject)
	}
	if !strings.Contains(digest.HTMLBody, "/stories/razorpay-crosses-a-billion-payments/") {
		t.Fatal("HTML body missing the story link")
	}
	if !strings.Contains(digest.TextBody, "A milestone week for fintech.") {
		t.Fatal("text body missing the excerpt")
	}
}

func TestBuildDigestWithoutRecentStories(t *testing.T) {
	m, _, _ := newTestMailer(t)

	if _, err := m.BuildDigest(); !errors.Is(err, ErrNoRecentStories) {
		t.Fatalf("expected ErrNoRecentStories, got %v", err)
	}
}

func TestSendWeeklyDryRunSkipsDelivery(t *testing.T) {
	m, newsletter, stories := newTestMailer(t)

	if _, err := stories.Create(StoryCreateInput{Title: "Weekly roundup", Status: "published"}); err != nil {
		t.Fatalf("create story: %v", err)
	}
	if _, err := newsletter.Subscribe("reader@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	calls := 0
	m.SetSendFunc(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		calls++
		return nil
	})

	count, err := m.SendWeekly(true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 would-be recipient, got %d", count)
	}
	if calls != 0 {
		t.Fatalf("dry run must not send, saw %d calls", calls)
	}
}

func TestSendWeeklyDeliversAndStampsSubscribers(t *testing.T) {
	m, newsletter, stories := newTestMailer(t)

	if _, err := stories.Create(StoryCreateInput{Title: "Weekly roundup", Status: "published"}); err != nil {
		t.Fatalf("create story: %v", err)
	}
	sub, err := newsletter.Subscribe("reader@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	var messages [][]byte
	var recipients []string
	m.SetSendFunc(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		recipients = append(recipients, to...)
		messages = append(messages, msg)
		return nil
	})

	count, err := m.SendWeekly(false)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 sent, got %d", count)
	}
	if len(recipients) != 1 || recipients[0] != "reader@example.com" {
		t.Fatalf("unexpected recipients %v", recipients)
	}

	body := string(messages[0])
	unsubscribe := fmt.Sprintf("https://startupsaga.in/api/newsletter/unsubscribe/?email=%s&token=%s", sub.Email, sub.Token)
	if !strings.Contains(body, unsubscribe) {
		t.Fatal("message missing the unsubscribe link")
	}
	if !strings.Contains(body, "Content-Type: multipart/alternative") {
		t.Fatal("message missing multipart header")
	}

	subs, err := newsletter.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if subs[0].LastSentAt == nil {
		t.Fatal("expected last_sent_at stamped after delivery")
	}
}

func TestSendWeeklyContinuesPastFailedRecipients(t *testing.T) {
	m, newsletter, stories := newTestMailer(t)

	if _, err := stories.Create(StoryCreateInput{Title: "Weekly roundup", Status: "published"}); err != nil {
		t.Fatalf("create story: %v", err)
	}
	if _, err := newsletter.Subscribe("bounce@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if _, err := newsletter.Subscribe("ok@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	sendErr := errors.New("mailbox unavailable")
	m.SetSendFunc(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		if to[0] == "bounce@example.com" {
			return sendErr
		}
		return nil
	})

	count, err := m.SendWeekly(false)
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected the delivery error surfaced, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected the healthy recipient still mailed, got %d", count)
	}
}
