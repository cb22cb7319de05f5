package service

import (
	"errors"
	"fmt"
	"html"
	"net/smtp"
	"strings"
	"time"

	"github.com/startupsaga/internal/config"
	"github.com/startupsaga/internal/db"
)

var ErrNoRecentStories = errors.New("no stories published in the digest window")

// digestWindow is how far back the weekly digest looks for stories.
const digestWindow = 7 * 24 * time.Hour

// digestStoryLimit caps how many stories a single digest includes.
const digestStoryLimit = 5

// Mailer assembles and sends the weekly story digest.
type Mailer struct {
	cfg        *config.AppConfig
	stories    *StoryService
	newsletter *NewsletterService
	send       func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a Mailer instance.
func NewMailer(cfg *config.AppConfig, stories *StoryService, newsletter *NewsletterService) *Mailer {
	return &Mailer{
		cfg:        cfg,
		stories:    stories,
		newsletter: newsletter,
		send:       smtp.SendMail,
	}
}

// SetSendFunc replaces the SMTP send function. Used by tests.
func (m *Mailer) SetSendFunc(fn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) {
	m.send = fn
}

// Digest is a rendered weekly newsletter ready to deliver.
type Digest struct {
	Subject  string
	HTMLBody string
	TextBody string
	Stories  []db.Story
}

// BuildDigest renders the weekly digest from stories published in the last
// window. Returns ErrNoRecentStories when nothing was published.
func (m *Mailer) BuildDigest() (*Digest, error) {
	stories, err := m.stories.PublishedSince(time.Now().Add(-digestWindow), digestStoryLimit)
	if err != nil {
		return nil, err
	}
	if len(stories) == 0 {
		return nil, ErrNoRecentStories
	}

	tpl, err := m.newsletter.ActiveTemplate()
	if err != nil {
		return nil, err
	}

	subject := strings.NewReplacer(
		"{first_story_title}", stories[0].Title,
		"{year}", fmt.Sprintf("%d", time.Now().Year()),
	).Replace(tpl.SubjectFormat)

	htmlBody, textBody := renderDigestBodies(tpl, stories, m.cfg.SiteBaseURL)

	return &Digest{
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
		Stories:  stories,
	}, nil
}

// SendWeekly builds the digest and delivers it to every active subscriber.
// With dryRun set nothing is sent and LastSentAt is untouched.
// Returns the number of recipients mailed.
func (m *Mailer) SendWeekly(dryRun bool) (int, error) {
	digest, err := m.BuildDigest()
	if err != nil {
		return 0, err
	}

	subs, err := m.newsletter.ActiveSubscribers()
	if err != nil {
		return 0, err
	}
	if len(subs) == 0 {
		return 0, nil
	}
	if dryRun {
		return len(subs), nil
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}

	sent := make([]uint, 0, len(subs))
	var firstErr error
	for _, sub := range subs {
		msg := m.buildMessage(digest, sub)
		if err := m.send(addr, auth, m.cfg.NewsletterFrom, []string{sub.Email}, msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent = append(sent, sub.ID)
	}

	if err := m.newsletter.MarkSent(sent); err != nil && firstErr == nil {
		firstErr = err
	}
	return len(sent), firstErr
}

// buildMessage assembles the RFC 5322 message with HTML and text parts.
func (m *Mailer) buildMessage(digest *Digest, sub db.NewsletterSubscription) []byte {
	unsubscribe := fmt.Sprintf("%s/api/newsletter/unsubscribe/?email=%s&token=%s",
		strings.TrimRight(m.cfg.SiteBaseURL, "/"), sub.Email, sub.Token)

	boundary := "digest-" + sub.Token
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.NewsletterFrom)
	fmt.Fprintf(&b, "To: %s\r\n", sub.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n", digest.Subject)
	fmt.Fprintf(&b, "List-Unsubscribe: <%s>\r\n", unsubscribe)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(digest.TextBody)
	fmt.Fprintf(&b, "\r\nUnsubscribe: %s\r\n", unsubscribe)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(digest.HTMLBody)
	fmt.Fprintf(&b, "<p><a href=%q>Unsubscribe</a></p>\r\n", unsubscribe)

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

func renderDigestBodies(tpl *db.NewsletterTemplate, stories []db.Story, baseURL string) (string, string) {
	baseURL = strings.TrimRight(baseURL, "/")
	accent := tpl.AccentColor
	if accent == "" {
		accent = "#ea580c"
	}
	font := tpl.FontFamily
	if font == "" {
		font = "Helvetica, Arial, sans-serif"
	}

	var h, t strings.Builder
	fmt.Fprintf(&h, "<div style=\"font-family:%s;max-width:600px;margin:0 auto\">", html.EscapeString(font))
	if tpl.LogoURL != "" {
		fmt.Fprintf(&h, "<img src=%q alt=%q style=\"max-height:48px\">", tpl.LogoURL, tpl.HeaderTitle)
	}
	fmt.Fprintf(&h, "<h1 style=\"color:%s\">%s</h1>", accent, html.EscapeString(tpl.HeaderTitle))
	if tpl.HeaderSubtitle != "" {
		fmt.Fprintf(&h, "<p>%s</p>", html.EscapeString(tpl.HeaderSubtitle))
	}

	fmt.Fprintf(&t, "%s\r\n\r\n", tpl.HeaderTitle)
	if tpl.BodyIntro != "" {
		intro, err := RenderMarkdown(tpl.BodyIntro)
		if err == nil {
			h.WriteString(intro)
		}
		fmt.Fprintf(&t, "%s\r\n\r\n", StripHTML(tpl.BodyIntro))
	}

	for _, story := range stories {
		url := fmt.Sprintf("%s/stories/%s/", baseURL, story.Slug)
		fmt.Fprintf(&h, "<h2><a href=%q style=\"color:%s\">%s</a></h2>", url, accent, html.EscapeString(story.Title))
		if story.Excerpt != "" {
			fmt.Fprintf(&h, "<p>%s</p>", html.EscapeString(story.Excerpt))
		}
		fmt.Fprintf(&t, "%s\r\n%s\r\n", story.Title, url)
		if story.Excerpt != "" {
			fmt.Fprintf(&t, "%s\r\n", story.Excerpt)
		}
		t.WriteString("\r\n")
	}

	if tpl.FooterText != "" {
		fmt.Fprintf(&h, "<p style=\"color:#6b7280;font-size:12px\">%s</p>", html.EscapeString(tpl.FooterText))
		fmt.Fprintf(&t, "%s\r\n", tpl.FooterText)
	}
	h.WriteString("</div>")
	return h.String(), t.String()
}
