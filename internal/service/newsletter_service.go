package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("newsletter subscription not found")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidToken         = errors.New("invalid unsubscribe token")
	ErrTemplateNotFound     = errors.New("newsletter template not found")
)

// NewsletterService manages subscriber records and the templates used to
// render the weekly digest.
type NewsletterService struct {
	db *gorm.DB
}

// NewNewsletterService creates a NewsletterService instance.
func NewNewsletterService(gdb *gorm.DB) *NewsletterService {
	return &NewsletterService{db: gdb}
}

// Subscribe registers an email address. Re-subscribing an address that
// previously unsubscribed reactivates it and keeps its token.
func (s *NewsletterService) Subscribe(email string) (*db.NewsletterSubscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	var sub db.NewsletterSubscription
	err := s.db.Where("email = ?", email).First(&sub).Error
	if err == nil {
		if !sub.IsActive {
			sub.IsActive = true
			if err := s.db.Save(&sub).Error; err != nil {
				return nil, err
			}
		}
		return &sub, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub = db.NewsletterSubscription{
		Email:    email,
		Token:    uuid.New().String(),
		IsActive: true,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe deactivates a subscription. The token must match the one
// issued at subscribe time.
func (s *NewsletterService) Unsubscribe(email, token string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var sub db.NewsletterSubscription
	if err := s.db.Where("email = ?", email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	if token == "" || sub.Token != token {
		return ErrInvalidToken
	}
	if !sub.IsActive {
		return nil
	}
	return s.db.Model(&sub).Update("is_active", false).Error
}

// ActiveSubscribers returns every subscription that should receive mail.
func (s *NewsletterService) ActiveSubscribers() ([]db.NewsletterSubscription, error) {
	var subs []db.NewsletterSubscription
	if err := s.db.Where("is_active = ?", true).Order("created_at asc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// List returns all subscriptions, newest first.
func (s *NewsletterService) List() ([]db.NewsletterSubscription, error) {
	var subs []db.NewsletterSubscription
	if err := s.db.Order("created_at desc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// MarkSent stamps LastSentAt on the given subscription ids.
func (s *NewsletterService) MarkSent(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.Model(&db.NewsletterSubscription{}).
		Where("id IN ?", ids).
		Update("last_sent_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// Templates returns every digest template.
func (s *NewsletterService) Templates() ([]db.NewsletterTemplate, error) {
	var templates []db.NewsletterTemplate
	if err := s.db.Order("id asc").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// ActiveTemplate returns the template used for the next send. When none is
// marked active a default-valued template is returned.
func (s *NewsletterService) ActiveTemplate() (*db.NewsletterTemplate, error) {
	var tpl db.NewsletterTemplate
	err := s.db.Where("is_active = ?", true).Order("updated_at desc").First(&tpl).Error
	if err == nil {
		return &tpl, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &db.NewsletterTemplate{
		Name:          "Default",
		SubjectFormat: "StartupSaga Weekly: {first_story_title}",
		HeaderTitle:   "StartupSaga",
		AccentColor:   "#ea580c",
	}, nil
}

// TemplateInput carries admin-supplied digest template fields.
type TemplateInput struct {
	Name           string
	SubjectFormat  string
	LogoURL        string
	FontFamily     string
	HeaderTitle    string
	HeaderSubtitle string
	BodyIntro      string
	FooterText     string
	AccentColor    string
	IsActive       bool
}

// CreateTemplate stores a new digest template. Marking it active deactivates
// every other template; at most one is active at a time.
func (s *NewsletterService) CreateTemplate(input TemplateInput) (*db.NewsletterTemplate, error) {
	tpl := db.NewsletterTemplate{
		Name:           input.Name,
		SubjectFormat:  input.SubjectFormat,
		LogoURL:        input.LogoURL,
		FontFamily:     input.FontFamily,
		HeaderTitle:    input.HeaderTitle,
		HeaderSubtitle: input.HeaderSubtitle,
		BodyIntro:      input.BodyIntro,
		FooterText:     input.FooterText,
		AccentColor:    input.AccentColor,
		IsActive:       input.IsActive,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if tpl.IsActive {
			if err := tx.Model(&db.NewsletterTemplate{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&tpl).Error
	})
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// UpdateTemplate replaces a template's fields, enforcing the single-active rule.
func (s *NewsletterService) UpdateTemplate(id uint, input TemplateInput) (*db.NewsletterTemplate, error) {
	var tpl db.NewsletterTemplate
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tpl, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}
		tpl.Name = input.Name
		tpl.SubjectFormat = input.SubjectFormat
		tpl.LogoURL = input.LogoURL
		tpl.FontFamily = input.FontFamily
		tpl.HeaderTitle = input.HeaderTitle
		tpl.HeaderSubtitle = input.HeaderSubtitle
		tpl.BodyIntro = input.BodyIntro
		tpl.FooterText = input.FooterText
		tpl.AccentColor = input.AccentColor
		tpl.IsActive = input.IsActive
		if tpl.IsActive {
			if err := tx.Model(&db.NewsletterTemplate{}).Where("id <> ? AND is_active = ?", id, true).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&tpl).Error
	})
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// DeleteTemplate removes a digest template.
func (s *NewsletterService) DeleteTemplate(id uint) error {
	result := s.db.Delete(&db.NewsletterTemplate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
