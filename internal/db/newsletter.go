package db

import (
	"time"

	"gorm.io/gorm"
)

// NewsletterSubscription is one mailing-list member. Token authorizes
// unsubscribe links without a login.
type NewsletterSubscription struct {
	gorm.Model
	Email      string `gorm:"uniqueIndex;not null"`
	Token      string `gorm:"uniqueIndex;not null"`
	IsActive   bool   `gorm:"default:true"`
	LastSentAt *time.Time
}

// NewsletterTemplate configures the weekly digest. At most one row is
// active at a time.
type NewsletterTemplate struct {
	gorm.Model
	Name           string `gorm:"default:Weekly Newsletter"`
	SubjectFormat  string `gorm:"default:StartupSaga Weekly: {first_story_title}"`
	LogoURL        string
	FontFamily     string
	HeaderTitle    string `gorm:"default:StartupSaga"`
	HeaderSubtitle string
	BodyIntro      string `gorm:"default:Top Stories This Week"`
	FooterText     string `gorm:"type:text"`
	AccentColor    string `gorm:"default:#ea580c"`
	IsActive       bool   `gorm:"default:true"`
}
