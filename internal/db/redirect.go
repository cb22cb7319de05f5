package db

import "gorm.io/gorm"

// Redirect is one forwarding rule recorded when a slug changes. The public
// site consults these before returning 404. Rows carry no foreign key back
// to the entity that caused them, so they outlive deletions.
type Redirect struct {
	gorm.Model
	FromPath    string `gorm:"uniqueIndex;not null"`
	ToPath      string `gorm:"not null"`
	IsPermanent bool   `gorm:"default:true"`
}
