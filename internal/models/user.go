package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"size:150;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`

	// Profile fields, editable by their owner.
	Bio               string `gorm:"type:text"`
	ProfilePictureURL string `gorm:"size:255"`
	BannerImageURL    string `gorm:"size:255"`
	ProfileTheme      string `gorm:"size:50;not null;default:'light'"`
}
