package models

import "gorm.io/gorm"

// Interest represents a topic users can share (e.g., "Technology", "Running").
type Interest struct {
	gorm.Model
	Name        string `gorm:"size:100;unique;not null"`
	Category    string `gorm:"size:50;index"`
	Description string `gorm:"type:text"`
	Icon        string `gorm:"size:50"`
}
