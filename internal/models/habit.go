package models

import (
	"time"

	"gorm.io/gorm"
)

// Habit is a recurring behavior tracked by exactly one owning user,
// optionally shared with a circle.
type Habit struct {
	gorm.Model
	UserID          uint   `gorm:"not null;index"`
	CircleID        *uint  `gorm:"index"`
	Name            string `gorm:"size:200;not null"`
	Description     string `gorm:"type:text"`
	TargetFrequency int    `gorm:"not null;default:1"` // times per day
	IsPublic        bool   `gorm:"not null;default:false"`
	IsActive        bool   `gorm:"not null;default:true"`

	// Streak tracking. BestStreak never drops below CurrentStreak.
	CurrentStreak int        `gorm:"not null;default:0"`
	BestStreak    int        `gorm:"not null;default:0"`
	LastCompleted *time.Time `gorm:"type:date"`

	User   User    `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Circle *Circle `gorm:"foreignKey:CircleID"`
}

// HabitEntry is one calendar day's completion record for a habit.
// The unique index over (habit, date) makes repeat check-ins for a day
// toggle the existing row instead of inserting a second one.
type HabitEntry struct {
	gorm.Model
	HabitID   uint      `gorm:"not null;uniqueIndex:idx_habit_date"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_habit_date"`
	Completed bool      `gorm:"not null;default:true"`
	Notes     string    `gorm:"type:text"`

	Habit Habit `gorm:"foreignKey:HabitID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
