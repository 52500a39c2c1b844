package models

import (
	"time"

	"gorm.io/gorm"
)

// CircleType categorizes what a circle is for.
type CircleType string

const (
	CircleProject        CircleType = "project"
	CircleHabit          CircleType = "habit"
	CircleLearning       CircleType = "learning"
	CircleAccountability CircleType = "accountability"
	CircleSocial         CircleType = "social"
)

// CircleRole is a member's role inside a circle.
type CircleRole string

const (
	RoleCreator CircleRole = "creator"
	RoleAdmin   CircleRole = "admin"
	RoleMember  CircleRole = "member"
)

// Circle is an interest-based community users can join.
type Circle struct {
	gorm.Model
	Name        string     `gorm:"size:200;not null"`
	Description string     `gorm:"type:text"`
	CircleType  CircleType `gorm:"type:varchar(20);not null;index"`
	CreatorID   uint       `gorm:"not null;index"`
	IsPrivate   bool       `gorm:"not null;default:false"`
	MaxMembers  int        `gorm:"not null;default:10"`

	// Circle settings
	AllowPublicPosts bool `gorm:"not null;default:true"`
	RequireApproval  bool `gorm:"not null;default:true"`

	Creator   User        `gorm:"foreignKey:CreatorID"`
	Interests []*Interest `gorm:"many2many:circle_interests;"`
	Members   []User      `gorm:"many2many:circle_memberships;joinForeignKey:CircleID;joinReferences:UserID"`
}

// CircleMembership links a user to a circle with a role.
// The primary key is a composite of (UserID, CircleID) to ensure uniqueness.
type CircleMembership struct {
	UserID   uint       `gorm:"primaryKey"`
	CircleID uint       `gorm:"primaryKey"`
	Role     CircleRole `gorm:"type:varchar(20);not null;default:'member'"`
	IsActive bool       `gorm:"not null;default:true"`
	JoinedAt time.Time  `gorm:"autoCreateTime"`

	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Circle Circle `gorm:"foreignKey:CircleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
