package models

import (
	"time"

	"gorm.io/gorm"
)

// PostType categorizes a post's content.
type PostType string

const (
	PostText        PostType = "text"
	PostImage       PostType = "image"
	PostProgress    PostType = "progress"
	PostAchievement PostType = "achievement"
)

// Visibility controls who can see a post in their feed.
type Visibility string

const (
	VisibilityPublic      Visibility = "public"
	VisibilityConnections Visibility = "connections"
	VisibilityFriends     Visibility = "friends"
	VisibilityCircle      Visibility = "circle"
)

// Post is a user-authored feed item.
type Post struct {
	gorm.Model
	AuthorID      uint       `gorm:"not null;index"`
	CircleID      *uint      `gorm:"index"`
	Content       string     `gorm:"type:text;not null"`
	PostType      PostType   `gorm:"type:varchar(20);not null;default:'text'"`
	Visibility    Visibility `gorm:"type:varchar(20);not null;default:'public';index"`
	ImageURL      string     `gorm:"size:512"`
	IsHighlighted bool       `gorm:"not null;default:false"`

	Author    User        `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Circle    *Circle     `gorm:"foreignKey:CircleID"`
	Interests []*Interest `gorm:"many2many:post_interests;"`
	Likes     []Like      `gorm:"foreignKey:PostID"`
	Comments  []Comment   `gorm:"foreignKey:PostID"`
}

// Like marks that a user liked a post. One like per (user, post).
type Like struct {
	UserID    uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Comment is a user's comment on a post.
type Comment struct {
	gorm.Model
	AuthorID uint   `gorm:"not null;index"`
	PostID   uint   `gorm:"not null;index"`
	Content  string `gorm:"type:text;not null"`

	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Post   Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
