package models

import (
	"time"

	"gorm.io/gorm"
)

// PostDateLayout is the human-readable creation date stamped onto posts,
// e.g. "August 28, 2026". It is a display string, not a sortable timestamp.
const PostDateLayout = "January 2, 2006"

// Post represents a blog post.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"unique;not null" json:"title"`
	Subtitle  string         `gorm:"not null" json:"subtitle"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	ImageURL  string         `json:"image_url"`
	Date      string         `gorm:"not null" json:"date"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	Comments  []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
