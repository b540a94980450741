package models

import (
	"time"
)

// Post represents a blog post in the Inkwell application.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null;index" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CoverImage string    `gorm:"not null" json:"coverImage"`
	Category   string    `gorm:"not null" json:"category"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"author"`
	Comments   []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// UpvotesCount is not persisted; computed at query time
	UpvotesCount int `gorm:"->" json:"upvotes_count"`
	// Rank is the full-text relevance score for search results (computed)
	Rank      float64   `gorm:"->" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// Upvote marks that a user has upvoted a post. The (user, post) pair is
// unique; concurrent inserts are resolved by the store.
type Upvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_upvotes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_upvotes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
