package models

import (
	"time"
)

// Comment represents a comment on a blog post. Comments are append-only:
// they are never edited or removed once written. AuthorName is denormalized
// from the session claims at write time so listings never join on users.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Content    string    `gorm:"not null" json:"content"`
	UserID     uint      `gorm:"not null" json:"author"`
	AuthorName string    `gorm:"not null" json:"authorName"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt  time.Time `json:"createdAt"`
}
