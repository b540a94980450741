// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered author in the Inkwell application.
// The password field holds a bcrypt hash and is never serialized.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"unique;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	IsPremiumUser bool      `gorm:"not null;default:false" json:"isPremiumUser"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Posts         []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
