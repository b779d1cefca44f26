// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account that can publish recipes and follow authors.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	// IsSubscribed indicates whether the current requesting user follows this user (computed)
	IsSubscribed bool      `gorm:"->" json:"is_subscribed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Recipes      []Recipe  `gorm:"foreignKey:AuthorID" json:"recipes,omitempty"`
}
