// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User is an authenticated author. Deleting a user removes their posts.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:30;uniqueIndex;not null"`
	Email     string `gorm:"size:254;uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
