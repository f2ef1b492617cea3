// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// Password limits in bytes. bcrypt rejects anything longer than 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User is an account that owns item lists.
// Email is stored normalized (see NormalizeEmail); Password holds the bcrypt hash.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail trims surrounding spaces and lower-cases the address so that
// signup and login agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
