package models

import "time"

// Facilitator is an account that can save projects and custom roles.
// Session participants never authenticate; they only carry opaque userIds.
type Facilitator struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
