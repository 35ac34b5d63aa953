package models

import "time"

// CustomRole is a facilitator-defined organizational role, offered alongside
// the built-in catalog roles during session setup.
type CustomRole struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:40" json:"color,omitempty"`
	Icon        string    `gorm:"size:40" json:"icon,omitempty"`
	IsCustom    bool      `gorm:"not null;default:true" json:"isCustom"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
