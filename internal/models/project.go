package models

import (
	"database/sql/driver"
	"time"
)

// Project is a saved setup: role selection, scenario list, and custom inject
// cards a facilitator can reuse when creating a session.
type Project struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Scenarios   StringList `gorm:"type:text" json:"scenarios"`
	CustomCards InjectDeck `gorm:"type:text" json:"customCards"`
	Roles       StringList `gorm:"type:text" json:"roles"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// InjectDeck maps scenario ID to its custom inject sequence.
type InjectDeck map[string][]Inject

func (d InjectDeck) Value() (driver.Value, error) { return jsonValue(d) }
func (d *InjectDeck) Scan(src interface{}) error  { return jsonScan(src, d) }

// ProjectSummary is the list-endpoint view, without the card payload.
type ProjectSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
