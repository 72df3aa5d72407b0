package models

import "time"

// Category is a flat named tag; each session references exactly one.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;unique;not null" json:"name"`
	Description string `gorm:"size:300" json:"description"`
	Icon        string `json:"icon"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// SessionCount is not persisted; computed at query time from published
	// public sessions in the category.
	SessionCount int64 `gorm:"->" json:"session_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
