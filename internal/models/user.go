// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Experience levels for a user profile.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// UserStats is the denormalized activity cache written back on every
// session completion. streak_days is recomputed by the streak calculator,
// never incremented in place.
type UserStats struct {
	TotalSessions int        `json:"total_sessions"`
	TotalMinutes  int        `json:"total_minutes"`
	StreakDays    int        `json:"streak_days"`
	LastSession   *time.Time `json:"last_session"`
}

// User represents a member of the Wellspring platform.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	FirstName          string `gorm:"size:50" json:"first_name"`
	LastName           string `gorm:"size:50" json:"last_name"`
	Avatar             string `json:"avatar"`
	Bio                string `gorm:"size:500" json:"bio"`
	Location           string `gorm:"size:100" json:"location"`
	FitnessGoals       string `json:"fitness_goals"`
	DietaryPreferences string `json:"dietary_preferences"`
	ExperienceLevel    string `gorm:"default:beginner" json:"experience_level"`
	Age                *int   `json:"age,omitempty"`
	HeightCm           *int   `json:"height_cm,omitempty"`
	WeightKg           *int   `json:"weight_kg,omitempty"`

	Stats UserStats `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`

	// IsActive marks soft-deactivation; accounts are never hard-deleted.
	IsActive bool `gorm:"default:true" json:"is_active"`

	// FollowersCount/FollowingCount are not persisted; computed at query time
	// from the follows relation.
	FollowersCount int64 `gorm:"->" json:"followers_count"`
	FollowingCount int64 `gorm:"->" json:"following_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Sessions []Session `gorm:"foreignKey:CreatedByID" json:"sessions,omitempty"`
}

// Summary returns the subset of user fields embedded in other responses
// (followers lists, comment authors, session owners).
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}

// UserSummary is the compact user representation joined into listings.
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}
