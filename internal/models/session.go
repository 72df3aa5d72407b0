package models

import (
	"time"

	"gorm.io/gorm"
)

// Session lifecycle states. The only transition is draft -> published.
const (
	SessionStatusDraft     = "draft"
	SessionStatusPublished = "published"
)

// Session privacy settings.
const (
	SessionPrivacyPublic  = "public"
	SessionPrivacyPrivate = "private"
)

// Session difficulty levels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Session represents a guided wellness activity (workout or meditation)
// created by a user. Engagement counts are computed at query time from the
// likes, comments and session_trackings relations so they can never drift
// from the underlying rows.
type Session struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	CategoryID uint      `gorm:"not null;index:idx_sessions_category_status" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	CreatedByID uint  `gorm:"not null;index:idx_sessions_owner_status" json:"created_by_id"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	Difficulty      string `gorm:"default:beginner" json:"difficulty"`
	DurationMinutes int    `json:"duration_minutes"`
	Tags            string `json:"tags"`
	Instructions    string `gorm:"type:text" json:"instructions"`
	Equipment       string `json:"equipment"`
	CaloriesBurned  int    `json:"calories_burned"`

	Status      string     `gorm:"default:draft;index:idx_sessions_owner_status;index:idx_sessions_category_status" json:"status"`
	Privacy     string     `gorm:"default:public" json:"privacy"`
	PublishedAt *time.Time `json:"published_at"`
	Thumbnail   string     `json:"thumbnail"`

	// ViewsCount is the only persisted engagement counter; views have no
	// backing relation row, so it is incremented with an atomic UPDATE.
	ViewsCount int64 `gorm:"default:0" json:"views_count"`

	// Computed at query time; see repository.applyEngagement.
	LikesCount       int64 `gorm:"->;-:migration" json:"likes_count"`
	CommentsCount    int64 `gorm:"->;-:migration" json:"comments_count"`
	CompletionsCount int64 `gorm:"->;-:migration" json:"completions_count"`
	Liked            bool  `gorm:"->;-:migration" json:"liked"`
	// LastCompletedAt is the viewer's most recent completion of this session,
	// joined only for authenticated reads.
	LastCompletedAt *time.Time `gorm:"->;-:migration" json:"last_completed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsPublished reports whether the session has left the draft state.
func (s *Session) IsPublished() bool {
	return s.Status == SessionStatusPublished
}

// ValidDifficulty reports whether d is a recognized difficulty level.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
