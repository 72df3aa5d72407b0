package models

import "time"

// Mood values recorded before a session.
const (
	MoodExcited   = "excited"
	MoodMotivated = "motivated"
	MoodNeutral   = "neutral"
	MoodTired     = "tired"
	MoodStressed  = "stressed"
	MoodAnxious   = "anxious"
)

// Mood values recorded after a session.
const (
	MoodEnergized    = "energized"
	MoodRelaxed      = "relaxed"
	MoodAccomplished = "accomplished"
	MoodFrustrated   = "frustrated"
)

// SessionTracking is an immutable completion record: one row per
// (user, session, completed_at). A user may repeat a session, so
// uniqueness holds only on the full triple.
type SessionTracking struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_tracking_completion;index:idx_tracking_user_time" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SessionID uint     `gorm:"not null;uniqueIndex:idx_tracking_completion" json:"session_id"`
	Session   *Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`

	CompletedAt          time.Time `gorm:"not null;uniqueIndex:idx_tracking_completion;index:idx_tracking_user_time,sort:desc" json:"completed_at"`
	DurationCompleted    int       `gorm:"not null" json:"duration_completed"`
	CaloriesBurned       int       `gorm:"default:0" json:"calories_burned"`
	Notes                string    `gorm:"size:300" json:"notes"`
	MoodBefore           string    `json:"mood_before"`
	MoodAfter            string    `json:"mood_after"`
	CompletionPercentage int       `gorm:"default:100" json:"completion_percentage"`

	CreatedAt time.Time `json:"created_at"`
}

// ValidMoodBefore reports whether m is a recognized pre-session mood.
// An empty mood is allowed; the field is optional.
func ValidMoodBefore(m string) bool {
	switch m {
	case "", MoodExcited, MoodMotivated, MoodNeutral, MoodTired, MoodStressed, MoodAnxious:
		return true
	}
	return false
}

// ValidMoodAfter reports whether m is a recognized post-session mood.
func ValidMoodAfter(m string) bool {
	switch m {
	case "", MoodEnergized, MoodRelaxed, MoodAccomplished, MoodNeutral, MoodTired, MoodFrustrated:
		return true
	}
	return false
}
