package models

import "time"

// Like is a (user, session) edge, unique per pair. Existence is boolean;
// the toggle operation creates or hard-deletes the row.
type Like struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_like_pair" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SessionID uint     `gorm:"not null;uniqueIndex:idx_like_pair;index" json:"session_id"`
	Session   *Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
