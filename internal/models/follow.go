package models

import "time"

// Follow is a directed edge from follower to followed user, unique per
// ordered pair. Self-loops are rejected at the service boundary. Rows are
// only ever created or hard-deleted by the toggle operation.
type Follow struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	FollowerID  uint  `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	Follower    *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	FollowingID uint  `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"following_id"`
	Following   *User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
