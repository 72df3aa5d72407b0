package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxReplyPreview bounds how many replies are joined per top-level comment
// when listing, so a popular thread cannot blow up the response.
const MaxReplyPreview = 5

// Comment belongs to a session and may reply to another comment on the
// same session. The adjacency list permits arbitrary depth; listing only
// descends one level.
type Comment struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	SessionID uint     `gorm:"not null;index:idx_comments_session_time" json:"session_id"`
	Session   *Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	UserID    uint     `gorm:"not null;index" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Content string `gorm:"size:500;not null" json:"content"`

	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id,omitempty"`
	Replies         []Comment `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`

	CreatedAt time.Time      `gorm:"index:idx_comments_session_time,sort:desc" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReply reports whether the comment is nested under another comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
