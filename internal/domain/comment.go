package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on an article. A comment with a ParentID is a
// reply; replies to replies are rejected at the service layer, so threads are
// at most one level deep even though the schema permits more.
type Comment struct {
	BaseModel
	ArticleID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_article_id" json:"article_id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user_id"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index:idx_comments_parent_id" json:"parent_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	IsApproved bool       `gorm:"not null;default:false;index:idx_comments_is_approved" json:"is_approved"`
	LikeCount  int        `gorm:"not null;default:0" json:"like_count"`
	Article    Article    `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"article,omitempty"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Parent     *Comment   `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"parent,omitempty"`
	Replies    []Comment  `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// IsTopLevel reports whether the comment starts a thread
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

// CommentLike records that a user liked a comment. The (comment_id, user_id)
// uniqueness constraint is what makes the like toggle race-safe: the loser of
// a concurrent double insert fails the constraint and is treated as a no-op.
type CommentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_likes_comment_id;uniqueIndex:uq_comment_likes_comment_user" json:"comment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_likes_user_id;uniqueIndex:uq_comment_likes_comment_user" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp;not null" json:"created_at"`
	Comment   Comment   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"comment,omitempty"`
}

// TableName specifies the table name for CommentLike
func (CommentLike) TableName() string {
	return "comment_likes"
}
