package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the publication status of an article
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// Article represents an editorial article in the archive
type Article struct {
	BaseModel
	AuthorID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_articles_author_id" json:"author_id"`
	Slug         string        `gorm:"type:varchar(255);not null;uniqueIndex:uq_articles_slug" json:"slug"`
	Title        string        `gorm:"type:varchar(255);not null" json:"title"`
	Summary      string        `gorm:"type:text" json:"summary"`
	Content      string        `gorm:"type:text;not null" json:"content"`
	Status       ArticleStatus `gorm:"type:varchar(20);not null;default:'draft';index:idx_articles_status" json:"status"`
	CommentCount int           `gorm:"not null;default:0" json:"comment_count"`
	ViewCount    int64         `gorm:"not null;default:0" json:"view_count"`
	PublishedAt  *time.Time    `gorm:"type:timestamp" json:"published_at,omitempty"`
	Author       User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments     []Comment     `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Article
func (Article) TableName() string {
	return "articles"
}
