package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// commentRow is the insert shape for comments. Nil pointers are written as
// NULL so the store's NOT NULL constraints reject incomplete submissions.
type commentRow struct {
	CommentID int     `gorm:"column:comment_id;primaryKey;autoIncrement"`
	Body      *string `gorm:"column:body"`
	ArticleID int     `gorm:"column:article_id"`
	Author    *string `gorm:"column:author"`
	CreatedAt time.Time
}

func (commentRow) TableName() string { return "comments" }

// ListComments returns the comments of an article, newest first. The result
// is never nil; an article with no comments yields an empty slice.
func ListComments(ctx context.Context, db *gorm.DB, articleID int) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0)
	err := db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at DESC, comment_id DESC").
		Find(&out).Error
	return out, err
}

// CreateComment inserts a comment on articleID and returns the stored row,
// including its assigned comment_id and default votes.
func CreateComment(ctx context.Context, db *gorm.DB, articleID int, author, body *string) (*domain.Comment, error) {
	row := &commentRow{
		Body:      body,
		ArticleID: articleID,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return nil, err
	}

	var c domain.Comment
	if err := db.WithContext(ctx).Where("comment_id = ?", row.CommentID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
