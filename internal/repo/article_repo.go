// This file provides repository functions for the Article model.
//
// Reads always derive comment_count with a LEFT JOIN on comments so the
// value is computed at query time and never stored.
//
// Error semantics:
//   - A missing article yields ErrNotFound.
//   - A vote change leaving integer range yields ErrVotesOutOfRange.
//   - Any other DB error is propagated raw; classification happens in the
//     HTTP error stage.

package repo

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// articlesWithCount is the shared projection for article reads.
func articlesWithCount(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.Article{}).
		Select("articles.*, COUNT(comments.comment_id) AS comment_count").
		Joins("LEFT JOIN comments ON comments.article_id = articles.article_id").
		Group("articles.article_id")
}

// ListArticles returns every article, newest first, each with its comment
// count. The result is never nil.
func ListArticles(ctx context.Context, db *gorm.DB) ([]domain.Article, error) {
	out := make([]domain.Article, 0)
	err := articlesWithCount(db.WithContext(ctx)).
		Order("articles.created_at DESC, articles.article_id DESC").
		Find(&out).Error
	return out, err
}

// GetArticle fetches one article by id, or ErrNotFound.
func GetArticle(ctx context.Context, db *gorm.DB, id int) (*domain.Article, error) {
	var a domain.Article
	err := articlesWithCount(db.WithContext(ctx)).
		Where("articles.article_id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ArticleExists reports whether an article with id is present.
func ArticleExists(ctx context.Context, db *gorm.DB, id int) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Article{}).Where("article_id = ?", id).Count(&n).Error
	return n > 0, err
}

// Bounds of the SQL integer type votes is stored as.
const (
	minVotes = math.MinInt32
	maxVotes = math.MaxInt32
)

// ErrVotesOutOfRange is returned when an increment would move votes outside
// the integer column range. The row is left unchanged.
var ErrVotesOutOfRange = errors.New("repo: votes out of integer range")

// IncrementVotes adds inc (which may be negative) to an article's votes in a
// single UPDATE and returns the updated row. The UPDATE only matches when the
// new total stays within integer range, so SQLite never widens the column to
// REAL. Returns ErrNotFound when no article has id and ErrVotesOutOfRange
// when the total would overflow.
func IncrementVotes(ctx context.Context, db *gorm.DB, id, inc int) (*domain.Article, error) {
	res := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("article_id = ?", id).
		Where("votes + ? BETWEEN ? AND ?", int64(inc), int64(minVotes), int64(maxVotes)).
		UpdateColumn("votes", gorm.Expr("votes + ?", int64(inc)))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		exists, err := ArticleExists(ctx, db, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrVotesOutOfRange
		}
		return nil, ErrNotFound
	}
	return GetArticle(ctx, db, id)
}
