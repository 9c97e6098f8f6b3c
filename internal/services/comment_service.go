package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/errs"
	"github.com/tbourn/go-news-backend/internal/observability"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// CommentService lists and posts comments on articles.
type CommentService struct {
	DB *gorm.DB
}

// List returns an article's comments, newest first. The article must exist;
// an existing article without comments yields an empty slice.
func (s *CommentService) List(ctx context.Context, articleID int) ([]domain.Comment, error) {
	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}
	return repo.ListComments(ctx, s.DB, articleID)
}

// Post creates a comment on articleID.
//
// Order of checks:
//  1. article exists, else 404 "Article Not Found"
//  2. username, when given, names an existing user, else 404 "User Not Found"
//  3. insert; a nil username or body reaches the store as NULL and surfaces
//     as a not-null violation for the error stage to classify
//
// The user check and the insert are not atomic. A user removed in between is
// still rejected by the foreign key on comments.author.
func (s *CommentService) Post(ctx context.Context, articleID int, username, body *string) (c *domain.Comment, err error) {
	ctx, span := observability.Start(ctx, "comments.post", attribute.Int("article_id", articleID))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}
	if username != nil {
		if _, err = repo.GetUser(ctx, s.DB, *username); err != nil {
			return nil, notFoundAs(err, resUser)
		}
	}
	return repo.CreateComment(ctx, s.DB, articleID, username, body)
}

func (s *CommentService) requireArticle(ctx context.Context, articleID int) error {
	ok, err := repo.ArticleExists(ctx, s.DB, articleID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFoundf(resArticle)
	}
	return nil
}
