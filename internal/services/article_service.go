package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/errs"
	"github.com/tbourn/go-news-backend/internal/observability"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// ArticleRepo defines the repository contract required by ArticleService.
//
// Implementations must return repo.ErrNotFound (gorm.ErrRecordNotFound) when
// an article id has no row.
type ArticleRepo interface {
	ListArticles(ctx context.Context, db *gorm.DB) ([]domain.Article, error)

	GetArticle(ctx context.Context, db *gorm.DB, id int) (*domain.Article, error)

	IncrementVotes(ctx context.Context, db *gorm.DB, id, inc int) (*domain.Article, error)
}

// ArticleService provides read access to articles and vote updates.
type ArticleService struct {
	// DB is the injected database handle.
	DB *gorm.DB
	// Repo is the article repository used by this service.
	Repo ArticleRepo
}

// NewArticleService constructs an ArticleService over db and r.
func NewArticleService(db *gorm.DB, r ArticleRepo) *ArticleService {
	return &ArticleService{DB: db, Repo: r}
}

// List returns every article, newest first, with comment counts.
func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	return s.Repo.ListArticles(ctx, s.DB)
}

// Get returns one article or a 404 "Article Not Found".
func (s *ArticleService) Get(ctx context.Context, id int) (*domain.Article, error) {
	a, err := s.Repo.GetArticle(ctx, s.DB, id)
	if err != nil {
		return nil, notFoundAs(err, resArticle)
	}
	return a, nil
}

// UpdateVotes adds inc to the article's votes and returns the updated
// article. Unknown ids give 404 "Article Not Found"; a total outside the
// integer column range gives 400 "Out of range for type integer".
func (s *ArticleService) UpdateVotes(ctx context.Context, id, inc int) (a *domain.Article, err error) {
	ctx, span := observability.Start(ctx, "articles.update_votes",
		attribute.Int("article_id", id), attribute.Int("inc_votes", inc))
	defer func() { observability.EndSpan(span, err) }()

	a, err = s.Repo.IncrementVotes(ctx, s.DB, id, inc)
	if errors.Is(err, repo.ErrVotesOutOfRange) {
		return nil, errs.Validation(errs.MsgOutOfRange).Wrap(err)
	}
	if err != nil {
		return nil, notFoundAs(err, resArticle)
	}
	return a, nil
}
