package handlers

import (
	"context"

	"github.com/tbourn/go-news-backend/internal/domain"
)

//
// Service contracts (context-aware)
//

// TopicService lists topics.
type TopicService interface {
	List(ctx context.Context) ([]domain.Topic, error)
}

// ArticleService reads articles and updates their votes.
//
// Implementations must return an *errs.Error for missing articles and
// should honor the provided context for cancellation.
type ArticleService interface {
	// List returns every article, newest first, with comment counts.
	List(ctx context.Context) ([]domain.Article, error)
	// Get returns one article.
	Get(ctx context.Context, id int) (*domain.Article, error)
	// UpdateVotes adds inc to the article's votes.
	UpdateVotes(ctx context.Context, id, inc int) (*domain.Article, error)
}

// CommentService lists and posts comments.
type CommentService interface {
	// List returns an article's comments, newest first.
	List(ctx context.Context, articleID int) ([]domain.Comment, error)
	// Post creates a comment. Nil username or body are passed through so the
	// store can reject them.
	Post(ctx context.Context, articleID int, username, body *string) (*domain.Comment, error)
}

// UserService lists users.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for topics, articles, comments and users.
// It depends on abstract service interfaces to keep transport concerns
// separate from data access.
type Handlers struct {
	topicSvc   TopicService
	articleSvc ArticleService
	commentSvc CommentService
	userSvc    UserService
	endpoints  map[string]Endpoint
}

// New constructs and returns a Handlers instance bound to the given services.
func New(topics TopicService, articles ArticleService, comments CommentService, users UserService) *Handlers {
	return &Handlers{
		topicSvc:   topics,
		articleSvc: articles,
		commentSvc: comments,
		userSvc:    users,
		endpoints:  Catalogue("/api"),
	}
}

// WithBasePath rebuilds the endpoint catalogue for an API mounted at base.
func (h *Handlers) WithBasePath(base string) *Handlers {
	h.endpoints = Catalogue(base)
	return h
}
