package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// UserService lists and looks up users.
type UserService struct {
	DB *gorm.DB
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return repo.ListUsers(ctx, s.DB)
}

// Get returns the user named username, or a 404 "User Not Found".
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, username)
	if err != nil {
		return nil, notFoundAs(err, resUser)
	}
	return u, nil
}
