package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListTopics returns every topic ordered by slug. The result is never nil.
func ListTopics(ctx context.Context, db *gorm.DB) ([]domain.Topic, error) {
	out := make([]domain.Topic, 0)
	err := db.WithContext(ctx).Order("slug ASC").Find(&out).Error
	return out, err
}
