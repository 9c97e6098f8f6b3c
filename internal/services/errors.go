// Package services defines the business logic for topics, articles, comments
// and users. This file centralizes how service methods turn repository
// signals into application errors.
//
// Only "not found" is translated here, into a resource-specific *errs.Error.
// Raw database errors are returned untouched so the HTTP error stage can
// classify them by vendor code.
package services

import (
	"errors"

	"github.com/tbourn/go-news-backend/internal/errs"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// Resource names used in not-found messages.
const (
	resArticle = "article"
	resUser    = "user"
)

// notFoundAs maps repo.ErrNotFound to a 404 for resource and passes every
// other error through.
func notFoundAs(err error, resource string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return errs.NotFoundf(resource).Wrap(err)
	}
	return err
}
