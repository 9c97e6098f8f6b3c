// This file holds the single error stage of the HTTP layer.
//
// Precedence, first match wins:
//  1. *errs.Error anywhere in the chain: its status and message.
//  2. Raw database error with a recognized SQLSTATE (see sqlerr.HandleError).
//  3. Anything else: logged, answered 500 "Internal Server Error".

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/errs"
	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/sqlerr"
)

// ErrorHandler returns middleware that turns the last error recorded on the
// context into a {msg} response. It does nothing when the handler already
// wrote a response or recorded no error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		appErr := sqlerr.HandleError(err)

		if appErr.Kind == errs.KindInternal {
			middleware.LoggerFrom(c).Error().
				Err(err).
				Int("status", appErr.Status).
				Msg("unhandled error")
		}
		middleware.ObserveError(appErr.Kind.String(), appErr.Status, string(sqlerr.CodeOf(err)))

		c.JSON(appErr.Status, ErrorResponse{Msg: appErr.Message})
	}
}

// RouteNotFound answers any unregistered method and path.
func RouteNotFound(c *gin.Context) {
	middleware.ObserveError(errs.KindNotFound.String(), http.StatusNotFound, "")
	c.JSON(http.StatusNotFound, ErrorResponse{Msg: errs.MsgRouteNotFound})
}
