// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by all endpoints. Handlers
// never write error bodies themselves: fail() records the error on the Gin
// context and aborts, and ErrorHandler (errors.go) classifies it and writes
// the single {msg} envelope.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{ "msg": "Article Not Found" }
//
// Example success response:
//
//	HTTP/1.1 200 OK
//	{ "article": { "article_id": 1, "title": "…", … } }
package handlers

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable message, safe to show to users.
	Msg string `json:"msg" example:"Article Not Found"`
}

// fail records err for the error stage and stops the handler chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
