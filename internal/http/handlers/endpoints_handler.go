package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Endpoint describes one public route in the GET /api catalogue.
type Endpoint struct {
	Description     string         `json:"description"`
	RequestBody     map[string]any `json:"exampleRequest,omitempty"`
	ExampleResponse map[string]any `json:"exampleResponse,omitempty"`
}

// EndpointsResponse wraps the catalogue keyed by "METHOD /path".
type EndpointsResponse struct {
	Endpoints map[string]Endpoint `json:"endpoints"`
}

// Catalogue builds the endpoint descriptions for an API mounted at base.
func Catalogue(base string) map[string]Endpoint {
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		base = ""
	}
	p := func(method, path string) string { return method + " " + base + path }

	return map[string]Endpoint{
		p(http.MethodGet, ""): {
			Description: "serves a json representation of all the available endpoints of the api",
		},
		p(http.MethodGet, "/topics"): {
			Description:     "serves an array of all topics",
			ExampleResponse: map[string]any{"topics": []any{map[string]any{"slug": "mitch", "description": "The man, the Mitch, the legend"}}},
		},
		p(http.MethodGet, "/articles"): {
			Description: "serves an array of all articles sorted by created_at descending, each with a comment_count",
		},
		p(http.MethodGet, "/articles/:article_id"): {
			Description: "serves the article with the given article_id",
		},
		p(http.MethodPatch, "/articles/:article_id"): {
			Description: "adds inc_votes to the article's votes and serves the updated article",
			RequestBody: map[string]any{"inc_votes": 1},
		},
		p(http.MethodGet, "/articles/:article_id/comments"): {
			Description: "serves an array of comments for the given article, most recent first",
		},
		p(http.MethodPost, "/articles/:article_id/comments"): {
			Description: "adds a comment to the given article and serves the created comment",
			RequestBody: map[string]any{"username": "butter_bridge", "body": "test body"},
		},
		p(http.MethodGet, "/users"): {
			Description: "serves an array of all users",
		},
	}
}

// GetEndpoints godoc
// @ID          getEndpoints
// @Summary     Describe the API
// @Tags        Meta
// @Produce     json
// @Success     200  {object}  handlers.EndpointsResponse
// @Router      / [get]
func (h *Handlers) GetEndpoints(c *gin.Context) {
	ok(c, http.StatusOK, EndpointsResponse{Endpoints: h.endpoints})
}
