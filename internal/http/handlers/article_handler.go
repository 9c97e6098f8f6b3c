// Article HTTP handlers.
//
// This file exposes REST endpoints for article resources:
//   - GET    /articles               (list, newest first, with comment_count)
//   - GET    /articles/{article_id}  (single article)
//   - PATCH  /articles/{article_id}  (vote)

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/go-news-backend/internal/errs"
	"github.com/tbourn/go-news-backend/internal/utils"
)

// articleIDParam is the path parameter shared by article routes.
const articleIDParam = "article_id"

// GetArticles godoc
// @ID          getArticles
// @Summary     List articles
// @Description Returns every article sorted by created_at descending, each with its comment_count.
// @Tags        Articles
// @Produce     json
// @Success     200  {object}  handlers.ArticlesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal Server Error"
// @Router      /articles [get]
func (h *Handlers) GetArticles(c *gin.Context) {
	articles, err := h.articleSvc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, ArticlesResponse{Articles: articles})
}

// GetArticle godoc
// @ID          getArticle
// @Summary     Get an article
// @Tags        Articles
// @Produce     json
// @Param       article_id  path  int  true  "Article ID (32-bit integer)"  example(1)
// @Success     200  {object}  handlers.ArticleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request / Out Of Range For Type Integer"
// @Failure     404  {object}  handlers.ErrorResponse  "Article Not Found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal Server Error"
// @Router      /articles/{article_id} [get]
func (h *Handlers) GetArticle(c *gin.Context) {
	id, err := utils.ParseID(c.Param(articleIDParam))
	if err != nil {
		fail(c, err)
		return
	}
	a, err := h.articleSvc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: a})
}

// PatchArticle godoc
// @ID          patchArticle
// @Summary     Vote on an article
// @Description Adds inc_votes (may be negative) to the article's votes and returns the updated article.
// @Tags        Articles
// @Accept      json
// @Produce     json
// @Param       article_id  path  int                           true  "Article ID (32-bit integer)"  example(1)
// @Param       body        body  handlers.PatchArticleRequest  true  "Vote increment"
// @Success     200  {object}  handlers.ArticleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request / Out Of Range For Type Integer / Out of range for type integer"
// @Failure     404  {object}  handlers.ErrorResponse  "Article Not Found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal Server Error"
// @Router      /articles/{article_id} [patch]
func (h *Handlers) PatchArticle(c *gin.Context) {
	id, err := utils.ParseID(c.Param(articleIDParam))
	if err != nil {
		fail(c, err)
		return
	}

	var req PatchArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, voteBindError(err))
		return
	}

	a, err := h.articleSvc.UpdateVotes(c.Request.Context(), id, *req.IncVotes)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, ArticleResponse{Article: a})
}

// voteBindError classifies a vote body that failed to bind. An inc_votes
// beyond the integer range, whether rejected by the bounds or too large for
// the decoder, answers like the 22003 row of the error table.
func voteBindError(err error) *errs.Error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if fe.Tag() == "min" || fe.Tag() == "max" {
				return errs.Validation(errs.MsgOutOfRange).Wrap(err)
			}
		}
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		if lit, ok := strings.CutPrefix(te.Value, "number "); ok && !strings.ContainsAny(lit, ".eE") {
			return errs.Validation(errs.MsgOutOfRange).Wrap(err)
		}
	}
	return errs.Validation(errs.MsgBadRequest).Wrap(err)
}
