package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/errs"
	"github.com/tbourn/go-news-backend/internal/utils"
)

// GetArticleComments godoc
// @ID          getArticleComments
// @Summary     List an article's comments
// @Description Returns the comments of an existing article, newest first. An article without comments yields [].
// @Tags        Comments
// @Produce     json
// @Param       article_id  path  int  true  "Article ID (32-bit integer)"  example(1)
// @Success     200  {object}  handlers.CommentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request / Out Of Range For Type Integer"
// @Failure     404  {object}  handlers.ErrorResponse  "Article Not Found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal Server Error"
// @Router      /articles/{article_id}/comments [get]
func (h *Handlers) GetArticleComments(c *gin.Context) {
	id, err := utils.ParseID(c.Param(articleIDParam))
	if err != nil {
		fail(c, err)
		return
	}
	comments, err := h.commentSvc.List(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, CommentsResponse{Comments: comments})
}

// PostArticleComment godoc
// @ID          postArticleComment
// @Summary     Comment on an article
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       article_id  path  int                          true  "Article ID (32-bit integer)"  example(1)
// @Param       body        body  handlers.PostCommentRequest  true  "Comment payload"
// @Success     201  {object}  handlers.CommentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad Request / Not Null Violation / Out Of Range For Type Integer"
// @Failure     404  {object}  handlers.ErrorResponse  "Article Not Found / User Not Found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal Server Error"
// @Router      /articles/{article_id}/comments [post]
func (h *Handlers) PostArticleComment(c *gin.Context) {
	id, err := utils.ParseID(c.Param(articleIDParam))
	if err != nil {
		fail(c, err)
		return
	}

	var req PostCommentRequest
	// An empty body is an object with no fields, not malformed JSON.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, errs.Validation(errs.MsgBadRequest).Wrap(err))
		return
	}

	cm, err := h.commentSvc.Post(c.Request.Context(), id, req.Username, req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, CommentResponse{Comment: cm})
}
