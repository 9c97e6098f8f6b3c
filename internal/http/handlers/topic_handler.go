package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTopics godoc
// @ID          getTopics
// @Summary     List topics
// @Tags        Topics
// @Produce     json
// @Success     200  {object}  handlers.TopicsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal Server Error"
// @Router      /topics [get]
func (h *Handlers) GetTopics(c *gin.Context) {
	topics, err := h.topicSvc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, TopicsResponse{Topics: topics})
}
