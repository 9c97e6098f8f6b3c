package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUsers godoc
// @ID          getUsers
// @Summary     List users
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.UsersResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal Server Error"
// @Router      /users [get]
func (h *Handlers) GetUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, UsersResponse{Users: users})
}
