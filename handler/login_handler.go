package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hametuha/hamelp-be/service"
	"github.com/hametuha/hamelp-be/types"
	"github.com/hametuha/hamelp-be/utils"
)

type LoginHandler interface {
	HandleLogin(c *gin.Context)
}

type loginHandler struct {
	userService service.UserService
}

func NewLoginHandler(userService service.UserService) LoginHandler {
	return &loginHandler{
		userService: userService,
	}
}

func (h *loginHandler) HandleLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	user, err := h.userService.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  "error",
			Message: "Invalid credentials",
		})
		return
	}
	if user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, types.DataResponse{
			Status:  "error",
			Message: "Invalid credentials",
		})
		return
	}

	token, err := utils.GenerateUserToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.LoginResponse{
			AccessToken: token,
		},
	})
}
