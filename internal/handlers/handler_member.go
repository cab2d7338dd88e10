package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/dto"
)

type memberHandler struct {
	userService portssvc.UserSvcFacade
}

func registerMemberRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &memberHandler{userService: userService}

	members := rg.Group("/members")
	{
		members.GET("/me", h.getMe)
	}
}

// getMe godoc
// @Summary Get the authenticated member
// @Description Returns the profile of the member identified by the bearer token.
// @Tags members
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/me [get]
func (h *memberHandler) getMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load member")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
