package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/apperror"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type FollowHandler struct {
	followService service.FollowService
}

func NewFollowHandler(followService service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	if err := h.followService.Follow(c.Request.Context(), userID, req.FollowingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "user followed", nil)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	followingID, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid user id"))
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), userID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "user unfollowed", nil)
}

func (h *FollowHandler) Followers(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid user id"))
		return
	}

	result, err := h.followService.Followers(c.Request.Context(), id, viewerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "followers retrieved", result)
}

func (h *FollowHandler) Following(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid user id"))
		return
	}

	result, err := h.followService.Following(c.Request.Context(), id, viewerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "following retrieved", result)
}

func (h *FollowHandler) Suggested(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.followService.Suggested(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "suggested users retrieved", result)
}
