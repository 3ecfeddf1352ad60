package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/apperror"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type LikeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) Toggle(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.likeService.Toggle(c.Request.Context(), userID, req.PostID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "like toggled", result)
}

func (h *LikeHandler) Check(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	postID, err := uuid.Parse(c.Query("post_id"))
	if err != nil {
		response.Error(c, apperror.New(apperror.ErrValidation, "post_id query parameter is required"))
		return
	}

	result, err := h.likeService.Check(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "like status retrieved", result)
}

func (h *LikeHandler) MyLikes(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.likeService.MyLikes(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "liked posts retrieved", result)
}

func (h *LikeHandler) TopPosts(c *gin.Context) {
	_, limit := pagination(c)
	result, err := h.likeService.TopPosts(c.Request.Context(), viewerID(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "top liked posts retrieved", result)
}

func (h *LikeHandler) PostLikes(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	page, limit := pagination(c)
	result, err := h.likeService.PostLikes(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "post likes retrieved", result)
}
