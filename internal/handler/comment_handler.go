package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/repository"
	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/apperror"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) List(c *gin.Context) {
	var filter repository.CommentFilter
	if postIDStr := c.Query("post_id"); postIDStr != "" {
		postID, err := uuid.Parse(postIDStr)
		if err != nil {
			response.Error(c, apperror.New(apperror.ErrValidation, "invalid post_id"))
			return
		}
		filter.PostID = &postID
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.Error(c, apperror.New(apperror.ErrValidation, "invalid user_id"))
			return
		}
		filter.UserID = &userID
	}
	filter.Search = c.Query("search")

	page, limit := pagination(c)
	result, err := h.commentService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "comments retrieved", result)
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.commentService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "comment created", result)
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid comment id"))
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.commentService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "comment updated", result)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid comment id"))
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "comment deleted", nil)
}
