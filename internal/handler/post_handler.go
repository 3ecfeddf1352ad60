package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/apperror"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	result, err := h.postService.List(c.Request.Context(), viewerID(c), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "posts retrieved", result)
}

func (h *PostHandler) UserPosts(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid user id"))
		return
	}

	page, limit := pagination(c)
	result, err := h.postService.ListByUser(c.Request.Context(), id, viewerID(c), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "user posts retrieved", result)
}

func (h *PostHandler) MyPosts(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, limit := pagination(c)
	result, err := h.postService.ListByUser(c.Request.Context(), userID, &userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "your posts retrieved", result)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	result, err := h.postService.Get(c.Request.Context(), id, viewerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "post retrieved", result)
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.postService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "post created", result)
}

func (h *PostHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.postService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "post updated", result)
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	if err := h.postService.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "post deleted", nil)
}

func (h *PostHandler) AddImages(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	var req dto.AddImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.postService.AddImages(c.Request.Context(), id, userID, req.Images)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "images added", result)
}

func (h *PostHandler) RemoveImage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	var req dto.RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.postService.RemoveImage(c.Request.Context(), id, userID, req.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "image removed", result)
}
