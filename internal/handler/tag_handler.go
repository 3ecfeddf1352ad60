package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/apperror"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	result, err := h.tagService.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "tags retrieved", result)
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid tag id"))
		return
	}

	result, err := h.tagService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "tag retrieved", result)
}

func (h *TagHandler) PostsByTag(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid tag id"))
		return
	}

	page, limit := pagination(c)
	result, err := h.tagService.PostsByTag(c.Request.Context(), id, viewerID(c), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "tag posts retrieved", result)
}

func (h *TagHandler) TagsForPost(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	result, err := h.tagService.TagsForPost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "post tags retrieved", result)
}

func (h *TagHandler) Attach(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	postID, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	var req dto.AttachTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	if err := h.tagService.Attach(c.Request.Context(), postID, userID, req.TagID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "tag attached", nil)
}

func (h *TagHandler) Detach(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	postID, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}
	tagID, ok := pathUUID(c, "tag_id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid tag id"))
		return
	}

	if err := h.tagService.Detach(c.Request.Context(), postID, userID, tagID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "tag detached", nil)
}

func (h *TagHandler) Sync(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	postID, ok := pathUUID(c, "id")
	if !ok {
		response.Error(c, apperror.New(apperror.ErrValidation, "invalid post id"))
		return
	}

	var req dto.SyncTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.tagService.Sync(c.Request.Context(), postID, userID, req.TagIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "tags synced", result)
}
