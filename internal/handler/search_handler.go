package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type SearchHandler struct {
	searchService service.SearchService
}

func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	searchType := c.Query("type")
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.searchService.Search(c.Request.Context(), viewerID(c), query, searchType, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "search results retrieved", result)
}

func (h *SearchHandler) QuickSearch(c *gin.Context) {
	result, err := h.searchService.QuickSearch(c.Request.Context(), viewerID(c), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "quick search results retrieved", result)
}
