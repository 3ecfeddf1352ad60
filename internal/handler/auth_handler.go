package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wasla-app/wasla-api/internal/dto"
	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "registration successful", result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, err := response.GetTokenID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), tokenID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "logout successful", nil)
}
