package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wasla-app/wasla-api/internal/service"
	"github.com/wasla-app/wasla-api/pkg/apperror"
	"github.com/wasla-app/wasla-api/pkg/response"
)

type AuthMiddleware struct {
	authService service.AuthService
}

func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth verifies the bearer token and stores user_id and token_id
// in the request context. Browser websocket clients cannot set headers,
// so a "token" query parameter is accepted as a fallback.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			response.Error(c, apperror.New(apperror.ErrUnauthorized, "authorization required"))
			c.Abort()
			return
		}

		userID, tokenID, err := m.authService.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", userID.String())
		c.Set("token_id", tokenID.String())
		c.Next()
	}
}

// OptionalAuth sets the user identity when a valid token is present but
// lets anonymous requests through. Public reads use it to decorate
// results for logged-in callers.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			c.Next()
			return
		}

		userID, tokenID, err := m.authService.VerifyToken(c.Request.Context(), tokenString)
		if err == nil {
			c.Set("user_id", userID.String())
			c.Set("token_id", tokenID.String())
		}
		c.Next()
	}
}
