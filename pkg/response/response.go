package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasla-app/wasla-api/pkg/apperror"
	appvalidator "github.com/wasla-app/wasla-api/pkg/validator"
)

// Body is the envelope every endpoint returns.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// GetUserID retrieves the authenticated user ID set by the auth middleware.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// GetTokenID retrieves the ID of the bearer token used on this request.
func GetTokenID(c *gin.Context) (uuid.UUID, error) {
	tokenIDStr, exists := c.Get("token_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	tokenID, err := uuid.Parse(tokenIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return tokenID, nil
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{Success: true, Message: message, Data: data})
}

// Error converts any error into the envelope using the apperror taxonomy.
// Internal errors are logged and their message suppressed.
func Error(c *gin.Context, err error) {
	status := apperror.MapErrorToStatus(err)

	body := Body{Success: false, Message: err.Error()}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Details != nil {
		body.Errors = appErr.Details
	}

	if status == http.StatusInternalServerError {
		log.Printf("[internal error] %v", err)
		body.Message = apperror.ErrInternal.Error()
	}

	c.JSON(status, body)
}

// BindingError shapes a gin binding failure into a 422 with field messages.
func BindingError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, Body{
		Success: false,
		Message: apperror.ErrValidation.Error(),
		Errors:  appvalidator.FieldMessages(err),
	})
}
