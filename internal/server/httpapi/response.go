package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func failResponse(msg string) gin.H {
	return gin.H{"success": false, "msg": msg}
}

// bindingErrors turns a gin binding failure into the validation envelope:
// one message per failed field, or the bare error text when the body was
// not even parseable.
func bindingErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	msgs := []string{}

	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
			case "email":
				msgs = append(msgs, fmt.Sprintf("%s must be a valid email", fe.Field()))
			default:
				msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
			}
		}
	} else {
		msgs = append(msgs, err.Error())
	}

	return gin.H{"success": false, "msg": "Errors", "errors": msgs}
}

// handleServiceError owns the error-to-status mapping for every handler, so
// a sentinel added in one place renders the same everywhere.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var msg string

	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		statusCode = http.StatusConflict
		msg = "User already exists!"
	case errors.Is(err, common.ErrorNotFound):
		statusCode = http.StatusNotFound
		msg = "User not found!"
	case errors.Is(err, common.ErrorUnauthorized):
		statusCode = http.StatusUnauthorized
		msg = "Email and Password is incorrect!"
	case errors.Is(err, common.ErrorForbidden):
		statusCode = http.StatusForbidden
		msg = "Access denied"
	case errors.Is(err, common.ErrorUploadFailed):
		statusCode = http.StatusBadRequest
		msg = "Error Uploading file"
	default:
		statusCode = http.StatusInternalServerError
		msg = "Server error!"
	}

	c.AbortWithStatusJSON(statusCode, failResponse(msg))
}
