package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type statusResponse struct {
	Success bool `json:"success"`
} // @name StatusResponse

type cooldownResponse struct {
	ErrorStruct
	RetryAfterSeconds int `json:"retry_after_seconds"`
} // @name CooldownResponse

type incorrectCodeResponse struct {
	ErrorStruct
	AttemptsLeft int  `json:"attempts_left"`
	LastAttempt  bool `json:"last_attempt"`
} // @name IncorrectCodeResponse

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		response := ValidationErrorStruct{
			ErrorCode:    6000,
			ErrorMessage: "Validation error",
		}
		response.Errors = out
		c.AbortWithStatusJSON(http.StatusBadRequest, response)
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorStruct{
		ErrorCode:    6000,
		ErrorMessage: "Validation error",
	})
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "numeric":
		return "This field must contain digits only"
	case "len":
		return fmt.Sprintf("This field must be exactly %v characters", value)
	case "e164phone":
		return "Phone number must be in international format, e.g. +15551234567"
	}
	return tag
}
