// Package response implements the uniform JSON envelope every endpoint
// returns. The application status code ("00" success, "99" failure) is
// independent of the HTTP status carried on the wire.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"carehub/pkg/apperr"
)

const (
	CodeSuccess = "00"
	CodeFailure = "99"
)

// Envelope is the response body shape shared by every endpoint.
type Envelope struct {
	StatusCode    string `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Successful    bool   `json:"successful"`
	Data          any    `json:"data,omitempty"`
	Error         any    `json:"error,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(message string, data any) Envelope {
	return Envelope{
		StatusCode:    CodeSuccess,
		StatusMessage: message,
		Successful:    true,
		Data:          data,
	}
}

// Failure wraps an error detail in a failed envelope.
func Failure(message string, detail any) Envelope {
	return Envelope{
		StatusCode:    CodeFailure,
		StatusMessage: message,
		Successful:    false,
		Error:         detail,
	}
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Success(message, data))
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Success(message, data))
}

// httpStatus maps each error kind to its HTTP status exactly once.
func httpStatus(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes a failed envelope with the HTTP status derived from err's kind.
func Fail(c *gin.Context, message string, err error) {
	var detail any = err.Error()
	if fields := apperr.FieldsOf(err); fields != nil {
		detail = fields
	}
	c.JSON(httpStatus(apperr.KindOf(err)), Failure(message, detail))
}

// AbortUnauthenticated short-circuits the request with a 401 envelope.
func AbortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Failure(message, nil))
}

// AbortForbidden short-circuits the request with a 403 envelope.
func AbortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Failure(message, nil))
}

// BindError converts a gin binding failure into a validation error with
// per-field detail when the underlying cause is a validator error set.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return apperr.FieldErrors(fields)
	}
	return apperr.Validation("Invalid request payload")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Value is shorter than the minimum of " + fe.Param() + "."
	case "max":
		return "Value exceeds the maximum of " + fe.Param() + "."
	case "oneof":
		return "Value must be one of: " + fe.Param() + "."
	default:
		return "Invalid value."
	}
}
