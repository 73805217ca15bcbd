package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
)

var (
	setupOnce        sync.Once
	providerCodeExpr = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// SetupValidator reports JSON or form field names in errors and registers
// the provider_code tag. Request DTOs using provider_code need it to run
// before the first bind.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("provider_code", func(fl validator.FieldLevel) bool {
			return providerCodeExpr.MatchString(fl.Field().String())
		})
	})
}

// FormatValidationErrors turns validator errors into a 400 body
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
				Tag:     e.Tag(),
			})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleBindError answers a failed ShouldBind: field errors get details,
// anything else is malformed input
func HandleBindError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
		return
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
			dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size", requestID))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInvalidJSON, "Malformed request: "+err.Error(), requestID))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "url":
		return "Must be an absolute URL"
	case "provider_code":
		return "Must be a provider code such as DUMMY_STORE"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	default:
		return "Invalid value"
	}
}
