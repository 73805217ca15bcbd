package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/logger"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/middleware"
)

// errUnauthenticated is returned when no JWT user is in the context
var errUnauthenticated = errors.New("user ID not found in context")

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// getUserID extracts the user ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	id, ok := middleware.GetJWTUserUUID(c)
	if !ok {
		return uuid.Nil, errUnauthenticated
	}
	return id, nil
}

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// BindError answers a failed ShouldBind call
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	middleware.HandleBindError(c, err)
}

// HandleError maps service errors to responses. Integration failures are
// checked before domain errors since some wrap both.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.L(c.Request.Context()).Error("Request failed",
			zap.Int("status", status),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// RespondError is HandleError for middleware
func RespondError(c *gin.Context, err error) {
	(&BaseHandler{}).HandleError(c, err)
}

func classify(err error) (status int, code, message string) {
	var cfgErr *integration.ConfigurationError
	var dispatchErr *integration.DispatchFailedError
	var unsupported *integration.UnsupportedOperationError
	var domainErr *shared.DomainError

	switch {
	case errors.As(err, &cfgErr):
		code = dto.ErrCodeProviderNotSupported
		return dto.GetHTTPStatus(code), code, cfgErr.Error()
	case errors.As(err, &dispatchErr):
		code = dto.ErrCodeDispatchFailed
		return dto.GetHTTPStatus(code), code, "Courier did not accept the order: " + dispatchErr.Message
	case errors.Is(err, integration.ErrSyncInProgress):
		code = dto.ErrCodeSyncInProgress
		return dto.GetHTTPStatus(code), code, "A pull for this store is already running"
	case errors.As(err, &unsupported):
		code = dto.ErrCodeUnsupportedOperation
		return dto.GetHTTPStatus(code), code, unsupported.Error()
	case integration.IsTransportError(err):
		code = dto.ErrCodeGateway
		return dto.GetHTTPStatus(code), code, err.Error()
	case errors.As(err, &domainErr):
		code = dto.NormalizeErrorCode(domainErr.Code)
		return dto.DomainErrorStatus(code), code, domainErr.Message
	default:
		return http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"
	}
}
