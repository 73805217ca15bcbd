package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/logger"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
)

// StoreKey is the gin context key of the authorized *store.Store
const StoreKey = "store"

// StoreAuthorizer loads a store on behalf of a user and fails with a not
// found domain error when the user does not own it
type StoreAuthorizer interface {
	Authorize(ctx context.Context, storeID, userID uuid.UUID) (*store.Store, error)
}

// ErrorResponder writes err as an API error response
type ErrorResponder func(c *gin.Context, err error)

// StoreAccess scopes a route group to one store. The store ID comes from
// the param path parameter; the acting user from the JWT.
func StoreAccess(param string, authorizer StoreAuthorizer, onError ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, err := uuid.Parse(c.Param(param))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInvalidInput, "Invalid store ID format", GetRequestID(c)))
			return
		}
		userID, ok := GetJWTUserUUID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}

		st, err := authorizer.Authorize(c.Request.Context(), storeID, userID)
		if err != nil {
			onError(c, err)
			c.Abort()
			return
		}

		c.Set(StoreKey, st)
		c.Request = c.Request.WithContext(logger.WithStoreID(c.Request.Context(), st.ID.String()))
		c.Next()
	}
}

// GetStore returns the store authorized by StoreAccess
func GetStore(c *gin.Context) *store.Store {
	if v, ok := c.Get(StoreKey); ok {
		if st, ok := v.(*store.Store); ok {
			return st
		}
	}
	return nil
}
