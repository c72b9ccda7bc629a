package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	correlationHeader = "X-Correlation-Id"
	userCtxKey        = "currentUser"
)

func correlationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(correlationHeader, id)
		c.Next()
	}
}

// identify resolves an optional bearer token into the current user. Requests
// without an Authorization header pass through as guests; a presented token
// that fails validation is rejected.
func identify(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}
		u, err := auth.LookupByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Set(userCtxKey, *u)
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func requireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok || !u.Role.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return domain.User{}, false
	}
	u, ok := v.(domain.User)
	return u, ok
}
