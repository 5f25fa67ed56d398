package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/jwt"
	"document-manager-api/internal/infrastructure/logger"
)

const (
	CtxUserRole = "userRole"
	CtxUserID   = "userID"
	CtxUsername = "username"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)

		c.Next()
	}
}

// AccountLookup returns nil for deleted users.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RejectInactiveAccounts stops mutating requests whose bearer token belongs
// to a deleted or disabled user. Requests without a valid token pass through
// to the route's own AuthMiddleware.
func RejectInactiveAccounts(jwtService *jwt.Service, accounts AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		tokenStr, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			c.Next()
			return
		}
		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		u, err := accounts.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.From(c.Request.Context(), zap.NewNop()).Error("RejectInactiveAccounts() error", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to check account"},
			)
			return
		}
		if u == nil || u.IsDisabled() {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "account disabled"},
			)
			return
		}

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != role {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "forbidden"},
			)
			return
		}

		c.Next()
	}
}

func UserID(c *gin.Context) string { return c.GetString(CtxUserID) }
