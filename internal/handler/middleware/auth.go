package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"escrow-market/internal/domain/trader"
	"escrow-market/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxTraderIDKey   = "trader_id"
	ctxTraderRoleKey = "trader_role"
)

var roleHierarchy = map[trader.Role]int{
	trader.RoleTrader: 1,
	trader.RoleAdmin:  2,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		traderID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxTraderIDKey, traderID)
		c.Set(ctxTraderRoleKey, role)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole trader.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetTraderRole(c)
		if !ok {
			// Unexpected: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasMinimumRole(role, minRole trader.Role) bool {
	level, ok := roleHierarchy[role]
	minLevel, minOK := roleHierarchy[minRole]
	return ok && minOK && level >= minLevel
}

func GetTraderID(c *gin.Context) (uuid.UUID, bool) {
	traderID, exists := c.Get(ctxTraderIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := traderID.(uuid.UUID)
	return id, ok
}

func GetTraderRole(c *gin.Context) (trader.Role, bool) {
	traderRole, exists := c.Get(ctxTraderRoleKey)
	if !exists {
		return "", false
	}

	role, ok := traderRole.(trader.Role)
	return role, ok
}
