package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/auth"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthMiddleware extracts the Bearer token, verifies it and loads a fresh
// user row so role and status changes take effect on the next request.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abortUnauthorized(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := auth.VerifyToken(parts[1])

		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				abortUnauthorized(ctx, "Token has expired")
			case errors.Is(err, auth.ErrTokenSignature):
				abortUnauthorized(ctx, "Token signature is invalid")
			default:
				abortUnauthorized(ctx, "Token is malformed")
			}
			return
		}

		var user models.User

		if err := db.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			abortUnauthorized(ctx, "User not found")
			return
		}

		if user.Status == models.StatusSuspended {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   types.APIError{Code: types.CodeSuspended, Message: "Account is suspended"},
			})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		ctx.Next()
	}
}

// RequireAdmin gates a route group to administrators. It must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		v, exists := ctx.Get(types.ContextUserKey)
		user, ok := v.(AuthenticatedUser)

		if !exists || !ok || user.Role != models.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   types.APIError{Code: types.CodeForbidden, Message: "Administrator privileges are required"},
			})
			return
		}

		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   types.APIError{Code: types.CodeAuth, Message: message},
	})
}
