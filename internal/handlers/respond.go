package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
)

// Every response uses the {success, data?, error?} envelope the clients
// already consume.

func respond(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(ctx *gin.Context, status int, code, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"error":   types.APIError{Code: code, Message: message},
	})
}

func userResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		Roles:  []string{user.Role},
		Status: user.Status,
	}
}
