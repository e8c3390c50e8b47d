package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/auth"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
	"github.com/teamboard-dev/teamboard/internal/utils"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// SignupUser is public self-registration. New accounts always get the member
// role and an immediate login token.
func SignupUser(ctx *gin.Context) {
	var req SignupRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Name, email and a password of at least 8 characters are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User

	err := db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Email is already registered")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("Failed to check existing user")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	hash, salt, err := auth.HashPassword(req.Password, "")

	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         models.RoleMember,
		Status:       models.StatusActive,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Name, user.Role)

	if err != nil {
		log.Error().Err(err).Msg("Failed to generate token")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusCreated, gin.H{
		"user":  userResponse(user),
		"token": token,
	})
}

// LoginUser checks credentials and issues a bearer token. Rows with a salt
// are verified against the salted digest. Saltless rows hold the transitional
// plaintext "hash" and are only honored when ALLOW_PLAINTEXT_LOGIN=true.
func LoginUser(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Email and password are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := db.DB.Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "Invalid email or password")
			return
		}
		log.Error().Err(err).Msg("Failed to fetch user")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	if user.Status == models.StatusSuspended {
		respondError(ctx, http.StatusForbidden, types.CodeSuspended, "Account is suspended")
		return
	}

	valid := false

	switch {
	case user.PasswordSalt != "":
		valid = auth.VerifyPassword(req.Password, user.PasswordHash, user.PasswordSalt)
	case plaintextLoginAllowed():
		valid = req.Password == user.PasswordHash
		if valid {
			log.Warn().Uint("user_id", user.ID).Msg("Plaintext password login accepted; migrate this account to a salted hash")
		}
	}

	if !valid {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Name, user.Role)

	if err != nil {
		log.Error().Err(err).Msg("Failed to generate token")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusOK, gin.H{
		"user":  userResponse(user),
		"token": token,
	})
}

// Me returns a fresh snapshot of the authenticated user.
func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not found")
		return
	}

	respond(ctx, http.StatusOK, gin.H{"user": userResponse(user)})
}

// RegisterUser creates an account with an explicit role. Admin only; serves
// both POST /auth/register and POST /users.
func RegisterUser(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Name, email and a password of at least 8 characters are required")
		return
	}

	if req.Role == "" {
		req.Role = models.RoleMember
	}

	if !models.ValidRole(req.Role) {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid role")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User

	err := db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Email is already registered")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("Failed to check existing user")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	hash, salt, err := auth.HashPassword(req.Password, "")

	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         req.Role,
		Status:       models.StatusActive,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusCreated, gin.H{"user": userResponse(user)})
}

func plaintextLoginAllowed() bool {
	return os.Getenv("ALLOW_PLAINTEXT_LOGIN") == "true"
}
