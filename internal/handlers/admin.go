package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/auth"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
	"github.com/teamboard-dev/teamboard/internal/utils"
	"gorm.io/gorm"
)

type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Status   string `json:"status" binding:"required"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type AdminUserResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Roles          []string  `json:"roles"`
	Status         string    `json:"status"`
	JoinedProjects int       `json:"joined_projects"`
	OwnedProjects  int       `json:"owned_projects"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListUsers returns every account with joined/owned project counts for the
// admin dashboard.
func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	joinedCounts, err := userParticipationCounts()

	if err != nil {
		log.Error().Err(err).Msg("Failed to count participations")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ownedCounts, err := userOwnedProjectCounts()

	if err != nil {
		log.Error().Err(err).Msg("Failed to count owned projects")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	responses := make([]AdminUserResponse, 0, len(users))

	for _, user := range users {
		responses = append(responses, AdminUserResponse{
			ID:             user.ID,
			Name:           user.Name,
			Email:          user.Email,
			Role:           user.Role,
			Roles:          []string{user.Role},
			Status:         user.Status,
			JoinedProjects: joinedCounts[user.ID],
			OwnedProjects:  ownedCounts[user.ID],
			CreatedAt:      user.CreatedAt,
		})
	}

	respond(ctx, http.StatusOK, gin.H{"users": responses})
}

// UpdateUser rewrites an account's identity fields. A password, when
// supplied, is stored as a fresh salted hash, never verbatim.
func UpdateUser(ctx *gin.Context) {
	targetID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid user ID")
		return
	}

	var req UpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Email, name, role and status are required")
		return
	}

	if !models.ValidRole(req.Role) {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid role")
		return
	}

	if req.Status != models.StatusActive && req.Status != models.StatusSuspended {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid status")
		return
	}

	target, ok := loadUser(ctx, targetID)

	if !ok {
		return
	}

	updates := map[string]interface{}{
		"email":  strings.ToLower(strings.TrimSpace(req.Email)),
		"name":   req.Name,
		"role":   req.Role,
		"status": req.Status,
	}

	if req.Password != "" {
		hash, salt, err := auth.HashPassword(req.Password, "")
		if err != nil {
			log.Error().Err(err).Msg("Failed to hash password")
			respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
			return
		}
		updates["password_hash"] = hash
		updates["password_salt"] = salt
	}

	if err := db.DB.Model(&target).Updates(updates).Error; err != nil {
		log.Error().Err(err).Uint("user_id", targetID).Msg("Failed to update user")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusOK, gin.H{"message": "User updated"})
}

// DeleteUser removes an account and its dependent rows; owned projects are
// detached rather than deleted so a running project survives its owner.
func DeleteUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	targetID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid user ID")
		return
	}

	if currentUser.ID == targetID {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "You cannot delete your own account")
		return
	}

	target, ok := loadUser(ctx, targetID)

	if !ok {
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", target.ID).Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", target.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Project{}).Where("owner_id = ?", target.ID).Update("owner_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})

	if err != nil {
		log.Error().Err(err).Uint("user_id", targetID).Msg("Failed to delete user")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusOK, gin.H{"message": "User deleted"})
}

func ChangeUserPassword(ctx *gin.Context) {
	targetID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid user ID")
		return
	}

	var req ChangePasswordRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "A password of at least 8 characters is required")
		return
	}

	target, ok := loadUser(ctx, targetID)

	if !ok {
		return
	}

	hash, salt, err := auth.HashPassword(req.Password, "")

	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	updates := map[string]interface{}{
		"password_hash": hash,
		"password_salt": salt,
	}

	if err := db.DB.Model(&target).Updates(updates).Error; err != nil {
		log.Error().Err(err).Uint("user_id", targetID).Msg("Failed to change password")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusOK, gin.H{"message": fmt.Sprintf("Password changed for %s", target.Name)})
}

// ResetUserPassword sets a random temporary password and returns it once in
// the response; there is no email delivery here.
func ResetUserPassword(ctx *gin.Context) {
	targetID, err := utils.GetUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid user ID")
		return
	}

	target, ok := loadUser(ctx, targetID)

	if !ok {
		return
	}

	tempPassword, err := generateTempPassword()

	if err != nil {
		log.Error().Err(err).Msg("Failed to generate temporary password")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	hash, salt, err := auth.HashPassword(tempPassword, "")

	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	updates := map[string]interface{}{
		"password_hash": hash,
		"password_salt": salt,
	}

	if err := db.DB.Model(&target).Updates(updates).Error; err != nil {
		log.Error().Err(err).Uint("user_id", targetID).Msg("Failed to reset password")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Password reset for %s", target.Name),
		"temp_password": tempPassword,
		"user_email":    target.Email,
	})
}

func loadUser(ctx *gin.Context, userID uint) (models.User, bool) {
	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, types.CodeNotFound, "User not found")
		} else {
			log.Error().Err(err).Uint("user_id", userID).Msg("Failed to fetch user")
			respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		}
		return models.User{}, false
	}

	return user, true
}

func userParticipationCounts() (map[uint]int, error) {
	type row struct {
		UserID uint
		Total  int
	}

	var rows []row

	err := db.DB.Model(&models.Participation{}).
		Select("user_id, COUNT(*) AS total").
		Where("status = ?", models.ParticipationAccepted).
		Group("user_id").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))

	for _, r := range rows {
		counts[r.UserID] = r.Total
	}

	return counts, nil
}

func userOwnedProjectCounts() (map[uint]int, error) {
	type row struct {
		OwnerID uint
		Total   int
	}

	var rows []row

	err := db.DB.Model(&models.Project{}).
		Select("owner_id, COUNT(*) AS total").
		Where("owner_id IS NOT NULL").
		Group("owner_id").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))

	for _, r := range rows {
		counts[r.OwnerID] = r.Total
	}

	return counts, nil
}

const tempPasswordChars = "abcdefghijklmnopqrstuvwxyz0123456789"

func generateTempPassword() (string, error) {
	// Bytes at or above the largest multiple of the alphabet size are
	// rejected to keep the character selection uniform.
	const limit = 256 - 256%len(tempPasswordChars)

	out := make([]byte, 0, 8)
	buf := make([]byte, 1)

	for len(out) < cap(out) {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		if int(buf[0]) >= limit {
			continue
		}
		out = append(out, tempPasswordChars[int(buf[0])%len(tempPasswordChars)])
	}

	return string(out), nil
}
