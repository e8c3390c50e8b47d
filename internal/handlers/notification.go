package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
	"github.com/teamboard-dev/teamboard/internal/utils"
)

const notificationPageSize = 50

type NotificationResponse struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Read      bool            `json:"read"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"created_at"`
}

func ListNotifications(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var notifications []models.Notification

	err = db.DB.Where("user_id = ?", currentUser.ID).
		Order("created_at DESC").
		Limit(notificationPageSize).
		Find(&notifications).Error

	if err != nil {
		log.Error().Err(err).Msg("Failed to list notifications")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))

	for _, n := range notifications {
		responses = append(responses, notificationResponse(n))
	}

	respond(ctx, http.StatusOK, gin.H{"notifications": responses})
}

func MarkNotificationRead(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	notificationID, err := utils.GetNotificationID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid notification ID")
		return
	}

	result := db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, currentUser.ID).
		Update("read", true)

	if result.Error != nil {
		log.Error().Err(result.Error).Uint("notification_id", notificationID).Msg("Failed to mark notification read")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	if result.RowsAffected == 0 {
		respondError(ctx, http.StatusNotFound, types.CodeNotFound, "Notification not found")
		return
	}

	respond(ctx, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func notificationResponse(n models.Notification) NotificationResponse {
	metadata := json.RawMessage("{}")

	if len(n.Metadata) > 0 {
		metadata = json.RawMessage(n.Metadata)
	}

	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		Read:      n.Read,
		Metadata:  metadata,
		CreatedAt: n.CreatedAt,
	}
}
