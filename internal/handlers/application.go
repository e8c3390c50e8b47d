package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/services"
	"github.com/teamboard-dev/teamboard/internal/types"
	"github.com/teamboard-dev/teamboard/internal/utils"
	"gorm.io/gorm"
)

type ApplyRequest struct {
	ProjectID     uint   `json:"project_id"`
	RoleInProject string `json:"role_in_project"`
	Message       string `json:"message"`
}

type RespondApplicationRequest struct {
	Status          string `json:"status" binding:"required"`
	ResponseMessage string `json:"response_message"`
}

// CreateApplication handles both POST /applications (project_id in the body)
// and POST /projects/:project_id/apply. The application starts as "applied";
// the owner accepts or rejects it separately.
func CreateApplication(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var req ApplyRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid request")
		return
	}

	if ctx.Param("project_id") != "" {
		projectID, err := utils.GetProjectID(ctx)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid project ID")
			return
		}
		req.ProjectID = projectID
	}

	if req.ProjectID == 0 || req.RoleInProject == "" {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Project ID and role are required")
		return
	}

	var project models.Project

	if err := db.DB.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, types.CodeNotFound, "Project not found")
		} else {
			log.Error().Err(err).Uint("project_id", req.ProjectID).Msg("Failed to fetch project")
			respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		}
		return
	}

	if project.Status != models.ProjectStatusRecruiting {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "This project is not recruiting")
		return
	}

	// Friendly pre-check only; the unique index is the real guard.
	var existing models.Participation

	err = db.DB.Where("project_id = ? AND user_id = ?", project.ID, currentUser.ID).First(&existing).Error

	if err == nil {
		respondError(ctx, http.StatusConflict, types.CodeConflict, "You have already applied to this project")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("Failed to check existing application")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	participation := models.Participation{
		ProjectID:     project.ID,
		UserID:        currentUser.ID,
		Status:        models.ParticipationApplied,
		RoleInProject: req.RoleInProject,
		Message:       req.Message,
	}

	if err := db.DB.Create(&participation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(ctx, http.StatusConflict, types.CodeConflict, "You have already applied to this project")
			return
		}
		log.Error().Err(err).Msg("Failed to create application")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	if project.OwnerID != nil && *project.OwnerID != currentUser.ID {
		notifyUser(*project.OwnerID, models.NotificationApplicationReceived,
			fmt.Sprintf("%s applied to %s", currentUser.Name, project.Title),
			gin.H{"project_id": project.ID, "application_id": participation.ID, "applicant_id": currentUser.ID})
	}

	go services.NotifyApplicationReceived(project.Title, currentUser.Name, req.RoleInProject)

	respond(ctx, http.StatusCreated, gin.H{
		"message":     "Application submitted",
		"application": gin.H{"id": participation.ID, "status": participation.Status},
	})
}

// RespondToApplication lets the project owner (or an admin) accept or reject
// an application.
func RespondToApplication(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid project ID")
		return
	}

	applicationID, err := utils.GetApplicationID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid application ID")
		return
	}

	var req RespondApplicationRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Status is required")
		return
	}

	if req.Status != models.ParticipationAccepted && req.Status != models.ParticipationRejected {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Status must be accepted or rejected")
		return
	}

	project, ok := loadProjectForWrite(ctx, projectID, currentUser)

	if !ok {
		return
	}

	var participation models.Participation

	err = db.DB.Where("id = ? AND project_id = ?", applicationID, project.ID).First(&participation).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, types.CodeNotFound, "Application not found")
		} else {
			log.Error().Err(err).Uint("application_id", applicationID).Msg("Failed to fetch application")
			respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		}
		return
	}

	updates := map[string]interface{}{
		"status":           req.Status,
		"response_message": req.ResponseMessage,
	}

	if err := db.DB.Model(&participation).Updates(updates).Error; err != nil {
		log.Error().Err(err).Uint("application_id", applicationID).Msg("Failed to update application")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	notificationType := models.NotificationApplicationAccepted
	message := fmt.Sprintf("Your application to %s was accepted", project.Title)

	if req.Status == models.ParticipationRejected {
		notificationType = models.NotificationApplicationRejected
		message = fmt.Sprintf("Your application to %s was rejected", project.Title)
	}

	notifyUser(participation.UserID, notificationType, message,
		gin.H{"project_id": project.ID, "application_id": participation.ID})

	go services.NotifyApplicationResolved(project.Title, req.Status)

	respond(ctx, http.StatusOK, gin.H{
		"message": map[string]string{
			models.ParticipationAccepted: "Application accepted",
			models.ParticipationRejected: "Application rejected",
		}[req.Status],
	})
}

// notifyUser stores an in-app notification and pushes it to any websocket
// connections the user has open. Failures are logged, never surfaced: a lost
// notification must not fail the request that caused it.
func notifyUser(userID uint, notificationType, message string, metadata gin.H) {
	raw, err := json.Marshal(metadata)

	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal notification metadata")
		return
	}

	notification := models.Notification{
		UserID:   userID,
		Type:     notificationType,
		Message:  message,
		Metadata: raw,
	}

	if err := db.DB.Create(&notification).Error; err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("Failed to store notification")
		return
	}

	PushNotification(userID, notification)
}
