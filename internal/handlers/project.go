package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/matching"
	"github.com/teamboard-dev/teamboard/internal/middleware"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
	"github.com/teamboard-dev/teamboard/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	Category           string   `json:"category" binding:"required"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredStrengths []string `json:"preferred_strengths"`
	PreferredTypes     []string `json:"preferred_types"`
	TeamSize           int      `json:"team_size"`
	DurationWeeks      int      `json:"duration_weeks"`
	CommitmentHours    int      `json:"commitment_hours"`
}

type UpdateProjectRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	Category           string   `json:"category" binding:"required"`
	Status             string   `json:"status" binding:"required"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredStrengths []string `json:"preferred_strengths"`
	PreferredTypes     []string `json:"preferred_types"`
	TeamSize           int      `json:"team_size"`
	DurationWeeks      int      `json:"duration_weeks"`
	CommitmentHours    int      `json:"commitment_hours"`
}

type ProjectSummary struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	Status             string    `json:"status"`
	OwnerName          string    `json:"owner_name"`
	RequiredSkills     []string  `json:"required_skills"`
	PreferredStrengths []string  `json:"preferred_strengths"`
	PreferredTypes     []string  `json:"preferred_types"`
	TeamSize           int       `json:"team_size"`
	DurationWeeks      int       `json:"duration_weeks"`
	CommitmentHours    int       `json:"commitment_hours"`
	CurrentMembers     int       `json:"current_members"`
	MatchScore         int       `json:"match_score"`
	MatchReasons       []string  `json:"match_reasons"`
	CreatedAt          time.Time `json:"created_at"`
}

// ListProjects is the project board: recruiting and active projects, newest
// first, each annotated with the caller's match score and reasons.
func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	var projects []models.Project

	err = db.DB.Preload("Owner").
		Where("status IN ?", []string{models.ProjectStatusRecruiting, models.ProjectStatusActive}).
		Order("created_at DESC").
		Find(&projects).Error

	if err != nil {
		log.Error().Err(err).Msg("Failed to list projects")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	memberCounts, err := participationCounts(models.ParticipationAccepted)

	if err != nil {
		log.Error().Err(err).Msg("Failed to count project members")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	profile := user.MatchProfile()
	summaries := make([]ProjectSummary, 0, len(projects))

	for _, project := range projects {
		prefs := project.MatchPreferences()

		summary := projectSummary(project, memberCounts[project.ID])
		summary.MatchScore = matching.Score(profile, prefs)
		summary.MatchReasons = matching.Reasons(profile, prefs)

		summaries = append(summaries, summary)
	}

	respond(ctx, http.StatusOK, gin.H{"projects": summaries})
}

func CreateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Title, description and category are required")
		return
	}

	if req.TeamSize <= 0 {
		req.TeamSize = 3
	}
	if req.DurationWeeks <= 0 {
		req.DurationWeeks = 8
	}
	if req.CommitmentHours <= 0 {
		req.CommitmentHours = 10
	}

	ownerID := currentUser.ID
	project := models.Project{
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category,
		Status:             models.ProjectStatusRecruiting,
		OwnerID:            &ownerID,
		RequiredSkills:     marshalList(req.RequiredSkills),
		PreferredStrengths: marshalList(req.PreferredStrengths),
		PreferredTypes:     marshalList(req.PreferredTypes),
		TeamSize:           req.TeamSize,
		DurationWeeks:      req.DurationWeeks,
		CommitmentHours:    req.CommitmentHours,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create project")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusCreated, gin.H{"project": projectSummary(project, 0)})
}

func UpdateProject(ctx *gin.Context) {
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

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Title, description, category and status are required")
		return
	}

	project, ok := loadProjectForWrite(ctx, projectID, currentUser)

	if !ok {
		return
	}

	updates := map[string]interface{}{
		"title":               req.Title,
		"description":         req.Description,
		"category":            req.Category,
		"status":              req.Status,
		"required_skills":     marshalList(req.RequiredSkills),
		"preferred_strengths": marshalList(req.PreferredStrengths),
		"preferred_types":     marshalList(req.PreferredTypes),
		"team_size":           req.TeamSize,
		"duration_weeks":      req.DurationWeeks,
		"commitment_hours":    req.CommitmentHours,
	}

	if err := db.DB.Model(&project).Updates(updates).Error; err != nil {
		log.Error().Err(err).Uint("project_id", projectID).Msg("Failed to update project")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusOK, gin.H{"message": "Project updated"})
}

// DeleteProject removes the project together with its participations and any
// notifications that reference it, in one transaction.
func DeleteProject(ctx *gin.Context) {
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

	project, ok := loadProjectForWrite(ctx, projectID, currentUser)

	if !ok {
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		if err := tx.Where(datatypes.JSONQuery("metadata").Equals(project.ID, "project_id")).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})

	if err != nil {
		log.Error().Err(err).Uint("project_id", projectID).Msg("Failed to delete project")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusOK, gin.H{"message": "Project deleted"})
}

type OwnedProjectSummary struct {
	ProjectSummary
	PendingApplications int `json:"pending_applications"`
}

// MyOwnedProjects backs the owner dashboard: the caller's projects with
// accepted-member and pending-application counts.
func MyOwnedProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var projects []models.Project

	err = db.DB.Where("owner_id = ?", currentUser.ID).Order("created_at DESC").Find(&projects).Error

	if err != nil {
		log.Error().Err(err).Msg("Failed to list owned projects")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	memberCounts, err := participationCounts(models.ParticipationAccepted)

	if err != nil {
		log.Error().Err(err).Msg("Failed to count project members")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	pendingCounts, err := participationCounts(models.ParticipationApplied)

	if err != nil {
		log.Error().Err(err).Msg("Failed to count pending applications")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	summaries := make([]OwnedProjectSummary, 0, len(projects))

	for _, project := range projects {
		summaries = append(summaries, OwnedProjectSummary{
			ProjectSummary:      projectSummary(project, memberCounts[project.ID]),
			PendingApplications: pendingCounts[project.ID],
		})
	}

	respond(ctx, http.StatusOK, gin.H{"projects": summaries})
}

type JoinedProjectSummary struct {
	ProjectSummary
	RoleInProject       string    `json:"role_in_project"`
	ParticipationStatus string    `json:"participation_status"`
	JoinedAt            time.Time `json:"joined_at"`
}

// MyJoinedProjects lists the projects the caller has been accepted into.
func MyJoinedProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var participations []models.Participation

	err = db.DB.Preload("Project").Preload("Project.Owner").
		Where("user_id = ? AND status = ?", currentUser.ID, models.ParticipationAccepted).
		Order("joined_at DESC").
		Find(&participations).Error

	if err != nil {
		log.Error().Err(err).Msg("Failed to list joined projects")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	memberCounts, err := participationCounts(models.ParticipationAccepted)

	if err != nil {
		log.Error().Err(err).Msg("Failed to count project members")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	summaries := make([]JoinedProjectSummary, 0, len(participations))

	for _, participation := range participations {
		summaries = append(summaries, JoinedProjectSummary{
			ProjectSummary:      projectSummary(participation.Project, memberCounts[participation.ProjectID]),
			RoleInProject:       participation.RoleInProject,
			ParticipationStatus: participation.Status,
			JoinedAt:            participation.JoinedAt,
		})
	}

	respond(ctx, http.StatusOK, gin.H{"projects": summaries})
}

type ParticipantResponse struct {
	ID              uint      `json:"id"`
	Status          string    `json:"status"`
	RoleInProject   string    `json:"role_in_project"`
	Message         string    `json:"message"`
	ResponseMessage string    `json:"response_message"`
	JoinedAt        time.Time `json:"joined_at"`
	UserID          uint      `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserEmail       string    `json:"user_email"`
}

func GetParticipants(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid project ID")
		return
	}

	var participations []models.Participation

	err = db.DB.Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at DESC").
		Find(&participations).Error

	if err != nil {
		log.Error().Err(err).Uint("project_id", projectID).Msg("Failed to list participants")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	participants := make([]ParticipantResponse, 0, len(participations))

	for _, p := range participations {
		participants = append(participants, ParticipantResponse{
			ID:              p.ID,
			Status:          p.Status,
			RoleInProject:   p.RoleInProject,
			Message:         p.Message,
			ResponseMessage: p.ResponseMessage,
			JoinedAt:        p.JoinedAt,
			UserID:          p.UserID,
			UserName:        p.User.Name,
			UserEmail:       p.User.Email,
		})
	}

	respond(ctx, http.StatusOK, gin.H{"participants": participants})
}

// loadProjectForWrite fetches a project and enforces the owner-or-admin write
// rule, writing the error response itself on failure.
func loadProjectForWrite(ctx *gin.Context, projectID uint, currentUser middleware.AuthenticatedUser) (models.Project, bool) {
	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, types.CodeNotFound, "Project not found")
		} else {
			log.Error().Err(err).Uint("project_id", projectID).Msg("Failed to fetch project")
			respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		}
		return models.Project{}, false
	}

	if !project.OwnedBy(currentUser.ID) && currentUser.Role != models.RoleAdmin {
		respondError(ctx, http.StatusForbidden, types.CodeForbidden, "You do not have permission to modify this project")
		return models.Project{}, false
	}

	return project, true
}

// participationCounts returns a project-id keyed count of participations in
// the given status.
func participationCounts(status string) (map[uint]int, error) {
	type row struct {
		ProjectID uint
		Total     int
	}

	var rows []row

	err := db.DB.Model(&models.Participation{}).
		Select("project_id, COUNT(*) AS total").
		Where("status = ?", status).
		Group("project_id").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))

	for _, r := range rows {
		counts[r.ProjectID] = r.Total
	}

	return counts, nil
}

func projectSummary(project models.Project, members int) ProjectSummary {
	prefs := project.MatchPreferences()

	return ProjectSummary{
		ID:                 project.ID,
		Title:              project.Title,
		Description:        project.Description,
		Category:           project.Category,
		Status:             project.Status,
		OwnerName:          project.OwnerName(),
		RequiredSkills:     emptyIfNil(prefs.RequiredSkills),
		PreferredStrengths: emptyIfNil(prefs.PreferredStrengths),
		PreferredTypes:     emptyIfNil(prefs.PreferredTypes),
		TeamSize:           project.TeamSize,
		DurationWeeks:      project.DurationWeeks,
		CommitmentHours:    project.CommitmentHours,
		CurrentMembers:     members,
		CreatedAt:          project.CreatedAt,
	}
}

func marshalList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
