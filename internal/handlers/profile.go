package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/matching"
	"github.com/teamboard-dev/teamboard/internal/models"
	"github.com/teamboard-dev/teamboard/internal/types"
	"github.com/teamboard-dev/teamboard/internal/utils"
)

const maxStrengths = 5

type ProfileResponse struct {
	ID              uint            `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Role            string          `json:"role"`
	Status          string          `json:"status"`
	Bio             string          `json:"bio"`
	Strengths       []string        `json:"strengths_finder"`
	SixteenType     json.RawMessage `json:"sixteen_types"`
	Skills          []string        `json:"skills"`
	ExperienceYears int             `json:"experience_years"`
	Availability    json.RawMessage `json:"availability"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type UpdateProfileRequest struct {
	Name            string          `json:"name" binding:"required"`
	Bio             string          `json:"bio"`
	Strengths       []string        `json:"strengths_finder"`
	SixteenType     json.RawMessage `json:"sixteen_types"`
	Skills          []string        `json:"skills"`
	ExperienceYears int             `json:"experience_years"`
	Availability    json.RawMessage `json:"availability"`
}

func GetProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		respondError(ctx, http.StatusNotFound, types.CodeNotFound, "User profile not found")
		return
	}

	respond(ctx, http.StatusOK, gin.H{"profile": profileResponse(user)})
}

func UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.CodeAuth, "User not authenticated")
		return
	}

	var req UpdateProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	if utf8.RuneCountInString(req.Name) < 2 {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Name must be at least 2 characters")
		return
	}

	if req.ExperienceYears < 0 {
		respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Experience years must not be negative")
		return
	}

	if len(req.Strengths) > 0 {
		if msg, ok := validateStrengths(req.Strengths); !ok {
			respondError(ctx, http.StatusBadRequest, types.CodeValidation, msg)
			return
		}
	}

	if len(req.SixteenType) > 0 && string(req.SixteenType) != "null" {
		var st struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(req.SixteenType, &st); err != nil || !matching.IsPersonalityTypeCode(st.Type) {
			respondError(ctx, http.StatusBadRequest, types.CodeValidation, "Invalid personality type")
			return
		}
	}

	updates := map[string]interface{}{
		"name":             req.Name,
		"bio":              req.Bio,
		"strengths":        marshalOrNull(req.Strengths),
		"sixteen_type":     rawOrNull(req.SixteenType),
		"skills":           marshalOrNull(req.Skills),
		"experience_years": req.ExperienceYears,
		"availability":     rawOrNull(req.Availability),
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", currentUser.ID).Updates(updates).Error; err != nil {
		log.Error().Err(err).Uint("user_id", currentUser.ID).Msg("Failed to update profile")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		log.Error().Err(err).Uint("user_id", currentUser.ID).Msg("Failed to reload profile")
		respondError(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	respond(ctx, http.StatusOK, gin.H{
		"profile": profileResponse(user),
		"message": "Profile updated",
	})
}

// validateStrengths enforces the selection rule: exactly five distinct codes
// from the StrengthsFinder catalog.
func validateStrengths(codes []string) (string, bool) {
	if len(codes) != maxStrengths {
		return "Exactly 5 StrengthsFinder traits must be selected", false
	}

	seen := make(map[string]struct{}, len(codes))

	for _, code := range codes {
		if !matching.IsStrengthCode(code) {
			return "Unknown StrengthsFinder trait: " + code, false
		}
		if _, dup := seen[code]; dup {
			return "StrengthsFinder traits must be distinct", false
		}
		seen[code] = struct{}{}
	}

	return "", true
}

func profileResponse(user models.User) ProfileResponse {
	resp := ProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Role:            user.Role,
		Status:          user.Status,
		Bio:             user.Bio,
		Strengths:       []string{},
		SixteenType:     json.RawMessage("null"),
		Skills:          []string{},
		ExperienceYears: user.ExperienceYears,
		Availability:    json.RawMessage("{}"),
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}

	_ = json.Unmarshal(user.Strengths, &resp.Strengths)
	_ = json.Unmarshal(user.Skills, &resp.Skills)

	if len(user.SixteenType) > 0 {
		resp.SixteenType = json.RawMessage(user.SixteenType)
	}
	if len(user.Availability) > 0 {
		resp.Availability = json.RawMessage(user.Availability)
	}

	return resp
}

// marshalOrNull maps a missing list to SQL NULL, matching how the rows were
// written historically.
func marshalOrNull(list []string) interface{} {
	if list == nil {
		return nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	return raw
}

func rawOrNull(raw json.RawMessage) interface{} {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return []byte(raw)
}
