package models

import (
	"encoding/json"

	"github.com/teamboard-dev/teamboard/internal/matching"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project lifecycle statuses. Status is a plain string column; authorized
// writers may set other values, these are just the ones the board understands.
const (
	ProjectStatusRecruiting = "recruiting"
	ProjectStatusActive     = "active"
	ProjectStatusCompleted  = "completed"
)

type Project struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Category    string `gorm:"not null"`
	Status      string `gorm:"not null;default:recruiting"`
	OwnerID     *uint  `gorm:"index"`

	// Matching preferences, each a JSON string array.
	RequiredSkills     datatypes.JSON
	PreferredStrengths datatypes.JSON
	PreferredTypes     datatypes.JSON

	TeamSize        int `gorm:"not null;default:3"`
	DurationWeeks   int `gorm:"not null;default:8"`
	CommitmentHours int `gorm:"not null;default:10"`

	// Relationships
	Owner        *User           `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Participants []Participation `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// MatchPreferences decodes the preference columns into the scorer's input.
// NULL or malformed columns become empty lists.
func (p *Project) MatchPreferences() matching.Preferences {
	var prefs matching.Preferences

	_ = json.Unmarshal(p.RequiredSkills, &prefs.RequiredSkills)
	_ = json.Unmarshal(p.PreferredStrengths, &prefs.PreferredStrengths)
	_ = json.Unmarshal(p.PreferredTypes, &prefs.PreferredTypes)

	return prefs
}

// OwnerName returns the owner's display name when the owner is loaded.
func (p *Project) OwnerName() string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.Name
}

// OwnedBy reports whether userID owns the project. Projects whose owner was
// deleted are owned by nobody.
func (p *Project) OwnedBy(userID uint) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}
