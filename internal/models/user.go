package models

import (
	"encoding/json"

	"github.com/teamboard-dev/teamboard/internal/matching"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
	RoleMember = "member"

	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOwner || role == RoleMember
}

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	PasswordSalt string
	Role         string `gorm:"not null;default:member"`
	Status       string `gorm:"not null;default:active"`

	// Profile fields. The JSON columns hold a string array (skills), a string
	// array of trait codes (strengths), an object with a "type" key
	// (sixteen_type) and a free-form object (availability).
	Bio             string
	Skills          datatypes.JSON
	Strengths       datatypes.JSON
	SixteenType     datatypes.JSON
	ExperienceYears int `gorm:"not null;default:0"`
	Availability    datatypes.JSON

	// Relationships
	OwnedProjects  []Project       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Participations []Participation `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications  []Notification  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// MatchProfile decodes the profile columns into the scorer's input. Columns
// that are NULL or hold malformed JSON are treated as unset, never as errors.
func (u *User) MatchProfile() *matching.Profile {
	p := &matching.Profile{ExperienceYears: u.ExperienceYears}

	_ = json.Unmarshal(u.Skills, &p.Skills)
	_ = json.Unmarshal(u.Strengths, &p.Strengths)

	var st struct {
		Type string `json:"type"`
	}
	if len(u.SixteenType) > 0 {
		if err := json.Unmarshal(u.SixteenType, &st); err == nil {
			p.PersonalityType = st.Type
		}
	}

	return p
}
