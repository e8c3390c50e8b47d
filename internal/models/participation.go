package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ParticipationApplied  = "applied"
	ParticipationAccepted = "accepted"
	ParticipationRejected = "rejected"
)

// Participation is the project/user join record. The composite unique index
// is what actually prevents duplicate applications; handlers only pre-check
// to produce a friendlier message.
type Participation struct {
	gorm.Model

	ProjectID uint `gorm:"not null;uniqueIndex:idx_project_participant"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_project_participant"`

	Status          string `gorm:"not null;default:applied"`
	RoleInProject   string `gorm:"not null"`
	Message         string
	ResponseMessage string
	JoinedAt        time.Time `gorm:"not null;autoCreateTime"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
