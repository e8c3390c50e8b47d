package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationApplicationReceived = "application_received"
	NotificationApplicationAccepted = "application_accepted"
	NotificationApplicationRejected = "application_rejected"
)

// Notification is an in-app message for a user. Metadata carries the related
// ids (project_id, application_id) so related rows can be cleaned up when a
// project or user is deleted.
type Notification struct {
	gorm.Model

	UserID   uint   `gorm:"not null;index"`
	Type     string `gorm:"not null"`
	Message  string `gorm:"not null"`
	Read     bool   `gorm:"not null;default:false"`
	Metadata datatypes.JSON

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
