package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment workflow statuses. Status is free-form text in storage; these
// are the values the portal itself writes.
const (
	AssignmentStatusPending   = "Pending"
	AssignmentStatusSubmitted = "Submitted"
)

// FormAssignment binds one template to one client. The (client, template)
// pair is unique: a template cannot be assigned twice to the same client.
type FormAssignment struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID       uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_client_template" json:"clientId"`
	Client         *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	FormTemplateID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_client_template" json:"formTemplateId"`
	FormTemplate   *FormTemplate `gorm:"foreignKey:FormTemplateID" json:"formTemplate,omitempty"`
	AssignedAt     time.Time     `gorm:"not null" json:"assignedAt"`
	Status         string        `gorm:"size:50;not null;default:'Pending'" json:"status"`
	Notes          string        `gorm:"type:text" json:"notes,omitempty"`

	Submissions []Submission `gorm:"foreignKey:FormAssignmentID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
}

func (a *FormAssignment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
