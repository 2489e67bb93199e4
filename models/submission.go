package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity action types written by the portal.
const (
	ActionSubmit = "Submit"
	ActionEdit   = "Edit"
)

// Submission is one instance of filled-in answers against an assignment.
// DataJson is an opaque field-label-keyed JSON object; the portal stores it
// verbatim and never interprets individual values.
type Submission struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FormAssignmentID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"formAssignmentId"`
	FormAssignment    *FormAssignment `gorm:"foreignKey:FormAssignmentID" json:"formAssignment,omitempty"`
	SubmittedByUserID string          `gorm:"size:64;not null;index" json:"submittedByUserId"`
	DataJson          datatypes.JSON  `gorm:"type:jsonb;not null" json:"dataJson"`
	SubmittedAt       time.Time       `gorm:"not null;index" json:"submittedAt"`

	Files             []SubmissionFile  `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	ActivityHistories []ActivityHistory `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"activityHistories,omitempty"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ActivityHistory is a write-once audit record appended alongside every
// submission create/edit. Rows are never updated or deleted.
type ActivityHistory struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"submissionId"`
	PerformedByUserID string         `gorm:"size:64;not null;index" json:"performedByUserId"`
	ActionType        string         `gorm:"size:20;not null" json:"actionType"`
	Description       string         `gorm:"type:text" json:"description,omitempty"`
	DataSnapshot      datatypes.JSON `gorm:"type:jsonb" json:"dataSnapshot,omitempty"`
	PerformedAt       time.Time      `gorm:"not null;index" json:"performedAt"`
}

func (ActivityHistory) TableName() string {
	return "activity_histories"
}

func (h *ActivityHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return
}

// SubmissionFile is an uploaded attachment tied to a submission.
type SubmissionFile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID     uuid.UUID `gorm:"type:uuid;not null;index" json:"submissionId"`
	FilePath         string    `gorm:"size:512;not null" json:"filePath"`
	OriginalFileName string    `gorm:"size:255;not null" json:"originalFileName"`
	UploadedAt       time.Time `gorm:"not null" json:"uploadedAt"`
}

func (f *SubmissionFile) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
