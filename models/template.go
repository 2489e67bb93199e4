package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BaseTemplate is a named ancestor used for cloning bookkeeping. Templates
// that reference one are treated as locked (no edit, no delete).
type BaseTemplate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (bt *BaseTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if bt.ID == uuid.Nil {
		bt.ID = uuid.New()
	}
	return
}

// FormTemplate owns an ordered collection of fields that clients are asked
// to fill out.
//
// BaseTemplateID is derivation bookkeeping only: it may reference a
// BaseTemplate row or the source template of a clone, so the column carries
// no foreign key. A template with BaseTemplateID set is locked.
type FormTemplate struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Description    string     `gorm:"type:text" json:"description,omitempty"`
	BaseTemplateID *uuid.UUID `gorm:"type:uuid;index" json:"baseTemplateId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Fields      []FormField      `gorm:"foreignKey:FormTemplateID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
	Assignments []FormAssignment `gorm:"foreignKey:FormTemplateID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

func (t *FormTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// IsLocked reports whether the template participates in a base/derived
// relationship and therefore cannot be edited or deleted.
func (t *FormTemplate) IsLocked() bool {
	return t.BaseTemplateID != nil
}

// FormField is a single typed entry in a template. OptionsJson carries the
// choice list for Dropdown/Radio fields. FieldOrder is caller-assigned and
// never renumbered; gaps left by deletions are kept.
type FormField struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FormTemplateID uuid.UUID      `gorm:"type:uuid;not null;index" json:"formTemplateId"`
	Label          string         `gorm:"size:255;not null" json:"label"`
	FieldTypeID    uuid.UUID      `gorm:"type:uuid;not null" json:"fieldTypeId"`
	FieldType      *FieldType     `gorm:"foreignKey:FieldTypeID" json:"fieldType,omitempty"`
	IsRequired     bool           `gorm:"default:false" json:"isRequired"`
	OptionsJson    datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	FieldOrder     int            `gorm:"not null;default:0" json:"fieldOrder"`
}

func (f *FormField) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
