package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldType is one entry in the fixed catalog of field kinds a form field
// can take (Text, Number, Date, Dropdown, Checkbox, Radio, Email, Phone).
// Rows are seeded once at startup and never deleted while referenced.
type FieldType struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	DisplayOrder int       `gorm:"default:0" json:"displayOrder"`
}

func (FieldType) TableName() string {
	return "field_types"
}

func (ft *FieldType) BeforeCreate(tx *gorm.DB) (err error) {
	if ft.ID == uuid.Nil {
		ft.ID = uuid.New()
	}
	return
}
