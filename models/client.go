package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Client is one customer organization the portal serves.
type Client struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	ContactEmails pq.StringArray `gorm:"type:text[]" json:"contactEmails,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	Assignments []FormAssignment `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
