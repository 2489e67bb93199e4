// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portal roles. Admins manage templates and clients; client users fill forms.
const (
	RoleAdmin  = "Admin"
	RoleClient = "Client"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:20;not null;default:'Client'" json:"role"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`
	Client       *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
