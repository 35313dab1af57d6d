package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workspace mirrors an identity-provider organization.
type Workspace struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(255)" json:"slug"`
	OwnerID   string    `gorm:"type:varchar(64);index;not null" json:"ownerId"`
	ImageURL  string    `gorm:"type:text" json:"image_url"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Owner    *User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members  []WorkspaceMember `json:"members,omitempty"`
	Projects []Project         `json:"projects,omitempty"`
}

type WorkspaceMember struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	WorkspaceID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_workspace_member" json:"workspaceId"`
	UserID      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_workspace_member;index" json:"userId"`
	Role        Role      `gorm:"type:varchar(16);not null;default:MEMBER" json:"role"`
	AddedBy     *string   `gorm:"type:varchar(64)" json:"addedBy"`
	Message     *string   `gorm:"type:text;comment:邀请附言" json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *WorkspaceMember) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Role == "" {
		m.Role = RoleMember
	}
	return nil
}
