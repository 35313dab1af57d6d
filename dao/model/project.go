package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          string        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	WorkspaceID string        `gorm:"type:varchar(64);not null;index" json:"workspaceId"`
	Name        string        `gorm:"type:varchar(255);not null;comment:项目名" json:"name"`
	Description string        `gorm:"type:text;comment:项目描述" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(32);not null;default:ACTIVE" json:"status"`
	Priority    Priority      `gorm:"type:varchar(16);not null;default:MEDIUM" json:"priority"`
	// Progress is 0-100 by convention only.
	Progress  int        `gorm:"not null;default:0" json:"progress"`
	TeamLead  *string    `gorm:"column:team_lead;type:varchar(64);index" json:"team_lead"`
	StartDate *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Owner   *User           `gorm:"foreignKey:TeamLead" json:"owner,omitempty"`
	Members []ProjectMember `json:"members,omitempty"`
	Tasks   []Task          `json:"tasks,omitempty"`
}

func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectActive
	}
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	return nil
}

// IsTeamLead reports whether userID leads the project.
func (p *Project) IsTeamLead(userID string) bool {
	return p.TeamLead != nil && *p.TeamLead != "" && *p.TeamLead == userID
}

// ProjectMember is a subset relationship: its user must also be a member of
// the project's workspace. That is checked when the row is added, not by the
// schema.
type ProjectMember struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_project_member" json:"projectId"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_project_member;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *ProjectMember) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
