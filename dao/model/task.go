package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID          string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID   string     `gorm:"type:varchar(64);not null;index" json:"projectId"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Type        TaskType   `gorm:"type:varchar(32);not null;default:TASK" json:"type"`
	Status      TaskStatus `gorm:"type:varchar(32);not null;default:TODO" json:"status"`
	Priority    Priority   `gorm:"type:varchar(16);not null;default:MEDIUM" json:"priority"`
	AssigneeID  *string    `gorm:"type:varchar(64);index" json:"assigneeId"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Type == "" {
		t.Type = TaskTypeTask
	}
	if t.Status == "" {
		t.Status = TaskTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return nil
}

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TaskID    string    `gorm:"type:varchar(64);not null;index" json:"taskId"`
	UserID    string    `gorm:"type:varchar(64);not null;index" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
