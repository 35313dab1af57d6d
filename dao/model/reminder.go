package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskReminder is a due-date reminder waiting to be sent by the reminder sweep.
type TaskReminder struct {
	ID        string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TaskID    string         `gorm:"type:varchar(64);not null;index" json:"taskId"`
	FireAt    time.Time      `gorm:"not null;index" json:"fireAt"`
	Status    ReminderStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	SentAt    *time.Time     `json:"sentAt"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (r *TaskReminder) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReminderPending
	}
	return nil
}

// SyncEvent records an event that has been applied, so replays are skipped.
type SyncEvent struct {
	ID          string         `gorm:"primaryKey;type:varchar(128)" json:"id"`
	Name        string         `gorm:"type:varchar(128);not null;index" json:"name"`
	Payload     datatypes.JSON `json:"payload"`
	ProcessedAt time.Time      `gorm:"not null" json:"processedAt"`
}
