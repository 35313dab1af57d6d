package model

import "time"

// User mirrors an identity-provider account. Rows are only written by the
// identity sync handlers.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email     string    `gorm:"uniqueIndex;type:varchar(255);not null;comment:邮箱" json:"email"`
	Name      string    `gorm:"type:varchar(255);comment:显示名" json:"name"`
	Image     string    `gorm:"type:text;comment:头像" json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
