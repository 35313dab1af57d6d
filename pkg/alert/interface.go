package alert

import (
	"context"
	"time"
)

// AlertInterface 是封装好的通知组件，支持两种场景：
//  1. 任务被指派给成员时的通知
//  2. 任务到期提醒
type AlertInterface interface {
	TaskAssigned(ctx context.Context, notice *TaskNotice) error
	TaskReminder(ctx context.Context, notice *TaskNotice) error
}

// Recipient is the addressee of a notification.
type Recipient struct {
	Email string
	Name  string
}

// TaskNotice carries everything a task notification shows.
type TaskNotice struct {
	To          Recipient
	TaskID      string
	TaskTitle   string
	Description string
	ProjectName string
	DueDate     *time.Time
	// Link points at the task in the web app; empty when no frontend URL is set.
	Link string
}

// alertHandlerInterface 是具体的通知通道对外提供的接口，SMTP 邮件或日志输出都应该实现它
type alertHandlerInterface interface {
	SendMessageTo(ctx context.Context, receiver *Recipient, subject, body string) error
}
