// 定义与数据库表字段对应的常量
// Enumerations are stored as strings so that the JSON wire format and the
// column values are the same. The zero value ("") always means "not supplied",
// and each Default* helper fills it in before insert.
package model

// Role of a user inside a workspace
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleMember }

// Priority is shared by projects and tasks
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ProjectStatus is opaque to authorization
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectPlanning  ProjectStatus = "PLANNING"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectPlanning, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	return s == TaskTodo || s == TaskInProgress || s == TaskDone
}

type TaskType string

const (
	TaskTypeTask        TaskType = "TASK"
	TaskTypeBug         TaskType = "BUG"
	TaskTypeFeature     TaskType = "FEATURE"
	TaskTypeImprovement TaskType = "IMPROVEMENT"
	TaskTypeOther       TaskType = "OTHER"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeTask, TaskTypeBug, TaskTypeFeature, TaskTypeImprovement, TaskTypeOther:
		return true
	}
	return false
}

// ReminderStatus tracks a scheduled due-date reminder
type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderSending   ReminderStatus = "sending"
	ReminderSent      ReminderStatus = "sent"
	ReminderCancelled ReminderStatus = "cancelled"
)

const (
	DefaultProgress = 0
)
