package model

import "time"

// ── 任务状态与优先级 ──

const (
	TaskStatusOpen       = "open"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusEscalated  = "escalated"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task 任务表 — 对应 tasks
type Task struct {
	TaskID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description    string     `gorm:"type:text;not null;default:''"                  json:"description"`
	AssigneeID     *string    `gorm:"type:uuid"                                      json:"assignee_id,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	Priority       string     `gorm:"type:varchar(10);not null;default:'medium'"     json:"priority"`
	DueDate        time.Time  `gorm:"type:date;not null"                             json:"due_date"`
	EscalationDate *time.Time `gorm:"type:date"                                      json:"escalation_date,omitempty"`
	SoftDeleteModel

	// 关联
	Assignee *User `gorm:"foreignKey:AssigneeID;references:UserID" json:"assignee,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }
