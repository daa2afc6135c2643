package model

import "time"

// ── 请假类型与状态 ──

const (
	LeaveTypeCasual = "casual"
	LeaveTypeSick   = "sick"
	LeaveTypeEarned = "earned"
	LeaveTypeUnpaid = "unpaid"

	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// LeaveRequest 请假申请表 — 对应 leave_requests
type LeaveRequest struct {
	LeaveID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"leave_id"`
	UserID        string     `gorm:"type:uuid;not null"                             json:"user_id"`
	LeaveType     string     `gorm:"type:varchar(20);not null"                      json:"leave_type"`
	StartDate     time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate       time.Time  `gorm:"type:date;not null"                             json:"end_date"`
	Reason        string     `gorm:"type:text;not null;default:''"                  json:"reason"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ReviewedBy    *string    `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewComment string     `gorm:"type:text;not null;default:''"                  json:"review_comment,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (LeaveRequest) TableName() string { return "leave_requests" }
