package model

import "time"

// ── 考勤事件类型 ──

const (
	AttendanceCheckIn  = "check_in"
	AttendanceCheckOut = "check_out"
)

// AttendanceEvent 考勤事件表 — 对应 attendance_events
// 定位坐标为可选字段：无权限或无信号时仅记录时间戳
type AttendanceEvent struct {
	EventID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	UserID     string    `gorm:"type:uuid;not null"                             json:"user_id"`
	EventType  string    `gorm:"type:varchar(10);not null"                      json:"event_type"`
	OccurredAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"occurred_at"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AttendanceEvent) TableName() string { return "attendance_events" }
