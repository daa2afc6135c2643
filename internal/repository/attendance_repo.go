package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

// AttendanceFilter 考勤记录过滤条件
type AttendanceFilter struct {
	UserID string
	From   time.Time // 零值表示不限制
	To     time.Time
}

// AttendanceRepository 考勤事件数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, event *model.AttendanceEvent) error
	// LastEvent 查询用户最近一条考勤事件（打卡顺序校验用）
	LastEvent(ctx context.Context, userID string) (*model.AttendanceEvent, error)
	List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]model.AttendanceEvent, int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, event *model.AttendanceEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *attendanceRepo) LastEvent(ctx context.Context, userID string) (*model.AttendanceEvent, error) {
	var event model.AttendanceEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *attendanceRepo) List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]model.AttendanceEvent, int64, error) {
	var events []model.AttendanceEvent
	var total int64

	db := r.db.WithContext(ctx).Model(&model.AttendanceEvent{})
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if !filter.From.IsZero() {
		db = db.Where("occurred_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		db = db.Where("occurred_at < ?", filter.To)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(offset).Limit(limit).
		Order("occurred_at DESC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
