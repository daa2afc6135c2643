package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

// LeaveFilter 请假列表过滤条件
type LeaveFilter struct {
	Status string
	UserID string
}

// LeaveRepository 请假申请数据访问接口
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*model.LeaveRequest, error)
	Update(ctx context.Context, leave *model.LeaveRequest) error
	List(ctx context.Context, filter LeaveFilter, offset, limit int) ([]model.LeaveRequest, int64, error)
	// ListApproved 查询全部已批准的请假（ICS 日历订阅用）
	ListApproved(ctx context.Context) ([]model.LeaveRequest, error)
}

type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo 创建 LeaveRepository 实例
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *leaveRepo) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("leave_id = ?", id).
		First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepo) Update(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

func (r *leaveRepo) List(ctx context.Context, filter LeaveFilter, offset, limit int) ([]model.LeaveRequest, int64, error) {
	var leaves []model.LeaveRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.LeaveRequest{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("start_date DESC").
		Find(&leaves).Error; err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

func (r *leaveRepo) ListApproved(ctx context.Context) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", model.LeaveStatusApproved).
		Order("start_date ASC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	return leaves, nil
}
