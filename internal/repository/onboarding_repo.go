package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	pkgerrors "github.com/sudhan-ops/onboarding-sub001/pkg/errors"
)

// OnboardingFilter 入职记录列表过滤条件
type OnboardingFilter struct {
	Status  string
	SiteID  string
	Keyword string // 匹配姓名 / 手机号
}

// OnboardingRepository 入职记录数据访问接口
type OnboardingRepository interface {
	Create(ctx context.Context, rec *model.OnboardingRecord) error
	GetByID(ctx context.Context, id string) (*model.OnboardingRecord, error)
	// Save 带乐观锁的整体保存：版本不匹配时返回 ErrOptimisticLock
	Save(ctx context.Context, rec *model.OnboardingRecord) error
	// ReplaceID 提交时将草稿 ID 换为正式记录 ID
	ReplaceID(ctx context.Context, oldID, newID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter OnboardingFilter, offset, limit int) ([]model.OnboardingRecord, int64, error)
}

type onboardingRepo struct {
	db *gorm.DB
}

// NewOnboardingRepo 创建 OnboardingRepository 实例
func NewOnboardingRepo(db *gorm.DB) OnboardingRepository {
	return &onboardingRepo{db: db}
}

func (r *onboardingRepo) Create(ctx context.Context, rec *model.OnboardingRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *onboardingRepo) GetByID(ctx context.Context, id string) (*model.OnboardingRecord, error) {
	var rec model.OnboardingRecord
	err := r.db.WithContext(ctx).
		Where("record_id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *onboardingRepo) Save(ctx context.Context, rec *model.OnboardingRecord) error {
	// 并发保存以版本号裁决：旧版本的写入直接失败
	currentVersion := rec.Version
	rec.Version = currentVersion + 1

	res := r.db.WithContext(ctx).
		Model(&model.OnboardingRecord{}).
		Where("record_id = ? AND version = ?", rec.RecordID, currentVersion).
		Select("*").
		Omit("record_id", "created_at", "created_by").
		Updates(rec)
	if res.Error != nil {
		rec.Version = currentVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		rec.Version = currentVersion
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *onboardingRepo) ReplaceID(ctx context.Context, oldID, newID string) error {
	return r.db.WithContext(ctx).
		Model(&model.OnboardingRecord{}).
		Where("record_id = ?", oldID).
		Update("record_id", newID).Error
}

func (r *onboardingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("record_id = ?", id).
		Delete(&model.OnboardingRecord{}).Error
}

func (r *onboardingRepo) List(ctx context.Context, filter OnboardingFilter, offset, limit int) ([]model.OnboardingRecord, int64, error) {
	var recs []model.OnboardingRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.OnboardingRecord{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.SiteID != "" {
		db = db.Where("site_id = ?", filter.SiteID)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		// 姓名与手机号存放在 personal JSONB 子文档中
		db = db.Where(
			"(personal->>'first_name' || ' ' || personal->>'last_name') ILIKE ? OR personal->>'mobile' ILIKE ?",
			kw, kw,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(offset).Limit(limit).
		Order("updated_at DESC").
		Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}
