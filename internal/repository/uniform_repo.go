package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

// UniformRepository 工服配置数据访问接口
type UniformRepository interface {
	// GetPolicy 查询 (站点, 部门, 岗位) 的工服策略；无策略时返回 gorm.ErrRecordNotFound
	GetPolicy(ctx context.Context, siteID, department, designation string) (*model.SiteUniformPolicy, error)
	ListPolicies(ctx context.Context, siteID string) ([]model.SiteUniformPolicy, error)
	SavePolicy(ctx context.Context, policy *model.SiteUniformPolicy) error
	DeletePolicy(ctx context.Context, policyID string) error

	// ListSizeCharts 查询指定性别的全部尺码表
	ListSizeCharts(ctx context.Context, gender string) ([]model.UniformSizeChart, error)
	SaveSizeChart(ctx context.Context, chart *model.UniformSizeChart) error
}

type uniformRepo struct {
	db *gorm.DB
}

// NewUniformRepo 创建 UniformRepository 实例
func NewUniformRepo(db *gorm.DB) UniformRepository {
	return &uniformRepo{db: db}
}

func (r *uniformRepo) GetPolicy(ctx context.Context, siteID, department, designation string) (*model.SiteUniformPolicy, error) {
	var policy model.SiteUniformPolicy
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND department = ? AND designation = ?", siteID, department, designation).
		First(&policy).Error
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *uniformRepo) ListPolicies(ctx context.Context, siteID string) ([]model.SiteUniformPolicy, error) {
	var policies []model.SiteUniformPolicy
	db := r.db.WithContext(ctx)
	if siteID != "" {
		db = db.Where("site_id = ?", siteID)
	}
	if err := db.Order("department ASC, designation ASC").Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *uniformRepo) SavePolicy(ctx context.Context, policy *model.SiteUniformPolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

func (r *uniformRepo) DeletePolicy(ctx context.Context, policyID string) error {
	return r.db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Delete(&model.SiteUniformPolicy{}).Error
}

func (r *uniformRepo) ListSizeCharts(ctx context.Context, gender string) ([]model.UniformSizeChart, error) {
	var charts []model.UniformSizeChart
	db := r.db.WithContext(ctx)
	if gender != "" {
		db = db.Where("gender = ?", gender)
	}
	if err := db.Order("item ASC").Find(&charts).Error; err != nil {
		return nil, err
	}
	return charts, nil
}

func (r *uniformRepo) SaveSizeChart(ctx context.Context, chart *model.UniformSizeChart) error {
	return r.db.WithContext(ctx).Save(chart).Error
}
