package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

// SiteRepository 站点数据访问接口
type SiteRepository interface {
	Create(ctx context.Context, site *model.Site) error
	GetByID(ctx context.Context, id string) (*model.Site, error)
	Update(ctx context.Context, site *model.Site) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Site, int64, error)
}

type siteRepo struct {
	db *gorm.DB
}

// NewSiteRepo 创建 SiteRepository 实例
func NewSiteRepo(db *gorm.DB) SiteRepository {
	return &siteRepo{db: db}
}

func (r *siteRepo) Create(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *siteRepo) GetByID(ctx context.Context, id string) (*model.Site, error) {
	var site model.Site
	err := r.db.WithContext(ctx).
		Where("site_id = ?", id).
		First(&site).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepo) Update(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Save(site).Error
}

func (r *siteRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("site_id = ?", id).
		Delete(&model.Site{}).Error
}

func (r *siteRepo) List(ctx context.Context, offset, limit int) ([]model.Site, int64, error) {
	var sites []model.Site
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Site{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&sites).Error; err != nil {
		return nil, 0, err
	}
	return sites, total, nil
}
