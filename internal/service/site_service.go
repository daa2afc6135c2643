package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
)

// SiteService 站点业务接口
type SiteService interface {
	Create(ctx context.Context, req *dto.CreateSiteRequest, callerID string) (*model.Site, error)
	GetByID(ctx context.Context, id string) (*model.Site, error)
	Update(ctx context.Context, id string, req *dto.UpdateSiteRequest, callerID string) (*model.Site, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, pageSize int) ([]model.Site, int64, error)
}

type siteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSiteService 创建 SiteService 实例
func NewSiteService(repo *repository.Repository, logger *zap.Logger) SiteService {
	return &siteService{repo: repo, logger: logger}
}

func (s *siteService) Create(ctx context.Context, req *dto.CreateSiteRequest, callerID string) (*model.Site, error) {
	site := &model.Site{
		Name:            req.Name,
		ClientName:      req.ClientName,
		Address:         req.Address,
		SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
	}
	if err := s.repo.Site.Create(ctx, site); err != nil {
		s.logger.Error("创建站点失败", zap.Error(err))
		return nil, err
	}
	return site, nil
}

func (s *siteService) GetByID(ctx context.Context, id string) (*model.Site, error) {
	site, err := s.repo.Site.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}
	return site, nil
}

func (s *siteService) Update(ctx context.Context, id string, req *dto.UpdateSiteRequest, callerID string) (*model.Site, error) {
	site, err := s.repo.Site.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.ClientName != nil {
		site.ClientName = *req.ClientName
	}
	if req.Address != nil {
		site.Address = *req.Address
	}
	site.UpdatedBy = &callerID

	if err := s.repo.Site.Update(ctx, site); err != nil {
		s.logger.Error("更新站点失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return site, nil
}

func (s *siteService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Site.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSiteNotFound
		}
		return err
	}
	return s.repo.Site.Delete(ctx, id)
}

func (s *siteService) List(ctx context.Context, page, pageSize int) ([]model.Site, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return s.repo.Site.List(ctx, (page-1)*pageSize, pageSize)
}
