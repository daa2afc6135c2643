package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
)

// ── 入职规则模块业务错误 ──

var (
	ErrRulesNotFound  = errors.New("入职规则未初始化")
	ErrRulesBadAmount = errors.New("金额格式无效")
)

// RulesService 入职规则业务接口
type RulesService interface {
	Get(ctx context.Context) (*model.EnrollmentRules, error)
	Update(ctx context.Context, req *dto.UpdateRulesRequest, callerID string) (*model.EnrollmentRules, error)
}

type rulesService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRulesService 创建 RulesService 实例
func NewRulesService(repo *repository.Repository, logger *zap.Logger) RulesService {
	return &rulesService{repo: repo, logger: logger}
}

func (s *rulesService) Get(ctx context.Context) (*model.EnrollmentRules, error) {
	rules, err := s.repo.Rules.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRulesNotFound
		}
		s.logger.Error("查询入职规则失败", zap.Error(err))
		return nil, err
	}
	return rules, nil
}

func (s *rulesService) Update(ctx context.Context, req *dto.UpdateRulesRequest, callerID string) (*model.EnrollmentRules, error) {
	rules, err := s.repo.Rules.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRulesNotFound
		}
		s.logger.Error("查询入职规则失败", zap.Error(err))
		return nil, err
	}

	if req.EsiWageCeiling != nil {
		amount, err := parseAmount(*req.EsiWageCeiling)
		if err != nil {
			return nil, err
		}
		rules.EsiWageCeiling = amount
	}
	if req.GmcSalaryThreshold != nil {
		amount, err := parseAmount(*req.GmcSalaryThreshold)
		if err != nil {
			return nil, err
		}
		rules.GmcSalaryThreshold = amount
	}
	if req.DefaultGmcTier != nil {
		rules.DefaultGmcTier = *req.DefaultGmcTier
	}
	if req.MarriedGmcTier != nil {
		rules.MarriedGmcTier = *req.MarriedGmcTier
	}
	if req.StrictFamilyValidation != nil {
		rules.StrictFamilyValidation = *req.StrictFamilyValidation
	}
	if req.ParentMinAgeGap != nil {
		rules.ParentMinAgeGap = *req.ParentMinAgeGap
	}
	if req.ChildMinAgeGap != nil {
		rules.ChildMinAgeGap = *req.ChildMinAgeGap
	}
	if req.SpouseMaxAgeGap != nil {
		rules.SpouseMaxAgeGap = *req.SpouseMaxAgeGap
	}

	rules.UpdatedBy = &callerID

	if err := s.repo.Rules.Update(ctx, rules); err != nil {
		s.logger.Error("更新入职规则失败", zap.Error(err))
		return nil, err
	}
	return rules, nil
}

// parseAmount 解析金额字符串，要求非负
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, ErrRulesBadAmount
	}
	return amount, nil
}
