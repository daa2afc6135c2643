package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

// RulesRepository 入职规则数据访问接口（单行表）
type RulesRepository interface {
	Get(ctx context.Context) (*model.EnrollmentRules, error)
	Update(ctx context.Context, rules *model.EnrollmentRules) error
}

type rulesRepo struct {
	db *gorm.DB
}

// NewRulesRepo 创建 RulesRepository 实例
func NewRulesRepo(db *gorm.DB) RulesRepository {
	return &rulesRepo{db: db}
}

func (r *rulesRepo) Get(ctx context.Context) (*model.EnrollmentRules, error) {
	var rules model.EnrollmentRules
	err := r.db.WithContext(ctx).First(&rules).Error
	if err != nil {
		return nil, err
	}
	return &rules, nil
}

func (r *rulesRepo) Update(ctx context.Context, rules *model.EnrollmentRules) error {
	return r.db.WithContext(ctx).Save(rules).Error
}
