package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db         *gorm.DB
	User       UserRepository
	Site       SiteRepository
	Onboarding OnboardingRepository
	Rules      RulesRepository
	Uniform    UniformRepository
	Task       TaskRepository
	Leave      LeaveRepository
	Attendance AttendanceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		User:       NewUserRepo(db),
		Site:       NewSiteRepo(db),
		Onboarding: NewOnboardingRepo(db),
		Rules:      NewRulesRepo(db),
		Uniform:    NewUniformRepo(db),
		Task:       NewTaskRepo(db),
		Leave:      NewLeaveRepo(db),
		Attendance: NewAttendanceRepo(db),
	}
}

// BeginTx 开启事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}
