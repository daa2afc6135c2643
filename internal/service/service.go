package service

import (
	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/config"
	"github.com/sudhan-ops/onboarding-sub001/internal/ocr"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
	"github.com/sudhan-ops/onboarding-sub001/pkg/jwt"
	"github.com/sudhan-ops/onboarding-sub001/pkg/redis"
)

// dateLayout 请求中日期字段的统一格式
const dateLayout = "2006-01-02"

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Site       SiteService
	Onboarding OnboardingService
	Rules      RulesService
	Task       TaskService
	Leave      LeaveService
	Attendance AttendanceService
	Export     ExportService
}

// NewService 创建 Service 聚合
// ocrClient 在识别功能未启用时可为 nil
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	ocrClient *ocr.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Site:       NewSiteService(repo, logger),
		Onboarding: NewOnboardingService(cfg, repo, rdb, ocrClient, logger),
		Rules:      NewRulesService(repo, logger),
		Task:       NewTaskService(repo, logger),
		Leave:      NewLeaveService(repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
