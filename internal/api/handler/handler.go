package handler

import "github.com/sudhan-ops/onboarding-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Site       *SiteHandler
	Onboarding *OnboardingHandler
	Rules      *RulesHandler
	Task       *TaskHandler
	Leave      *LeaveHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Site:       NewSiteHandler(svc.Site),
		Onboarding: NewOnboardingHandler(svc.Onboarding),
		Rules:      NewRulesHandler(svc.Rules),
		Task:       NewTaskHandler(svc.Task),
		Leave:      NewLeaveHandler(svc.Leave),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Export:     NewExportHandler(svc.Export),
	}
}
