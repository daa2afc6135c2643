package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/config"
	"github.com/sudhan-ops/onboarding-sub001/internal/api/handler"
	"github.com/sudhan-ops/onboarding-sub001/internal/api/middleware"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/pkg/jwt"
	"github.com/sudhan-ops/onboarding-sub001/pkg/redis"
)

// maxBodyBytes 全局请求体上限（Excel 导入文件也走这条限制）
const maxBodyBytes = 10 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	hrRoles := []string{model.RoleAdmin, model.RoleHR}
	reviewRoles := []string{model.RoleAdmin, model.RoleHR, model.RoleOperations}
	managerRoles := []string{model.RoleAdmin, model.RoleHR, model.RoleOperations, model.RoleSiteManager}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录相关接口限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/otp/request", h.Auth.RequestOTP)
			auth.POST("/otp/verify", h.Auth.VerifyOTP)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/password/reset", h.Auth.RequestPasswordReset)
			auth.POST("/password/reset/confirm", h.Auth.ConfirmPasswordReset)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth(managerRoles...), h.User.ListUsers)
				users.GET("/:id", middleware.RoleAuth(managerRoles...), h.User.GetUser)
				users.POST("", middleware.RoleAuth(hrRoles...), h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser) // admin 或本人（Service 层鉴权）
				users.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.DeleteUser)
				users.PUT("/:id/role", middleware.RoleAuth(model.RoleAdmin), h.User.AssignRole)
				users.POST("/:id/reset-password", middleware.RoleAuth(model.RoleAdmin), h.User.ResetPassword)
				users.POST("/import", middleware.RoleAuth(hrRoles...), h.User.ImportUsers)
			}

			// 站点模块
			sites := authorized.Group("/sites")
			{
				sites.GET("", h.Site.ListSites)
				sites.GET("/:id", h.Site.GetSite)
				sites.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleOperations), h.Site.CreateSite)
				sites.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleOperations), h.Site.UpdateSite)
				sites.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Site.DeleteSite)
			}

			// 入职规则模块
			rules := authorized.Group("/enrollment-rules")
			{
				rules.GET("", middleware.RoleAuth(hrRoles...), h.Rules.GetRules)
				rules.PUT("", middleware.RoleAuth(model.RoleAdmin), h.Rules.UpdateRules)
			}

			// 入职向导模块
			onboarding := authorized.Group("/onboarding")
			{
				onboarding.POST("", h.Onboarding.Start)
				onboarding.GET("", middleware.RoleAuth(managerRoles...), h.Onboarding.List)
				onboarding.GET("/:id", h.Onboarding.Get)
				onboarding.DELETE("/:id", h.Onboarding.DeleteDraft)

				onboarding.PATCH("/:id/steps/:step", h.Onboarding.PatchStep)
				onboarding.GET("/:id/steps/:step/validate", h.Onboarding.ValidateStep)

				onboarding.POST("/:id/family", h.Onboarding.AddFamilyMember)
				onboarding.PUT("/:id/family/:memberId", h.Onboarding.UpdateFamilyMember)
				onboarding.DELETE("/:id/family/:memberId", h.Onboarding.RemoveFamilyMember)

				onboarding.POST("/:id/education", h.Onboarding.AddEducation)
				onboarding.PUT("/:id/education/:educationId", h.Onboarding.UpdateEducation)
				onboarding.DELETE("/:id/education/:educationId", h.Onboarding.RemoveEducation)

				onboarding.POST("/:id/extract", h.Onboarding.Extract)
				onboarding.POST("/:id/advance", h.Onboarding.Advance)
				onboarding.POST("/:id/jump", h.Onboarding.Jump)
				onboarding.POST("/:id/save", h.Onboarding.SaveNow)
				onboarding.POST("/:id/submit", h.Onboarding.Submit)

				onboarding.POST("/:id/approve", middleware.RoleAuth(hrRoles...), h.Onboarding.Approve)
				onboarding.POST("/:id/reject", middleware.RoleAuth(hrRoles...), h.Onboarding.Reject)
				onboarding.POST("/:id/reopen", h.Onboarding.Reopen)
			}

			// 任务模块
			tasks := authorized.Group("/tasks")
			{
				tasks.GET("", h.Task.ListTasks)
				tasks.GET("/:id", h.Task.GetTask)
				tasks.POST("", middleware.RoleAuth(reviewRoles...), h.Task.CreateTask)
				tasks.PUT("/:id", h.Task.UpdateTask)
				tasks.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleOperations), h.Task.DeleteTask)
			}

			// 请假模块
			leaves := authorized.Group("/leaves")
			{
				leaves.POST("", h.Leave.CreateLeave)
				leaves.GET("", h.Leave.ListLeaves)
				leaves.GET("/calendar.ics", middleware.RoleAuth(managerRoles...), h.Leave.CalendarFeed)
				leaves.GET("/:id", h.Leave.GetLeave)
				leaves.POST("/:id/approve", middleware.RoleAuth(managerRoles...), h.Leave.ApproveLeave)
				leaves.POST("/:id/reject", middleware.RoleAuth(managerRoles...), h.Leave.RejectLeave)
			}

			// 考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/punch", h.Attendance.Punch)
				attendance.GET("", middleware.RoleAuth(managerRoles...), h.Attendance.ListAttendance)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/onboarding", middleware.RoleAuth(reviewRoles...), h.Export.ExportOnboarding)
			}
		}
	}

	return r
}
