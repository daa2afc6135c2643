package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/config"
	"github.com/sudhan-ops/onboarding-sub001/internal/api/handler"
	"github.com/sudhan-ops/onboarding-sub001/internal/api/router"
	"github.com/sudhan-ops/onboarding-sub001/internal/ocr"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
	"github.com/sudhan-ops/onboarding-sub001/internal/service"
	"github.com/sudhan-ops/onboarding-sub001/pkg/database"
	"github.com/sudhan-ops/onboarding-sub001/pkg/jwt"
	applogger "github.com/sudhan-ops/onboarding-sub001/pkg/logger"
	"github.com/sudhan-ops/onboarding-sub001/pkg/redis"
)

// escalationInterval 任务逾期升级扫描周期
const escalationInterval = time.Hour

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，黑名单/限流/向导进度恢复将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 5.1 证件识别客户端（功能开关控制）
	var ocrClient *ocr.Client
	if cfg.Feature.OCREnabled {
		ocrClient = ocr.NewClient(cfg.OCR.BaseURL, cfg.OCR.APIKey, cfg.OCR.Timeout, logger)
		logger.Info("证件识别客户端已启用", zap.String("base_url", cfg.OCR.BaseURL))
	}

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, ocrClient, logger)
	h := handler.NewHandler(svc)

	// 6.1 任务逾期升级后台扫描
	escalationCtx, stopEscalation := context.WithCancel(context.Background())
	go runTaskEscalation(escalationCtx, svc.Task, logger)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	stopEscalation()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// runTaskEscalation 周期性把逾期未完成任务标记为已升级
func runTaskEscalation(ctx context.Context, taskSvc service.TaskService, logger *zap.Logger) {
	ticker := time.NewTicker(escalationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := taskSvc.EscalateOverdue(ctx)
			if err != nil {
				logger.Error("任务逾期升级扫描失败", zap.Error(err))
				continue
			}
			if count > 0 {
				logger.Info("任务逾期升级完成", zap.Int("count", count))
			}
		}
	}
}
