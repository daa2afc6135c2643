package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/config"
	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
	"github.com/sudhan-ops/onboarding-sub001/pkg/jwt"
	"github.com/sudhan-ops/onboarding-sub001/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidOTP         = errors.New("验证码错误或已过期")
	ErrOTPDisabled        = errors.New("验证码登录未启用")
	ErrInvalidResetToken  = errors.New("重置链接无效或已过期")
	ErrRefreshInvalid     = errors.New("刷新凭证无效")
	ErrWrongOldPassword   = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, req *dto.OTPVerifyRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 将当前 Token 加入黑名单直至其自然过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordConfirmRequest) error
	Me(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user, req.RememberMe)
}

func (s *authService) RequestOTP(ctx context.Context, phone string) error {
	// 验证码依赖 Redis 存储：未启用或 Redis 缺席时整个通道关闭
	if !s.cfg.Feature.OTPLoginEnabled || s.rdb == nil {
		return ErrOTPDisabled
	}

	if _, err := s.repo.User.GetByPhone(ctx, phone); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露手机号是否注册：静默成功
			return nil
		}
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}
	if err := s.rdb.StoreOTP(ctx, phone, code, s.cfg.Auth.OTPTTL); err != nil {
		s.logger.Error("存储验证码失败", zap.Error(err))
		return err
	}

	// TODO: 接入短信网关后替换为实际下发
	s.logger.Info("验证码已生成", zap.String("phone", maskPhone(phone)))
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *dto.OTPVerifyRequest) (*dto.TokenResponse, error) {
	if !s.cfg.Feature.OTPLoginEnabled || s.rdb == nil {
		return nil, ErrOTPDisabled
	}

	ok, err := s.rdb.VerifyOTP(ctx, req.Phone, req.Code, s.cfg.Auth.OTPMaxAttempts)
	if err != nil {
		if errors.Is(err, redis.ErrOTPAttemptsExceeded) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	user, err := s.repo.User.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issueTokens(user, req.RememberMe)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrRefreshInvalid
	}

	// 黑名单检查：登出后的 refresh token 不可再用
	blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("黑名单检查失败", zap.Error(err))
		return nil, err
	}
	if blacklisted {
		return nil, ErrRefreshInvalid
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	// 旧 refresh token 作废，实现一次性轮换
	if claims.ExpiresAt != nil {
		_ = s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
	}

	return s.issueTokens(user, claims.RememberMe)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = false
	return s.repo.User.Update(ctx, user)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露邮箱是否注册
			return nil
		}
		return err
	}

	// 令牌依赖 Redis 存储；降级模式下不颁发，响应仍不暴露邮箱存在性
	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，跳过密码重置令牌颁发", zap.String("user_id", user.UserID))
		return nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	token := hex.EncodeToString(buf)

	if err := s.rdb.StoreResetToken(ctx, token, user.UserID, s.cfg.Auth.ResetTokenTTL); err != nil {
		s.logger.Error("存储重置令牌失败", zap.Error(err))
		return err
	}

	// TODO: 接入邮件网关后发送重置链接
	s.logger.Info("密码重置令牌已生成", zap.String("user_id", user.UserID))
	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordConfirmRequest) error {
	// 降级模式下不存在有效令牌
	if s.rdb == nil {
		return ErrInvalidResetToken
	}
	userID, err := s.rdb.ConsumeResetToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if userID == "" {
		return ErrInvalidResetToken
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = false
	return s.repo.User.Update(ctx, user)
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &dto.UserDetailResponse{
		ID:                 user.UserID,
		Name:               user.Name,
		Email:              user.Email,
		Phone:              user.Phone,
		Role:               user.Role,
		Site:               toSiteResponse(user.Site),
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// issueTokens 生成 Token 对并构造登录响应
func (s *authService) issueTokens(user *model.User, rememberMe bool) (*dto.TokenResponse, error) {
	siteID := ""
	if user.SiteID != nil {
		siteID = *user.SiteID
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role, siteID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, siteID, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:                 user.UserID,
			Name:               user.Name,
			Email:              user.Email,
			Phone:              user.Phone,
			Role:               user.Role,
			Site:               toSiteResponse(user.Site),
			MustChangePassword: user.MustChangePassword,
		},
	}, nil
}

func toSiteResponse(site *model.Site) *dto.SiteResponse {
	if site == nil {
		return nil
	}
	return &dto.SiteResponse{ID: site.SiteID, Name: site.Name}
}

// generateOTPCode 生成 6 位数字验证码
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// maskPhone 日志脱敏：保留前 3 后 2 位
func maskPhone(phone string) string {
	if len(phone) < 6 {
		return "***"
	}
	return phone[:3] + "*****" + phone[len(phone)-2:]
}
