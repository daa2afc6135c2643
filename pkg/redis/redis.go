package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/config"
)

// ErrUnavailable Redis 未连接时必须依赖存储的操作返回此错误
var ErrUnavailable = errors.New("Redis 不可用")

// Client Redis 客户端封装
// 当前用于 Token 黑名单、OTP 验证码、限流计数与向导进度标记
//
// 所有方法允许 nil 接收者：Redis 连接失败时服务以降级模式继续运行，
// 黑名单 / 限流 / 进度标记静默跳过，OTP 与重置令牌返回 ErrUnavailable
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// ready 客户端是否可用；nil 接收者安全
func (c *Client) ready() bool {
	return c != nil && c.rdb != nil
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !c.ready() || ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中；降级模式下视为未拉黑
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if !c.ready() {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── OTP 验证码 ──

const (
	otpPrefix         = "otp:code:"
	otpAttemptsPrefix = "otp:attempts:"
)

var ErrOTPAttemptsExceeded = errors.New("验证码尝试次数超限")

// StoreOTP 存储手机验证码并重置尝试计数
func (c *Client) StoreOTP(ctx context.Context, phone, code string, ttl time.Duration) error {
	if !c.ready() {
		return ErrUnavailable
	}
	if err := c.rdb.Set(ctx, otpPrefix+phone, code, ttl).Err(); err != nil {
		return err
	}
	return c.rdb.Set(ctx, otpAttemptsPrefix+phone, 0, ttl).Err()
}

// VerifyOTP 校验手机验证码；maxAttempts 次失败后失效
// 校验成功时删除验证码，保证一次性使用
func (c *Client) VerifyOTP(ctx context.Context, phone, code string, maxAttempts int) (bool, error) {
	if !c.ready() {
		return false, ErrUnavailable
	}
	attempts, err := c.rdb.Incr(ctx, otpAttemptsPrefix+phone).Result()
	if err != nil {
		return false, err
	}
	if maxAttempts > 0 && attempts > int64(maxAttempts) {
		return false, ErrOTPAttemptsExceeded
	}

	stored, err := c.rdb.Get(ctx, otpPrefix+phone).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	if stored != code {
		return false, nil
	}

	c.rdb.Del(ctx, otpPrefix+phone, otpAttemptsPrefix+phone)
	return true, nil
}

// ── 密码重置令牌 ──

const resetTokenPrefix = "auth:reset:"

// StoreResetToken 存储密码重置令牌 → 用户 ID 映射
func (c *Client) StoreResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	if !c.ready() {
		return ErrUnavailable
	}
	return c.rdb.Set(ctx, resetTokenPrefix+token, userID, ttl).Err()
}

// ConsumeResetToken 取出并删除重置令牌，返回对应用户 ID；不存在时返回空串
func (c *Client) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	if !c.ready() {
		return "", ErrUnavailable
	}
	userID, err := c.rdb.GetDel(ctx, resetTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}

// ── 向导进度 ──

const wizardProgressPrefix = "onboarding:progress:"

// SetWizardProgress 记录草稿已到达的最高步骤索引（仅用于刷新后恢复，非权威数据）
func (c *Client) SetWizardProgress(ctx context.Context, draftID string, highestStep int, ttl time.Duration) error {
	if !c.ready() {
		return nil
	}
	return c.rdb.Set(ctx, wizardProgressPrefix+draftID, highestStep, ttl).Err()
}

// GetWizardProgress 读取草稿的最高步骤索引；无记录时返回 0
func (c *Client) GetWizardProgress(ctx context.Context, draftID string) (int, error) {
	if !c.ready() {
		return 0, nil
	}
	val, err := c.rdb.Get(ctx, wizardProgressPrefix+draftID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.Atoi(val)
}

// DeleteWizardProgress 清除草稿进度（提交或删除草稿后调用）
func (c *Client) DeleteWizardProgress(ctx context.Context, draftID string) error {
	if !c.ready() {
		return nil
	}
	return c.rdb.Del(ctx, wizardProgressPrefix+draftID).Err()
}

// ── 滑动窗口限流 ──

// CheckRateLimit 固定窗口计数限流；窗口内请求数超过 limit 时返回 false
// 降级模式下不限流
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !c.ready() {
		return true, nil
	}
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		c.rdb.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	if !c.ready() {
		return nil
	}
	return c.rdb.Close()
}
