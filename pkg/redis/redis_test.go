package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

// Redis 连接失败时服务以 nil 客户端继续运行，
// 所有方法必须安全降级而不是解引用空指针

func TestNilClient_BlacklistDegrades(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if err := c.BlacklistToken(ctx, "jti-1", time.Hour); err != nil {
		t.Errorf("降级模式下拉黑应静默跳过，实际: %v", err)
	}
	blacklisted, err := c.IsBlacklisted(ctx, "jti-1")
	if err != nil {
		t.Errorf("降级模式下黑名单检查不应报错，实际: %v", err)
	}
	if blacklisted {
		t.Error("降级模式下应视为未拉黑")
	}
}

func TestNilClient_OTPReturnsUnavailable(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if err := c.StoreOTP(ctx, "9876543210", "123456", time.Minute); !errors.Is(err, ErrUnavailable) {
		t.Errorf("期望 ErrUnavailable，实际: %v", err)
	}
	if _, err := c.VerifyOTP(ctx, "9876543210", "123456", 5); !errors.Is(err, ErrUnavailable) {
		t.Errorf("期望 ErrUnavailable，实际: %v", err)
	}
}

func TestNilClient_ResetTokenReturnsUnavailable(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if err := c.StoreResetToken(ctx, "tok", "user-1", time.Hour); !errors.Is(err, ErrUnavailable) {
		t.Errorf("期望 ErrUnavailable，实际: %v", err)
	}
	if _, err := c.ConsumeResetToken(ctx, "tok"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("期望 ErrUnavailable，实际: %v", err)
	}
}

func TestNilClient_WizardProgressDegrades(t *testing.T) {
	var c *Client
	ctx := context.Background()

	if err := c.SetWizardProgress(ctx, "draft-1", 5, time.Hour); err != nil {
		t.Errorf("降级模式下写进度应静默跳过，实际: %v", err)
	}
	highest, err := c.GetWizardProgress(ctx, "draft-1")
	if err != nil {
		t.Errorf("降级模式下读进度不应报错，实际: %v", err)
	}
	if highest != 0 {
		t.Errorf("降级模式下进度应从头恢复，实际=%d", highest)
	}
	if err := c.DeleteWizardProgress(ctx, "draft-1"); err != nil {
		t.Errorf("降级模式下清进度应静默跳过，实际: %v", err)
	}
}

func TestNilClient_RateLimitAllowsAll(t *testing.T) {
	var c *Client

	allowed, err := c.CheckRateLimit(context.Background(), "rate:1.2.3.4", 10, time.Minute)
	if err != nil {
		t.Errorf("降级模式下限流检查不应报错，实际: %v", err)
	}
	if !allowed {
		t.Error("降级模式下应放行请求")
	}
}

func TestNilClient_CloseIsNoop(t *testing.T) {
	var c *Client
	if err := c.Close(); err != nil {
		t.Errorf("关闭 nil 客户端不应报错，实际: %v", err)
	}
}
