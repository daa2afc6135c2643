package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
)

func setupTestLeaveService() (LeaveService, *repository.Repository) {
	repo := newMockRepository()
	seedUser(repo, "user-1", "officer@example.com", "9000000001", model.RoleFieldOfficer)
	svc := NewLeaveService(repo, zap.NewNop())
	return svc, repo
}

func TestCreateLeave_Success(t *testing.T) {
	svc, _ := setupTestLeaveService()

	leave, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeCasual,
		StartDate: "2026-09-14",
		EndDate:   "2026-09-16",
		Reason:    "家中有事",
	}, "user-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if leave.Status != model.LeaveStatusPending {
		t.Errorf("期望状态 pending，实际=%s", leave.Status)
	}
	if leave.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", leave.UserID)
	}
}

func TestCreateLeave_EndBeforeStart(t *testing.T) {
	svc, _ := setupTestLeaveService()

	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick,
		StartDate: "2026-09-16",
		EndDate:   "2026-09-14",
	}, "user-1")
	if !errors.Is(err, ErrLeaveDateOrder) {
		t.Errorf("期望 ErrLeaveDateOrder，实际: %v", err)
	}
}

func TestApproveLeave_SetsReviewFields(t *testing.T) {
	svc, repo := setupTestLeaveService()

	leave, _ := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeEarned,
		StartDate: "2026-09-14",
		EndDate:   "2026-09-16",
	}, "user-1")

	if err := svc.Approve(context.Background(), leave.LeaveID, "hr-1", "同意"); err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}

	stored, _ := repo.Leave.GetByID(context.Background(), leave.LeaveID)
	if stored.Status != model.LeaveStatusApproved {
		t.Errorf("期望状态 approved，实际=%s", stored.Status)
	}
	if stored.ReviewedBy == nil || *stored.ReviewedBy != "hr-1" {
		t.Error("ReviewedBy 应为 hr-1")
	}
	if stored.ReviewComment != "同意" {
		t.Errorf("期望审批意见=同意，实际=%s", stored.ReviewComment)
	}

	// 已审批的申请不能重复处理
	if err := svc.Reject(context.Background(), leave.LeaveID, "hr-1", ""); !errors.Is(err, ErrLeaveNotPending) {
		t.Errorf("期望 ErrLeaveNotPending，实际: %v", err)
	}
}

func TestApproveLeave_SelfReviewBlocked(t *testing.T) {
	svc, _ := setupTestLeaveService()

	leave, _ := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeCasual,
		StartDate: "2026-09-14",
		EndDate:   "2026-09-16",
	}, "user-1")

	if err := svc.Approve(context.Background(), leave.LeaveID, "user-1", ""); !errors.Is(err, ErrLeaveSelfReview) {
		t.Errorf("期望 ErrLeaveSelfReview，实际: %v", err)
	}
}

func TestCalendarFeed_ContainsApprovedLeaves(t *testing.T) {
	svc, _ := setupTestLeaveService()

	approved, _ := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick,
		StartDate: "2026-09-14",
		EndDate:   "2026-09-16",
		Reason:    "发烧休息",
	}, "user-1")
	if err := svc.Approve(context.Background(), approved.LeaveID, "hr-1", ""); err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}
	// 未批准的申请不进入日历
	_, _ = svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeCasual,
		StartDate: "2026-10-01",
		EndDate:   "2026-10-02",
	}, "user-1")

	feed, err := svc.CalendarFeed(context.Background())
	if err != nil {
		t.Fatalf("CalendarFeed 应成功: %v", err)
	}

	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Error("输出应为 iCalendar 格式")
	}
	if count := strings.Count(feed, "BEGIN:VEVENT"); count != 1 {
		t.Errorf("期望 1 个事件，实际=%d", count)
	}
	if !strings.Contains(feed, "病假") {
		t.Error("事件摘要应包含请假类型")
	}
	if !strings.Contains(feed, "发烧休息") {
		t.Error("事件描述应包含请假原因")
	}
}
