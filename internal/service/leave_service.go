package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
)

var (
	ErrLeaveNotFound   = errors.New("请假申请不存在")
	ErrLeaveBadDate    = errors.New("日期格式错误，应为 YYYY-MM-DD")
	ErrLeaveDateOrder  = errors.New("结束日期不能早于开始日期")
	ErrLeaveNotPending = errors.New("请假申请已审批，不能重复处理")
	ErrLeaveSelfReview = errors.New("不能审批自己的请假申请")
)

// LeaveService 请假业务接口
type LeaveService interface {
	Create(ctx context.Context, req *dto.CreateLeaveRequest, userID string) (*model.LeaveRequest, error)
	GetByID(ctx context.Context, id string) (*model.LeaveRequest, error)
	Approve(ctx context.Context, id, reviewerID, comment string) error
	Reject(ctx context.Context, id, reviewerID, comment string) error
	List(ctx context.Context, req *dto.LeaveListRequest) ([]model.LeaveRequest, int64, error)
	// CalendarFeed 把已批准的请假生成 iCalendar 订阅内容
	CalendarFeed(ctx context.Context) (string, error)
}

type leaveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaveService 创建 LeaveService 实例
func NewLeaveService(repo *repository.Repository, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, logger: logger}
}

func (s *leaveService) Create(ctx context.Context, req *dto.CreateLeaveRequest, userID string) (*model.LeaveRequest, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrLeaveBadDate
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrLeaveBadDate
	}
	if endDate.Before(startDate) {
		return nil, ErrLeaveDateOrder
	}

	leave := &model.LeaveRequest{
		UserID:    userID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    model.LeaveStatusPending,
	}
	leave.CreatedBy = &userID

	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		s.logger.Error("创建请假申请失败", zap.Error(err))
		return nil, err
	}
	return s.repo.Leave.GetByID(ctx, leave.LeaveID)
}

func (s *leaveService) GetByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	leave, err := s.repo.Leave.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	return leave, nil
}

func (s *leaveService) Approve(ctx context.Context, id, reviewerID, comment string) error {
	return s.review(ctx, id, reviewerID, model.LeaveStatusApproved, comment)
}

func (s *leaveService) Reject(ctx context.Context, id, reviewerID, comment string) error {
	return s.review(ctx, id, reviewerID, model.LeaveStatusRejected, comment)
}

func (s *leaveService) review(ctx context.Context, id, reviewerID, status, comment string) error {
	leave, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if leave.Status != model.LeaveStatusPending {
		return ErrLeaveNotPending
	}
	if leave.UserID == reviewerID {
		return ErrLeaveSelfReview
	}

	now := time.Now()
	leave.Status = status
	leave.ReviewedBy = &reviewerID
	leave.ReviewedAt = &now
	leave.ReviewComment = comment
	leave.UpdatedBy = &reviewerID

	if err := s.repo.Leave.Update(ctx, leave); err != nil {
		s.logger.Error("保存请假审批结果失败", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *leaveService) List(ctx context.Context, req *dto.LeaveListRequest) ([]model.LeaveRequest, int64, error) {
	filter := repository.LeaveFilter{
		Status: req.Status,
		UserID: req.UserID,
	}
	return s.repo.Leave.List(ctx, filter, req.GetOffset(), req.GetPageSize())
}

// CalendarFeed 生成全员已批准请假的 iCalendar 内容
// 日历客户端按 URL 订阅；请假按全天事件输出，DTEND 为离开区间的次日
func (s *leaveService) CalendarFeed(ctx context.Context) (string, error) {
	leaves, err := s.repo.Leave.ListApproved(ctx)
	if err != nil {
		s.logger.Error("查询已批准请假失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//onboarding//leave-calendar//EN")
	cal.SetName("员工请假日历")

	for _, leave := range leaves {
		evt := cal.AddEvent(fmt.Sprintf("leave-%s@onboarding", leave.LeaveID))
		evt.SetSummary(leaveSummary(&leave))
		evt.SetAllDayStartAt(leave.StartDate)
		evt.SetAllDayEndAt(leave.EndDate.AddDate(0, 0, 1))
		evt.SetDtStampTime(leave.UpdatedAt)
		if leave.Reason != "" {
			evt.SetDescription(leave.Reason)
		}
	}
	return cal.Serialize(), nil
}

func leaveSummary(leave *model.LeaveRequest) string {
	name := leave.UserID
	if leave.User != nil {
		name = leave.User.Name
	}
	return fmt.Sprintf("%s · %s", name, leaveTypeLabel(leave.LeaveType))
}

func leaveTypeLabel(leaveType string) string {
	switch leaveType {
	case model.LeaveTypeCasual:
		return "事假"
	case model.LeaveTypeSick:
		return "病假"
	case model.LeaveTypeEarned:
		return "年假"
	default:
		return "无薪假"
	}
}
