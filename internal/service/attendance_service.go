package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
)

var (
	ErrAlreadyCheckedIn  = errors.New("已签到，请先签退")
	ErrNotCheckedIn      = errors.New("尚未签到，不能签退")
	ErrAttendanceBadDate = errors.New("日期格式错误，应为 YYYY-MM-DD")
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Punch 记录一次打卡；签到与签退必须交替出现
	Punch(ctx context.Context, req *dto.PunchRequest, userID string) (*model.AttendanceEvent, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]model.AttendanceEvent, int64, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

func (s *attendanceService) Punch(ctx context.Context, req *dto.PunchRequest, userID string) (*model.AttendanceEvent, error) {
	last, err := s.repo.Attendance.LastEvent(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.Type == model.AttendanceCheckIn {
		if last != nil && last.EventType == model.AttendanceCheckIn {
			return nil, ErrAlreadyCheckedIn
		}
	} else {
		if last == nil || last.EventType != model.AttendanceCheckIn {
			return nil, ErrNotCheckedIn
		}
	}

	event := &model.AttendanceEvent{
		UserID:     userID,
		EventType:  req.Type,
		OccurredAt: time.Now(),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Accuracy:   req.Accuracy,
	}
	if err := s.repo.Attendance.Create(ctx, event); err != nil {
		s.logger.Error("记录打卡失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return event, nil
}

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]model.AttendanceEvent, int64, error) {
	filter := repository.AttendanceFilter{UserID: req.UserID}

	if req.From != "" {
		from, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return nil, 0, ErrAttendanceBadDate
		}
		filter.From = from
	}
	if req.To != "" {
		to, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return nil, 0, ErrAttendanceBadDate
		}
		// 截止日期按整天计
		filter.To = to.AddDate(0, 0, 1)
	}

	return s.repo.Attendance.List(ctx, filter, req.GetOffset(), req.GetPageSize())
}
