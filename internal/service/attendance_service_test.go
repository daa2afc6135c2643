package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

func setupTestAttendanceService() AttendanceService {
	return NewAttendanceService(newMockRepository(), zap.NewNop())
}

func TestPunch_CheckInThenOut(t *testing.T) {
	svc := setupTestAttendanceService()
	ctx := context.Background()

	in, err := svc.Punch(ctx, &dto.PunchRequest{Type: model.AttendanceCheckIn}, "user-1")
	if err != nil {
		t.Fatalf("签到应成功: %v", err)
	}
	if in.EventType != model.AttendanceCheckIn {
		t.Errorf("期望事件类型 check_in，实际=%s", in.EventType)
	}

	out, err := svc.Punch(ctx, &dto.PunchRequest{Type: model.AttendanceCheckOut}, "user-1")
	if err != nil {
		t.Fatalf("签退应成功: %v", err)
	}
	if out.EventType != model.AttendanceCheckOut {
		t.Errorf("期望事件类型 check_out，实际=%s", out.EventType)
	}
}

func TestPunch_DoubleCheckInRejected(t *testing.T) {
	svc := setupTestAttendanceService()
	ctx := context.Background()

	if _, err := svc.Punch(ctx, &dto.PunchRequest{Type: model.AttendanceCheckIn}, "user-1"); err != nil {
		t.Fatalf("首次签到应成功: %v", err)
	}
	_, err := svc.Punch(ctx, &dto.PunchRequest{Type: model.AttendanceCheckIn}, "user-1")
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("期望 ErrAlreadyCheckedIn，实际: %v", err)
	}
}

func TestPunch_CheckOutWithoutCheckIn(t *testing.T) {
	svc := setupTestAttendanceService()

	_, err := svc.Punch(context.Background(), &dto.PunchRequest{Type: model.AttendanceCheckOut}, "user-1")
	if !errors.Is(err, ErrNotCheckedIn) {
		t.Errorf("期望 ErrNotCheckedIn，实际: %v", err)
	}
}

// 坐标缺失时降级为无坐标打卡
func TestPunch_OptionalCoordinates(t *testing.T) {
	svc := setupTestAttendanceService()
	ctx := context.Background()

	lat, lng := 12.9716, 77.5946
	withCoords, err := svc.Punch(ctx, &dto.PunchRequest{
		Type:      model.AttendanceCheckIn,
		Latitude:  &lat,
		Longitude: &lng,
	}, "user-1")
	if err != nil {
		t.Fatalf("带坐标签到应成功: %v", err)
	}
	if withCoords.Latitude == nil || *withCoords.Latitude != 12.9716 {
		t.Error("坐标应被记录")
	}

	noCoords, err := svc.Punch(ctx, &dto.PunchRequest{Type: model.AttendanceCheckIn}, "user-2")
	if err != nil {
		t.Fatalf("无坐标签到应成功: %v", err)
	}
	if noCoords.Latitude != nil {
		t.Error("无坐标打卡不应记录坐标")
	}
}

func TestAttendanceList_DateRange(t *testing.T) {
	svc := setupTestAttendanceService()
	ctx := context.Background()

	_, _ = svc.Punch(ctx, &dto.PunchRequest{Type: model.AttendanceCheckIn}, "user-1")
	_, _ = svc.Punch(ctx, &dto.PunchRequest{Type: model.AttendanceCheckOut}, "user-1")

	// 今天的事件应落在 [今天, 明天) 内
	rows, total, err := svc.List(ctx, &dto.AttendanceListRequest{
		UserID: "user-1",
		From:   "2000-01-01",
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("期望 2 条记录，实际 total=%d len=%d", total, len(rows))
	}

	_, total, err = svc.List(ctx, &dto.AttendanceListRequest{
		UserID: "user-1",
		To:     "2000-01-01",
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 0 {
		t.Errorf("范围外不应有记录，实际=%d", total)
	}
}

func TestAttendanceList_BadDate(t *testing.T) {
	svc := setupTestAttendanceService()

	_, _, err := svc.List(context.Background(), &dto.AttendanceListRequest{From: "01/01/2026"})
	if !errors.Is(err, ErrAttendanceBadDate) {
		t.Errorf("期望 ErrAttendanceBadDate，实际: %v", err)
	}
}
