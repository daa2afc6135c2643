package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/service"
	"github.com/sudhan-ops/onboarding-sub001/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc}
}

// Punch 打卡（签到/签退交替）
// POST /api/v1/attendance/punch
func (h *AttendanceHandler) Punch(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.attSvc.Punch(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			response.Conflict(c, 18001, "已签到，请先签退")
		case errors.Is(err, service.ErrNotCheckedIn):
			response.Conflict(c, 18002, "尚未签到，不能签退")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, event)
}

// ListAttendance 考勤记录查询
// GET /api/v1/attendance
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	events, total, err := h.attSvc.List(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAttendanceBadDate) {
			response.BadRequest(c, 18003, "日期格式错误，应为 YYYY-MM-DD")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKPage(c, events, total, req.GetPage(), req.GetPageSize())
}
