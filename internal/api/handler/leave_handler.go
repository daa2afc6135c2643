package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/service"
	"github.com/sudhan-ops/onboarding-sub001/pkg/response"
)

// LeaveHandler 请假模块 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// CreateLeave 提交请假申请
// POST /api/v1/leaves
func (h *LeaveHandler) CreateLeave(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	leave, err := h.leaveSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		handleLeaveError(c, err)
		return
	}

	response.Created(c, leave)
}

// GetLeave 查询请假详情
// GET /api/v1/leaves/:id
func (h *LeaveHandler) GetLeave(c *gin.Context) {
	leave, err := h.leaveSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleLeaveError(c, err)
		return
	}

	response.OK(c, leave)
}

// ListLeaves 请假列表
// GET /api/v1/leaves
func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	var req dto.LeaveListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	leaves, total, err := h.leaveSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, leaves, total, req.GetPage(), req.GetPageSize())
}

// ApproveLeave 批准请假
// POST /api/v1/leaves/:id/approve
func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.leaveSvc.Approve(c.Request.Context(), c.Param("id"), reviewerID, req.Comment); err != nil {
		handleLeaveError(c, err)
		return
	}

	response.OK(c, nil)
}

// RejectLeave 驳回请假
// POST /api/v1/leaves/:id/reject
func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.leaveSvc.Reject(c.Request.Context(), c.Param("id"), reviewerID, req.Comment); err != nil {
		handleLeaveError(c, err)
		return
	}

	response.OK(c, nil)
}

// CalendarFeed 已批准请假的 iCalendar 订阅
// GET /api/v1/leaves/calendar.ics
func (h *LeaveHandler) CalendarFeed(c *gin.Context) {
	feed, err := h.leaveSvc.CalendarFeed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leaves.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// handleLeaveError 统一请假模块错误映射
func handleLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, 17001, "请假申请不存在")
	case errors.Is(err, service.ErrLeaveBadDate):
		response.BadRequest(c, 17002, "日期格式错误，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrLeaveDateOrder):
		response.BadRequest(c, 17003, "结束日期不能早于开始日期")
	case errors.Is(err, service.ErrLeaveNotPending):
		response.Conflict(c, 17004, "请假申请已审批，不能重复处理")
	case errors.Is(err, service.ErrLeaveSelfReview):
		response.Forbidden(c, 17005, "不能审批自己的请假申请")
	default:
		response.InternalError(c)
	}
}
