package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/ocr"
	"github.com/sudhan-ops/onboarding-sub001/internal/service"
	"github.com/sudhan-ops/onboarding-sub001/internal/wizard"
	pkgerrors "github.com/sudhan-ops/onboarding-sub001/pkg/errors"
	"github.com/sudhan-ops/onboarding-sub001/pkg/response"
)

// OnboardingHandler 入职向导模块 HTTP 处理器
type OnboardingHandler struct {
	onbSvc service.OnboardingService
}

// NewOnboardingHandler 创建 OnboardingHandler
func NewOnboardingHandler(onbSvc service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onbSvc: onbSvc}
}

// Start 创建入职草稿
// POST /api/v1/onboarding
func (h *OnboardingHandler) Start(c *gin.Context) {
	var req dto.StartOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	state, err := h.onbSvc.Start(c.Request.Context(), &req)
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.Created(c, state)
}

// Get 获取向导完整状态
// GET /api/v1/onboarding/:id
func (h *OnboardingHandler) Get(c *gin.Context) {
	state, err := h.onbSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, state)
}

// List 入职记录列表
// GET /api/v1/onboarding
func (h *OnboardingHandler) List(c *gin.Context) {
	var req dto.OnboardingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	records, total, err := h.onbSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, records, total, req.GetPage(), req.GetPageSize())
}

// PatchStep 合并指定步骤字段组的局部更新
// PATCH /api/v1/onboarding/:id/steps/:step
//
// 请求体按路径中的步骤键绑定对应的字段组结构；
// 家属与教育经历为列表型步骤，使用专用子资源接口。
func (h *OnboardingHandler) PatchStep(c *gin.Context) {
	recordID := c.Param("id")
	step := wizard.StepKey(c.Param("step"))

	var patch any
	switch step {
	case wizard.StepPersonal:
		patch = &wizard.PersonalPatch{}
	case wizard.StepAddress:
		patch = &wizard.AddressPatch{}
	case wizard.StepOrganization:
		patch = &wizard.OrganizationPatch{}
	case wizard.StepBank:
		patch = &wizard.BankPatch{}
	case wizard.StepUan:
		patch = &wizard.UanPatch{}
	case wizard.StepEsi:
		patch = &wizard.EsiPatch{}
	case wizard.StepGmc:
		patch = &wizard.GmcPatch{}
	case wizard.StepUniform:
		patch = &wizard.UniformPatch{}
	case wizard.StepBiometrics:
		patch = &wizard.BiometricsPatch{}
	case wizard.StepFamily, wizard.StepEducation:
		response.BadRequest(c, 14005, "列表型步骤请使用专用接口")
		return
	default:
		response.BadRequest(c, 14005, "未知步骤")
		return
	}

	if err := c.ShouldBindJSON(patch); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	state, err := h.onbSvc.ApplyPatch(c.Request.Context(), recordID, step, patch)
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, state)
}

// AddFamilyMember 添加家属成员
// POST /api/v1/onboarding/:id/family
func (h *OnboardingHandler) AddFamilyMember(c *gin.Context) {
	var patch wizard.FamilyMemberPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	memberID, err := h.onbSvc.AddFamilyMember(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.Created(c, gin.H{"member_id": memberID})
}

// UpdateFamilyMember 更新家属成员
// PUT /api/v1/onboarding/:id/family/:memberId
func (h *OnboardingHandler) UpdateFamilyMember(c *gin.Context) {
	var patch wizard.FamilyMemberPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.onbSvc.UpdateFamilyMember(c.Request.Context(), c.Param("id"), c.Param("memberId"), &patch)
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, nil)
}

// RemoveFamilyMember 移除家属成员
// DELETE /api/v1/onboarding/:id/family/:memberId
func (h *OnboardingHandler) RemoveFamilyMember(c *gin.Context) {
	err := h.onbSvc.RemoveFamilyMember(c.Request.Context(), c.Param("id"), c.Param("memberId"))
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, nil)
}

// AddEducation 添加教育经历
// POST /api/v1/onboarding/:id/education
func (h *OnboardingHandler) AddEducation(c *gin.Context) {
	var patch wizard.EducationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	educationID, err := h.onbSvc.AddEducation(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.Created(c, gin.H{"education_id": educationID})
}

// UpdateEducation 更新教育经历
// PUT /api/v1/onboarding/:id/education/:educationId
func (h *OnboardingHandler) UpdateEducation(c *gin.Context) {
	var patch wizard.EducationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.onbSvc.UpdateEducation(c.Request.Context(), c.Param("id"), c.Param("educationId"), &patch)
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, nil)
}

// RemoveEducation 移除教育经历
// DELETE /api/v1/onboarding/:id/education/:educationId
func (h *OnboardingHandler) RemoveEducation(c *gin.Context) {
	err := h.onbSvc.RemoveEducation(c.Request.Context(), c.Param("id"), c.Param("educationId"))
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, nil)
}

// Extract 证件识别并回填字段组
// POST /api/v1/onboarding/:id/extract
func (h *OnboardingHandler) Extract(c *gin.Context) {
	var req dto.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.onbSvc.Extract(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, result)
}

// ValidateStep 校验指定步骤（不推进）
// GET /api/v1/onboarding/:id/steps/:step/validate
func (h *OnboardingHandler) ValidateStep(c *gin.Context) {
	result, err := h.onbSvc.Validate(c.Request.Context(), c.Param("id"), wizard.StepKey(c.Param("step")))
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, result)
}

// Advance 校验当前步骤并前进
// POST /api/v1/onboarding/:id/advance
func (h *OnboardingHandler) Advance(c *gin.Context) {
	result, err := h.onbSvc.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, result)
}

// Jump 跳转到已到达过的步骤
// POST /api/v1/onboarding/:id/jump
func (h *OnboardingHandler) Jump(c *gin.Context) {
	var req dto.JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.onbSvc.Jump(c.Request.Context(), c.Param("id"), req.Step)
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, result)
}

// SaveNow 立即保存（取消防抖等待）
// POST /api/v1/onboarding/:id/save
func (h *OnboardingHandler) SaveNow(c *gin.Context) {
	result, err := h.onbSvc.SaveNow(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, result)
}

// Submit 提交草稿进入待审核
// POST /api/v1/onboarding/:id/submit
func (h *OnboardingHandler) Submit(c *gin.Context) {
	result, err := h.onbSvc.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, result)
}

// Approve 审核通过
// POST /api/v1/onboarding/:id/approve
func (h *OnboardingHandler) Approve(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.onbSvc.Approve(c.Request.Context(), c.Param("id"), reviewerID); err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, nil)
}

// Reject 审核驳回
// POST /api/v1/onboarding/:id/reject
func (h *OnboardingHandler) Reject(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.onbSvc.Reject(c.Request.Context(), c.Param("id"), reviewerID, req.Comment); err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, nil)
}

// Reopen 被驳回记录重新打开编辑
// POST /api/v1/onboarding/:id/reopen
func (h *OnboardingHandler) Reopen(c *gin.Context) {
	if err := h.onbSvc.Reopen(c.Request.Context(), c.Param("id")); err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteDraft 删除草稿
// DELETE /api/v1/onboarding/:id
func (h *OnboardingHandler) DeleteDraft(c *gin.Context) {
	if err := h.onbSvc.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		handleOnboardingError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleOnboardingError 统一入职向导模块错误映射
func handleOnboardingError(c *gin.Context, err error) {
	var stepErr *service.StepValidationError
	if errors.As(err, &stepErr) {
		response.ValidationFailed(c, stepErr.Errors)
		return
	}

	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, 14001, "入职记录不存在")
	case errors.Is(err, service.ErrRecordNotDraft):
		response.Conflict(c, 14002, "记录不是草稿状态")
	case errors.Is(err, service.ErrRecordNotPending):
		response.Conflict(c, 14003, "记录不是待审核状态")
	case errors.Is(err, service.ErrRecordNotRejected):
		response.Conflict(c, 14004, "记录不是已驳回状态")
	case errors.Is(err, service.ErrStepUnknown):
		response.BadRequest(c, 14005, "未知步骤")
	case errors.Is(err, service.ErrStepNotReached):
		response.BadRequest(c, 14006, "不能跳转到尚未到达的步骤")
	case errors.Is(err, service.ErrExtractionDisabled):
		response.BadRequest(c, 14007, "证件识别功能未启用")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14008, "数据已被其他操作修改，请刷新后重试")
	case errors.Is(err, wizard.ErrUnknownGroup):
		response.BadRequest(c, 14009, "未知字段组")
	case errors.Is(err, wizard.ErrMemberNotFound):
		response.NotFound(c, 14010, "家属成员不存在")
	case errors.Is(err, wizard.ErrEducationNotFound):
		response.NotFound(c, 14011, "教育经历不存在")
	case errors.Is(err, service.ErrSiteNotFound):
		response.NotFound(c, 13001, "站点不存在")
	case errors.Is(err, service.ErrRulesNotFound):
		response.Error(c, http.StatusInternalServerError, 15001, "入职规则未初始化")
	case errors.Is(err, ocr.ErrUnsupportedDocType):
		response.BadRequest(c, 14020, "不支持的证件类型")
	case errors.Is(err, ocr.ErrLowConfidence):
		response.Error(c, http.StatusUnprocessableEntity, 14021, "识别置信度过低，请重新拍摄")
	case errors.Is(err, ocr.ErrServiceUnavailable):
		response.Error(c, http.StatusBadGateway, 14022, "识别服务暂不可用")
	default:
		response.InternalError(c)
	}
}
