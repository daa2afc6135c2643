package dto

import "github.com/sudhan-ops/onboarding-sub001/internal/model"

// ── 入职向导 DTO ──

// StartOnboardingRequest 创建草稿请求
type StartOnboardingRequest struct {
	SiteID string `json:"site_id" binding:"omitempty,uuid"`
}

// OnboardingListRequest 入职记录列表查询参数
type OnboardingListRequest struct {
	PaginationRequest
	Status  string `form:"status"  binding:"omitempty,oneof=draft pending approved rejected"`
	SiteID  string `form:"site_id" binding:"omitempty,uuid"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// StepStateResponse 单个步骤的展示状态
type StepStateResponse struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Status    string `json:"status"` // complete | current | upcoming
	Clickable bool   `json:"clickable"`
}

// WizardStateResponse 向导完整状态（记录 + 步骤栏 + 保存状态）
type WizardStateResponse struct {
	Record      *model.OnboardingRecord `json:"record"`
	Steps       []StepStateResponse     `json:"steps"`
	CurrentStep string                  `json:"current_step"`
	SaveStatus  string                  `json:"save_status"` // saved | dirty | saving
}

// ValidateStepResponse 步骤校验结果
type ValidateStepResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"` // 字段路径 → 错误信息
}

// AdvanceResponse 前进/跳转结果
type AdvanceResponse struct {
	CurrentStep string              `json:"current_step"`
	Steps       []StepStateResponse `json:"steps"`
	Errors      map[string]string   `json:"errors,omitempty"` // 校验未通过时返回
}

// JumpRequest 步骤跳转请求
type JumpRequest struct {
	Step string `json:"step" binding:"required"`
}

// SaveResponse 显式保存结果
type SaveResponse struct {
	RecordID   string `json:"record_id"`
	SaveStatus string `json:"save_status"`
}

// ExtractRequest 证件识别请求
type ExtractRequest struct {
	Group    string `json:"group"     binding:"required,oneof=personal bank"`
	DocType  string `json:"doc_type"  binding:"required,oneof=aadhaar pan bank_passbook cancelled_cheque"`
	ImageURL string `json:"image_url" binding:"required,url"`
}

// ExtractResponse 证件识别结果
type ExtractResponse struct {
	AppliedFields []string `json:"applied_fields"` // 写入记录并标记已验证的字段
	Confidence    float64  `json:"confidence"`
}

// SubmitResponse 提交结果
type SubmitResponse struct {
	RecordID string `json:"record_id"` // 提交后分配的正式记录 ID
	Status   string `json:"status"`
}

// ReviewRequest 审核请求（驳回时需填写意见）
type ReviewRequest struct {
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

// OnboardingSummaryResponse 列表页摘要行
type OnboardingSummaryResponse struct {
	RecordID    string `json:"record_id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	SiteID      string `json:"site_id,omitempty"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	UpdatedAt   string `json:"updated_at"`
}

// ── 入职规则 DTO ──

// UpdateRulesRequest 更新入职规则请求（全部可选，未给字段保持不变）
type UpdateRulesRequest struct {
	EsiWageCeiling         *string `json:"esi_wage_ceiling"     binding:"omitempty"`
	GmcSalaryThreshold     *string `json:"gmc_salary_threshold" binding:"omitempty"`
	DefaultGmcTier         *string `json:"default_gmc_tier"     binding:"omitempty,max=50"`
	MarriedGmcTier         *string `json:"married_gmc_tier"     binding:"omitempty,max=50"`
	StrictFamilyValidation *bool   `json:"strict_family_validation"`
	ParentMinAgeGap        *int    `json:"parent_min_age_gap"   binding:"omitempty,min=0,max=100"`
	ChildMinAgeGap         *int    `json:"child_min_age_gap"    binding:"omitempty,min=0,max=100"`
	SpouseMaxAgeGap        *int    `json:"spouse_max_age_gap"   binding:"omitempty,min=0,max=100"`
}
