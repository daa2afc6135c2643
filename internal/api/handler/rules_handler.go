package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/service"
	"github.com/sudhan-ops/onboarding-sub001/pkg/response"
)

// RulesHandler 入职规则模块 HTTP 处理器
type RulesHandler struct {
	rulesSvc service.RulesService
}

// NewRulesHandler 创建 RulesHandler
func NewRulesHandler(rulesSvc service.RulesService) *RulesHandler {
	return &RulesHandler{rulesSvc: rulesSvc}
}

// GetRules 获取入职规则单例
// GET /api/v1/enrollment-rules
func (h *RulesHandler) GetRules(c *gin.Context) {
	rules, err := h.rulesSvc.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrRulesNotFound) {
			response.Error(c, http.StatusInternalServerError, 15001, "入职规则未初始化")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, rules)
}

// UpdateRules 更新入职规则（管理员）
// PUT /api/v1/enrollment-rules
func (h *RulesHandler) UpdateRules(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rules, err := h.rulesSvc.Update(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRulesNotFound):
			response.Error(c, http.StatusInternalServerError, 15001, "入职规则未初始化")
		case errors.Is(err, service.ErrRulesBadAmount):
			response.BadRequest(c, 15002, "金额格式无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, rules)
}
