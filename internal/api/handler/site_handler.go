package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/service"
	"github.com/sudhan-ops/onboarding-sub001/pkg/response"
)

// SiteHandler 站点模块 HTTP 处理器
type SiteHandler struct {
	siteSvc service.SiteService
}

// NewSiteHandler 创建 SiteHandler
func NewSiteHandler(siteSvc service.SiteService) *SiteHandler {
	return &SiteHandler{siteSvc: siteSvc}
}

// CreateSite 创建站点
// POST /api/v1/sites
func (h *SiteHandler) CreateSite(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	site, err := h.siteSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, site)
}

// GetSite 查询站点详情
// GET /api/v1/sites/:id
func (h *SiteHandler) GetSite(c *gin.Context) {
	site, err := h.siteSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			response.NotFound(c, 13001, "站点不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, site)
}

// ListSites 站点列表
// GET /api/v1/sites
func (h *SiteHandler) ListSites(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sites, total, err := h.siteSvc.List(c.Request.Context(), page.GetPage(), page.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, sites, total, page.GetPage(), page.GetPageSize())
}

// UpdateSite 更新站点
// PUT /api/v1/sites/:id
func (h *SiteHandler) UpdateSite(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	site, err := h.siteSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			response.NotFound(c, 13001, "站点不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, site)
}

// DeleteSite 删除站点（软删除）
// DELETE /api/v1/sites/:id
func (h *SiteHandler) DeleteSite(c *gin.Context) {
	if err := h.siteSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			response.NotFound(c, 13001, "站点不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
