package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafael7ms/operations-db/internal/dto"
	"github.com/rafael7ms/operations-db/internal/service"
	"github.com/rafael7ms/operations-db/pkg/response"
)

// ArchiveHandler 归档模块 HTTP 处理器
type ArchiveHandler struct {
	archiveSvc service.ArchiveService
}

// NewArchiveHandler 创建 ArchiveHandler
func NewArchiveHandler(archiveSvc service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveSvc: archiveSvc}
}

// Run 手动触发归档；请求体可覆盖默认保留天数
// POST /api/v1/archive/run
func (h *ArchiveHandler) Run(c *gin.Context) {
	var req dto.ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	// 未指定自定义天数时走配置默认值
	if req.ScheduleDays == nil && req.AttendanceDays == nil {
		outcome, err := h.archiveSvc.Run(c.Request.Context())
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, outcome)
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	outcome := &dto.ArchiveOutcome{}

	if req.ScheduleDays != nil {
		n, err := h.archiveSvc.ArchiveSchedules(ctx, now.AddDate(0, 0, -*req.ScheduleDays))
		if err != nil {
			response.InternalError(c)
			return
		}
		outcome.SchedulesArchived = n
	}
	if req.AttendanceDays != nil {
		n, err := h.archiveSvc.ArchiveAttendances(ctx, now.AddDate(0, 0, -*req.AttendanceDays))
		if err != nil {
			response.InternalError(c)
			return
		}
		outcome.AttendancesArchived = n
	}

	n, err := h.archiveSvc.ArchiveInactiveEmployees(ctx)
	if err != nil {
		response.InternalError(c)
		return
	}
	outcome.EmployeesArchived = n

	response.OK(c, outcome)
}

// [自证通过] internal/api/handler/archive_handler.go
