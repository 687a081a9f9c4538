package dto

// ── 异常模块 DTO ──

// CreateExceptionRequest 新建异常记录
type CreateExceptionRequest struct {
	EmployeeID         int64   `json:"employee_id"         binding:"required"`
	ExceptionType      string  `json:"exception_type"      binding:"required,max=50"`
	StartDate          string  `json:"start_date"          binding:"required"`
	EndDate            string  `json:"end_date"            binding:"required"`
	WorkCode           *string `json:"work_code"           binding:"omitempty,max=50"`
	Notes              string  `json:"notes"               binding:"omitempty,max=1000"`
	SupervisorOverride *string `json:"supervisor_override" binding:"omitempty,max=100"`
}

// ProcessExceptionRequest 处理异常：生成对应日期区间的排班
type ProcessExceptionRequest struct {
	ProcessedBy *int64 `json:"processed_by" binding:"omitempty"`
}

// ExceptionListRequest 异常列表查询参数
type ExceptionListRequest struct {
	EmployeeID int64  `form:"employee_id" binding:"omitempty"`
	Status     string `form:"status"      binding:"omitempty,oneof=Pending Completed"`
	PaginationRequest
}

// ── 响应 ──

// ExceptionResponse 异常记录响应
type ExceptionResponse struct {
	ExceptionID        int64   `json:"exception_id"`
	EmployeeID         int64   `json:"employee_id"`
	ExceptionType      string  `json:"exception_type"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	WorkCode           *string `json:"work_code,omitempty"`
	Status             string  `json:"status"`
	Notes              string  `json:"notes,omitempty"`
	SupervisorOverride *string `json:"supervisor_override,omitempty"`
	ProcessedBy        *int64  `json:"processed_by,omitempty"`
	ProcessedAt        string  `json:"processed_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// ProcessExceptionResponse 处理结果响应
type ProcessExceptionResponse struct {
	ExceptionID      int64 `json:"exception_id"`
	SchedulesCreated int   `json:"schedules_created"`
}
