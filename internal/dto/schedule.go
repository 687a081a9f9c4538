package dto

// ── 排班模块 DTO ──

// CreateScheduleRequest 新建排班请求
// StopDate 省略时按 StartDate 填充，跨夜班次自动顺延一天
type CreateScheduleRequest struct {
	EmployeeID int64   `json:"employee_id" binding:"required"`
	StartDate  string  `json:"start_date"  binding:"required"` // YYYY-MM-DD
	StartTime  *string `json:"start_time"  binding:"omitempty"`
	StopDate   string  `json:"stop_date"   binding:"omitempty"`
	StopTime   *string `json:"stop_time"   binding:"omitempty"`
	WorkCode   *string `json:"work_code"   binding:"omitempty,max=50"`
}

// ScheduleListRequest 排班列表查询参数
type ScheduleListRequest struct {
	EmployeeID int64  `form:"employee_id" binding:"omitempty"`
	DateFrom   string `form:"date_from"   binding:"omitempty"`
	DateTo     string `form:"date_to"     binding:"omitempty"`
	PaginationRequest
}

// ── 响应 ──

// ScheduleResponse 排班响应
type ScheduleResponse struct {
	ScheduleID int64   `json:"schedule_id"`
	EmployeeID int64   `json:"employee_id"`
	FullName   string  `json:"full_name,omitempty"`
	StartDate  string  `json:"start_date"`
	StartTime  *string `json:"start_time,omitempty"`
	StopDate   string  `json:"stop_date"`
	StopTime   *string `json:"stop_time,omitempty"`
	WorkCode   *string `json:"work_code,omitempty"`
	CreatedAt  string  `json:"created_at"`
}
