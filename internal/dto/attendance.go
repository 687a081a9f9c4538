package dto

// ── 考勤模块 DTO ──

// CreateAttendanceRequest 新建/更新考勤请求
// 同一员工同一天重复提交按更新处理
type CreateAttendanceRequest struct {
	EmployeeID    int64   `json:"employee_id"    binding:"required"`
	Date          string  `json:"date"           binding:"required"` // YYYY-MM-DD
	CheckIn       string  `json:"check_in"       binding:"required"` // HH:MM
	CheckOut      *string `json:"check_out"      binding:"omitempty"`
	ExceptionType *string `json:"exception_type" binding:"omitempty,max=50"`
	LateMinutes   int     `json:"late_minutes"   binding:"omitempty,min=0"`
	Notes         string  `json:"notes"          binding:"omitempty,max=1000"`
}

// UpdateAttendanceRequest 按 (employee_id, date) 更新考勤
type UpdateAttendanceRequest struct {
	CheckIn       *string `json:"check_in"       binding:"omitempty"`
	CheckOut      *string `json:"check_out"      binding:"omitempty"`
	ExceptionType *string `json:"exception_type" binding:"omitempty,max=50"`
	LateMinutes   *int    `json:"late_minutes"   binding:"omitempty,min=0"`
	Notes         *string `json:"notes"          binding:"omitempty,max=1000"`
}

// AttendanceListRequest 考勤列表查询参数
type AttendanceListRequest struct {
	EmployeeID int64  `form:"employee_id" binding:"omitempty"`
	DateFrom   string `form:"date_from"   binding:"omitempty"`
	DateTo     string `form:"date_to"     binding:"omitempty"`
	PaginationRequest
}

// ── 响应 ──

// AttendanceResponse 考勤响应
type AttendanceResponse struct {
	AttendanceID  int64   `json:"attendance_id"`
	EmployeeID    int64   `json:"employee_id"`
	Date          string  `json:"date"`
	CheckIn       string  `json:"check_in"`
	CheckOut      *string `json:"check_out,omitempty"`
	ExceptionType *string `json:"exception_type,omitempty"`
	LateMinutes   int     `json:"late_minutes"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
