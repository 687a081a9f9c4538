package dto

// ── 请假模块 DTO ──

// CreateLeaveRequest 新建请假申请
type CreateLeaveRequest struct {
	EmployeeID int64  `json:"employee_id" binding:"required"`
	LeaveType  string `json:"leave_type"  binding:"required,max=50"`
	StartDate  string `json:"start_date"  binding:"required"`
	EndDate    string `json:"end_date"    binding:"required"`
}

// ReviewLeaveRequest 审批请假（approve / deny）
type ReviewLeaveRequest struct {
	ApprovedBy *int64 `json:"approved_by" binding:"omitempty"`
}

// LeaveListRequest 请假列表查询参数
type LeaveListRequest struct {
	EmployeeID int64  `form:"employee_id" binding:"omitempty"`
	Status     string `form:"status"      binding:"omitempty,oneof=Pending Approved Denied"`
	PaginationRequest
}

// ── 响应 ──

// LeaveResponse 请假申请响应
type LeaveResponse struct {
	LeaveID    int64  `json:"leave_id"`
	EmployeeID int64  `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
	ApprovedBy *int64 `json:"approved_by,omitempty"`
	ApprovedAt string `json:"approved_at,omitempty"`
	CreatedAt  string `json:"created_at"`
}
