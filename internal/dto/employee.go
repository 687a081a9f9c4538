package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 新建员工请求
type CreateEmployeeRequest struct {
	EmployeeID   int64  `json:"employee_id"   binding:"required"`
	FirstName    string `json:"first_name"    binding:"required,max=100"`
	LastName     string `json:"last_name"     binding:"required,max=100"`
	CompanyEmail string `json:"company_email" binding:"required,email"`
	Batch        string `json:"batch"         binding:"required,max=20"`
	Supervisor   string `json:"supervisor"    binding:"omitempty,max=100"`
	Manager      string `json:"manager"       binding:"omitempty,max=100"`
	Tier         *int   `json:"tier"          binding:"omitempty,min=1"`
	Shift        string `json:"shift"         binding:"omitempty,max=20"`
	Department   string `json:"department"    binding:"omitempty,max=50"`
	Role         string `json:"role"          binding:"omitempty,max=50"`
	HireDate     string `json:"hire_date"     binding:"required"` // YYYY-MM-DD
}

// UpdateEmployeeRequest 更新员工请求（全部可选）
type UpdateEmployeeRequest struct {
	FirstName     *string `json:"first_name"     binding:"omitempty,max=100"`
	LastName      *string `json:"last_name"      binding:"omitempty,max=100"`
	CompanyEmail  *string `json:"company_email"  binding:"omitempty,email"`
	Batch         *string `json:"batch"          binding:"omitempty,max=20"`
	Supervisor    *string `json:"supervisor"     binding:"omitempty,max=100"`
	Manager       *string `json:"manager"        binding:"omitempty,max=100"`
	Tier          *int    `json:"tier"           binding:"omitempty,min=1"`
	Shift         *string `json:"shift"          binding:"omitempty,max=20"`
	Department    *string `json:"department"     binding:"omitempty,max=50"`
	Role          *string `json:"role"           binding:"omitempty,max=50"`
	Status        *string `json:"status"         binding:"omitempty,oneof=Active Inactive 'On Leave'"`
	AttritionDate *string `json:"attrition_date" binding:"omitempty"` // YYYY-MM-DD
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	Status     string `form:"status"     binding:"omitempty,oneof=Active Inactive 'On Leave'"`
	Batch      string `form:"batch"      binding:"omitempty,max=20"`
	Department string `form:"department" binding:"omitempty,max=50"`
	Search     string `form:"search"     binding:"omitempty,max=100"` // 按姓名/邮箱模糊匹配
	PaginationRequest
}

// ── 响应 ──

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	EmployeeID    int64  `json:"employee_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FullName      string `json:"full_name"`
	CompanyEmail  string `json:"company_email"`
	Batch         string `json:"batch"`
	RuexID        string `json:"ruex_id"`
	Supervisor    string `json:"supervisor"`
	Manager       string `json:"manager"`
	Tier          *int   `json:"tier,omitempty"`
	Shift         string `json:"shift"`
	Department    string `json:"department"`
	Role          string `json:"role"`
	HireDate      string `json:"hire_date"`
	Status        string `json:"status"`
	AttritionDate string `json:"attrition_date,omitempty"`
	PointBalance  int    `json:"point_balance"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}
