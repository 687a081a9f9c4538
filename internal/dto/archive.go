package dto

// ── 归档模块 DTO ──

// ArchiveRequest 手动触发归档请求（省略时使用配置的保留期）
type ArchiveRequest struct {
	ScheduleDays   *int `json:"schedule_days"   binding:"omitempty,min=1"`
	AttendanceDays *int `json:"attendance_days" binding:"omitempty,min=1"`
}

// ArchiveOutcome 归档结果：各实体搬入历史表的行数
type ArchiveOutcome struct {
	SchedulesArchived   int64 `json:"schedules_archived"`
	AttendancesArchived int64 `json:"attendances_archived"`
	EmployeesArchived   int64 `json:"employees_archived"`
}
