package dto

// ── 积分模块 DTO ──

// AwardPointsRequest 发放积分请求
type AwardPointsRequest struct {
	EmployeeID  int64  `json:"employee_id"  binding:"required"`
	ReasonID    int64  `json:"reason_id"    binding:"required"`
	DateAwarded string `json:"date_awarded" binding:"omitempty"` // 省略时取当天
	Notes       string `json:"notes"        binding:"omitempty,max=1000"`
	AwardedBy   *int64 `json:"awarded_by"   binding:"omitempty"`
}

// RedeemPointsRequest 兑换积分请求
type RedeemPointsRequest struct {
	EmployeeID        int64  `json:"employee_id"        binding:"required"`
	Points            int    `json:"points"             binding:"required,min=1"`
	RedemptionType    string `json:"redemption_type"    binding:"required,max=50"`
	RedemptionDetails string `json:"redemption_details" binding:"omitempty,max=1000"`
	Notes             string `json:"notes"              binding:"omitempty,max=1000"`
	ApprovedBy        *int64 `json:"approved_by"        binding:"omitempty"`
}

// CreateRewardReasonRequest 新建奖励事由
type CreateRewardReasonRequest struct {
	Reason string `json:"reason" binding:"required,max=150"`
	Points int    `json:"points" binding:"required,min=1"`
}

// ── 响应 ──

// RewardResponse 积分发放流水响应
type RewardResponse struct {
	RewardID    int64  `json:"reward_id"`
	EmployeeID  int64  `json:"employee_id"`
	ReasonID    int64  `json:"reason_id"`
	Reason      string `json:"reason,omitempty"`
	Points      int    `json:"points"`
	DateAwarded string `json:"date_awarded"`
	Notes       string `json:"notes,omitempty"`
	AwardedBy   *int64 `json:"awarded_by,omitempty"`
}

// RedemptionResponse 积分兑换流水响应
type RedemptionResponse struct {
	RedemptionID      int64  `json:"redemption_id"`
	EmployeeID        int64  `json:"employee_id"`
	PointsRedeemed    int    `json:"points_redeemed"`
	RedemptionType    string `json:"redemption_type"`
	RedemptionDetails string `json:"redemption_details,omitempty"`
	Notes             string `json:"notes,omitempty"`
	ApprovedBy        *int64 `json:"approved_by,omitempty"`
	RedemptionDate    string `json:"redemption_date"`
}

// PointBalanceResponse 员工积分余额响应
type PointBalanceResponse struct {
	EmployeeID    int64 `json:"employee_id"`
	TotalAwarded  int   `json:"total_awarded"`
	TotalRedeemed int   `json:"total_redeemed"`
	Balance       int   `json:"balance"`
}

// RewardReasonResponse 奖励事由响应
type RewardReasonResponse struct {
	ReasonID int64  `json:"reason_id"`
	Reason   string `json:"reason"`
	Points   int    `json:"points"`
	IsActive bool   `json:"is_active"`
}

// RewardHistoryResponse 员工积分往来汇总
type RewardHistoryResponse struct {
	EmployeeID  int64                `json:"employee_id"`
	Awards      []RewardResponse     `json:"awards"`
	Redemptions []RedemptionResponse `json:"redemptions"`
	Balance     int                  `json:"balance"`
}
