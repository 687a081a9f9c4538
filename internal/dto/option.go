package dto

// ── 下拉选项模块 DTO ──

// CreateOptionRequest 新建选项
type CreateOptionRequest struct {
	Category string `json:"category" binding:"required,max=50"`
	Value    string `json:"value"    binding:"required,max=100"`
}

// UpdateOptionRequest 更新选项（启用/停用或改值）
type UpdateOptionRequest struct {
	Value    *string `json:"value"     binding:"omitempty,max=100"`
	IsActive *bool   `json:"is_active" binding:"omitempty"`
}

// OptionResponse 选项响应
type OptionResponse struct {
	OptionID int64  `json:"option_id"`
	Category string `json:"category"`
	Value    string `json:"value"`
	IsActive bool   `json:"is_active"`
}
