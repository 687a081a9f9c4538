package dto

// ── 批量导入模块 DTO ──

// ImportOutcome 批量导入结果
// Errors 中每条形如 "Row N: <原因>"，N 为数据区 1 起行号（不含表头）
type ImportOutcome struct {
	Message      string   `json:"message"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// Failed 导入是否存在失败行
func (o *ImportOutcome) Failed() bool { return o.ErrorCount > 0 }
