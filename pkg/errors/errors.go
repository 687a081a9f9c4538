package errors

import "errors"

// ErrDuplicateKey 唯一约束冲突：记录已存在
// Repository 层捕获 PostgreSQL 23505 后统一转换为该错误，
// 由 Service 层按实体的去重策略决定跳过或覆盖
var ErrDuplicateKey = errors.New("记录已存在，违反唯一约束")
