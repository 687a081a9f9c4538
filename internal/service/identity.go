package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/model"
	"github.com/rafael7ms/operations-db/internal/repository"
)

// ── 身份解析业务错误 ──

var ErrIdentityNotFound = errors.New("无法解析员工标识")

// DeriveLookupCode 生成查找码：名首字母 + 姓，全小写，无分隔符
// 例: ("John", "Smith") → "jsmith"。允许碰撞，解析时按 employee_id 升序取首个
func DeriveLookupCode(firstName, lastName string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" || last == "" {
		return ""
	}
	runes := []rune(first)
	return strings.ToLower(string(runes[0]) + last)
}

// Resolver 员工身份解析器
//
// 解析顺序：
//  1. token 为纯数字 → 按主键直查
//  2. 提供了辅助映射（来自随排班一起上传的员工名单）→ 先查映射
//  3. 回退到库内按查找码匹配，employee_id 升序取首个，保证重跑结果一致
//
// 映射按批次构建、按参数传入，不做跨批次缓存
type Resolver struct {
	repo   repository.EmployeeRepository
	lookup map[string]int64
}

// NewResolver 创建解析器；lookup 可为 nil
func NewResolver(repo repository.EmployeeRepository, lookup map[string]int64) *Resolver {
	return &Resolver{repo: repo, lookup: lookup}
}

// Resolve 把原始标识 token 解析为员工记录
func (r *Resolver) Resolve(ctx context.Context, token string) (*model.Employee, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrIdentityNotFound
	}

	if id, err := strconv.ParseInt(token, 10, 64); err == nil {
		employee, err := r.repo.GetByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentityNotFound
		}
		return employee, err
	}

	code := strings.ToLower(token)

	if r.lookup != nil {
		if id, ok := r.lookup[code]; ok {
			employee, err := r.repo.GetByID(ctx, id)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrIdentityNotFound
			}
			return employee, err
		}
	}

	matches, err := r.repo.FindByRuexID(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrIdentityNotFound
	}
	return &matches[0], nil
}

// BuildLookupFromSheet 从员工名单工作表构建 查找码 → 员工编号 的映射
// 姓名或编号缺失的行直接跳过，不视为错误
func BuildLookupFromSheet(sheet *Sheet) map[string]int64 {
	lookup := make(map[string]int64)
	for _, row := range sheet.Rows {
		first := row.Get("first_name")
		last := row.Get("last_name")
		rawID := row.Get("employee_id")
		if rawID == "" {
			rawID = row.Get("odoo_id")
		}
		if first == "" || last == "" || rawID == "" {
			continue
		}
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			continue
		}
		code := DeriveLookupCode(first, last)
		if code == "" {
			continue
		}
		// 碰撞时保留编号较小者，与库内解析的升序首个一致
		if existing, ok := lookup[code]; !ok || id < existing {
			lookup[code] = id
		}
	}
	return lookup
}
