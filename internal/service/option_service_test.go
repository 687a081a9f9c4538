package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/rafael7ms/operations-db/internal/dto"
)

// ── 测试辅助 ──

// 缓存置 nil：未启用 Redis 时直接查库
func setupTestOptionService() (OptionService, *mockOptionRepo) {
	repo, _, _, _ := newTestRepository()
	optionRepo := repo.Option.(*mockOptionRepo)
	svc := NewOptionService(repo, nil, zap.NewNop())
	return svc, optionRepo
}

// ── Create / List 测试 ──

func TestOptionService_CreateAndList(t *testing.T) {
	svc, _ := setupTestOptionService()

	for _, v := range []string{"DAY", "NIGHT", "OFF"} {
		if _, err := svc.Create(context.Background(), &dto.CreateOptionRequest{Category: "work_code", Value: v}); err != nil {
			t.Fatalf("创建选项 %s 失败: %v", v, err)
		}
	}

	options, err := svc.List(context.Background(), "work_code")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(options) != 3 {
		t.Errorf("期望 3 个选项，实际 %d", len(options))
	}
}

func TestOptionService_Create_Duplicate(t *testing.T) {
	svc, _ := setupTestOptionService()

	req := &dto.CreateOptionRequest{Category: "leave_type", Value: "Vacation"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrOptionExists) {
		t.Errorf("同分类重复值期望 ErrOptionExists，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestOptionService_Update_Deactivate(t *testing.T) {
	svc, _ := setupTestOptionService()

	created, err := svc.Create(context.Background(), &dto.CreateOptionRequest{Category: "exception_type", Value: "Nesting"})
	if err != nil {
		t.Fatalf("创建选项失败: %v", err)
	}

	inactive := false
	updated, err := svc.Update(context.Background(), created.OptionID, &dto.UpdateOptionRequest{IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.IsActive {
		t.Error("选项应被停用")
	}

	// 停用项不出现在启用列表，但全量列表仍可见
	actives, _ := svc.List(context.Background(), "exception_type")
	if len(actives) != 0 {
		t.Errorf("启用列表应为空，实际 %d", len(actives))
	}
	all, _ := svc.ListAll(context.Background())
	if len(all) != 1 {
		t.Errorf("全量列表应含停用项，实际 %d", len(all))
	}
}

func TestOptionService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestOptionService()

	v := "X"
	if _, err := svc.Update(context.Background(), 999, &dto.UpdateOptionRequest{Value: &v}); !errors.Is(err, ErrOptionNotFound) {
		t.Errorf("期望 ErrOptionNotFound，实际: %v", err)
	}
}
