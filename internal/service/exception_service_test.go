package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/rafael7ms/operations-db/internal/dto"
	"github.com/rafael7ms/operations-db/internal/model"
)

// ── 测试辅助 ──

func setupTestExceptionService() (ExceptionService, *mockEmployeeRepo, *mockScheduleRepo, *mockExceptionRepo) {
	repo, employeeRepo, scheduleRepo, _ := newTestRepository()
	exceptionRepo := repo.Exception.(*mockExceptionRepo)
	svc := NewExceptionService(repo, zap.NewNop())
	return svc, employeeRepo, scheduleRepo, exceptionRepo
}

// ── Create 测试 ──

func TestExceptionService_Create_DateOrder(t *testing.T) {
	svc, employeeRepo, _, _ := setupTestExceptionService()
	seedEmployee(employeeRepo, 100, "John", "Smith")

	_, err := svc.Create(context.Background(), &dto.CreateExceptionRequest{
		EmployeeID:    100,
		ExceptionType: "Training",
		StartDate:     "2026-03-10",
		EndDate:       "2026-03-08",
	})
	if !errors.Is(err, ErrExceptionDates) {
		t.Errorf("期望 ErrExceptionDates，实际: %v", err)
	}
}

// ── Process 测试 ──

func TestExceptionService_Process_TrainingGetsDefaultHours(t *testing.T) {
	svc, employeeRepo, scheduleRepo, _ := setupTestExceptionService()
	seedEmployee(employeeRepo, 100, "John", "Smith")

	created, err := svc.Create(context.Background(), &dto.CreateExceptionRequest{
		EmployeeID:    100,
		ExceptionType: "Training",
		StartDate:     "2026-03-02",
		EndDate:       "2026-03-06",
	})
	if err != nil {
		t.Fatalf("准备异常失败: %v", err)
	}

	result, err := svc.Process(context.Background(), created.ExceptionID, &dto.ProcessExceptionRequest{})
	if err != nil {
		t.Fatalf("Process 应成功: %v", err)
	}
	if result.SchedulesCreated != 1 {
		t.Errorf("期望生成 1 条覆盖区间的排班，实际 %d", result.SchedulesCreated)
	}

	if len(scheduleRepo.schedules) != 1 {
		t.Fatalf("排班未落库")
	}
	for _, sc := range scheduleRepo.schedules {
		if sc.StartDate.Format("2006-01-02") != "2026-03-02" || sc.StopDate.Format("2006-01-02") != "2026-03-06" {
			t.Error("排班应覆盖整个异常区间")
		}
		// 非休假类使用默认工作时段
		if sc.StartTime == nil || *sc.StartTime != "06:00" || sc.StopTime == nil || *sc.StopTime != "15:00" {
			t.Error("培训类异常应生成 06:00-15:00 的默认班次")
		}
		if sc.WorkCode == nil || *sc.WorkCode != "Training" {
			t.Error("未指定工作代码时应回退到异常类型")
		}
	}
}

func TestExceptionService_Process_VacationAllDay(t *testing.T) {
	svc, employeeRepo, scheduleRepo, _ := setupTestExceptionService()
	seedEmployee(employeeRepo, 100, "John", "Smith")

	created, err := svc.Create(context.Background(), &dto.CreateExceptionRequest{
		EmployeeID:    100,
		ExceptionType: "Vacation",
		StartDate:     "2026-04-01",
		EndDate:       "2026-04-05",
	})
	if err != nil {
		t.Fatalf("准备异常失败: %v", err)
	}

	if _, err := svc.Process(context.Background(), created.ExceptionID, &dto.ProcessExceptionRequest{}); err != nil {
		t.Fatalf("Process 应成功: %v", err)
	}
	for _, sc := range scheduleRepo.schedules {
		// 休假类整段无班次时间
		if sc.StartTime != nil || sc.StopTime != nil {
			t.Error("休假类异常生成的排班不应带班次时间")
		}
	}
}

func TestExceptionService_Process_MarksCompleted(t *testing.T) {
	svc, employeeRepo, _, exceptionRepo := setupTestExceptionService()
	seedEmployee(employeeRepo, 100, "John", "Smith")

	created, _ := svc.Create(context.Background(), &dto.CreateExceptionRequest{
		EmployeeID:    100,
		ExceptionType: "Nesting",
		StartDate:     "2026-03-02",
		EndDate:       "2026-03-02",
	})

	operator := int64(7)
	if _, err := svc.Process(context.Background(), created.ExceptionID, &dto.ProcessExceptionRequest{ProcessedBy: &operator}); err != nil {
		t.Fatalf("Process 应成功: %v", err)
	}

	stored := exceptionRepo.exceptions[created.ExceptionID]
	if stored.Status != model.RequestStatusCompleted {
		t.Errorf("处理后状态应为 Completed，实际 %s", stored.Status)
	}
	if stored.ProcessedBy == nil || *stored.ProcessedBy != 7 || stored.ProcessedAt == nil {
		t.Error("处理后应记录操作人与处理时间")
	}

	// 重复处理被拒绝
	if _, err := svc.Process(context.Background(), created.ExceptionID, &dto.ProcessExceptionRequest{}); !errors.Is(err, ErrExceptionProcessed) {
		t.Errorf("重复处理期望 ErrExceptionProcessed，实际: %v", err)
	}
}

func TestExceptionService_Process_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestExceptionService()

	_, err := svc.Process(context.Background(), 999, &dto.ProcessExceptionRequest{})
	if !errors.Is(err, ErrExceptionNotFound) {
		t.Errorf("期望 ErrExceptionNotFound，实际: %v", err)
	}
}
