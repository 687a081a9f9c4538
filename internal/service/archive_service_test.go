package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rafael7ms/operations-db/config"
	"github.com/rafael7ms/operations-db/internal/model"
	"github.com/rafael7ms/operations-db/internal/repository"
)

// ── 测试辅助 ──

func setupTestArchiveService() (ArchiveService, *repository.Repository, *mockEmployeeRepo, *mockScheduleRepo, *mockAttendanceRepo) {
	repo, employeeRepo, scheduleRepo, attendanceRepo := newTestRepository()
	cfg := &config.RetentionConfig{ScheduleDays: 60, AttendanceDays: 30}
	svc := NewArchiveService(cfg, repo, zap.NewNop())
	return svc, repo, employeeRepo, scheduleRepo, attendanceRepo
}

func dateAt(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

// ── 排班归档测试 ──

func TestArchiveSchedules_MovesOldRows(t *testing.T) {
	svc, _, _, scheduleRepo, _ := setupTestArchiveService()

	start := "08:00"
	stop := "17:00"
	code := "DAY"
	old := &model.Schedule{EmployeeID: 100, StartDate: dateAt("2026-01-01"), StartTime: &start, StopDate: dateAt("2026-01-01"), StopTime: &stop, WorkCode: &code}
	recent := &model.Schedule{EmployeeID: 100, StartDate: dateAt("2026-06-01"), StartTime: &start, StopDate: dateAt("2026-06-01"), StopTime: &stop, WorkCode: &code}
	scheduleRepo.Create(context.Background(), old)
	scheduleRepo.Create(context.Background(), recent)

	moved, err := svc.ArchiveSchedules(context.Background(), dateAt("2026-03-01"))
	if err != nil {
		t.Fatalf("归档应成功: %v", err)
	}
	if moved != 1 {
		t.Errorf("期望搬运 1 条，实际 %d", moved)
	}
	if len(scheduleRepo.schedules) != 1 {
		t.Errorf("当前表应剩 1 条，实际 %d", len(scheduleRepo.schedules))
	}
	if len(scheduleRepo.histories) != 1 {
		t.Fatalf("历史表应有 1 条，实际 %d", len(scheduleRepo.histories))
	}

	// 逐字段保真
	h := scheduleRepo.histories[0]
	if h.ScheduleID != old.ScheduleID || h.EmployeeID != 100 {
		t.Error("历史行应保留原排班编号与员工编号")
	}
	if h.StartTime == nil || *h.StartTime != "08:00" || h.StopTime == nil || *h.StopTime != "17:00" {
		t.Error("历史行应保留班次时间")
	}
	if h.WorkCode == nil || *h.WorkCode != "DAY" {
		t.Error("历史行应保留工作代码")
	}
}

func TestArchiveSchedules_Idempotent(t *testing.T) {
	svc, _, _, scheduleRepo, _ := setupTestArchiveService()

	old := &model.Schedule{EmployeeID: 100, StartDate: dateAt("2026-01-01"), StopDate: dateAt("2026-01-01")}
	scheduleRepo.Create(context.Background(), old)

	cutoff := dateAt("2026-03-01")
	if moved, _ := svc.ArchiveSchedules(context.Background(), cutoff); moved != 1 {
		t.Fatalf("首轮应搬运 1 条，实际 %d", moved)
	}
	moved, err := svc.ArchiveSchedules(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("重跑应成功: %v", err)
	}
	if moved != 0 {
		t.Errorf("同一 cutoff 重跑应搬运 0 条，实际 %d", moved)
	}
	// 当前 + 历史 总量不变
	if got := len(scheduleRepo.schedules) + len(scheduleRepo.histories); got != 1 {
		t.Errorf("总行数应守恒为 1，实际 %d", got)
	}
}

func TestArchiveSchedules_CopyFailureKeepsCurrent(t *testing.T) {
	svc, _, _, scheduleRepo, _ := setupTestArchiveService()

	old := &model.Schedule{EmployeeID: 100, StartDate: dateAt("2026-01-01"), StopDate: dateAt("2026-01-01")}
	scheduleRepo.Create(context.Background(), old)
	scheduleRepo.failCopy = true

	if _, err := svc.ArchiveSchedules(context.Background(), dateAt("2026-03-01")); err == nil {
		t.Fatal("复制失败应返回错误")
	}
	// 先复制后删除：复制失败时原行必须原封不动
	if len(scheduleRepo.schedules) != 1 {
		t.Errorf("复制失败后当前表应保持 1 条，实际 %d", len(scheduleRepo.schedules))
	}
	if len(scheduleRepo.histories) != 0 {
		t.Errorf("复制失败后历史表应为空，实际 %d", len(scheduleRepo.histories))
	}
}

// ── 考勤归档测试 ──

func TestArchiveAttendances_FieldFidelity(t *testing.T) {
	svc, _, _, _, attendanceRepo := setupTestArchiveService()

	checkOut := "17:45"
	exType := "Late"
	a := &model.Attendance{
		EmployeeID:    200,
		Date:          dateAt("2026-01-10"),
		CheckIn:       "08:12",
		CheckOut:      &checkOut,
		ExceptionType: &exType,
		LateMinutes:   12,
		Notes:         "迟到补录",
	}
	attendanceRepo.Create(context.Background(), a)

	moved, err := svc.ArchiveAttendances(context.Background(), dateAt("2026-02-01"))
	if err != nil {
		t.Fatalf("归档应成功: %v", err)
	}
	if moved != 1 {
		t.Fatalf("期望搬运 1 条，实际 %d", moved)
	}

	h := attendanceRepo.histories[0]
	if h.AttendanceID != a.AttendanceID || h.EmployeeID != 200 {
		t.Error("历史行应保留原考勤编号与员工编号")
	}
	if h.CheckIn != "08:12" || h.CheckOut == nil || *h.CheckOut != "17:45" {
		t.Error("历史行应保留签到签退时间")
	}
	if h.ExceptionType == nil || *h.ExceptionType != "Late" || h.LateMinutes != 12 || h.Notes != "迟到补录" {
		t.Error("历史行应保留异常类型、迟到分钟与备注")
	}
}

// ── 员工归档测试 ──

func TestArchiveInactiveEmployees(t *testing.T) {
	svc, _, employeeRepo, _, _ := setupTestArchiveService()

	seedEmployee(employeeRepo, 100, "John", "Smith")
	seedEmployee(employeeRepo, 200, "Maria", "Garcia")
	employeeRepo.employees[200].Status = model.EmployeeStatusInactive

	moved, err := svc.ArchiveInactiveEmployees(context.Background())
	if err != nil {
		t.Fatalf("归档应成功: %v", err)
	}
	if moved != 1 {
		t.Errorf("期望搬运 1 名离职员工，实际 %d", moved)
	}
	if _, ok := employeeRepo.employees[200]; ok {
		t.Error("离职员工应已从当前表移除")
	}
	if _, ok := employeeRepo.employees[100]; !ok {
		t.Error("在职员工不应被归档")
	}
	if len(employeeRepo.histories) != 1 || employeeRepo.histories[0].EmployeeID != 200 {
		t.Error("历史表应只含离职员工 200")
	}
}

// ── Run 测试 ──

func TestArchiveRun_AllEntities(t *testing.T) {
	svc, _, employeeRepo, scheduleRepo, attendanceRepo := setupTestArchiveService()

	oldDate := time.Now().UTC().AddDate(0, 0, -90)
	scheduleRepo.Create(context.Background(), &model.Schedule{EmployeeID: 100, StartDate: oldDate, StopDate: oldDate})
	attendanceRepo.Create(context.Background(), &model.Attendance{EmployeeID: 100, Date: oldDate, CheckIn: "08:00"})
	seedEmployee(employeeRepo, 300, "Ana", "Lopez")
	employeeRepo.employees[300].Status = model.EmployeeStatusInactive

	out, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run 应成功: %v", err)
	}
	if out.SchedulesArchived != 1 || out.AttendancesArchived != 1 || out.EmployeesArchived != 1 {
		t.Errorf("期望各搬运 1 条，实际 %d/%d/%d",
			out.SchedulesArchived, out.AttendancesArchived, out.EmployeesArchived)
	}
}
