package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rafael7ms/operations-db/config"
	"github.com/rafael7ms/operations-db/internal/dto"
	"github.com/rafael7ms/operations-db/internal/model"
	"github.com/rafael7ms/operations-db/internal/repository"
)

// ArchiveService 保留期归档业务接口
//
// 设计说明：
//   - 先复制后删除：候选行先在内存中备齐历史副本，整体写入 history 表
//     成功后才删除原行，两步共用一个事务，单次调用要么全部搬运要么全不搬运
//   - 幂等：已搬走的行不会再次被选中，同一 cutoff 重跑第二次搬运数 0
//   - 排班按 start_date、考勤按 date 判断是否早于 cutoff；
//     员工归档与日期无关，搬运全部 Inactive 状态的记录
type ArchiveService interface {
	// Run 按配置的保留期归档全部实体，返回各实体搬运行数
	Run(ctx context.Context) (*dto.ArchiveOutcome, error)
	ArchiveSchedules(ctx context.Context, cutoff time.Time) (int64, error)
	ArchiveAttendances(ctx context.Context, cutoff time.Time) (int64, error)
	ArchiveInactiveEmployees(ctx context.Context) (int64, error)
}

type archiveService struct {
	cfg    *config.RetentionConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewArchiveService 创建 ArchiveService 实例
func NewArchiveService(cfg *config.RetentionConfig, repo *repository.Repository, logger *zap.Logger) ArchiveService {
	return &archiveService{cfg: cfg, repo: repo, logger: logger}
}

func (s *archiveService) Run(ctx context.Context) (*dto.ArchiveOutcome, error) {
	now := time.Now().UTC()
	scheduleCutoff := now.AddDate(0, 0, -s.cfg.ScheduleDays)
	attendanceCutoff := now.AddDate(0, 0, -s.cfg.AttendanceDays)

	out := &dto.ArchiveOutcome{}

	moved, err := s.ArchiveSchedules(ctx, scheduleCutoff)
	if err != nil {
		return nil, err
	}
	out.SchedulesArchived = moved

	moved, err = s.ArchiveAttendances(ctx, attendanceCutoff)
	if err != nil {
		return nil, err
	}
	out.AttendancesArchived = moved

	moved, err = s.ArchiveInactiveEmployees(ctx)
	if err != nil {
		return nil, err
	}
	out.EmployeesArchived = moved

	s.logger.Info("归档完成",
		zap.Int64("schedules", out.SchedulesArchived),
		zap.Int64("attendances", out.AttendancesArchived),
		zap.Int64("employees", out.EmployeesArchived),
	)
	return out, nil
}

func (s *archiveService) ArchiveSchedules(ctx context.Context, cutoff time.Time) (int64, error) {
	schedules, err := s.repo.Schedule.ListOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(schedules) == 0 {
		return 0, nil
	}

	// 内存中备齐全部副本，逐字段保留原值
	rows := make([]model.ScheduleHistory, 0, len(schedules))
	ids := make([]int64, 0, len(schedules))
	for _, sc := range schedules {
		rows = append(rows, model.ScheduleHistory{
			ScheduleID: sc.ScheduleID,
			EmployeeID: sc.EmployeeID,
			StartDate:  sc.StartDate,
			StartTime:  sc.StartTime,
			StopDate:   sc.StopDate,
			StopTime:   sc.StopTime,
			WorkCode:   sc.WorkCode,
		})
		ids = append(ids, sc.ScheduleID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	repo := s.repo.WithTx(tx)

	if err := repo.Schedule.BatchCreateHistory(ctx, rows); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("排班归档复制失败", zap.Error(err))
		return 0, err
	}
	if err := repo.Schedule.DeleteByIDs(ctx, ids); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("排班归档删除失败", zap.Error(err))
		return 0, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return 0, err
		}
	}

	return int64(len(rows)), nil
}

func (s *archiveService) ArchiveAttendances(ctx context.Context, cutoff time.Time) (int64, error) {
	attendances, err := s.repo.Attendance.ListOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(attendances) == 0 {
		return 0, nil
	}

	rows := make([]model.AttendanceHistory, 0, len(attendances))
	ids := make([]int64, 0, len(attendances))
	for _, a := range attendances {
		rows = append(rows, model.AttendanceHistory{
			AttendanceID:  a.AttendanceID,
			EmployeeID:    a.EmployeeID,
			Date:          a.Date,
			CheckIn:       a.CheckIn,
			CheckOut:      a.CheckOut,
			ExceptionType: a.ExceptionType,
			LateMinutes:   a.LateMinutes,
			Notes:         a.Notes,
		})
		ids = append(ids, a.AttendanceID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	repo := s.repo.WithTx(tx)

	if err := repo.Attendance.BatchCreateHistory(ctx, rows); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("考勤归档复制失败", zap.Error(err))
		return 0, err
	}
	if err := repo.Attendance.DeleteByIDs(ctx, ids); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("考勤归档删除失败", zap.Error(err))
		return 0, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return 0, err
		}
	}

	return int64(len(rows)), nil
}

func (s *archiveService) ArchiveInactiveEmployees(ctx context.Context) (int64, error) {
	employees, err := s.repo.Employee.ListByStatus(ctx, model.EmployeeStatusInactive)
	if err != nil {
		return 0, err
	}
	if len(employees) == 0 {
		return 0, nil
	}

	rows := make([]model.EmployeeHistory, 0, len(employees))
	ids := make([]int64, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, employeeHistoryFrom(&e))
		ids = append(ids, e.EmployeeID)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	repo := s.repo.WithTx(tx)

	if err := repo.Employee.BatchCreateHistory(ctx, rows); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("员工归档复制失败", zap.Error(err))
		return 0, err
	}
	if err := repo.Employee.DeleteByIDs(ctx, ids); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("员工归档删除失败", zap.Error(err))
		return 0, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return 0, err
		}
	}

	return int64(len(rows)), nil
}

// employeeHistoryFrom 逐字段复制员工记录到历史行
func employeeHistoryFrom(e *model.Employee) model.EmployeeHistory {
	return model.EmployeeHistory{
		EmployeeID:    e.EmployeeID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      e.FullName,
		CompanyEmail:  e.CompanyEmail,
		Batch:         e.Batch,
		RuexID:        e.RuexID,
		Supervisor:    e.Supervisor,
		Manager:       e.Manager,
		Tier:          e.Tier,
		Shift:         e.Shift,
		Department:    e.Department,
		Role:          e.Role,
		HireDate:      e.HireDate,
		Status:        e.Status,
		AttritionDate: e.AttritionDate,
	}
}
