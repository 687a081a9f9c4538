package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/model"
)

// ScheduleFilter 排班列表过滤条件
type ScheduleFilter struct {
	EmployeeID int64
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ScheduleRepository 排班数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	BatchCreate(ctx context.Context, schedules []model.Schedule) error
	GetByID(ctx context.Context, scheduleID int64) (*model.Schedule, error)
	List(ctx context.Context, filter ScheduleFilter, offset, limit int) ([]model.Schedule, int64, error)
	// ListByEmployeeRange 取某员工一段日期内的全部排班（日历导出用，不分页）
	ListByEmployeeRange(ctx context.Context, employeeID int64, from, to time.Time) ([]model.Schedule, error)
	Delete(ctx context.Context, scheduleID int64) error
	// ListOlderThan 取 start_date 早于 cutoff 的排班，归档候选
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]model.Schedule, error)
	DeleteByIDs(ctx context.Context, scheduleIDs []int64) error
	BatchCreateHistory(ctx context.Context, rows []model.ScheduleHistory) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return translateErr(r.db.WithContext(ctx).Create(schedule).Error)
}

func (r *scheduleRepo) BatchCreate(ctx context.Context, schedules []model.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return translateErr(r.db.WithContext(ctx).Create(&schedules).Error)
}

func (r *scheduleRepo) GetByID(ctx context.Context, scheduleID int64) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("schedule_id = ?", scheduleID).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context, filter ScheduleFilter, offset, limit int) ([]model.Schedule, int64, error) {
	var schedules []model.Schedule
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Schedule{})
	if filter.EmployeeID != 0 {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.DateFrom != nil {
		db = db.Where("start_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("start_date <= ?", *filter.DateTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employee").
		Offset(offset).Limit(limit).
		Order("start_date ASC, employee_id ASC").
		Find(&schedules).Error; err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

func (r *scheduleRepo) ListByEmployeeRange(ctx context.Context, employeeID int64, from, to time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND start_date >= ? AND start_date <= ?", employeeID, from, to).
		Order("start_date ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) Delete(ctx context.Context, scheduleID int64) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Delete(&model.Schedule{}).Error
}

func (r *scheduleRepo) ListOlderThan(ctx context.Context, cutoff time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("start_date < ?", cutoff).
		Order("schedule_id ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) DeleteByIDs(ctx context.Context, scheduleIDs []int64) error {
	if len(scheduleIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("schedule_id IN ?", scheduleIDs).
		Delete(&model.Schedule{}).Error
}

func (r *scheduleRepo) BatchCreateHistory(ctx context.Context, rows []model.ScheduleHistory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
