package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/model"
)

// AttendanceFilter 考勤列表过滤条件
type AttendanceFilter struct {
	EmployeeID int64
	DateFrom   *time.Time
	DateTo     *time.Time
}

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *model.Attendance) error
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*model.Attendance, error)
	Update(ctx context.Context, attendance *model.Attendance) error
	List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]model.Attendance, int64, error)
	// ListOlderThan 取 date 早于 cutoff 的考勤，归档候选
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]model.Attendance, error)
	DeleteByIDs(ctx context.Context, attendanceIDs []int64) error
	BatchCreateHistory(ctx context.Context, rows []model.AttendanceHistory) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, attendance *model.Attendance) error {
	return translateErr(r.db.WithContext(ctx).Create(attendance).Error)
}

func (r *attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepo) Update(ctx context.Context, attendance *model.Attendance) error {
	return translateErr(r.db.WithContext(ctx).Save(attendance).Error)
}

func (r *attendanceRepo) List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]model.Attendance, int64, error) {
	var attendances []model.Attendance
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Attendance{})
	if filter.EmployeeID != 0 {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.DateFrom != nil {
		db = db.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		db = db.Where("date <= ?", *filter.DateTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("date DESC, employee_id ASC").
		Find(&attendances).Error; err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}

func (r *attendanceRepo) ListOlderThan(ctx context.Context, cutoff time.Time) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Where("date < ?", cutoff).
		Order("attendance_id ASC").
		Find(&attendances).Error
	return attendances, err
}

func (r *attendanceRepo) DeleteByIDs(ctx context.Context, attendanceIDs []int64) error {
	if len(attendanceIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("attendance_id IN ?", attendanceIDs).
		Delete(&model.Attendance{}).Error
}

func (r *attendanceRepo) BatchCreateHistory(ctx context.Context, rows []model.AttendanceHistory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
