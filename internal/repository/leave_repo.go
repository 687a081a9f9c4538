package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/model"
)

// LeaveFilter 请假列表过滤条件
type LeaveFilter struct {
	EmployeeID int64
	Status     string
}

// LeaveRepository 请假数据访问接口
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.LeaveRequest) error
	GetByID(ctx context.Context, leaveID int64) (*model.LeaveRequest, error)
	Update(ctx context.Context, leave *model.LeaveRequest) error
	List(ctx context.Context, filter LeaveFilter, offset, limit int) ([]model.LeaveRequest, int64, error)
}

type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo 创建 LeaveRepository 实例
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, leave *model.LeaveRequest) error {
	return translateErr(r.db.WithContext(ctx).Create(leave).Error)
}

func (r *leaveRepo) GetByID(ctx context.Context, leaveID int64) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("leave_id = ?", leaveID).
		First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepo) Update(ctx context.Context, leave *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

func (r *leaveRepo) List(ctx context.Context, filter LeaveFilter, offset, limit int) ([]model.LeaveRequest, int64, error) {
	var leaves []model.LeaveRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.LeaveRequest{})
	if filter.EmployeeID != 0 {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&leaves).Error; err != nil {
		return nil, 0, err
	}

	return leaves, total, nil
}
