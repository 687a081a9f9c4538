package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/model"
)

// ExceptionFilter 异常列表过滤条件
type ExceptionFilter struct {
	EmployeeID int64
	Status     string
}

// ExceptionRepository 异常数据访问接口
type ExceptionRepository interface {
	Create(ctx context.Context, exception *model.ExceptionRecord) error
	GetByID(ctx context.Context, exceptionID int64) (*model.ExceptionRecord, error)
	Update(ctx context.Context, exception *model.ExceptionRecord) error
	List(ctx context.Context, filter ExceptionFilter, offset, limit int) ([]model.ExceptionRecord, int64, error)
}

type exceptionRepo struct {
	db *gorm.DB
}

// NewExceptionRepo 创建 ExceptionRepository 实例
func NewExceptionRepo(db *gorm.DB) ExceptionRepository {
	return &exceptionRepo{db: db}
}

func (r *exceptionRepo) Create(ctx context.Context, exception *model.ExceptionRecord) error {
	return translateErr(r.db.WithContext(ctx).Create(exception).Error)
}

func (r *exceptionRepo) GetByID(ctx context.Context, exceptionID int64) (*model.ExceptionRecord, error) {
	var exception model.ExceptionRecord
	err := r.db.WithContext(ctx).
		Where("exception_id = ?", exceptionID).
		First(&exception).Error
	if err != nil {
		return nil, err
	}
	return &exception, nil
}

func (r *exceptionRepo) Update(ctx context.Context, exception *model.ExceptionRecord) error {
	return r.db.WithContext(ctx).Save(exception).Error
}

func (r *exceptionRepo) List(ctx context.Context, filter ExceptionFilter, offset, limit int) ([]model.ExceptionRecord, int64, error) {
	var exceptions []model.ExceptionRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ExceptionRecord{})
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
		Find(&exceptions).Error; err != nil {
		return nil, 0, err
	}

	return exceptions, total, nil
}
