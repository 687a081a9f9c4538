package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/model"
)

// OptionRepository 下拉选项数据访问接口
type OptionRepository interface {
	Create(ctx context.Context, option *model.AdminOption) error
	GetByID(ctx context.Context, optionID int64) (*model.AdminOption, error)
	Update(ctx context.Context, option *model.AdminOption) error
	ListByCategory(ctx context.Context, category string, activeOnly bool) ([]model.AdminOption, error)
	ListAll(ctx context.Context) ([]model.AdminOption, error)
}

type optionRepo struct {
	db *gorm.DB
}

// NewOptionRepo 创建 OptionRepository 实例
func NewOptionRepo(db *gorm.DB) OptionRepository {
	return &optionRepo{db: db}
}

func (r *optionRepo) Create(ctx context.Context, option *model.AdminOption) error {
	return translateErr(r.db.WithContext(ctx).Create(option).Error)
}

func (r *optionRepo) GetByID(ctx context.Context, optionID int64) (*model.AdminOption, error) {
	var option model.AdminOption
	err := r.db.WithContext(ctx).
		Where("option_id = ?", optionID).
		First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *optionRepo) Update(ctx context.Context, option *model.AdminOption) error {
	return translateErr(r.db.WithContext(ctx).Save(option).Error)
}

func (r *optionRepo) ListByCategory(ctx context.Context, category string, activeOnly bool) ([]model.AdminOption, error) {
	var options []model.AdminOption
	db := r.db.WithContext(ctx).Where("category = ?", category)
	if activeOnly {
		db = db.Where("is_active = TRUE")
	}
	err := db.Order("value ASC").Find(&options).Error
	return options, err
}

func (r *optionRepo) ListAll(ctx context.Context) ([]model.AdminOption, error) {
	var options []model.AdminOption
	err := r.db.WithContext(ctx).
		Order("category ASC, value ASC").
		Find(&options).Error
	return options, err
}
