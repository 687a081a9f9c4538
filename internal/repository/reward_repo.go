package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/model"
)

// RewardRepository 积分数据访问接口（发放、兑换、事由）
type RewardRepository interface {
	CreateReward(ctx context.Context, reward *model.EmployeeReward) error
	ListRewardsByEmployee(ctx context.Context, employeeID int64) ([]model.EmployeeReward, error)
	CreateRedemption(ctx context.Context, redemption *model.RewardRedemption) error
	ListRedemptionsByEmployee(ctx context.Context, employeeID int64) ([]model.RewardRedemption, error)
	// SumAwarded / SumRedeemed 积分余额 = 累计发放 - 累计兑换
	SumAwarded(ctx context.Context, employeeID int64) (int64, error)
	SumRedeemed(ctx context.Context, employeeID int64) (int64, error)

	CreateReason(ctx context.Context, reason *model.RewardReason) error
	GetReasonByID(ctx context.Context, reasonID int64) (*model.RewardReason, error)
	ListReasons(ctx context.Context, activeOnly bool) ([]model.RewardReason, error)
}

type rewardRepo struct {
	db *gorm.DB
}

// NewRewardRepo 创建 RewardRepository 实例
func NewRewardRepo(db *gorm.DB) RewardRepository {
	return &rewardRepo{db: db}
}

func (r *rewardRepo) CreateReward(ctx context.Context, reward *model.EmployeeReward) error {
	return translateErr(r.db.WithContext(ctx).Create(reward).Error)
}

func (r *rewardRepo) ListRewardsByEmployee(ctx context.Context, employeeID int64) ([]model.EmployeeReward, error) {
	var rewards []model.EmployeeReward
	err := r.db.WithContext(ctx).
		Preload("RewardReason").
		Where("employee_id = ?", employeeID).
		Order("date_awarded DESC, reward_id DESC").
		Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepo) CreateRedemption(ctx context.Context, redemption *model.RewardRedemption) error {
	return translateErr(r.db.WithContext(ctx).Create(redemption).Error)
}

func (r *rewardRepo) ListRedemptionsByEmployee(ctx context.Context, employeeID int64) ([]model.RewardRedemption, error) {
	var redemptions []model.RewardRedemption
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("redemption_date DESC, redemption_id DESC").
		Find(&redemptions).Error
	return redemptions, err
}

func (r *rewardRepo) SumAwarded(ctx context.Context, employeeID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.EmployeeReward{}).
		Where("employee_id = ?", employeeID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

func (r *rewardRepo) SumRedeemed(ctx context.Context, employeeID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.RewardRedemption{}).
		Where("employee_id = ?", employeeID).
		Select("COALESCE(SUM(points_redeemed), 0)").
		Scan(&total).Error
	return total, err
}

func (r *rewardRepo) CreateReason(ctx context.Context, reason *model.RewardReason) error {
	return translateErr(r.db.WithContext(ctx).Create(reason).Error)
}

func (r *rewardRepo) GetReasonByID(ctx context.Context, reasonID int64) (*model.RewardReason, error) {
	var reason model.RewardReason
	err := r.db.WithContext(ctx).
		Where("reason_id = ?", reasonID).
		First(&reason).Error
	if err != nil {
		return nil, err
	}
	return &reason, nil
}

func (r *rewardRepo) ListReasons(ctx context.Context, activeOnly bool) ([]model.RewardReason, error) {
	var reasons []model.RewardReason
	db := r.db.WithContext(ctx).Model(&model.RewardReason{})
	if activeOnly {
		db = db.Where("is_active = TRUE")
	}
	err := db.Order("reason_id ASC").Find(&reasons).Error
	return reasons, err
}
