package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/dto"
	"github.com/rafael7ms/operations-db/internal/model"
	"github.com/rafael7ms/operations-db/internal/repository"
	apperrors "github.com/rafael7ms/operations-db/pkg/errors"
)

// ── 积分模块业务错误 ──

var (
	ErrReasonNotFound     = errors.New("奖励事由不存在")
	ErrReasonInactive     = errors.New("奖励事由已停用")
	ErrReasonExists       = errors.New("奖励事由已存在")
	ErrInsufficientPoints = errors.New("积分余额不足")
)

// RewardService 积分业务接口
// 余额 = 累计发放 - 累计兑换，employees.point_balance 随流水同事务更新
type RewardService interface {
	Award(ctx context.Context, req *dto.AwardPointsRequest) (*dto.RewardResponse, error)
	Redeem(ctx context.Context, req *dto.RedeemPointsRequest) (*dto.RedemptionResponse, error)
	Balance(ctx context.Context, employeeID int64) (*dto.PointBalanceResponse, error)
	History(ctx context.Context, employeeID int64) (*dto.RewardHistoryResponse, error)
	CreateReason(ctx context.Context, req *dto.CreateRewardReasonRequest) (*dto.RewardReasonResponse, error)
	ListReasons(ctx context.Context, activeOnly bool) ([]dto.RewardReasonResponse, error)
}

type rewardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRewardService 创建 RewardService 实例
func NewRewardService(repo *repository.Repository, logger *zap.Logger) RewardService {
	return &rewardService{repo: repo, logger: logger}
}

func (s *rewardService) Award(ctx context.Context, req *dto.AwardPointsRequest) (*dto.RewardResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	reason, err := s.repo.Reward.GetReasonByID(ctx, req.ReasonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReasonNotFound
		}
		return nil, err
	}
	if !reason.IsActive {
		return nil, ErrReasonInactive
	}

	dateAwarded := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DateAwarded != "" {
		if dateAwarded, err = time.Parse("2006-01-02", req.DateAwarded); err != nil {
			return nil, ErrInvalidDate
		}
	}

	reward := &model.EmployeeReward{
		EmployeeID:  req.EmployeeID,
		ReasonID:    reason.ReasonID,
		Points:      reason.Points,
		DateAwarded: dateAwarded,
		Notes:       req.Notes,
		AwardedBy:   req.AwardedBy,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	repo := s.repo.WithTx(tx)

	if err := repo.Reward.CreateReward(ctx, reward); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("发放积分失败", zap.Error(err))
		return nil, err
	}
	if err := repo.Employee.AddPoints(ctx, req.EmployeeID, reason.Points); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	resp := toRewardResponse(reward)
	resp.Reason = reason.Reason
	return resp, nil
}

func (s *rewardService) Redeem(ctx context.Context, req *dto.RedeemPointsRequest) (*dto.RedemptionResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	balance, err := s.balance(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if balance < int64(req.Points) {
		return nil, ErrInsufficientPoints
	}

	redemption := &model.RewardRedemption{
		EmployeeID:        req.EmployeeID,
		PointsRedeemed:    req.Points,
		RedemptionType:    req.RedemptionType,
		RedemptionDetails: req.RedemptionDetails,
		Notes:             req.Notes,
		ApprovedBy:        req.ApprovedBy,
		RedemptionDate:    time.Now().UTC(),
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	repo := s.repo.WithTx(tx)

	if err := repo.Reward.CreateRedemption(ctx, redemption); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("兑换积分失败", zap.Error(err))
		return nil, err
	}
	if err := repo.Employee.AddPoints(ctx, req.EmployeeID, -req.Points); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	return toRedemptionResponse(redemption), nil
}

func (s *rewardService) balance(ctx context.Context, employeeID int64) (int64, error) {
	awarded, err := s.repo.Reward.SumAwarded(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	redeemed, err := s.repo.Reward.SumRedeemed(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return awarded - redeemed, nil
}

func (s *rewardService) Balance(ctx context.Context, employeeID int64) (*dto.PointBalanceResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	awarded, err := s.repo.Reward.SumAwarded(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	redeemed, err := s.repo.Reward.SumRedeemed(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return &dto.PointBalanceResponse{
		EmployeeID:    employeeID,
		TotalAwarded:  int(awarded),
		TotalRedeemed: int(redeemed),
		Balance:       int(awarded - redeemed),
	}, nil
}

func (s *rewardService) History(ctx context.Context, employeeID int64) (*dto.RewardHistoryResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	rewards, err := s.repo.Reward.ListRewardsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	redemptions, err := s.repo.Reward.ListRedemptionsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	balance, err := s.balance(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RewardHistoryResponse{
		EmployeeID:  employeeID,
		Awards:      make([]dto.RewardResponse, 0, len(rewards)),
		Redemptions: make([]dto.RedemptionResponse, 0, len(redemptions)),
		Balance:     int(balance),
	}
	for i := range rewards {
		item := toRewardResponse(&rewards[i])
		if rewards[i].RewardReason != nil {
			item.Reason = rewards[i].RewardReason.Reason
		}
		resp.Awards = append(resp.Awards, *item)
	}
	for i := range redemptions {
		resp.Redemptions = append(resp.Redemptions, *toRedemptionResponse(&redemptions[i]))
	}
	return resp, nil
}

func (s *rewardService) CreateReason(ctx context.Context, req *dto.CreateRewardReasonRequest) (*dto.RewardReasonResponse, error) {
	reason := &model.RewardReason{
		Reason:   req.Reason,
		Points:   req.Points,
		IsActive: true,
	}
	if err := s.repo.Reward.CreateReason(ctx, reason); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, ErrReasonExists
		}
		return nil, err
	}
	return toReasonResponse(reason), nil
}

func (s *rewardService) ListReasons(ctx context.Context, activeOnly bool) ([]dto.RewardReasonResponse, error) {
	reasons, err := s.repo.Reward.ListReasons(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RewardReasonResponse, 0, len(reasons))
	for i := range reasons {
		items = append(items, *toReasonResponse(&reasons[i]))
	}
	return items, nil
}

// ── 响应转换 ──

func toRewardResponse(r *model.EmployeeReward) *dto.RewardResponse {
	return &dto.RewardResponse{
		RewardID:    r.RewardID,
		EmployeeID:  r.EmployeeID,
		ReasonID:    r.ReasonID,
		Points:      r.Points,
		DateAwarded: r.DateAwarded.Format("2006-01-02"),
		Notes:       r.Notes,
		AwardedBy:   r.AwardedBy,
	}
}

func toRedemptionResponse(r *model.RewardRedemption) *dto.RedemptionResponse {
	return &dto.RedemptionResponse{
		RedemptionID:      r.RedemptionID,
		EmployeeID:        r.EmployeeID,
		PointsRedeemed:    r.PointsRedeemed,
		RedemptionType:    r.RedemptionType,
		RedemptionDetails: r.RedemptionDetails,
		Notes:             r.Notes,
		ApprovedBy:        r.ApprovedBy,
		RedemptionDate:    r.RedemptionDate.Format(time.RFC3339),
	}
}

func toReasonResponse(r *model.RewardReason) *dto.RewardReasonResponse {
	return &dto.RewardReasonResponse{
		ReasonID: r.ReasonID,
		Reason:   r.Reason,
		Points:   r.Points,
		IsActive: r.IsActive,
	}
}
