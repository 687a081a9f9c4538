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
)

// ── 请假模块业务错误 ──

var (
	ErrLeaveNotFound        = errors.New("请假申请不存在")
	ErrLeaveAlreadyReviewed = errors.New("请假申请已审批，不能重复操作")
	ErrLeaveDates           = errors.New("结束日期不能早于开始日期")
)

// LeaveService 请假业务接口
type LeaveService interface {
	Create(ctx context.Context, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error)
	List(ctx context.Context, req *dto.LeaveListRequest) ([]dto.LeaveResponse, int64, error)
	Approve(ctx context.Context, leaveID int64, req *dto.ReviewLeaveRequest) (*dto.LeaveResponse, error)
	Deny(ctx context.Context, leaveID int64, req *dto.ReviewLeaveRequest) (*dto.LeaveResponse, error)
}

type leaveService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLeaveService 创建 LeaveService 实例
func NewLeaveService(repo *repository.Repository, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, logger: logger}
}

func (s *leaveService) Create(ctx context.Context, req *dto.CreateLeaveRequest) (*dto.LeaveResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if endDate.Before(startDate) {
		return nil, ErrLeaveDates
	}

	leave := &model.LeaveRequest{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     model.RequestStatusPending,
	}
	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		s.logger.Error("创建请假申请失败", zap.Error(err))
		return nil, err
	}
	return toLeaveResponse(leave), nil
}

func (s *leaveService) List(ctx context.Context, req *dto.LeaveListRequest) ([]dto.LeaveResponse, int64, error) {
	filter := repository.LeaveFilter{EmployeeID: req.EmployeeID, Status: req.Status}
	leaves, total, err := s.repo.Leave.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		items = append(items, *toLeaveResponse(&leaves[i]))
	}
	return items, total, nil
}

func (s *leaveService) Approve(ctx context.Context, leaveID int64, req *dto.ReviewLeaveRequest) (*dto.LeaveResponse, error) {
	return s.review(ctx, leaveID, model.RequestStatusApproved, req)
}

func (s *leaveService) Deny(ctx context.Context, leaveID int64, req *dto.ReviewLeaveRequest) (*dto.LeaveResponse, error) {
	return s.review(ctx, leaveID, model.RequestStatusDenied, req)
}

func (s *leaveService) review(ctx context.Context, leaveID int64, status string, req *dto.ReviewLeaveRequest) (*dto.LeaveResponse, error) {
	leave, err := s.repo.Leave.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	if leave.Status != model.RequestStatusPending {
		return nil, ErrLeaveAlreadyReviewed
	}

	now := time.Now().UTC()
	leave.Status = status
	leave.ApprovedBy = req.ApprovedBy
	leave.ApprovedAt = &now

	if err := s.repo.Leave.Update(ctx, leave); err != nil {
		s.logger.Error("审批请假申请失败", zap.Int64("leave_id", leaveID), zap.Error(err))
		return nil, err
	}
	return toLeaveResponse(leave), nil
}

// ── 响应转换 ──

func toLeaveResponse(l *model.LeaveRequest) *dto.LeaveResponse {
	resp := &dto.LeaveResponse{
		LeaveID:    l.LeaveID,
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Status:     l.Status,
		ApprovedBy: l.ApprovedBy,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApprovedAt != nil {
		resp.ApprovedAt = l.ApprovedAt.Format(time.RFC3339)
	}
	return resp
}
