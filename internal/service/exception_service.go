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

// ── 异常模块业务错误 ──

var (
	ErrExceptionNotFound  = errors.New("异常记录不存在")
	ErrExceptionProcessed = errors.New("异常记录已处理，不能重复操作")
	ErrExceptionDates     = errors.New("结束日期不能早于开始日期")
)

// 全天休假类异常生成的排班不带班次时间
var fullDayExceptionTypes = map[string]bool{
	"Vacation": true,
	"Sick":     true,
}

// 非休假类异常（Training / Nesting 等）生成的排班使用默认工作时段
const (
	defaultExceptionStart = "06:00"
	defaultExceptionStop  = "15:00"
)

// ExceptionService 异常业务接口
// 处理（Process）一条 Pending 异常会生成覆盖其日期区间的排班并置为 Completed
type ExceptionService interface {
	Create(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error)
	List(ctx context.Context, req *dto.ExceptionListRequest) ([]dto.ExceptionResponse, int64, error)
	Process(ctx context.Context, exceptionID int64, req *dto.ProcessExceptionRequest) (*dto.ProcessExceptionResponse, error)
}

type exceptionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExceptionService 创建 ExceptionService 实例
func NewExceptionService(repo *repository.Repository, logger *zap.Logger) ExceptionService {
	return &exceptionService{repo: repo, logger: logger}
}

func (s *exceptionService) Create(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error) {
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
		return nil, ErrExceptionDates
	}

	exception := &model.ExceptionRecord{
		EmployeeID:         req.EmployeeID,
		ExceptionType:      req.ExceptionType,
		StartDate:          startDate,
		EndDate:            endDate,
		WorkCode:           req.WorkCode,
		Status:             model.RequestStatusPending,
		Notes:              req.Notes,
		SupervisorOverride: req.SupervisorOverride,
	}
	if err := s.repo.Exception.Create(ctx, exception); err != nil {
		s.logger.Error("创建异常记录失败", zap.Error(err))
		return nil, err
	}
	return toExceptionResponse(exception), nil
}

func (s *exceptionService) List(ctx context.Context, req *dto.ExceptionListRequest) ([]dto.ExceptionResponse, int64, error) {
	filter := repository.ExceptionFilter{EmployeeID: req.EmployeeID, Status: req.Status}
	exceptions, total, err := s.repo.Exception.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.ExceptionResponse, 0, len(exceptions))
	for i := range exceptions {
		items = append(items, *toExceptionResponse(&exceptions[i]))
	}
	return items, total, nil
}

func (s *exceptionService) Process(ctx context.Context, exceptionID int64, req *dto.ProcessExceptionRequest) (*dto.ProcessExceptionResponse, error) {
	exception, err := s.repo.Exception.GetByID(ctx, exceptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExceptionNotFound
		}
		return nil, err
	}
	if exception.Status != model.RequestStatusPending {
		return nil, ErrExceptionProcessed
	}

	// 休假类整段 OFF；培训类按默认工作时段生成一条覆盖区间的排班
	schedule := model.Schedule{
		EmployeeID: exception.EmployeeID,
		StartDate:  exception.StartDate,
		StopDate:   exception.EndDate,
		WorkCode:   exception.WorkCode,
	}
	if schedule.WorkCode == nil {
		code := exception.ExceptionType
		schedule.WorkCode = &code
	}
	if !fullDayExceptionTypes[exception.ExceptionType] {
		start := defaultExceptionStart
		stop := defaultExceptionStop
		schedule.StartTime = &start
		schedule.StopTime = &stop
	}

	now := time.Now().UTC()
	exception.Status = model.RequestStatusCompleted
	exception.ProcessedBy = req.ProcessedBy
	exception.ProcessedAt = &now

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	repo := s.repo.WithTx(tx)

	if err := repo.Schedule.BatchCreate(ctx, []model.Schedule{schedule}); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("异常处理生成排班失败", zap.Int64("exception_id", exceptionID), zap.Error(err))
		return nil, err
	}
	if err := repo.Exception.Update(ctx, exception); err != nil {
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

	return &dto.ProcessExceptionResponse{ExceptionID: exceptionID, SchedulesCreated: 1}, nil
}

// ── 响应转换 ──

func toExceptionResponse(e *model.ExceptionRecord) *dto.ExceptionResponse {
	resp := &dto.ExceptionResponse{
		ExceptionID:        e.ExceptionID,
		EmployeeID:         e.EmployeeID,
		ExceptionType:      e.ExceptionType,
		StartDate:          e.StartDate.Format("2006-01-02"),
		EndDate:            e.EndDate.Format("2006-01-02"),
		WorkCode:           e.WorkCode,
		Status:             e.Status,
		Notes:              e.Notes,
		SupervisorOverride: e.SupervisorOverride,
		ProcessedBy:        e.ProcessedBy,
		CreatedAt:          e.CreatedAt.Format(time.RFC3339),
	}
	if e.ProcessedAt != nil {
		resp.ProcessedAt = e.ProcessedAt.Format(time.RFC3339)
	}
	return resp
}
