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

// ── 考勤模块业务错误 ──

var ErrAttendanceNotFound = errors.New("考勤记录不存在")

// AttendanceService 考勤业务接口
// 同员工同日期唯一：重复提交按更新处理而非新增
type AttendanceService interface {
	Upsert(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error)
	Update(ctx context.Context, employeeID int64, date string, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int64, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

func (s *attendanceService) Upsert(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	checkIn, err := parseClock(req.CheckIn)
	if err != nil {
		return nil, ErrInvalidClock
	}
	var checkOut *string
	if req.CheckOut != nil && *req.CheckOut != "" {
		t, err := parseClock(*req.CheckOut)
		if err != nil {
			return nil, ErrInvalidClock
		}
		checkOut = &t
	}

	existing, err := s.repo.Attendance.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	switch {
	case err == nil:
		existing.CheckIn = checkIn
		existing.CheckOut = checkOut
		existing.ExceptionType = req.ExceptionType
		existing.LateMinutes = req.LateMinutes
		existing.Notes = req.Notes
		if err := s.repo.Attendance.Update(ctx, existing); err != nil {
			s.logger.Error("更新考勤失败", zap.Error(err))
			return nil, err
		}
		return toAttendanceResponse(existing), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		attendance := &model.Attendance{
			EmployeeID:    req.EmployeeID,
			Date:          date,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			ExceptionType: req.ExceptionType,
			LateMinutes:   req.LateMinutes,
			Notes:         req.Notes,
		}
		if err := s.repo.Attendance.Create(ctx, attendance); err != nil {
			s.logger.Error("创建考勤失败", zap.Error(err))
			return nil, err
		}
		return toAttendanceResponse(attendance), nil
	default:
		return nil, err
	}
}

func (s *attendanceService) Update(ctx context.Context, employeeID int64, dateStr string, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	attendance, err := s.repo.Attendance.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	if req.CheckIn != nil {
		t, err := parseClock(*req.CheckIn)
		if err != nil {
			return nil, ErrInvalidClock
		}
		attendance.CheckIn = t
	}
	if req.CheckOut != nil {
		if *req.CheckOut == "" {
			attendance.CheckOut = nil
		} else {
			t, err := parseClock(*req.CheckOut)
			if err != nil {
				return nil, ErrInvalidClock
			}
			attendance.CheckOut = &t
		}
	}
	if req.ExceptionType != nil {
		attendance.ExceptionType = req.ExceptionType
	}
	if req.LateMinutes != nil {
		attendance.LateMinutes = *req.LateMinutes
	}
	if req.Notes != nil {
		attendance.Notes = *req.Notes
	}

	if err := s.repo.Attendance.Update(ctx, attendance); err != nil {
		s.logger.Error("更新考勤失败", zap.Error(err))
		return nil, err
	}
	return toAttendanceResponse(attendance), nil
}

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int64, error) {
	filter := repository.AttendanceFilter{EmployeeID: req.EmployeeID}
	if req.DateFrom != "" {
		d, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		filter.DateTo = &d
	}

	attendances, total, err := s.repo.Attendance.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.AttendanceResponse, 0, len(attendances))
	for i := range attendances {
		items = append(items, *toAttendanceResponse(&attendances[i]))
	}
	return items, total, nil
}

// ── 响应转换 ──

func toAttendanceResponse(a *model.Attendance) *dto.AttendanceResponse {
	return &dto.AttendanceResponse{
		AttendanceID:  a.AttendanceID,
		EmployeeID:    a.EmployeeID,
		Date:          a.Date.Format("2006-01-02"),
		CheckIn:       a.CheckIn,
		CheckOut:      a.CheckOut,
		ExceptionType: a.ExceptionType,
		LateMinutes:   a.LateMinutes,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}
