package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/dto"
	"github.com/rafael7ms/operations-db/internal/model"
	"github.com/rafael7ms/operations-db/internal/repository"
)

// ── 排班模块业务错误 ──

var (
	ErrScheduleNotFound = errors.New("排班不存在")
	ErrScheduleTimes    = errors.New("停班时刻必须晚于开班时刻")
	ErrInvalidClock     = errors.New("时间格式无效，应为 HH:MM")
)

// ScheduleService 排班业务接口
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error)
	Delete(ctx context.Context, scheduleID int64) error
	// ExportICS 导出某员工一段日期的排班为 iCalendar，供日历客户端订阅
	ExportICS(ctx context.Context, employeeID int64, from, to string) (*bytes.Buffer, string, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
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

	var startTime, stopTime *string
	if req.StartTime != nil && *req.StartTime != "" {
		t, err := parseClock(*req.StartTime)
		if err != nil {
			return nil, ErrInvalidClock
		}
		startTime = &t
	}
	if req.StopTime != nil && *req.StopTime != "" {
		t, err := parseClock(*req.StopTime)
		if err != nil {
			return nil, ErrInvalidClock
		}
		stopTime = &t
	}

	stopDate := startDate
	if req.StopDate != "" {
		stopDate, err = time.Parse("2006-01-02", req.StopDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	// 跨夜班次：未显式给出停班日期且停班时刻早于开班时刻时顺延一天
	if req.StopDate == "" && startTime != nil && stopTime != nil && *stopTime < *startTime {
		stopDate = startDate.AddDate(0, 0, 1)
	}

	// 班次区间必须正向
	if startTime != nil && stopTime != nil {
		if !combineClock(stopDate, *stopTime).After(combineClock(startDate, *startTime)) {
			return nil, ErrScheduleTimes
		}
	} else if stopDate.Before(startDate) {
		return nil, ErrScheduleTimes
	}

	schedule := &model.Schedule{
		EmployeeID: req.EmployeeID,
		StartDate:  startDate,
		StartTime:  startTime,
		StopDate:   stopDate,
		StopTime:   stopTime,
		WorkCode:   req.WorkCode,
	}
	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建排班失败", zap.Error(err))
		return nil, err
	}

	return toScheduleResponse(schedule), nil
}

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error) {
	filter := repository.ScheduleFilter{EmployeeID: req.EmployeeID}
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

	schedules, total, err := s.repo.Schedule.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		items = append(items, *toScheduleResponse(&schedules[i]))
	}
	return items, total, nil
}

func (s *scheduleService) Delete(ctx context.Context, scheduleID int64) error {
	if _, err := s.repo.Schedule.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return s.repo.Schedule.Delete(ctx, scheduleID)
}

func (s *scheduleService) ExportICS(ctx context.Context, employeeID int64, from, to string) (*bytes.Buffer, string, error) {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEmployeeNotFound
		}
		return nil, "", err
	}

	// 默认导出最近 30 天到未来 60 天
	now := time.Now().UTC()
	fromDate := now.AddDate(0, 0, -30)
	toDate := now.AddDate(0, 0, 60)
	if from != "" {
		if fromDate, err = time.Parse("2006-01-02", from); err != nil {
			return nil, "", ErrInvalidDate
		}
	}
	if to != "" {
		if toDate, err = time.Parse("2006-01-02", to); err != nil {
			return nil, "", ErrInvalidDate
		}
	}

	schedules, err := s.repo.Schedule.ListByEmployeeRange(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//operations-db//schedule-export//CN")

	for i := range schedules {
		sc := &schedules[i]
		event := cal.AddEvent(fmt.Sprintf("schedule-%d@operations-db", sc.ScheduleID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)

		summary := "班次"
		if sc.WorkCode != nil {
			summary = *sc.WorkCode
		}
		event.SetSummary(fmt.Sprintf("%s - %s", employee.FullName, summary))

		if sc.StartTime != nil && sc.StopTime != nil {
			event.SetStartAt(combineClock(sc.StartDate, *sc.StartTime))
			event.SetEndAt(combineClock(sc.StopDate, *sc.StopTime))
		} else {
			// 无班次时间（OFF / 全天）导出为全天事件
			event.SetAllDayStartAt(sc.StartDate)
			event.SetAllDayEndAt(sc.StopDate.AddDate(0, 0, 1))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule_%d.ics", employeeID)
	return buf, filename, nil
}

// combineClock 把日期与 "HH:MM" 合成一个 UTC 时刻
func combineClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// ── 响应转换 ──

func toScheduleResponse(sc *model.Schedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ScheduleID: sc.ScheduleID,
		EmployeeID: sc.EmployeeID,
		StartDate:  sc.StartDate.Format("2006-01-02"),
		StartTime:  sc.StartTime,
		StopDate:   sc.StopDate.Format("2006-01-02"),
		StopTime:   sc.StopTime,
		WorkCode:   sc.WorkCode,
		CreatedAt:  sc.CreatedAt.Format(time.RFC3339),
	}
	if sc.Employee != nil {
		resp.FullName = sc.Employee.FullName
	}
	return resp
}
