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

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound = errors.New("员工不存在")
	ErrEmployeeExists   = errors.New("员工编号或邮箱已被占用")
	ErrInvalidDate      = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Get(ctx context.Context, employeeID int64) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, employeeID int64, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	// Archive 把单个员工搬入历史表，代替硬删除
	Archive(ctx context.Context, employeeID int64) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	employee := &model.Employee{
		EmployeeID:   req.EmployeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		FullName:     req.FirstName + " " + req.LastName,
		CompanyEmail: req.CompanyEmail,
		Batch:        req.Batch,
		RuexID:       DeriveLookupCode(req.FirstName, req.LastName),
		Supervisor:   req.Supervisor,
		Manager:      req.Manager,
		Tier:         req.Tier,
		Shift:        req.Shift,
		Department:   req.Department,
		Role:         req.Role,
		HireDate:     hireDate,
		Status:       model.EmployeeStatusActive,
	}

	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, ErrEmployeeExists
		}
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(employee), nil
}

func (s *employeeService) Get(ctx context.Context, employeeID int64) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func (s *employeeService) Update(ctx context.Context, employeeID int64, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.FirstName != nil || req.LastName != nil {
		employee.FullName = employee.FirstName + " " + employee.LastName
		employee.RuexID = DeriveLookupCode(employee.FirstName, employee.LastName)
	}
	if req.CompanyEmail != nil {
		employee.CompanyEmail = *req.CompanyEmail
	}
	if req.Batch != nil {
		employee.Batch = *req.Batch
	}
	if req.Supervisor != nil {
		employee.Supervisor = *req.Supervisor
	}
	if req.Manager != nil {
		employee.Manager = *req.Manager
	}
	if req.Tier != nil {
		employee.Tier = req.Tier
	}
	if req.Shift != nil {
		employee.Shift = *req.Shift
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.AttritionDate != nil {
		d, err := time.Parse("2006-01-02", *req.AttritionDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		employee.AttritionDate = &d
	}
	if req.Status != nil {
		employee.Status = *req.Status
		// 置为 Inactive 且未显式给出离职日期时，默认记当天
		if *req.Status == model.EmployeeStatusInactive && employee.AttritionDate == nil {
			today := time.Now().UTC().Truncate(24 * time.Hour)
			employee.AttritionDate = &today
		}
	}
	employee.UpdatedAt = time.Now().UTC()

	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, ErrEmployeeExists
		}
		s.logger.Error("更新员工失败", zap.Int64("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	return toEmployeeResponse(employee), nil
}

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	filter := repository.EmployeeFilter{
		Status:     req.Status,
		Batch:      req.Batch,
		Department: req.Department,
		Search:     req.Search,
	}
	employees, total, err := s.repo.Employee.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, *toEmployeeResponse(&employees[i]))
	}
	return items, total, nil
}

func (s *employeeService) Archive(ctx context.Context, employeeID int64) error {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	// 复制进历史表成功后才删除原行
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	repo := s.repo.WithTx(tx)

	if err := repo.Employee.BatchCreateHistory(ctx, []model.EmployeeHistory{employeeHistoryFrom(employee)}); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	if err := repo.Employee.DeleteByIDs(ctx, []int64{employeeID}); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	if tx != nil {
		return tx.Commit().Error
	}
	return nil
}

// ── 响应转换 ──

func toEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	resp := &dto.EmployeeResponse{
		EmployeeID:   e.EmployeeID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName,
		CompanyEmail: e.CompanyEmail,
		Batch:        e.Batch,
		RuexID:       e.RuexID,
		Supervisor:   e.Supervisor,
		Manager:      e.Manager,
		Tier:         e.Tier,
		Shift:        e.Shift,
		Department:   e.Department,
		Role:         e.Role,
		HireDate:     e.HireDate.Format("2006-01-02"),
		Status:       e.Status,
		PointBalance: e.PointBalance,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
	if e.AttritionDate != nil {
		resp.AttritionDate = e.AttritionDate.Format("2006-01-02")
	}
	return resp
}
