package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/config"
	"github.com/rafael7ms/operations-db/internal/dto"
	"github.com/rafael7ms/operations-db/internal/model"
	"github.com/rafael7ms/operations-db/internal/repository"
	apperrors "github.com/rafael7ms/operations-db/pkg/errors"
)

// ── 导入模块业务错误 ──

var ErrUnknownEntity = errors.New("未知的导入实体类型")

// dedupPolicy 去重策略
type dedupPolicy int

const (
	dedupInsert dedupPolicy = iota // 总是插入，不查重
	dedupSkip                      // 已存在则跳过并记为行错误
	dedupUpsert                    // 已存在则按新行覆盖
)

// dedupPolicies 各实体的去重策略，声明为数据便于调整
// 员工跳过、考勤覆盖、排班与异常直接插入
var dedupPolicies = map[string]dedupPolicy{
	"employee":   dedupSkip,
	"schedule":   dedupInsert,
	"attendance": dedupUpsert,
	"exception":  dedupInsert,
}

// ImportService 批量导入业务接口
//
// 设计说明：
//   - 行严格按文件顺序处理，逐行提交：部分失败时此前成功的行保持已提交
//     （非全量回滚），调用方依据 errors 列表修正后重传
//   - 行级错误（字段缺失/无法解析/身份未匹配/违反去重策略/单行写入失败）
//     只影响当前行；批次级错误（文件不可读/缺列/超行数上限）中止整个批次
//   - dryRun 模式执行全部校验与身份解析但不落库
type ImportService interface {
	ImportEmployees(ctx context.Context, file io.Reader, filename string, dryRun bool) (*dto.ImportOutcome, error)
	// ImportSchedules 可附带员工名单文件，用于构建 查找码 → 员工编号 映射
	ImportSchedules(ctx context.Context, file io.Reader, filename string, auxFile io.Reader, auxFilename string, dryRun bool) (*dto.ImportOutcome, error)
	ImportAttendances(ctx context.Context, file io.Reader, filename string, dryRun bool) (*dto.ImportOutcome, error)
	ImportExceptions(ctx context.Context, file io.Reader, filename string, dryRun bool) (*dto.ImportOutcome, error)
	// Template 生成对应实体的导入模板（.xlsx）
	Template(entity string) (*bytes.Buffer, string, error)
}

type importService struct {
	repo    *repository.Repository
	maxRows int
	logger  *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(cfg *config.UploadConfig, repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{repo: repo, maxRows: cfg.MaxRows, logger: logger}
}

// readAndCheck 解析文件并做批次级校验（格式、行数上限、必需列）
// aliases 在必需列校验前并入，兼容不同来源的表头命名
func (s *importService) readAndCheck(file io.Reader, filename string, aliases map[string]string, required ...string) (*Sheet, error) {
	sheet, err := ReadSheet(file, filename)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) > s.maxRows {
		return nil, &SchemaError{Reason: fmt.Sprintf("数据行数 %d 超过上限 %d", len(sheet.Rows), s.maxRows)}
	}
	for canonical, alias := range aliases {
		sheet.Alias(canonical, alias)
	}
	if err := sheet.Require(required...); err != nil {
		return nil, err
	}
	return sheet, nil
}

// failRow 记录一行的全部错误；无论几条错误，失败行只计一次
func failRow(out *dto.ImportOutcome, number int, msgs ...string) {
	for _, m := range msgs {
		out.Errors = append(out.Errors, fmt.Sprintf("Row %d: %s", number, m))
	}
	out.ErrorCount++
}

func finishOutcome(out *dto.ImportOutcome, dryRun bool) *dto.ImportOutcome {
	switch {
	case dryRun:
		out.Message = fmt.Sprintf("试运行完成: %d 行可导入, %d 行存在错误", out.SuccessCount, out.ErrorCount)
	case out.Failed():
		out.Message = fmt.Sprintf("导入完成: 成功 %d 行, 失败 %d 行", out.SuccessCount, out.ErrorCount)
	default:
		out.Message = fmt.Sprintf("导入完成: 全部 %d 行成功", out.SuccessCount)
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	return out
}

// ═══════════════════════════════════════════════════════════
// 员工导入
// ═══════════════════════════════════════════════════════════

var employeeColumns = []string{
	"employee_id", "first_name", "last_name", "batch", "supervisor",
	"manager", "shift", "department", "role", "hire_date", "company_email",
}

func validateEmployeeRow(row SheetRow) (*model.Employee, []string) {
	var errs []string
	for _, col := range employeeColumns {
		if row.Get(col) == "" {
			errs = append(errs, fmt.Sprintf("缺少必填字段 %s", col))
		}
	}

	var employeeID int64
	if raw := row.Get("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("字段 employee_id 的值 %q 不是有效编号", raw))
		} else {
			employeeID = id
		}
	}

	var hireDate time.Time
	if raw := row.Get("hire_date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("字段 hire_date: %v", err))
		} else {
			hireDate = d
		}
	}

	var tier *int
	if raw := row.Get("tier"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("字段 tier 的值 %q 不是有效数字", raw))
		} else {
			tier = &n
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	first := row.Get("first_name")
	last := row.Get("last_name")
	return &model.Employee{
		EmployeeID:   employeeID,
		FirstName:    first,
		LastName:     last,
		FullName:     first + " " + last,
		CompanyEmail: row.Get("company_email"),
		Batch:        row.Get("batch"),
		RuexID:       DeriveLookupCode(first, last),
		Supervisor:   row.Get("supervisor"),
		Manager:      row.Get("manager"),
		Tier:         tier,
		Shift:        row.Get("shift"),
		Department:   row.Get("department"),
		Role:         row.Get("role"),
		HireDate:     hireDate,
		Status:       model.EmployeeStatusActive,
	}, nil
}

func (s *importService) ImportEmployees(ctx context.Context, file io.Reader, filename string, dryRun bool) (*dto.ImportOutcome, error) {
	sheet, err := s.readAndCheck(file, filename, nil, employeeColumns...)
	if err != nil {
		return nil, err
	}

	out := &dto.ImportOutcome{}
	for _, row := range sheet.Rows {
		employee, errs := validateEmployeeRow(row)
		if len(errs) > 0 {
			failRow(out, row.Number, errs...)
			continue
		}

		// 员工的去重策略是跳过：已存在的编号或邮箱不覆盖
		if dedupPolicies["employee"] == dedupSkip {
			if _, err := s.repo.Employee.GetByID(ctx, employee.EmployeeID); err == nil {
				failRow(out, row.Number, fmt.Sprintf("员工 %d 已存在，跳过", employee.EmployeeID))
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				failRow(out, row.Number, fmt.Sprintf("查询员工失败: %v", err))
				continue
			}
			if holder, err := s.repo.Employee.GetByEmail(ctx, employee.CompanyEmail); err == nil {
				failRow(out, row.Number, fmt.Sprintf("邮箱 %s 已被员工 %d 使用，跳过", employee.CompanyEmail, holder.EmployeeID))
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				failRow(out, row.Number, fmt.Sprintf("查询员工失败: %v", err))
				continue
			}
		}

		if dryRun {
			out.SuccessCount++
			continue
		}

		if err := s.repo.Employee.Create(ctx, employee); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateKey) {
				failRow(out, row.Number, fmt.Sprintf("员工 %d 或邮箱 %s 已存在，跳过", employee.EmployeeID, employee.CompanyEmail))
			} else {
				s.logger.Error("员工行写入失败", zap.Int("row", row.Number), zap.Error(err))
				failRow(out, row.Number, fmt.Sprintf("写入失败: %v", err))
			}
			continue
		}
		out.SuccessCount++
	}

	return finishOutcome(out, dryRun), nil
}

// ═══════════════════════════════════════════════════════════
// 排班导入
// ═══════════════════════════════════════════════════════════

var scheduleColumns = []string{"employee_id", "date", "start_time", "stop_time", "work_code"}

// scheduleColumnAliases 上游排班系统导出的表头写法
// "Date - Nominal Date" / "Earliest - Start" / "Latest - Stop" 归一后按别名并入
var scheduleColumnAliases = map[string]string{
	"date":       "date_nominal_date",
	"start_time": "earliest_start",
	"stop_time":  "latest_stop",
}

// scheduleRow 校验通过的排班行
type scheduleRow struct {
	token     string
	startDate time.Time
	startTime *string
	stopDate  time.Time
	stopTime  *string
	workCode  *string
}

func validateScheduleRow(row SheetRow) (*scheduleRow, []string) {
	var errs []string

	token := row.Get("employee_id")
	if token == "" {
		errs = append(errs, "缺少必填字段 employee_id")
	}

	var startDate time.Time
	if raw := row.Get("date"); raw == "" {
		errs = append(errs, "缺少必填字段 date")
	} else if d, err := parseDate(raw); err != nil {
		errs = append(errs, fmt.Sprintf("字段 date: %v", err))
	} else {
		startDate = d
	}

	// 开班/停班时间的列必须存在，但值允许为空（OFF 日无班次时间）
	var startTime, stopTime *string
	if raw := row.Get("start_time"); raw != "" {
		t, err := parseClock(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("字段 start_time: %v", err))
		} else {
			startTime = &t
		}
	}
	if raw := row.Get("stop_time"); raw != "" {
		t, err := parseClock(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("字段 stop_time: %v", err))
		} else {
			stopTime = &t
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// 跨夜班次：停班时刻早于开班时刻时，停班日期顺延一天
	stopDate := startDate
	if startTime != nil && stopTime != nil {
		if *stopTime == *startTime {
			return nil, []string{fmt.Sprintf("停班时间 %s 与开班时间相同", *stopTime)}
		}
		if *stopTime < *startTime {
			stopDate = startDate.AddDate(0, 0, 1)
		}
	}

	var workCode *string
	if raw := row.Get("work_code"); raw != "" {
		workCode = &raw
	}

	return &scheduleRow{
		token:     token,
		startDate: startDate,
		startTime: startTime,
		stopDate:  stopDate,
		stopTime:  stopTime,
		workCode:  workCode,
	}, nil
}

func (s *importService) ImportSchedules(ctx context.Context, file io.Reader, filename string, auxFile io.Reader, auxFilename string, dryRun bool) (*dto.ImportOutcome, error) {
	// 辅助员工名单先整体解析成映射，再开始处理数据行
	var lookup map[string]int64
	if auxFile != nil {
		auxSheet, err := ReadSheet(auxFile, auxFilename)
		if err != nil {
			return nil, err
		}
		lookup = BuildLookupFromSheet(auxSheet)
	}

	sheet, err := s.readAndCheck(file, filename, scheduleColumnAliases, scheduleColumns...)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(s.repo.Employee, lookup)

	out := &dto.ImportOutcome{}
	for _, row := range sheet.Rows {
		parsed, errs := validateScheduleRow(row)
		if len(errs) > 0 {
			failRow(out, row.Number, errs...)
			continue
		}

		employee, err := resolver.Resolve(ctx, parsed.token)
		if err != nil {
			if errors.Is(err, ErrIdentityNotFound) {
				failRow(out, row.Number, fmt.Sprintf("无法匹配员工标识 %q", parsed.token))
			} else {
				failRow(out, row.Number, fmt.Sprintf("解析员工标识失败: %v", err))
			}
			continue
		}

		if dryRun {
			out.SuccessCount++
			continue
		}

		schedule := &model.Schedule{
			EmployeeID: employee.EmployeeID,
			StartDate:  parsed.startDate,
			StartTime:  parsed.startTime,
			StopDate:   parsed.stopDate,
			StopTime:   parsed.stopTime,
			WorkCode:   parsed.workCode,
		}
		if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
			s.logger.Error("排班行写入失败", zap.Int("row", row.Number), zap.Error(err))
			failRow(out, row.Number, fmt.Sprintf("写入失败: %v", err))
			continue
		}
		out.SuccessCount++
	}

	return finishOutcome(out, dryRun), nil
}

// ═══════════════════════════════════════════════════════════
// 考勤导入
// ═══════════════════════════════════════════════════════════

var attendanceColumns = []string{"employee_id", "date", "check_in"}

// attendanceRow 校验通过的考勤行
type attendanceRow struct {
	token         string
	date          time.Time
	checkIn       string
	checkOut      *string
	exceptionType *string
	lateMinutes   int
	notes         string
}

func validateAttendanceRow(row SheetRow) (*attendanceRow, []string) {
	var errs []string

	token := row.Get("employee_id")
	if token == "" {
		errs = append(errs, "缺少必填字段 employee_id")
	}

	var date time.Time
	if raw := row.Get("date"); raw == "" {
		errs = append(errs, "缺少必填字段 date")
	} else if d, err := parseDate(raw); err != nil {
		errs = append(errs, fmt.Sprintf("字段 date: %v", err))
	} else {
		date = d
	}

	var checkIn string
	if raw := row.Get("check_in"); raw == "" {
		errs = append(errs, "缺少必填字段 check_in")
	} else if t, err := parseClock(raw); err != nil {
		errs = append(errs, fmt.Sprintf("字段 check_in: %v", err))
	} else {
		checkIn = t
	}

	var checkOut *string
	if raw := row.Get("check_out"); raw != "" {
		t, err := parseClock(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("字段 check_out: %v", err))
		} else {
			checkOut = &t
		}
	}

	var lateMinutes int
	if raw := row.Get("late_minutes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("字段 late_minutes 的值 %q 不是有效数字", raw))
		} else {
			lateMinutes = n
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	var exceptionType *string
	raw := row.Get("exception_type")
	if raw == "" {
		raw = row.Get("exception")
	}
	if raw != "" {
		exceptionType = &raw
	}

	return &attendanceRow{
		token:         token,
		date:          date,
		checkIn:       checkIn,
		checkOut:      checkOut,
		exceptionType: exceptionType,
		lateMinutes:   lateMinutes,
		notes:         row.Get("notes"),
	}, nil
}

func (s *importService) ImportAttendances(ctx context.Context, file io.Reader, filename string, dryRun bool) (*dto.ImportOutcome, error) {
	sheet, err := s.readAndCheck(file, filename, nil, attendanceColumns...)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(s.repo.Employee, nil)

	out := &dto.ImportOutcome{}
	for _, row := range sheet.Rows {
		parsed, errs := validateAttendanceRow(row)
		if len(errs) > 0 {
			failRow(out, row.Number, errs...)
			continue
		}

		employee, err := resolver.Resolve(ctx, parsed.token)
		if err != nil {
			if errors.Is(err, ErrIdentityNotFound) {
				failRow(out, row.Number, fmt.Sprintf("无法匹配员工标识 %q", parsed.token))
			} else {
				failRow(out, row.Number, fmt.Sprintf("解析员工标识失败: %v", err))
			}
			continue
		}

		if dryRun {
			out.SuccessCount++
			continue
		}

		// 考勤的去重策略是覆盖：同员工同日期的第二条按更新处理
		var existing *model.Attendance
		if dedupPolicies["attendance"] == dedupUpsert {
			existing, err = s.repo.Attendance.GetByEmployeeAndDate(ctx, employee.EmployeeID, parsed.date)
		} else {
			err = gorm.ErrRecordNotFound
		}
		switch {
		case err == nil:
			existing.CheckIn = parsed.checkIn
			existing.CheckOut = parsed.checkOut
			existing.ExceptionType = parsed.exceptionType
			existing.LateMinutes = parsed.lateMinutes
			existing.Notes = parsed.notes
			if err := s.repo.Attendance.Update(ctx, existing); err != nil {
				s.logger.Error("考勤行更新失败", zap.Int("row", row.Number), zap.Error(err))
				failRow(out, row.Number, fmt.Sprintf("写入失败: %v", err))
				continue
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			attendance := &model.Attendance{
				EmployeeID:    employee.EmployeeID,
				Date:          parsed.date,
				CheckIn:       parsed.checkIn,
				CheckOut:      parsed.checkOut,
				ExceptionType: parsed.exceptionType,
				LateMinutes:   parsed.lateMinutes,
				Notes:         parsed.notes,
			}
			if err := s.repo.Attendance.Create(ctx, attendance); err != nil {
				s.logger.Error("考勤行写入失败", zap.Int("row", row.Number), zap.Error(err))
				failRow(out, row.Number, fmt.Sprintf("写入失败: %v", err))
				continue
			}
		default:
			failRow(out, row.Number, fmt.Sprintf("查询考勤失败: %v", err))
			continue
		}
		out.SuccessCount++
	}

	return finishOutcome(out, dryRun), nil
}

// ═══════════════════════════════════════════════════════════
// 异常导入
// ═══════════════════════════════════════════════════════════

var exceptionColumns = []string{"employee_id", "exception_type", "start_date", "end_date"}

// exceptionRow 校验通过的异常行
type exceptionRow struct {
	token              string
	exceptionType      string
	startDate          time.Time
	endDate            time.Time
	workCode           *string
	supervisorOverride *string
	notes              string
}

func validateExceptionRow(row SheetRow) (*exceptionRow, []string) {
	var errs []string

	token := row.Get("employee_id")
	if token == "" {
		errs = append(errs, "缺少必填字段 employee_id")
	}
	exceptionType := row.Get("exception_type")
	if exceptionType == "" {
		errs = append(errs, "缺少必填字段 exception_type")
	}

	var startDate, endDate time.Time
	if raw := row.Get("start_date"); raw == "" {
		errs = append(errs, "缺少必填字段 start_date")
	} else if d, err := parseDate(raw); err != nil {
		errs = append(errs, fmt.Sprintf("字段 start_date: %v", err))
	} else {
		startDate = d
	}
	if raw := row.Get("end_date"); raw == "" {
		errs = append(errs, "缺少必填字段 end_date")
	} else if d, err := parseDate(raw); err != nil {
		errs = append(errs, fmt.Sprintf("字段 end_date: %v", err))
	} else {
		endDate = d
	}

	if len(errs) > 0 {
		return nil, errs
	}

	if endDate.Before(startDate) {
		return nil, []string{"结束日期早于开始日期"}
	}

	var workCode, supervisorOverride *string
	if raw := row.Get("work_code"); raw != "" {
		workCode = &raw
	}
	if raw := row.Get("supervisor_override"); raw != "" {
		supervisorOverride = &raw
	}

	return &exceptionRow{
		token:              token,
		exceptionType:      exceptionType,
		startDate:          startDate,
		endDate:            endDate,
		workCode:           workCode,
		supervisorOverride: supervisorOverride,
		notes:              row.Get("notes"),
	}, nil
}

func (s *importService) ImportExceptions(ctx context.Context, file io.Reader, filename string, dryRun bool) (*dto.ImportOutcome, error) {
	sheet, err := s.readAndCheck(file, filename, nil, exceptionColumns...)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(s.repo.Employee, nil)

	out := &dto.ImportOutcome{}
	for _, row := range sheet.Rows {
		parsed, errs := validateExceptionRow(row)
		if len(errs) > 0 {
			failRow(out, row.Number, errs...)
			continue
		}

		employee, err := resolver.Resolve(ctx, parsed.token)
		if err != nil {
			if errors.Is(err, ErrIdentityNotFound) {
				failRow(out, row.Number, fmt.Sprintf("无法匹配员工标识 %q", parsed.token))
			} else {
				failRow(out, row.Number, fmt.Sprintf("解析员工标识失败: %v", err))
			}
			continue
		}

		if dryRun {
			out.SuccessCount++
			continue
		}

		exception := &model.ExceptionRecord{
			EmployeeID:         employee.EmployeeID,
			ExceptionType:      parsed.exceptionType,
			StartDate:          parsed.startDate,
			EndDate:            parsed.endDate,
			WorkCode:           parsed.workCode,
			Status:             model.RequestStatusPending,
			Notes:              parsed.notes,
			SupervisorOverride: parsed.supervisorOverride,
		}
		if err := s.repo.Exception.Create(ctx, exception); err != nil {
			s.logger.Error("异常行写入失败", zap.Int("row", row.Number), zap.Error(err))
			failRow(out, row.Number, fmt.Sprintf("写入失败: %v", err))
			continue
		}
		out.SuccessCount++
	}

	return finishOutcome(out, dryRun), nil
}

// ═══════════════════════════════════════════════════════════
// 导入模板
// ═══════════════════════════════════════════════════════════

var templateHeaders = map[string][]string{
	"employee": {
		"Employee ID", "First Name", "Last Name", "Batch", "Supervisor",
		"Manager", "Tier", "Shift", "Department", "Role", "Hire Date", "Company Email",
	},
	"schedule":   {"Employee ID", "Date", "Start Time", "Stop Time", "Work Code"},
	"attendance": {"Employee ID", "Date", "Check In", "Check Out", "Exception Type", "Late Minutes", "Notes"},
	"exception":  {"Employee ID", "Exception Type", "Start Date", "End Date", "Work Code", "Supervisor Override", "Notes"},
}

func (s *importService) Template(entity string) (*bytes.Buffer, string, error) {
	headers, ok := templateHeaders[entity]
	if !ok {
		return nil, "", ErrUnknownEntity
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, col+"1", h)
		f.SetColWidth(sheetName, col, col, 18)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("%s_import_template.xlsx", entity), nil
}
