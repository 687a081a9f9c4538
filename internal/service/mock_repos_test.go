package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/model"
	"github.com/rafael7ms/operations-db/internal/repository"
	apperrors "github.com/rafael7ms/operations-db/pkg/errors"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[int64]*model.Employee
	histories []model.EmployeeHistory
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[int64]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if _, ok := m.employees[employee.EmployeeID]; ok {
		return apperrors.ErrDuplicateKey
	}
	for _, e := range m.employees {
		if e.CompanyEmail == employee.CompanyEmail {
			return apperrors.ErrDuplicateKey
		}
	}
	cp := *employee
	m.employees[employee.EmployeeID] = &cp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, employeeID int64) (*model.Employee, error) {
	if e, ok := m.employees[employeeID]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.CompanyEmail == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	if _, ok := m.employees[employee.EmployeeID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *employee
	m.employees[employee.EmployeeID] = &cp
	return nil
}

func (m *mockEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter, offset, limit int) ([]model.Employee, int64, error) {
	var all []model.Employee
	for _, e := range m.employees {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Batch != "" && e.Batch != filter.Batch {
			continue
		}
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(e.FullName), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(e.CompanyEmail), strings.ToLower(filter.Search)) {
			continue
		}
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EmployeeID < all[j].EmployeeID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockEmployeeRepo) FindByRuexID(_ context.Context, ruexID string) ([]model.Employee, error) {
	var matches []model.Employee
	for _, e := range m.employees {
		if e.RuexID == ruexID {
			matches = append(matches, *e)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].EmployeeID < matches[j].EmployeeID })
	return matches, nil
}

func (m *mockEmployeeRepo) ListByStatus(_ context.Context, status string) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.employees {
		if e.Status == status {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (m *mockEmployeeRepo) DeleteByIDs(_ context.Context, employeeIDs []int64) error {
	for _, id := range employeeIDs {
		delete(m.employees, id)
	}
	return nil
}

func (m *mockEmployeeRepo) BatchCreateHistory(_ context.Context, rows []model.EmployeeHistory) error {
	m.histories = append(m.histories, rows...)
	return nil
}

func (m *mockEmployeeRepo) AddPoints(_ context.Context, employeeID int64, delta int) error {
	e, ok := m.employees[employeeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.PointBalance += delta
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	nextID    int64
	schedules map[int64]*model.Schedule
	histories []model.ScheduleHistory
	failCopy  bool // BatchCreateHistory 强制失败，验证归档回滚
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{nextID: 1, schedules: make(map[int64]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == 0 {
		schedule.ScheduleID = m.nextID
		m.nextID++
	}
	cp := *schedule
	m.schedules[schedule.ScheduleID] = &cp
	return nil
}

func (m *mockScheduleRepo) BatchCreate(ctx context.Context, schedules []model.Schedule) error {
	for i := range schedules {
		if err := m.Create(ctx, &schedules[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, scheduleID int64) (*model.Schedule, error) {
	if s, ok := m.schedules[scheduleID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter, offset, limit int) ([]model.Schedule, int64, error) {
	var all []model.Schedule
	for _, s := range m.schedules {
		if filter.EmployeeID != 0 && s.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.DateFrom != nil && s.StartDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && s.StartDate.After(*filter.DateTo) {
			continue
		}
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ScheduleID < all[j].ScheduleID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockScheduleRepo) ListByEmployeeRange(_ context.Context, employeeID int64, from, to time.Time) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.EmployeeID != employeeID {
			continue
		}
		if s.StartDate.Before(from) || s.StartDate.After(to) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, scheduleID int64) error {
	if _, ok := m.schedules[scheduleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.schedules, scheduleID)
	return nil
}

func (m *mockScheduleRepo) ListOlderThan(_ context.Context, cutoff time.Time) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.StartDate.Before(cutoff) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduleID < result[j].ScheduleID })
	return result, nil
}

func (m *mockScheduleRepo) DeleteByIDs(_ context.Context, scheduleIDs []int64) error {
	for _, id := range scheduleIDs {
		delete(m.schedules, id)
	}
	return nil
}

func (m *mockScheduleRepo) BatchCreateHistory(_ context.Context, rows []model.ScheduleHistory) error {
	if m.failCopy {
		return gorm.ErrInvalidDB
	}
	m.histories = append(m.histories, rows...)
	return nil
}

// ── Mock AttendanceRepository ──

type attendanceKey struct {
	employeeID int64
	date       string
}

type mockAttendanceRepo struct {
	nextID      int64
	attendances map[attendanceKey]*model.Attendance
	histories   []model.AttendanceHistory
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{nextID: 1, attendances: make(map[attendanceKey]*model.Attendance)}
}

func attKey(employeeID int64, date time.Time) attendanceKey {
	return attendanceKey{employeeID: employeeID, date: date.Format("2006-01-02")}
}

func (m *mockAttendanceRepo) Create(_ context.Context, attendance *model.Attendance) error {
	key := attKey(attendance.EmployeeID, attendance.Date)
	if _, ok := m.attendances[key]; ok {
		return apperrors.ErrDuplicateKey
	}
	if attendance.AttendanceID == 0 {
		attendance.AttendanceID = m.nextID
		m.nextID++
	}
	cp := *attendance
	m.attendances[key] = &cp
	return nil
}

func (m *mockAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID int64, date time.Time) (*model.Attendance, error) {
	if a, ok := m.attendances[attKey(employeeID, date)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Update(_ context.Context, attendance *model.Attendance) error {
	key := attKey(attendance.EmployeeID, attendance.Date)
	if _, ok := m.attendances[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *attendance
	m.attendances[key] = &cp
	return nil
}

func (m *mockAttendanceRepo) List(_ context.Context, filter repository.AttendanceFilter, offset, limit int) ([]model.Attendance, int64, error) {
	var all []model.Attendance
	for _, a := range m.attendances {
		if filter.EmployeeID != 0 && a.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.DateFrom != nil && a.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && a.Date.After(*filter.DateTo) {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AttendanceID < all[j].AttendanceID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockAttendanceRepo) ListOlderThan(_ context.Context, cutoff time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.attendances {
		if a.Date.Before(cutoff) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AttendanceID < result[j].AttendanceID })
	return result, nil
}

func (m *mockAttendanceRepo) DeleteByIDs(_ context.Context, attendanceIDs []int64) error {
	for _, id := range attendanceIDs {
		for key, a := range m.attendances {
			if a.AttendanceID == id {
				delete(m.attendances, key)
			}
		}
	}
	return nil
}

func (m *mockAttendanceRepo) BatchCreateHistory(_ context.Context, rows []model.AttendanceHistory) error {
	m.histories = append(m.histories, rows...)
	return nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	nextID int64
	leaves map[int64]*model.LeaveRequest
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{nextID: 1, leaves: make(map[int64]*model.LeaveRequest)}
}

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.LeaveRequest) error {
	if leave.LeaveID == 0 {
		leave.LeaveID = m.nextID
		m.nextID++
	}
	cp := *leave
	m.leaves[leave.LeaveID] = &cp
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, leaveID int64) (*model.LeaveRequest, error) {
	if l, ok := m.leaves[leaveID]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) Update(_ context.Context, leave *model.LeaveRequest) error {
	if _, ok := m.leaves[leave.LeaveID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *leave
	m.leaves[leave.LeaveID] = &cp
	return nil
}

func (m *mockLeaveRepo) List(_ context.Context, filter repository.LeaveFilter, offset, limit int) ([]model.LeaveRequest, int64, error) {
	var all []model.LeaveRequest
	for _, l := range m.leaves {
		if filter.EmployeeID != 0 && l.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		all = append(all, *l)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LeaveID < all[j].LeaveID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock ExceptionRepository ──

type mockExceptionRepo struct {
	nextID     int64
	exceptions map[int64]*model.ExceptionRecord
}

func newMockExceptionRepo() *mockExceptionRepo {
	return &mockExceptionRepo{nextID: 1, exceptions: make(map[int64]*model.ExceptionRecord)}
}

func (m *mockExceptionRepo) Create(_ context.Context, exception *model.ExceptionRecord) error {
	if exception.ExceptionID == 0 {
		exception.ExceptionID = m.nextID
		m.nextID++
	}
	cp := *exception
	m.exceptions[exception.ExceptionID] = &cp
	return nil
}

func (m *mockExceptionRepo) GetByID(_ context.Context, exceptionID int64) (*model.ExceptionRecord, error) {
	if e, ok := m.exceptions[exceptionID]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExceptionRepo) Update(_ context.Context, exception *model.ExceptionRecord) error {
	if _, ok := m.exceptions[exception.ExceptionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *exception
	m.exceptions[exception.ExceptionID] = &cp
	return nil
}

func (m *mockExceptionRepo) List(_ context.Context, filter repository.ExceptionFilter, offset, limit int) ([]model.ExceptionRecord, int64, error) {
	var all []model.ExceptionRecord
	for _, e := range m.exceptions {
		if filter.EmployeeID != 0 && e.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ExceptionID < all[j].ExceptionID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock RewardRepository ──

type mockRewardRepo struct {
	nextRewardID     int64
	nextRedemptionID int64
	nextReasonID     int64
	rewards          []model.EmployeeReward
	redemptions      []model.RewardRedemption
	reasons          map[int64]*model.RewardReason
}

func newMockRewardRepo() *mockRewardRepo {
	return &mockRewardRepo{
		nextRewardID:     1,
		nextRedemptionID: 1,
		nextReasonID:     1,
		reasons:          make(map[int64]*model.RewardReason),
	}
}

func (m *mockRewardRepo) CreateReward(_ context.Context, reward *model.EmployeeReward) error {
	if reward.RewardID == 0 {
		reward.RewardID = m.nextRewardID
		m.nextRewardID++
	}
	m.rewards = append(m.rewards, *reward)
	return nil
}

func (m *mockRewardRepo) ListRewardsByEmployee(_ context.Context, employeeID int64) ([]model.EmployeeReward, error) {
	var result []model.EmployeeReward
	for _, r := range m.rewards {
		if r.EmployeeID == employeeID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRewardRepo) CreateRedemption(_ context.Context, redemption *model.RewardRedemption) error {
	if redemption.RedemptionID == 0 {
		redemption.RedemptionID = m.nextRedemptionID
		m.nextRedemptionID++
	}
	m.redemptions = append(m.redemptions, *redemption)
	return nil
}

func (m *mockRewardRepo) ListRedemptionsByEmployee(_ context.Context, employeeID int64) ([]model.RewardRedemption, error) {
	var result []model.RewardRedemption
	for _, r := range m.redemptions {
		if r.EmployeeID == employeeID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRewardRepo) SumAwarded(_ context.Context, employeeID int64) (int64, error) {
	var sum int64
	for _, r := range m.rewards {
		if r.EmployeeID == employeeID {
			sum += int64(r.Points)
		}
	}
	return sum, nil
}

func (m *mockRewardRepo) SumRedeemed(_ context.Context, employeeID int64) (int64, error) {
	var sum int64
	for _, r := range m.redemptions {
		if r.EmployeeID == employeeID {
			sum += int64(r.PointsRedeemed)
		}
	}
	return sum, nil
}

func (m *mockRewardRepo) CreateReason(_ context.Context, reason *model.RewardReason) error {
	for _, r := range m.reasons {
		if r.Reason == reason.Reason {
			return apperrors.ErrDuplicateKey
		}
	}
	if reason.ReasonID == 0 {
		reason.ReasonID = m.nextReasonID
		m.nextReasonID++
	}
	cp := *reason
	m.reasons[reason.ReasonID] = &cp
	return nil
}

func (m *mockRewardRepo) GetReasonByID(_ context.Context, reasonID int64) (*model.RewardReason, error) {
	if r, ok := m.reasons[reasonID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRewardRepo) ListReasons(_ context.Context, activeOnly bool) ([]model.RewardReason, error) {
	var result []model.RewardReason
	for _, r := range m.reasons {
		if activeOnly && !r.IsActive {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ReasonID < result[j].ReasonID })
	return result, nil
}

// ── Mock OptionRepository ──

type mockOptionRepo struct {
	nextID  int64
	options map[int64]*model.AdminOption
}

func newMockOptionRepo() *mockOptionRepo {
	return &mockOptionRepo{nextID: 1, options: make(map[int64]*model.AdminOption)}
}

func (m *mockOptionRepo) Create(_ context.Context, option *model.AdminOption) error {
	for _, o := range m.options {
		if o.Category == option.Category && o.Value == option.Value {
			return apperrors.ErrDuplicateKey
		}
	}
	if option.OptionID == 0 {
		option.OptionID = m.nextID
		m.nextID++
	}
	cp := *option
	m.options[option.OptionID] = &cp
	return nil
}

func (m *mockOptionRepo) GetByID(_ context.Context, optionID int64) (*model.AdminOption, error) {
	if o, ok := m.options[optionID]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOptionRepo) Update(_ context.Context, option *model.AdminOption) error {
	if _, ok := m.options[option.OptionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *option
	m.options[option.OptionID] = &cp
	return nil
}

func (m *mockOptionRepo) ListByCategory(_ context.Context, category string, activeOnly bool) ([]model.AdminOption, error) {
	var result []model.AdminOption
	for _, o := range m.options {
		if o.Category != category {
			continue
		}
		if activeOnly && !o.IsActive {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Value < result[j].Value })
	return result, nil
}

func (m *mockOptionRepo) ListAll(_ context.Context) ([]model.AdminOption, error) {
	var result []model.AdminOption
	for _, o := range m.options {
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OptionID < result[j].OptionID })
	return result, nil
}

// ── 测试用 Repository 聚合 ──

// newTestRepository 组装全部 mock，db 为 nil 时 BeginTx 返回空事务
func newTestRepository() (*repository.Repository, *mockEmployeeRepo, *mockScheduleRepo, *mockAttendanceRepo) {
	employeeRepo := newMockEmployeeRepo()
	scheduleRepo := newMockScheduleRepo()
	attendanceRepo := newMockAttendanceRepo()
	repo := &repository.Repository{
		Employee:   employeeRepo,
		Schedule:   scheduleRepo,
		Attendance: attendanceRepo,
		Leave:      newMockLeaveRepo(),
		Exception:  newMockExceptionRepo(),
		Reward:     newMockRewardRepo(),
		Option:     newMockOptionRepo(),
	}
	return repo, employeeRepo, scheduleRepo, attendanceRepo
}
