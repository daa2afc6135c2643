package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
	pkgerrors "github.com/sudhan-ops/onboarding-sub001/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserFilter, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.SiteID != "" && (u.SiteID == nil || *u.SiteID != filter.SiteID) {
			continue
		}
		if filter.Keyword != "" &&
			!strings.Contains(u.Name, filter.Keyword) &&
			!strings.Contains(u.Email, filter.Keyword) &&
			!strings.Contains(u.Phone, filter.Keyword) {
			continue
		}
		all = append(all, *u)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockUserRepo) BatchCreate(_ context.Context, users []model.User) error {
	for i := range users {
		_ = m.Create(nil, &users[i])
	}
	return nil
}

// ── Mock SiteRepository ──

type mockSiteRepo struct {
	sites map[string]*model.Site
}

func newMockSiteRepo() *mockSiteRepo {
	return &mockSiteRepo{sites: map[string]*model.Site{
		"valid-site-id": {SiteID: "valid-site-id", Name: "测试站点"},
	}}
}

func (m *mockSiteRepo) Create(_ context.Context, site *model.Site) error {
	if site.SiteID == "" {
		site.SiteID = "site-" + site.Name
	}
	m.sites[site.SiteID] = site
	return nil
}

func (m *mockSiteRepo) GetByID(_ context.Context, id string) (*model.Site, error) {
	if s, ok := m.sites[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSiteRepo) Update(_ context.Context, site *model.Site) error {
	m.sites[site.SiteID] = site
	return nil
}

func (m *mockSiteRepo) Delete(_ context.Context, id string) error {
	delete(m.sites, id)
	return nil
}

func (m *mockSiteRepo) List(_ context.Context, offset, limit int) ([]model.Site, int64, error) {
	var all []model.Site
	for _, s := range m.sites {
		all = append(all, *s)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// ── Mock OnboardingRepository ──

type mockOnboardingRepo struct {
	records map[string]*model.OnboardingRecord
	// saveErr 非 nil 时 Save 固定返回该错误（模拟存储故障）
	saveErr error
}

func newMockOnboardingRepo() *mockOnboardingRepo {
	return &mockOnboardingRepo{records: make(map[string]*model.OnboardingRecord)}
}

func (m *mockOnboardingRepo) Create(_ context.Context, rec *model.OnboardingRecord) error {
	clone := *rec
	m.records[rec.RecordID] = &clone
	return nil
}

func (m *mockOnboardingRepo) GetByID(_ context.Context, id string) (*model.OnboardingRecord, error) {
	if r, ok := m.records[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOnboardingRepo) Save(_ context.Context, rec *model.OnboardingRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	stored, ok := m.records[rec.RecordID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if stored.Version != rec.Version {
		return pkgerrors.ErrOptimisticLock
	}
	rec.Version++
	clone := *rec
	m.records[rec.RecordID] = &clone
	return nil
}

func (m *mockOnboardingRepo) ReplaceID(_ context.Context, oldID, newID string) error {
	rec, ok := m.records[oldID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.RecordID = newID
	m.records[newID] = rec
	delete(m.records, oldID)
	return nil
}

func (m *mockOnboardingRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockOnboardingRepo) List(_ context.Context, filter repository.OnboardingFilter, offset, limit int) ([]model.OnboardingRecord, int64, error) {
	var all []model.OnboardingRecord
	for _, r := range m.records {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.SiteID != "" && (r.SiteID == nil || *r.SiteID != filter.SiteID) {
			continue
		}
		all = append(all, *r)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// ── Mock RulesRepository ──

type mockRulesRepo struct {
	rules *model.EnrollmentRules
}

func newMockRulesRepo(rules *model.EnrollmentRules) *mockRulesRepo {
	return &mockRulesRepo{rules: rules}
}

func (m *mockRulesRepo) Get(_ context.Context) (*model.EnrollmentRules, error) {
	if m.rules == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.rules, nil
}

func (m *mockRulesRepo) Update(_ context.Context, rules *model.EnrollmentRules) error {
	m.rules = rules
	return nil
}

// ── Mock UniformRepository ──

type mockUniformRepo struct {
	policies []model.SiteUniformPolicy
	charts   []model.UniformSizeChart
}

func newMockUniformRepo() *mockUniformRepo {
	return &mockUniformRepo{}
}

func (m *mockUniformRepo) GetPolicy(_ context.Context, siteID, department, designation string) (*model.SiteUniformPolicy, error) {
	for i := range m.policies {
		p := &m.policies[i]
		if p.SiteID == siteID && p.Department == department && p.Designation == designation {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUniformRepo) ListPolicies(_ context.Context, siteID string) ([]model.SiteUniformPolicy, error) {
	var result []model.SiteUniformPolicy
	for _, p := range m.policies {
		if p.SiteID == siteID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockUniformRepo) SavePolicy(_ context.Context, policy *model.SiteUniformPolicy) error {
	m.policies = append(m.policies, *policy)
	return nil
}

func (m *mockUniformRepo) DeletePolicy(_ context.Context, policyID string) error {
	for i := range m.policies {
		if m.policies[i].PolicyID == policyID {
			m.policies = append(m.policies[:i], m.policies[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUniformRepo) ListSizeCharts(_ context.Context, gender string) ([]model.UniformSizeChart, error) {
	var result []model.UniformSizeChart
	for _, c := range m.charts {
		if c.Gender == gender {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockUniformRepo) SaveSizeChart(_ context.Context, chart *model.UniformSizeChart) error {
	m.charts = append(m.charts, *chart)
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	if _, ok := m.tasks[task.TaskID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *task
	m.tasks[task.TaskID] = &clone
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) List(_ context.Context, filter repository.TaskFilter, offset, limit int) ([]model.Task, int64, error) {
	var all []model.Task
	for _, t := range m.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.AssigneeID != "" && (t.AssigneeID == nil || *t.AssigneeID != filter.AssigneeID) {
			continue
		}
		all = append(all, *t)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockTaskRepo) ListDueForEscalation(_ context.Context, now time.Time) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.EscalationDate == nil || t.EscalationDate.After(now) {
			continue
		}
		if t.Status == model.TaskStatusOpen || t.Status == model.TaskStatusInProgress {
			result = append(result, *t)
		}
	}
	return result, nil
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	leaves map[string]*model.LeaveRequest
	seq    int
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{leaves: make(map[string]*model.LeaveRequest)}
}

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.LeaveRequest) error {
	if leave.LeaveID == "" {
		m.seq++
		leave.LeaveID = fmt.Sprintf("leave-%d", m.seq)
	}
	m.leaves[leave.LeaveID] = leave
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id string) (*model.LeaveRequest, error) {
	if l, ok := m.leaves[id]; ok {
		clone := *l
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) Update(_ context.Context, leave *model.LeaveRequest) error {
	clone := *leave
	m.leaves[leave.LeaveID] = &clone
	return nil
}

func (m *mockLeaveRepo) List(_ context.Context, filter repository.LeaveFilter, offset, limit int) ([]model.LeaveRequest, int64, error) {
	var all []model.LeaveRequest
	for _, l := range m.leaves {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		all = append(all, *l)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockLeaveRepo) ListApproved(_ context.Context) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, l := range m.leaves {
		if l.Status == model.LeaveStatusApproved {
			result = append(result, *l)
		}
	}
	return result, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	events []model.AttendanceEvent
	seq    int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) Create(_ context.Context, event *model.AttendanceEvent) error {
	if event.EventID == "" {
		m.seq++
		event.EventID = fmt.Sprintf("event-%d", m.seq)
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockAttendanceRepo) LastEvent(_ context.Context, userID string) (*model.AttendanceEvent, error) {
	for i := len(m.events) - 1; i >= 0; i-- {
		if m.events[i].UserID == userID {
			clone := m.events[i]
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) List(_ context.Context, filter repository.AttendanceFilter, offset, limit int) ([]model.AttendanceEvent, int64, error) {
	var all []model.AttendanceEvent
	for _, e := range m.events {
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if !filter.From.IsZero() && e.OccurredAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !e.OccurredAt.Before(filter.To) {
			continue
		}
		all = append(all, e)
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

// ── 测试辅助 ──

// paginate 简单分页
func paginate[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// newMockRepository 组装全 mock 的 Repository 聚合
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:       newMockUserRepo(),
		Site:       newMockSiteRepo(),
		Onboarding: newMockOnboardingRepo(),
		Rules:      newMockRulesRepo(nil),
		Uniform:    newMockUniformRepo(),
		Task:       newMockTaskRepo(),
		Leave:      newMockLeaveRepo(),
		Attendance: newMockAttendanceRepo(),
	}
}
