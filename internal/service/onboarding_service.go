package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/config"
	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/ocr"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
	"github.com/sudhan-ops/onboarding-sub001/internal/wizard"
)

// ── 入职模块业务错误 ──

var (
	ErrRecordNotFound     = errors.New("入职记录不存在")
	ErrRecordNotDraft     = errors.New("记录不是草稿状态")
	ErrRecordNotPending   = errors.New("记录不是待审核状态")
	ErrRecordNotRejected  = errors.New("记录不是已驳回状态")
	ErrStepUnknown        = errors.New("未知步骤")
	ErrStepNotReached     = errors.New("不能跳转到尚未到达的步骤")
	ErrExtractionDisabled = errors.New("证件识别功能未启用")
)

// StepValidationError 字段校验未通过
// Errors 为字段路径 → 错误信息的完整映射
type StepValidationError struct {
	Errors map[string]string
}

func (e *StepValidationError) Error() string { return "字段校验未通过" }

// ProgressStore 向导进度标记的存取，生产环境由 Redis 实现
type ProgressStore interface {
	SetWizardProgress(ctx context.Context, draftID string, highestStep int, ttl time.Duration) error
	GetWizardProgress(ctx context.Context, draftID string) (int, error)
	DeleteWizardProgress(ctx context.Context, draftID string) error
}

// OnboardingService 入职向导业务接口
type OnboardingService interface {
	Start(ctx context.Context, req *dto.StartOnboardingRequest) (*dto.WizardStateResponse, error)
	Get(ctx context.Context, recordID string) (*dto.WizardStateResponse, error)

	// ApplyPatch 合并指定步骤字段组的局部更新并触发自动保存
	ApplyPatch(ctx context.Context, recordID string, step wizard.StepKey, patch any) (*dto.WizardStateResponse, error)
	AddFamilyMember(ctx context.Context, recordID string, p *wizard.FamilyMemberPatch) (string, error)
	UpdateFamilyMember(ctx context.Context, recordID, memberID string, p *wizard.FamilyMemberPatch) error
	RemoveFamilyMember(ctx context.Context, recordID, memberID string) error
	AddEducation(ctx context.Context, recordID string, p *wizard.EducationPatch) (string, error)
	UpdateEducation(ctx context.Context, recordID, educationID string, p *wizard.EducationPatch) error
	RemoveEducation(ctx context.Context, recordID, educationID string) error

	Extract(ctx context.Context, recordID string, req *dto.ExtractRequest) (*dto.ExtractResponse, error)

	Validate(ctx context.Context, recordID string, step wizard.StepKey) (*dto.ValidateStepResponse, error)
	Advance(ctx context.Context, recordID string) (*dto.AdvanceResponse, error)
	Jump(ctx context.Context, recordID, stepKey string) (*dto.AdvanceResponse, error)
	SaveNow(ctx context.Context, recordID string) (*dto.SaveResponse, error)

	Submit(ctx context.Context, recordID string) (*dto.SubmitResponse, error)
	Approve(ctx context.Context, recordID, reviewerID string) error
	Reject(ctx context.Context, recordID, reviewerID, comment string) error
	Reopen(ctx context.Context, recordID string) error
	DeleteDraft(ctx context.Context, recordID string) error

	List(ctx context.Context, req *dto.OnboardingListRequest) ([]dto.OnboardingSummaryResponse, int64, error)
}

// wizardSession 单条草稿的在途编辑会话
// 草稿数据、步骤状态机与自动保存协调器共用一把会话锁
type wizardSession struct {
	mu    sync.Mutex
	draft *wizard.Draft
	seq   *wizard.Sequencer
	saver *wizard.Autosaver

	// 乐观锁版本由会话统一管理：草稿的写时复制快照不回传
	// 保存后的版本号，落库时以 savedVersion 为准
	saveMu       sync.Mutex
	savedVersion int
}

type onboardingService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    ProgressStore
	ocrCli *ocr.Client
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*wizardSession
}

// NewOnboardingService 创建 OnboardingService 实例
func NewOnboardingService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb ProgressStore,
	ocrCli *ocr.Client,
	logger *zap.Logger,
) OnboardingService {
	return &onboardingService{
		cfg:      cfg,
		repo:     repo,
		rdb:      rdb,
		ocrCli:   ocrCli,
		logger:   logger,
		sessions: make(map[string]*wizardSession),
	}
}

// ────────────────────── 会话管理 ──────────────────────

// newSaver 为会话创建自动保存协调器
func (s *onboardingService) newSaver(sess *wizardSession) *wizard.Autosaver {
	return wizard.NewAutosaver(
		s.cfg.Onboarding.AutosaveDebounce,
		func(ctx context.Context, rec *model.OnboardingRecord) (string, error) {
			sess.saveMu.Lock()
			defer sess.saveMu.Unlock()
			rec.Version = sess.savedVersion
			if err := s.repo.Onboarding.Save(ctx, rec); err != nil {
				return "", err
			}
			sess.savedVersion = rec.Version
			return rec.RecordID, nil
		},
		s.logger,
		nil, nil,
	)
}

// getSession 取出或重建草稿会话
// 页面刷新 / 进程重启后按 Redis 中的进度标记恢复步骤状态机
func (s *onboardingService) getSession(ctx context.Context, recordID string) (*wizardSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[recordID]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}

	rec, err := s.repo.Onboarding.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	if !rec.IsDraft() {
		return nil, ErrRecordNotDraft
	}

	highest, err := s.rdb.GetWizardProgress(ctx, recordID)
	if err != nil {
		// 进度标记是非权威数据，读取失败时从头恢复
		s.logger.Warn("读取向导进度失败", zap.String("record_id", recordID), zap.Error(err))
		highest = 0
	}

	sess = &wizardSession{
		draft:        wizard.LoadDraft(rec),
		seq:          wizard.RestoreSequencer(highest, highest),
		savedVersion: rec.Version,
	}
	sess.saver = s.newSaver(sess)

	s.mu.Lock()
	if existing, ok := s.sessions[recordID]; ok {
		s.mu.Unlock()
		sess.saver.Close()
		return existing, nil
	}
	s.sessions[recordID] = sess
	s.mu.Unlock()
	return sess, nil
}

// dropSession 关闭并移除会话（提交或删除草稿后）
func (s *onboardingService) dropSession(recordID string) {
	s.mu.Lock()
	sess, ok := s.sessions[recordID]
	delete(s.sessions, recordID)
	s.mu.Unlock()
	if ok {
		sess.saver.Close()
	}
}

// ────────────────────── Start / Get ──────────────────────

func (s *onboardingService) Start(ctx context.Context, req *dto.StartOnboardingRequest) (*dto.WizardStateResponse, error) {
	var siteID *string
	if req.SiteID != "" {
		if _, err := s.repo.Site.GetByID(ctx, req.SiteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSiteNotFound
			}
			return nil, err
		}
		siteID = &req.SiteID
	}

	draft := wizard.NewDraft(siteID)
	rec := draft.Record()
	if err := s.repo.Onboarding.Create(ctx, rec); err != nil {
		s.logger.Error("创建草稿失败", zap.Error(err))
		return nil, err
	}

	sess := &wizardSession{
		draft:        draft,
		seq:          wizard.NewSequencer(),
		savedVersion: rec.Version,
	}
	sess.saver = s.newSaver(sess)

	s.mu.Lock()
	s.sessions[rec.RecordID] = sess
	s.mu.Unlock()

	return s.stateLocked(sess), nil
}

func (s *onboardingService) Get(ctx context.Context, recordID string) (*dto.WizardStateResponse, error) {
	sess, err := s.getSession(ctx, recordID)
	if err == nil {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return s.stateLocked(sess), nil
	}
	if !errors.Is(err, ErrRecordNotDraft) {
		return nil, err
	}

	// 已提交记录：只读展示，全部步骤视为完成
	rec, err := s.repo.Onboarding.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	last := len(wizard.Steps) - 1
	seq := wizard.RestoreSequencer(last, last)
	return &dto.WizardStateResponse{
		Record:      rec,
		Steps:       toStepStates(seq.StepStates()),
		CurrentStep: string(seq.CurrentStep()),
		SaveStatus:  wizard.SaveStatusSaved,
	}, nil
}

// stateLocked 构建向导状态响应；须持会话锁调用
func (s *onboardingService) stateLocked(sess *wizardSession) *dto.WizardStateResponse {
	return &dto.WizardStateResponse{
		Record:      sess.draft.Record(),
		Steps:       toStepStates(sess.seq.StepStates()),
		CurrentStep: string(sess.seq.CurrentStep()),
		SaveStatus:  sess.saver.Status(),
	}
}

func toStepStates(states []wizard.StepState) []dto.StepStateResponse {
	out := make([]dto.StepStateResponse, len(states))
	for i, st := range states {
		out[i] = dto.StepStateResponse{
			Key:       string(st.Key),
			Label:     st.Label,
			Icon:      st.Icon,
			Status:    st.Status,
			Clickable: st.Clickable,
		}
	}
	return out
}

// ────────────────────── 字段组更新 ──────────────────────

func (s *onboardingService) ApplyPatch(ctx context.Context, recordID string, step wizard.StepKey, patch any) (*dto.WizardStateResponse, error) {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch p := patch.(type) {
	case *wizard.PersonalPatch:
		sess.draft.UpdatePersonal(p)
	case *wizard.AddressPatch:
		sess.draft.UpdateAddress(p)
	case *wizard.OrganizationPatch:
		sess.draft.UpdateOrganization(p)
	case *wizard.BankPatch:
		sess.draft.UpdateBank(p)
	case *wizard.UanPatch:
		sess.draft.UpdateUan(p)
	case *wizard.EsiPatch:
		sess.draft.UpdateEsi(p)
	case *wizard.GmcPatch:
		sess.draft.UpdateGmc(p)
	case *wizard.UniformPatch:
		sess.draft.SetUniformSize(p)
	case *wizard.BiometricsPatch:
		sess.draft.UpdateBiometrics(p)
	default:
		return nil, ErrStepUnknown
	}

	sess.saver.NotifyMutation(sess.draft.Record())
	return s.stateLocked(sess), nil
}

func (s *onboardingService) AddFamilyMember(ctx context.Context, recordID string, p *wizard.FamilyMemberPatch) (string, error) {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	memberID := sess.draft.AddFamilyMember(p)
	sess.saver.NotifyMutation(sess.draft.Record())
	return memberID, nil
}

func (s *onboardingService) UpdateFamilyMember(ctx context.Context, recordID, memberID string, p *wizard.FamilyMemberPatch) error {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.draft.UpdateFamilyMember(memberID, p); err != nil {
		return err
	}
	sess.saver.NotifyMutation(sess.draft.Record())
	return nil
}

func (s *onboardingService) RemoveFamilyMember(ctx context.Context, recordID, memberID string) error {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.draft.RemoveFamilyMember(memberID); err != nil {
		return err
	}
	sess.saver.NotifyMutation(sess.draft.Record())
	return nil
}

func (s *onboardingService) AddEducation(ctx context.Context, recordID string, p *wizard.EducationPatch) (string, error) {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	educationID := sess.draft.AddEducation(p)
	sess.saver.NotifyMutation(sess.draft.Record())
	return educationID, nil
}

func (s *onboardingService) UpdateEducation(ctx context.Context, recordID, educationID string, p *wizard.EducationPatch) error {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.draft.UpdateEducation(educationID, p); err != nil {
		return err
	}
	sess.saver.NotifyMutation(sess.draft.Record())
	return nil
}

func (s *onboardingService) RemoveEducation(ctx context.Context, recordID, educationID string) error {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.draft.RemoveEducation(educationID); err != nil {
		return err
	}
	sess.saver.NotifyMutation(sess.draft.Record())
	return nil
}

// ────────────────────── 证件识别 ──────────────────────

func (s *onboardingService) Extract(ctx context.Context, recordID string, req *dto.ExtractRequest) (*dto.ExtractResponse, error) {
	if !s.cfg.Feature.OCREnabled || s.ocrCli == nil {
		return nil, ErrExtractionDisabled
	}

	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return nil, err
	}

	// 远程调用不持会话锁
	ext, err := s.ocrCli.Extract(ctx, req.DocType, req.ImageURL)
	if err != nil {
		return nil, err
	}

	var group wizard.StepKey
	switch req.Group {
	case "personal":
		group = wizard.StepPersonal
	case "bank":
		group = wizard.StepBank
	default:
		return nil, wizard.ErrUnknownGroup
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	applied, err := sess.draft.ApplyExtraction(group, ext.Fields)
	if err != nil {
		return nil, err
	}
	sess.saver.NotifyMutation(sess.draft.Record())

	return &dto.ExtractResponse{
		AppliedFields: applied,
		Confidence:    ext.Confidence,
	}, nil
}

// ────────────────────── 校验 / 步骤控制 ──────────────────────

// buildContext 组装步骤校验输入；须持会话锁调用
func (s *onboardingService) buildContext(ctx context.Context, rec *model.OnboardingRecord) (*wizard.Context, error) {
	rules, err := s.repo.Rules.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRulesNotFound
		}
		return nil, err
	}

	uniform, err := s.resolveUniform(ctx, rec)
	if err != nil {
		return nil, err
	}

	return &wizard.Context{Record: rec, Rules: rules, Uniform: uniform}, nil
}

// resolveUniform 按 (站点, 部门, 岗位) 策略与性别尺码表解析工服要求
// 无策略配置时返回 nil（工服步骤视为无要求）
func (s *onboardingService) resolveUniform(ctx context.Context, rec *model.OnboardingRecord) (*wizard.UniformRequirements, error) {
	org := rec.Organization
	if org.SiteID == "" || org.Department == "" || org.Designation == "" {
		return nil, nil
	}

	policy, err := s.repo.Uniform.GetPolicy(ctx, org.SiteID, org.Department, org.Designation)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	charts, err := s.repo.Uniform.ListSizeCharts(ctx, rec.Personal.Gender)
	if err != nil {
		return nil, err
	}
	sizes := make(map[string][]string, len(charts))
	for _, chart := range charts {
		sizes[chart.Item] = chart.Sizes
	}

	return &wizard.UniformRequirements{
		Items:       policy.Items,
		SizesByItem: sizes,
	}, nil
}

func (s *onboardingService) Validate(ctx context.Context, recordID string, step wizard.StepKey) (*dto.ValidateStepResponse, error) {
	if wizard.StepIndex(step) < 0 {
		return nil, ErrStepUnknown
	}

	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	vctx, err := s.buildContext(ctx, sess.draft.Record())
	if err != nil {
		return nil, err
	}

	errs := wizard.ValidateStep(step, vctx)
	resp := &dto.ValidateStepResponse{Valid: len(errs) == 0}
	if len(errs) > 0 {
		resp.Errors = errs
	}
	return resp, nil
}

func (s *onboardingService) Advance(ctx context.Context, recordID string) (*dto.AdvanceResponse, error) {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// 步骤切换前先落盘，保证切页不丢数据
	if err := sess.saver.Flush(ctx); err != nil {
		s.logger.Warn("前进前保存失败", zap.String("record_id", recordID), zap.Error(err))
		return nil, err
	}

	vctx, err := s.buildContext(ctx, sess.draft.Record())
	if err != nil {
		return nil, err
	}

	errs := wizard.ValidateStep(sess.seq.CurrentStep(), vctx)
	if _, err := sess.seq.Advance(errs); err != nil {
		if errors.Is(err, wizard.ErrStepInvalid) {
			return &dto.AdvanceResponse{
				CurrentStep: string(sess.seq.CurrentStep()),
				Steps:       toStepStates(sess.seq.StepStates()),
				Errors:      errs,
			}, nil
		}
		return nil, err
	}

	// 越过对当前记录不适用的步骤
	for wizard.StepIndex(sess.seq.CurrentStep()) < len(wizard.Steps)-1 &&
		!wizard.StepApplicable(sess.seq.CurrentStep(), sess.draft.Record(), vctx.Rules) {
		if _, err := sess.seq.Advance(wizard.FieldErrors{}); err != nil {
			break
		}
	}

	s.persistProgress(ctx, recordID, sess.seq.Highest())
	return &dto.AdvanceResponse{
		CurrentStep: string(sess.seq.CurrentStep()),
		Steps:       toStepStates(sess.seq.StepStates()),
	}, nil
}

func (s *onboardingService) Jump(ctx context.Context, recordID, stepKey string) (*dto.AdvanceResponse, error) {
	target := wizard.StepIndex(wizard.StepKey(stepKey))
	if target < 0 {
		return nil, ErrStepUnknown
	}

	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// 切页前落盘
	if err := sess.saver.Flush(ctx); err != nil {
		s.logger.Warn("跳转前保存失败", zap.String("record_id", recordID), zap.Error(err))
		return nil, err
	}

	if !sess.seq.Jump(target) {
		return nil, ErrStepNotReached
	}

	return &dto.AdvanceResponse{
		CurrentStep: string(sess.seq.CurrentStep()),
		Steps:       toStepStates(sess.seq.StepStates()),
	}, nil
}

func (s *onboardingService) SaveNow(ctx context.Context, recordID string) (*dto.SaveResponse, error) {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.saver.Flush(ctx); err != nil {
		return nil, err
	}
	return &dto.SaveResponse{
		RecordID:   sess.draft.Record().RecordID,
		SaveStatus: sess.saver.Status(),
	}, nil
}

// persistProgress 将最高到达步骤写入 Redis（尽力而为）
func (s *onboardingService) persistProgress(ctx context.Context, recordID string, highest int) {
	if err := s.rdb.SetWizardProgress(ctx, recordID, highest, s.cfg.Onboarding.ProgressTTL); err != nil {
		s.logger.Warn("写入向导进度失败", zap.String("record_id", recordID), zap.Error(err))
	}
}

// ────────────────────── 提交 / 审核 ──────────────────────

func (s *onboardingService) Submit(ctx context.Context, recordID string) (*dto.SubmitResponse, error) {
	sess, err := s.getSession(ctx, recordID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.saver.Flush(ctx); err != nil {
		return nil, err
	}

	rec := sess.draft.Record()
	vctx, err := s.buildContext(ctx, rec)
	if err != nil {
		return nil, err
	}

	// 提交前全量校验：任一适用步骤失败即拒绝
	allErrs := map[string]string{}
	for _, def := range wizard.Steps {
		for field, msg := range wizard.ValidateStep(def.Key, vctx) {
			if _, ok := allErrs[field]; !ok {
				allErrs[field] = msg
			}
		}
	}
	if len(allErrs) > 0 {
		return nil, &StepValidationError{Errors: allErrs}
	}

	now := time.Now()
	oldID := rec.RecordID
	newID := wizard.RecordIDPrefix + uuid.New().String()

	rec.Status = model.RecordStatusPending
	rec.SubmittedAt = &now

	sess.saveMu.Lock()
	rec.Version = sess.savedVersion
	err = s.repo.Onboarding.Save(ctx, rec)
	if err == nil {
		sess.savedVersion = rec.Version
	}
	sess.saveMu.Unlock()
	if err != nil {
		s.logger.Error("提交保存失败", zap.String("record_id", oldID), zap.Error(err))
		return nil, err
	}
	if err := s.repo.Onboarding.ReplaceID(ctx, oldID, newID); err != nil {
		s.logger.Error("替换记录 ID 失败", zap.String("record_id", oldID), zap.Error(err))
		return nil, err
	}

	if err := s.rdb.DeleteWizardProgress(ctx, oldID); err != nil {
		s.logger.Warn("清除向导进度失败", zap.String("record_id", oldID), zap.Error(err))
	}
	s.mu.Lock()
	delete(s.sessions, oldID)
	s.mu.Unlock()
	sess.saver.Close()

	s.logger.Info("入职记录已提交",
		zap.String("draft_id", oldID),
		zap.String("record_id", newID),
	)
	return &dto.SubmitResponse{RecordID: newID, Status: model.RecordStatusPending}, nil
}

func (s *onboardingService) Approve(ctx context.Context, recordID, reviewerID string) error {
	return s.review(ctx, recordID, reviewerID, model.RecordStatusApproved, "")
}

func (s *onboardingService) Reject(ctx context.Context, recordID, reviewerID, comment string) error {
	return s.review(ctx, recordID, reviewerID, model.RecordStatusRejected, comment)
}

func (s *onboardingService) review(ctx context.Context, recordID, reviewerID, status, comment string) error {
	rec, err := s.repo.Onboarding.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	if rec.Status != model.RecordStatusPending {
		return ErrRecordNotPending
	}

	now := time.Now()
	rec.Status = status
	rec.ReviewedAt = &now
	rec.ReviewedBy = &reviewerID
	rec.ReviewComment = comment

	if err := s.repo.Onboarding.Save(ctx, rec); err != nil {
		s.logger.Error("保存审核结果失败", zap.String("record_id", recordID), zap.Error(err))
		return err
	}
	return nil
}

func (s *onboardingService) Reopen(ctx context.Context, recordID string) error {
	rec, err := s.repo.Onboarding.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	if rec.Status != model.RecordStatusRejected {
		return ErrRecordNotRejected
	}

	rec.Status = model.RecordStatusDraft
	rec.ReviewedAt = nil
	rec.ReviewedBy = nil
	return s.repo.Onboarding.Save(ctx, rec)
}

func (s *onboardingService) DeleteDraft(ctx context.Context, recordID string) error {
	rec, err := s.repo.Onboarding.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	if !rec.IsDraft() {
		return ErrRecordNotDraft
	}

	if err := s.repo.Onboarding.Delete(ctx, recordID); err != nil {
		return err
	}
	if err := s.rdb.DeleteWizardProgress(ctx, recordID); err != nil {
		s.logger.Warn("清除向导进度失败", zap.String("record_id", recordID), zap.Error(err))
	}
	s.dropSession(recordID)
	return nil
}

// ────────────────────── 列表 ──────────────────────

func (s *onboardingService) List(ctx context.Context, req *dto.OnboardingListRequest) ([]dto.OnboardingSummaryResponse, int64, error) {
	filter := repository.OnboardingFilter{
		Status:  req.Status,
		SiteID:  req.SiteID,
		Keyword: req.Keyword,
	}

	recs, total, err := s.repo.Onboarding.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出入职记录失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.OnboardingSummaryResponse, 0, len(recs))
	for _, rec := range recs {
		row := dto.OnboardingSummaryResponse{
			RecordID:    rec.RecordID,
			Name:        rec.Personal.FirstName + " " + rec.Personal.LastName,
			Mobile:      rec.Personal.Mobile,
			Department:  rec.Organization.Department,
			Designation: rec.Organization.Designation,
			Status:      rec.Status,
			UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
		}
		if rec.SiteID != nil {
			row.SiteID = *rec.SiteID
		}
		if rec.SubmittedAt != nil {
			row.SubmittedAt = rec.SubmittedAt.Format(time.RFC3339)
		}
		result = append(result, row)
	}
	return result, total, nil
}
