package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/config"
	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
	"github.com/sudhan-ops/onboarding-sub001/internal/wizard"
	"github.com/sudhan-ops/onboarding-sub001/pkg/redis"
)

// ── Mock ProgressStore ──

type mockProgressStore struct {
	progress map[string]int
}

func newMockProgressStore() *mockProgressStore {
	return &mockProgressStore{progress: make(map[string]int)}
}

func (m *mockProgressStore) SetWizardProgress(_ context.Context, draftID string, highestStep int, _ time.Duration) error {
	m.progress[draftID] = highestStep
	return nil
}

func (m *mockProgressStore) GetWizardProgress(_ context.Context, draftID string) (int, error) {
	return m.progress[draftID], nil
}

func (m *mockProgressStore) DeleteWizardProgress(_ context.Context, draftID string) error {
	delete(m.progress, draftID)
	return nil
}

// ── 测试辅助 ──

func testEnrollmentRules() *model.EnrollmentRules {
	return &model.EnrollmentRules{
		EsiWageCeiling:     decimal.NewFromInt(21000),
		GmcSalaryThreshold: decimal.NewFromInt(21000),
		DefaultGmcTier:     "standard",
		MarriedGmcTier:     "family",
		ParentMinAgeGap:    15,
		ChildMinAgeGap:     15,
		SpouseMaxAgeGap:    20,
	}
}

func setupTestOnboardingService() (OnboardingService, *repository.Repository, *mockProgressStore) {
	cfg := &config.Config{
		Onboarding: config.OnboardingConfig{
			AutosaveDebounce: 20 * time.Millisecond,
			ProgressTTL:      time.Hour,
		},
	}
	repo := &repository.Repository{
		User:       newMockUserRepo(),
		Site:       newMockSiteRepo(),
		Onboarding: newMockOnboardingRepo(),
		Rules:      newMockRulesRepo(testEnrollmentRules()),
		Uniform:    newMockUniformRepo(),
		Task:       newMockTaskRepo(),
		Leave:      newMockLeaveRepo(),
		Attendance: newMockAttendanceRepo(),
	}
	store := newMockProgressStore()
	svc := NewOnboardingService(cfg, repo, store, nil, zap.NewNop())
	return svc, repo, store
}

func strp(s string) *string { return &s }

func decp(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// fillValidDraft 把草稿填到全部步骤可过校验的程度
// 薪资默认 30000：GMC 适用、ESI 不适用
func fillValidDraft(t *testing.T, svc OnboardingService, recordID string, salary int64) {
	t.Helper()
	ctx := context.Background()

	patches := []struct {
		step  wizard.StepKey
		patch any
	}{
		{wizard.StepPersonal, &wizard.PersonalPatch{
			FirstName: strp("Ravi"),
			LastName:  strp("Kumar"),
			Gender:    strp("male"),
			DOB:       strp("1992-04-18"),
			Mobile:    strp("9876543210"),
			Email:     strp("ravi.kumar@example.com"),
			IDType:    strp("pan"),
			IDNumber:  strp("ABCDE1234F"),
		}},
		{wizard.StepAddress, &wizard.AddressPatch{
			Present: &wizard.AddressFieldsPatch{
				Line1:   strp("12 MG Road"),
				City:    strp("Bengaluru"),
				Pincode: strp("560001"),
			},
			SameAsPresent: func() *bool { b := true; return &b }(),
		}},
		{wizard.StepOrganization, &wizard.OrganizationPatch{
			SiteID:        strp("valid-site-id"),
			Department:    strp("Security"),
			Designation:   strp("Guard"),
			DateOfJoining: strp("2026-09-01"),
			Salary:        decp(salary),
		}},
		{wizard.StepBank, &wizard.BankPatch{
			AccountHolderName:    strp("Ravi Kumar"),
			AccountNumber:        strp("123456789012"),
			ConfirmAccountNumber: strp("123456789012"),
			IFSC:                 strp("SBIN0001234"),
			BankName:             strp("State Bank"),
		}},
		{wizard.StepBiometrics, &wizard.BiometricsPatch{
			SignatureURL:  strp("https://cdn.example.com/sig.png"),
			LeftThumbURL:  strp("https://cdn.example.com/lt.png"),
			RightThumbURL: strp("https://cdn.example.com/rt.png"),
		}},
	}

	for _, p := range patches {
		if _, err := svc.ApplyPatch(ctx, recordID, p.step, p.patch); err != nil {
			t.Fatalf("ApplyPatch(%s) 应成功: %v", p.step, err)
		}
	}
}

// ── Start / Get ──

func TestStart_CreatesDraftRecord(t *testing.T) {
	svc, repo, _ := setupTestOnboardingService()

	state, err := svc.Start(context.Background(), &dto.StartOnboardingRequest{SiteID: "valid-site-id"})
	if err != nil {
		t.Fatalf("Start 应成功: %v", err)
	}

	recordID := state.Record.RecordID
	if !strings.HasPrefix(recordID, "draft_") {
		t.Errorf("期望草稿 ID 以 draft_ 开头，实际=%s", recordID)
	}
	if state.Record.Status != model.RecordStatusDraft {
		t.Errorf("期望状态 draft，实际=%s", state.Record.Status)
	}
	if state.CurrentStep != "personal" {
		t.Errorf("期望当前步骤 personal，实际=%s", state.CurrentStep)
	}
	if state.SaveStatus != wizard.SaveStatusSaved {
		t.Errorf("新草稿保存状态应为 saved，实际=%s", state.SaveStatus)
	}

	if _, err := repo.Onboarding.GetByID(context.Background(), recordID); err != nil {
		t.Errorf("草稿应已落库: %v", err)
	}
}

func TestStart_SiteNotFound(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()

	_, err := svc.Start(context.Background(), &dto.StartOnboardingRequest{SiteID: "missing-site"})
	if !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("期望 ErrSiteNotFound，实际: %v", err)
	}
}

func TestGet_RecordNotFound(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()

	_, err := svc.Get(context.Background(), "draft_missing")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

// ── 字段组更新 ──

func TestApplyPatch_UpdatesDraftAndMarksDirty(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	state, err := svc.ApplyPatch(ctx, start.Record.RecordID, wizard.StepPersonal, &wizard.PersonalPatch{
		FirstName: strp("Ravi"),
	})
	if err != nil {
		t.Fatalf("ApplyPatch 应成功: %v", err)
	}
	if state.Record.Personal.FirstName != "Ravi" {
		t.Errorf("期望 FirstName=Ravi，实际=%s", state.Record.Personal.FirstName)
	}
	if state.SaveStatus != wizard.SaveStatusDirty {
		t.Errorf("修改后保存状态应为 dirty，实际=%s", state.SaveStatus)
	}
}

func TestApplyPatch_UnknownPatchType(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	_, err := svc.ApplyPatch(ctx, start.Record.RecordID, wizard.StepPersonal, struct{}{})
	if !errors.Is(err, ErrStepUnknown) {
		t.Errorf("期望 ErrStepUnknown，实际: %v", err)
	}
}

func TestSaveNow_PersistsDraft(t *testing.T) {
	svc, repo, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID

	_, _ = svc.ApplyPatch(ctx, recordID, wizard.StepPersonal, &wizard.PersonalPatch{FirstName: strp("Ravi")})

	resp, err := svc.SaveNow(ctx, recordID)
	if err != nil {
		t.Fatalf("SaveNow 应成功: %v", err)
	}
	if resp.SaveStatus != wizard.SaveStatusSaved {
		t.Errorf("期望保存状态 saved，实际=%s", resp.SaveStatus)
	}

	stored, err := repo.Onboarding.GetByID(ctx, recordID)
	if err != nil {
		t.Fatalf("读取落库草稿失败: %v", err)
	}
	if stored.Personal.FirstName != "Ravi" {
		t.Errorf("期望落库 FirstName=Ravi，实际=%s", stored.Personal.FirstName)
	}
}

// 连续「保存 → 修改 → 再保存」验证乐观锁版本在会话内正确接力
func TestSaveNow_ConsecutiveSaves(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID

	for i, name := range []string{"Ravi", "Suresh", "Amit"} {
		_, _ = svc.ApplyPatch(ctx, recordID, wizard.StepPersonal, &wizard.PersonalPatch{FirstName: strp(name)})
		if _, err := svc.SaveNow(ctx, recordID); err != nil {
			t.Fatalf("第 %d 次 SaveNow 应成功: %v", i+1, err)
		}
	}
}

// ── 步骤控制 ──

func TestAdvance_BlockedByValidation(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	resp, err := svc.Advance(ctx, start.Record.RecordID)
	if err != nil {
		t.Fatalf("Advance 不应返回错误: %v", err)
	}
	if resp.CurrentStep != "personal" {
		t.Errorf("校验未通过时应停留在 personal，实际=%s", resp.CurrentStep)
	}
	if len(resp.Errors) == 0 {
		t.Error("应返回字段错误映射")
	}
	if _, ok := resp.Errors["personal.first_name"]; !ok {
		t.Error("应包含 personal.first_name 错误")
	}
}

func TestAdvance_MovesToNextStep(t *testing.T) {
	svc, _, store := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID
	fillValidDraft(t, svc, recordID, 30000)

	resp, err := svc.Advance(ctx, recordID)
	if err != nil {
		t.Fatalf("Advance 应成功: %v", err)
	}
	if resp.CurrentStep != "address" {
		t.Errorf("期望前进到 address，实际=%s", resp.CurrentStep)
	}
	if store.progress[recordID] != 1 {
		t.Errorf("期望进度标记为 1，实际=%d", store.progress[recordID])
	}
}

// 薪资低于 GMC 门槛时，向导应跳过团体医保步骤
func TestAdvance_SkipsInapplicableGmcStep(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID
	fillValidDraft(t, svc, recordID, 15000) // < 21000：GMC 不适用，ESI 适用

	var visited []string
	for i := 0; i < len(wizard.Steps); i++ {
		resp, err := svc.Advance(ctx, recordID)
		if err != nil {
			t.Fatalf("第 %d 次 Advance 失败: %v", i+1, err)
		}
		visited = append(visited, resp.CurrentStep)
		if resp.CurrentStep == "review" {
			break
		}
	}

	for _, step := range visited {
		if step == "gmc" {
			t.Error("薪资低于门槛时不应停留在 gmc 步骤")
		}
	}
	if visited[len(visited)-1] != "review" {
		t.Errorf("应能走到 review，实际路径=%v", visited)
	}
}

func TestJump_BeyondHighestRejected(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	_, err := svc.Jump(ctx, start.Record.RecordID, "bank")
	if !errors.Is(err, ErrStepNotReached) {
		t.Errorf("期望 ErrStepNotReached，实际: %v", err)
	}
}

func TestJump_BackToVisitedStep(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID
	fillValidDraft(t, svc, recordID, 30000)

	if _, err := svc.Advance(ctx, recordID); err != nil {
		t.Fatalf("Advance 应成功: %v", err)
	}
	resp, err := svc.Jump(ctx, recordID, "personal")
	if err != nil {
		t.Fatalf("Jump 回已到达步骤应成功: %v", err)
	}
	if resp.CurrentStep != "personal" {
		t.Errorf("期望回到 personal，实际=%s", resp.CurrentStep)
	}
}

func TestJump_UnknownStep(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	_, err := svc.Jump(ctx, start.Record.RecordID, "no-such-step")
	if !errors.Is(err, ErrStepUnknown) {
		t.Errorf("期望 ErrStepUnknown，实际: %v", err)
	}
}

// ── 会话恢复 ──

// 会话丢失（如进程重启）后按落库草稿与进度标记重建
func TestSessionRestore_AfterEviction(t *testing.T) {
	svc, _, store := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID
	fillValidDraft(t, svc, recordID, 30000)

	if _, err := svc.Advance(ctx, recordID); err != nil {
		t.Fatalf("Advance 应成功: %v", err)
	}

	// 模拟会话被清除
	impl := svc.(*onboardingService)
	impl.dropSession(recordID)

	state, err := svc.Get(ctx, recordID)
	if err != nil {
		t.Fatalf("重建会话应成功: %v", err)
	}
	if state.CurrentStep != "address" {
		t.Errorf("期望恢复到 address，实际=%s", state.CurrentStep)
	}
	if state.Record.Personal.FirstName != "Ravi" {
		t.Errorf("期望恢复落库数据，实际 FirstName=%s", state.Record.Personal.FirstName)
	}
	if store.progress[recordID] != 1 {
		t.Errorf("进度标记应保留为 1，实际=%d", store.progress[recordID])
	}

	// 重建后继续编辑、保存应不受影响
	_, _ = svc.ApplyPatch(ctx, recordID, wizard.StepAddress, &wizard.AddressPatch{
		Present: &wizard.AddressFieldsPatch{Line1: strp("45 Park Street")},
	})
	if _, err := svc.SaveNow(ctx, recordID); err != nil {
		t.Errorf("重建后的保存应成功: %v", err)
	}
}

// ── 提交 / 审核 ──

func TestSubmit_ValidationFailure(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	_, err := svc.Submit(ctx, start.Record.RecordID)

	var verr *StepValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("期望 StepValidationError，实际: %v", err)
	}
	if _, ok := verr.Errors["personal.first_name"]; !ok {
		t.Error("错误映射应包含 personal.first_name")
	}
	if _, ok := verr.Errors["bank.account_number"]; !ok {
		t.Error("错误映射应包含 bank.account_number")
	}
}

func TestSubmit_Success(t *testing.T) {
	svc, repo, store := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{SiteID: "valid-site-id"})
	draftID := start.Record.RecordID
	fillValidDraft(t, svc, draftID, 30000)

	resp, err := svc.Submit(ctx, draftID)
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if !strings.HasPrefix(resp.RecordID, "onb_") {
		t.Errorf("期望正式 ID 以 onb_ 开头，实际=%s", resp.RecordID)
	}
	if resp.Status != model.RecordStatusPending {
		t.Errorf("期望状态 pending，实际=%s", resp.Status)
	}

	if _, err := repo.Onboarding.GetByID(ctx, draftID); err == nil {
		t.Error("旧草稿 ID 不应再存在")
	}
	stored, err := repo.Onboarding.GetByID(ctx, resp.RecordID)
	if err != nil {
		t.Fatalf("按正式 ID 查询应成功: %v", err)
	}
	if stored.SubmittedAt == nil {
		t.Error("SubmittedAt 应已填写")
	}
	if _, ok := store.progress[draftID]; ok {
		t.Error("提交后进度标记应被清除")
	}
}

func TestApprove_PendingRecord(t *testing.T) {
	svc, repo, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	fillValidDraft(t, svc, start.Record.RecordID, 30000)
	sub, err := svc.Submit(ctx, start.Record.RecordID)
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	if err := svc.Approve(ctx, sub.RecordID, "reviewer-1"); err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}

	stored, _ := repo.Onboarding.GetByID(ctx, sub.RecordID)
	if stored.Status != model.RecordStatusApproved {
		t.Errorf("期望状态 approved，实际=%s", stored.Status)
	}
	if stored.ReviewedBy == nil || *stored.ReviewedBy != "reviewer-1" {
		t.Error("ReviewedBy 应为 reviewer-1")
	}

	// 已审核的记录不能再次审核
	if err := svc.Approve(ctx, sub.RecordID, "reviewer-2"); !errors.Is(err, ErrRecordNotPending) {
		t.Errorf("期望 ErrRecordNotPending，实际: %v", err)
	}
}

func TestReject_ThenReopen(t *testing.T) {
	svc, repo, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	fillValidDraft(t, svc, start.Record.RecordID, 30000)
	sub, err := svc.Submit(ctx, start.Record.RecordID)
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	if err := svc.Reject(ctx, sub.RecordID, "reviewer-1", "银行信息需要复核"); err != nil {
		t.Fatalf("Reject 应成功: %v", err)
	}
	stored, _ := repo.Onboarding.GetByID(ctx, sub.RecordID)
	if stored.Status != model.RecordStatusRejected {
		t.Errorf("期望状态 rejected，实际=%s", stored.Status)
	}
	if stored.ReviewComment != "银行信息需要复核" {
		t.Errorf("期望保存驳回意见，实际=%s", stored.ReviewComment)
	}

	if err := svc.Reopen(ctx, sub.RecordID); err != nil {
		t.Fatalf("Reopen 应成功: %v", err)
	}
	stored, _ = repo.Onboarding.GetByID(ctx, sub.RecordID)
	if stored.Status != model.RecordStatusDraft {
		t.Errorf("期望状态回到 draft，实际=%s", stored.Status)
	}
	if stored.ReviewedBy != nil {
		t.Error("Reopen 后 ReviewedBy 应清空")
	}
}

func TestReopen_OnlyRejected(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	if err := svc.Reopen(ctx, start.Record.RecordID); !errors.Is(err, ErrRecordNotRejected) {
		t.Errorf("期望 ErrRecordNotRejected，实际: %v", err)
	}
}

func TestDeleteDraft(t *testing.T) {
	svc, repo, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID

	if err := svc.DeleteDraft(ctx, recordID); err != nil {
		t.Fatalf("DeleteDraft 应成功: %v", err)
	}
	if _, err := repo.Onboarding.GetByID(ctx, recordID); err == nil {
		t.Error("删除后的草稿不应存在")
	}
}

func TestDeleteDraft_SubmittedRecordRejected(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	fillValidDraft(t, svc, start.Record.RecordID, 30000)
	sub, err := svc.Submit(ctx, start.Record.RecordID)
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	if err := svc.DeleteDraft(ctx, sub.RecordID); !errors.Is(err, ErrRecordNotDraft) {
		t.Errorf("期望 ErrRecordNotDraft，实际: %v", err)
	}
}

// ── 证件识别 ──

func TestExtract_DisabledByFeatureFlag(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	_, err := svc.Extract(ctx, start.Record.RecordID, &dto.ExtractRequest{
		Group:    "personal",
		DocType:  "pan",
		ImageURL: "https://cdn.example.com/pan.jpg",
	})
	if !errors.Is(err, ErrExtractionDisabled) {
		t.Errorf("期望 ErrExtractionDisabled，实际: %v", err)
	}
}

// ── 家属 / 教育列表操作 ──

func TestFamilyMember_AddUpdateRemove(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID

	memberID, err := svc.AddFamilyMember(ctx, recordID, &wizard.FamilyMemberPatch{
		Name:     strp("Lakshmi"),
		Relation: strp("spouse"),
		DOB:      strp("1994-02-11"),
	})
	if err != nil {
		t.Fatalf("AddFamilyMember 应成功: %v", err)
	}
	if memberID == "" {
		t.Fatal("应返回成员 ID")
	}

	if err := svc.UpdateFamilyMember(ctx, recordID, memberID, &wizard.FamilyMemberPatch{
		Occupation: strp("Teacher"),
	}); err != nil {
		t.Fatalf("UpdateFamilyMember 应成功: %v", err)
	}

	state, _ := svc.Get(ctx, recordID)
	if len(state.Record.Family) != 1 {
		t.Fatalf("期望 1 名家属，实际=%d", len(state.Record.Family))
	}
	if state.Record.Family[0].Occupation != "Teacher" {
		t.Errorf("期望职业 Teacher，实际=%s", state.Record.Family[0].Occupation)
	}

	if err := svc.RemoveFamilyMember(ctx, recordID, memberID); err != nil {
		t.Fatalf("RemoveFamilyMember 应成功: %v", err)
	}
	if err := svc.RemoveFamilyMember(ctx, recordID, memberID); err == nil {
		t.Error("移除不存在的成员应报错")
	}
}

func TestEducation_AddAndRemove(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	recordID := start.Record.RecordID

	eduID, err := svc.AddEducation(ctx, recordID, &wizard.EducationPatch{
		Qualification: strp("B.Com"),
		Institution:   strp("Bangalore University"),
	})
	if err != nil {
		t.Fatalf("AddEducation 应成功: %v", err)
	}
	if err := svc.RemoveEducation(ctx, recordID, eduID); err != nil {
		t.Fatalf("RemoveEducation 应成功: %v", err)
	}
}

// ── 列表 ──

func TestList_FiltersByStatus(t *testing.T) {
	svc, _, _ := setupTestOnboardingService()
	ctx := context.Background()

	start1, _ := svc.Start(ctx, &dto.StartOnboardingRequest{})
	fillValidDraft(t, svc, start1.Record.RecordID, 30000)
	if _, err := svc.Submit(ctx, start1.Record.RecordID); err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	_, _ = svc.Start(ctx, &dto.StartOnboardingRequest{})

	rows, total, err := svc.List(ctx, &dto.OnboardingListRequest{Status: model.RecordStatusPending})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 {
		t.Errorf("期望 1 条待审核记录，实际=%d", total)
	}
	if len(rows) != 1 || rows[0].Status != model.RecordStatusPending {
		t.Errorf("列表内容不符: %+v", rows)
	}
	if rows[0].Name != "Ravi Kumar" {
		t.Errorf("期望姓名 Ravi Kumar，实际=%s", rows[0].Name)
	}
}

// ── 降级模式（Redis 缺席）──

// 生产环境 Redis 连接失败时以空客户端继续运行，
// 会话重建与草稿清理不得因进度标记缺席而崩溃
func TestOnboarding_RedisAbsentDegrades(t *testing.T) {
	cfg := &config.Config{
		Onboarding: config.OnboardingConfig{
			AutosaveDebounce: 20 * time.Millisecond,
			ProgressTTL:      time.Hour,
		},
	}
	repo := &repository.Repository{
		User:       newMockUserRepo(),
		Site:       newMockSiteRepo(),
		Onboarding: newMockOnboardingRepo(),
		Rules:      newMockRulesRepo(testEnrollmentRules()),
		Uniform:    newMockUniformRepo(),
		Task:       newMockTaskRepo(),
		Leave:      newMockLeaveRepo(),
		Attendance: newMockAttendanceRepo(),
	}
	// main 在连接失败时传入的就是这种带类型的空指针
	svc := NewOnboardingService(cfg, repo, (*redis.Client)(nil), nil, zap.NewNop())
	ctx := context.Background()

	start, err := svc.Start(ctx, &dto.StartOnboardingRequest{})
	if err != nil {
		t.Fatalf("Start 不应失败: %v", err)
	}

	// 预置一条仅存在于持久层的草稿，强制走会话重建路径
	rec := &model.OnboardingRecord{
		RecordID: "draft_cold",
		Status:   model.RecordStatusDraft,
	}
	if err := repo.Onboarding.Create(ctx, rec); err != nil {
		t.Fatalf("预置草稿失败: %v", err)
	}
	state, err := svc.Get(ctx, "draft_cold")
	if err != nil {
		t.Fatalf("无进度标记时会话重建不应失败: %v", err)
	}
	if state.CurrentStep != "personal" {
		t.Errorf("无进度标记时应从头恢复，实际步骤=%s", state.CurrentStep)
	}

	if err := svc.DeleteDraft(ctx, start.Record.RecordID); err != nil {
		t.Errorf("降级模式下删除草稿不应失败: %v", err)
	}
}
