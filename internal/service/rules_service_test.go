package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

func setupTestRulesService(rules *model.EnrollmentRules) RulesService {
	repo := newMockRepository()
	repo.Rules = newMockRulesRepo(rules)
	return NewRulesService(repo, zap.NewNop())
}

func TestRulesGet_NotInitialized(t *testing.T) {
	svc := setupTestRulesService(nil)

	_, err := svc.Get(context.Background())
	if !errors.Is(err, ErrRulesNotFound) {
		t.Errorf("期望 ErrRulesNotFound，实际: %v", err)
	}
}

func TestRulesGet_ReturnsCurrentRules(t *testing.T) {
	svc := setupTestRulesService(testEnrollmentRules())

	rules, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if !rules.EsiWageCeiling.Equal(decimal.NewFromInt(21000)) {
		t.Errorf("期望 ESI 工资上限 21000，实际=%s", rules.EsiWageCeiling)
	}
}

func TestRulesUpdate_PartialMerge(t *testing.T) {
	seed := testEnrollmentRules()
	seed.StrictFamilyValidation = true
	svc := setupTestRulesService(seed)

	ceiling := "25000"
	strict := false
	updated, err := svc.Update(context.Background(), &dto.UpdateRulesRequest{
		EsiWageCeiling:         &ceiling,
		StrictFamilyValidation: &strict,
	}, "admin-1")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if !updated.EsiWageCeiling.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("期望 ESI 工资上限 25000，实际=%s", updated.EsiWageCeiling)
	}
	if updated.StrictFamilyValidation {
		t.Error("严格校验开关应被关闭")
	}
	// 未传字段保持原值
	if !updated.GmcSalaryThreshold.Equal(decimal.NewFromInt(21000)) {
		t.Errorf("GMC 门槛不应被修改，实际=%s", updated.GmcSalaryThreshold)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != "admin-1" {
		t.Error("UpdatedBy 应记录操作人")
	}
}

func TestRulesUpdate_BadAmount(t *testing.T) {
	svc := setupTestRulesService(testEnrollmentRules())

	for _, bad := range []string{"abc", "-100"} {
		badAmount := bad
		_, err := svc.Update(context.Background(), &dto.UpdateRulesRequest{
			GmcSalaryThreshold: &badAmount,
		}, "admin-1")
		if !errors.Is(err, ErrRulesBadAmount) {
			t.Errorf("金额 %q 期望 ErrRulesBadAmount，实际: %v", bad, err)
		}
	}
}

func TestRulesUpdate_AgeGaps(t *testing.T) {
	repo := newMockRepository()
	repo.Rules = newMockRulesRepo(testEnrollmentRules())
	svc := NewRulesService(repo, zap.NewNop())

	parentGap := 18
	spouseGap := 25
	if _, err := svc.Update(context.Background(), &dto.UpdateRulesRequest{
		ParentMinAgeGap: &parentGap,
		SpouseMaxAgeGap: &spouseGap,
	}, "admin-1"); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	// 更新应写回仓储
	stored, err := repo.Rules.Get(context.Background())
	if err != nil {
		t.Fatalf("读取规则失败: %v", err)
	}
	if stored.ParentMinAgeGap != 18 {
		t.Errorf("期望父母年龄差 18，实际=%d", stored.ParentMinAgeGap)
	}
	if stored.SpouseMaxAgeGap != 25 {
		t.Errorf("期望配偶年龄差 25，实际=%d", stored.SpouseMaxAgeGap)
	}
}
