//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgerrors "github.com/sudhan-ops/onboarding-sub001/pkg/errors"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=onboarding password=onboarding_password dbname=onboarding_test sslmode=disable TimeZone=Asia/Kolkata"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Site{},
		&model.User{},
		&model.OnboardingRecord{},
		&model.EnrollmentRules{},
		&model.Task{},
		&model.LeaveRequest{},
		&model.AttendanceEvent{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (site *model.Site, user *model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	site = &model.Site{
		Name:       fmt.Sprintf("测试站点-%d", time.Now().UnixNano()),
		ClientName: "测试客户",
	}
	if err := testDB.WithContext(ctx).Create(site).Error; err != nil {
		t.Fatalf("创建站点失败: %v", err)
	}

	user = &model.User{
		Name:         "测试用户",
		Email:        fmt.Sprintf("test%d@example.com", time.Now().UnixNano()),
		Phone:        "9876543210",
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleFieldOfficer,
		SiteID:       &site.SiteID,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.User{})
		testDB.Unscoped().Where("site_id = ?", site.SiteID).Delete(&model.Site{})
	}
	return
}

func newDraftRecord(site *model.Site) *model.OnboardingRecord {
	return &model.OnboardingRecord{
		RecordID: fmt.Sprintf("draft_%d", time.Now().UnixNano()),
		Status:   model.RecordStatusDraft,
		SiteID:   &site.SiteID,
		Personal: model.Personal{
			FirstName: "Ravi",
			LastName:  "Kumar",
			Mobile:    "9876543210",
		},
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction Rollback / Commit
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	site, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}

	txRepo := repo.WithTx(tx)

	rec := newDraftRecord(site)
	if err := txRepo.Onboarding.Create(ctx, rec); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建入职记录失败: %v", err)
	}

	tx.Rollback()

	// 验证数据未持久化
	_, err = repo.Onboarding.GetByID(ctx, rec.RecordID)
	if err == nil {
		testDB.Unscoped().Where("record_id = ?", rec.RecordID).Delete(&model.OnboardingRecord{})
		t.Fatal("期望回滚后查不到记录，但实际查到了")
	}
}

func TestTransaction_Commit(t *testing.T) {
	site, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}

	txRepo := repo.WithTx(tx)

	rec := newDraftRecord(site)
	if err := txRepo.Onboarding.Create(ctx, rec); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建入职记录失败: %v", err)
	}

	if err := tx.Commit().Error; err != nil {
		t.Fatalf("Commit 失败: %v", err)
	}
	defer testDB.Unscoped().Where("record_id = ?", rec.RecordID).Delete(&model.OnboardingRecord{})

	found, err := repo.Onboarding.GetByID(ctx, rec.RecordID)
	if err != nil {
		t.Fatalf("提交后查询入职记录失败: %v", err)
	}
	if found.RecordID != rec.RecordID {
		t.Errorf("ID 不匹配: expected %s, got %s", rec.RecordID, found.RecordID)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Optimistic Lock
// ═══════════════════════════════════════════════════════════

func TestOptimisticLock_OnboardingRecord_ConflictDetected(t *testing.T) {
	site, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	rec := newDraftRecord(site)
	if err := repo.Onboarding.Create(ctx, rec); err != nil {
		t.Fatalf("创建入职记录失败: %v", err)
	}
	defer testDB.Unscoped().Where("record_id = ?", rec.RecordID).Delete(&model.OnboardingRecord{})

	// 模拟并发：获取两份副本
	copy1, _ := repo.Onboarding.GetByID(ctx, rec.RecordID)
	copy2, _ := repo.Onboarding.GetByID(ctx, rec.RecordID)

	// 第一次保存成功
	copy1.Personal.Email = "ravi@example.com"
	if err := repo.Onboarding.Save(ctx, copy1); err != nil {
		t.Fatalf("第一次保存应成功: %v", err)
	}

	// 第二次保存应失败（version 已过期）
	copy2.Personal.Email = "stale@example.com"
	err := repo.Onboarding.Save(ctx, copy2)
	if err == nil {
		t.Fatal("期望乐观锁冲突错误，但保存成功了")
	}
	if err != pkgerrors.ErrOptimisticLock {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}

func TestOptimisticLock_VersionIncrement(t *testing.T) {
	site, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	rec := newDraftRecord(site)
	if err := repo.Onboarding.Create(ctx, rec); err != nil {
		t.Fatalf("创建入职记录失败: %v", err)
	}
	defer testDB.Unscoped().Where("record_id = ?", rec.RecordID).Delete(&model.OnboardingRecord{})

	if rec.Version != 1 {
		t.Errorf("初始 version 应为 1，得到: %d", rec.Version)
	}

	// 连续保存 3 次
	for i := 0; i < 3; i++ {
		got, _ := repo.Onboarding.GetByID(ctx, rec.RecordID)
		got.Personal.BloodGroup = "O+"
		if err := repo.Onboarding.Save(ctx, got); err != nil {
			t.Fatalf("第 %d 次保存失败: %v", i+1, err)
		}
	}

	final, _ := repo.Onboarding.GetByID(ctx, rec.RecordID)
	if final.Version != 4 {
		t.Errorf("期望 version=4，得到: %d", final.Version)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Submit ID Replacement
// ═══════════════════════════════════════════════════════════

func TestReplaceID_KeepsData(t *testing.T) {
	site, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	rec := newDraftRecord(site)
	if err := repo.Onboarding.Create(ctx, rec); err != nil {
		t.Fatalf("创建入职记录失败: %v", err)
	}

	newID := fmt.Sprintf("rec_%d", time.Now().UnixNano())
	if err := repo.Onboarding.ReplaceID(ctx, rec.RecordID, newID); err != nil {
		t.Fatalf("ReplaceID 失败: %v", err)
	}
	defer testDB.Unscoped().Where("record_id = ?", newID).Delete(&model.OnboardingRecord{})

	// 旧 ID 查不到，新 ID 带完整字段组
	if _, err := repo.Onboarding.GetByID(ctx, rec.RecordID); err == nil {
		t.Error("期望旧 ID 查不到记录")
	}
	found, err := repo.Onboarding.GetByID(ctx, newID)
	if err != nil {
		t.Fatalf("新 ID 查询失败: %v", err)
	}
	if found.Personal.FirstName != "Ravi" {
		t.Errorf("字段组未随 ID 保留: expected Ravi, got %s", found.Personal.FirstName)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: JSONB Keyword Filter
// ═══════════════════════════════════════════════════════════

func TestOnboardingList_KeywordMatchesPersonal(t *testing.T) {
	site, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	rec := newDraftRecord(site)
	rec.Personal.FirstName = fmt.Sprintf("Keyword%d", time.Now().UnixNano())
	if err := repo.Onboarding.Create(ctx, rec); err != nil {
		t.Fatalf("创建入职记录失败: %v", err)
	}
	defer testDB.Unscoped().Where("record_id = ?", rec.RecordID).Delete(&model.OnboardingRecord{})

	recs, total, err := repo.Onboarding.List(ctx, repository.OnboardingFilter{
		Keyword: rec.Personal.FirstName,
	}, 0, 10)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 1 || len(recs) != 1 {
		t.Fatalf("期望命中 1 条，得到 total=%d len=%d", total, len(recs))
	}
	if recs[0].RecordID != rec.RecordID {
		t.Errorf("命中记录不匹配: expected %s, got %s", rec.RecordID, recs[0].RecordID)
	}
}
