package wizard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	pkgerrors "github.com/sudhan-ops/onboarding-sub001/pkg/errors"
)

// ── 自动保存状态 ──

const (
	SaveStatusSaved  = "saved"
	SaveStatusDirty  = "dirty"
	SaveStatusSaving = "saving"
)

// SaveFunc 持久化回调
// 返回服务端为记录分配的 ID（全新草稿首次保存时可能与传入 ID 不同）
type SaveFunc func(ctx context.Context, rec *model.OnboardingRecord) (string, error)

// Autosaver 自动保存协调器
//
// 草稿的每次修改都会重置防抖窗口；窗口结束且无新修改时发起一次
// 持久化调用。同一时刻逻辑上只有一次保存生效：每次发起保存分配
// 单调递增序号，完成时序号已不是最新则该结果被丢弃，保证慢的旧
// 保存不会覆盖更新的保存结果。
type Autosaver struct {
	mu       sync.Mutex
	debounce time.Duration
	save     SaveFunc
	logger   *zap.Logger

	timer      *time.Timer
	status     string
	rec        *model.OnboardingRecord
	issued     uint64 // 已发出的最大保存序号
	gen        uint64 // 修改代数，每次 NotifyMutation 递增
	onStatus   func(status string, err error)
	onAssigned func(id string)
}

// NewAutosaver 创建自动保存协调器
// onStatus 在状态变化时回调（可为 nil）；onAssigned 在服务端分配新 ID 时回调
func NewAutosaver(debounce time.Duration, save SaveFunc, logger *zap.Logger,
	onStatus func(status string, err error), onAssigned func(id string)) *Autosaver {
	return &Autosaver{
		debounce:   debounce,
		save:       save,
		logger:     logger,
		status:     SaveStatusSaved,
		onStatus:   onStatus,
		onAssigned: onAssigned,
	}
}

// Status 当前保存状态（dirty / saving / saved）
func (a *Autosaver) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// NotifyMutation 记录发生修改
// 仅草稿状态的记录参与自动保存；每次调用重置防抖计时器
func (a *Autosaver) NotifyMutation(rec *model.OnboardingRecord) {
	if !rec.IsDraft() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.rec = rec
	a.gen++
	a.setStatusLocked(SaveStatusDirty, nil)

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, func() {
		// 防抖触发的保存使用后台上下文：不依附任何已结束的请求
		a.doSave(context.Background())
	})
}

// Flush 立即保存（步骤切换前调用）
// 取消未触发的防抖计时器并同步等待保存完成；无待保存内容时直接返回
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.rec == nil || a.status == SaveStatusSaved {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	return a.doSave(ctx)
}

// Close 停止计时器，放弃未触发的自动保存
func (a *Autosaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// doSave 执行一次保存；完成时序号已过期则丢弃结果
func (a *Autosaver) doSave(ctx context.Context) error {
	a.mu.Lock()
	rec := a.rec
	if rec == nil {
		a.mu.Unlock()
		return nil
	}
	a.issued++
	seq := a.issued
	gen := a.gen
	a.setStatusLocked(SaveStatusSaving, nil)
	a.mu.Unlock()

	id, err := a.save(ctx, rec)

	a.mu.Lock()
	defer a.mu.Unlock()

	if seq != a.issued {
		// 期间又发出了更新的保存，本次结果作废
		a.logger.Debug("丢弃过期的保存结果",
			zap.String("record_id", rec.RecordID),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", a.issued),
		)
		return pkgerrors.ErrStaleSave
	}

	if err != nil {
		// 保存失败回到 dirty，等待下次修改或显式保存重试
		a.logger.Warn("草稿自动保存失败",
			zap.String("record_id", rec.RecordID),
			zap.Error(err),
		)
		a.setStatusLocked(SaveStatusDirty, err)
		return err
	}

	if id != "" && id != rec.RecordID && a.onAssigned != nil {
		a.onAssigned(id)
	}
	if gen != a.gen {
		// 保存在途期间又有新修改：本次保存有效，但状态保持 dirty，
		// 后续修改由重置过的防抖计时器负责落库
		return nil
	}
	a.setStatusLocked(SaveStatusSaved, nil)
	return nil
}

// setStatusLocked 更新状态并触发回调；须持锁调用
func (a *Autosaver) setStatusLocked(status string, err error) {
	a.status = status
	if a.onStatus != nil {
		a.onStatus(status, err)
	}
}
