package wizard

import "errors"

var (
	ErrStepInvalid = errors.New("当前步骤校验未通过，不能前进")
	ErrLastStep    = errors.New("已是最后一步")
)

// Sequencer 步骤状态机
// 持有当前步骤索引与历史最高到达索引；自身不做字段校验，
// 只根据校验结果决定是否允许前进
type Sequencer struct {
	current int
	highest int
}

// NewSequencer 创建新向导进度（从第 0 步开始）
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// RestoreSequencer 按持久化的进度恢复（页面刷新后）
// 越界输入被钳制到合法范围
func RestoreSequencer(current, highest int) *Sequencer {
	last := len(Steps) - 1
	if highest < 0 {
		highest = 0
	}
	if highest > last {
		highest = last
	}
	if current < 0 {
		current = 0
	}
	if current > highest {
		current = highest
	}
	return &Sequencer{current: current, highest: highest}
}

// Current 当前步骤索引
func (s *Sequencer) Current() int { return s.current }

// Highest 历史最高到达的步骤索引
func (s *Sequencer) Highest() int { return s.highest }

// CurrentStep 当前步骤键
func (s *Sequencer) CurrentStep() StepKey { return Steps[s.current].Key }

// Advance 前进到下一步
// errs 为当前步骤的校验结果；非空时拒绝前进。
// 前进后 highest 至少提升到新索引。
func (s *Sequencer) Advance(errs FieldErrors) (int, error) {
	if len(errs) > 0 {
		return s.current, ErrStepInvalid
	}
	if s.current >= len(Steps)-1 {
		return s.current, ErrLastStep
	}
	s.current++
	if s.current > s.highest {
		s.highest = s.current
	}
	return s.current, nil
}

// Jump 跳转到已到达过的步骤
// target > highest 或越界时不做任何事并返回 false；
// 跳转不会重新校验已通过的步骤。
func (s *Sequencer) Jump(target int) bool {
	if target < 0 || target >= len(Steps) || target > s.highest {
		return false
	}
	s.current = target
	return true
}

// StepStates 计算所有步骤的展示状态
// 索引 < current 为 complete，== current 为 current，其余为 upcoming；
// 索引 ≤ highest 的步骤可点击。
func (s *Sequencer) StepStates() []StepState {
	states := make([]StepState, len(Steps))
	for i, def := range Steps {
		status := StepStatusUpcoming
		switch {
		case i < s.current:
			status = StepStatusComplete
		case i == s.current:
			status = StepStatusCurrent
		}
		states[i] = StepState{
			Key:       def.Key,
			Label:     def.Label,
			Icon:      def.Icon,
			Status:    status,
			Clickable: i <= s.highest,
		}
	}
	return states
}
