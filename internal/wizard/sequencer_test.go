package wizard

import "testing"

func TestSequencer_AdvanceRaisesHighest(t *testing.T) {
	s := NewSequencer()

	if s.Current() != 0 || s.Highest() != 0 {
		t.Fatalf("初始进度应为 0/0，实际 %d/%d", s.Current(), s.Highest())
	}

	idx, err := s.Advance(FieldErrors{})
	if err != nil {
		t.Fatalf("Advance 应成功: %v", err)
	}
	if idx != 1 || s.Highest() != 1 {
		t.Errorf("期望 current=1 highest=1，实际 %d/%d", idx, s.Highest())
	}
}

func TestSequencer_AdvanceBlockedByErrors(t *testing.T) {
	s := NewSequencer()

	errs := FieldErrors{"personal.first_name": "请填写名字"}
	if _, err := s.Advance(errs); err != ErrStepInvalid {
		t.Errorf("期望 ErrStepInvalid，实际: %v", err)
	}
	if s.Current() != 0 {
		t.Errorf("校验失败不应前进，current=%d", s.Current())
	}
}

func TestSequencer_AdvanceAtLastStep(t *testing.T) {
	s := RestoreSequencer(len(Steps)-1, len(Steps)-1)

	if _, err := s.Advance(FieldErrors{}); err != ErrLastStep {
		t.Errorf("期望 ErrLastStep，实际: %v", err)
	}
}

func TestSequencer_JumpOnlyWithinHighest(t *testing.T) {
	s := NewSequencer()
	for i := 0; i < 4; i++ {
		if _, err := s.Advance(FieldErrors{}); err != nil {
			t.Fatalf("Advance 失败: %v", err)
		}
	}

	// 回跳到已到达过的步骤
	if !s.Jump(1) {
		t.Error("target ≤ highest 时 Jump 应成功")
	}
	if s.Current() != 1 {
		t.Errorf("期望 current=1，实际=%d", s.Current())
	}

	// highest 不随回跳降低
	if s.Highest() != 4 {
		t.Errorf("期望 highest=4，实际=%d", s.Highest())
	}

	// 回跳后可重新跳到 highest
	if !s.Jump(4) {
		t.Error("Jump(highest) 应成功")
	}

	// 超过 highest 的跳转是 no-op
	if s.Jump(5) {
		t.Error("target > highest 时 Jump 应为 no-op")
	}
	if s.Current() != 4 {
		t.Errorf("no-op 跳转后 current 应保持 4，实际=%d", s.Current())
	}

	// 越界跳转
	if s.Jump(-1) || s.Jump(len(Steps)) {
		t.Error("越界 Jump 应为 no-op")
	}
}

func TestSequencer_StepStates(t *testing.T) {
	s := NewSequencer()
	s.Advance(FieldErrors{})
	s.Advance(FieldErrors{})
	s.Jump(1)

	states := s.StepStates()
	if len(states) != len(Steps) {
		t.Fatalf("期望 %d 个步骤状态，实际 %d", len(Steps), len(states))
	}

	if states[0].Status != StepStatusComplete {
		t.Errorf("步骤 0 应为 complete，实际=%s", states[0].Status)
	}
	if states[1].Status != StepStatusCurrent {
		t.Errorf("步骤 1 应为 current，实际=%s", states[1].Status)
	}
	if states[2].Status != StepStatusUpcoming {
		t.Errorf("步骤 2 应为 upcoming，实际=%s", states[2].Status)
	}

	// 可点击性：索引 ≤ highest
	for i, st := range states {
		want := i <= 2
		if st.Clickable != want {
			t.Errorf("步骤 %d 可点击性期望 %v，实际 %v", i, want, st.Clickable)
		}
	}
}

func TestRestoreSequencer_ClampsOutOfRange(t *testing.T) {
	s := RestoreSequencer(99, 99)
	if s.Highest() != len(Steps)-1 {
		t.Errorf("highest 应被钳制到 %d，实际=%d", len(Steps)-1, s.Highest())
	}

	s = RestoreSequencer(5, 2)
	if s.Current() != 2 {
		t.Errorf("current 应被钳制到 highest=2，实际=%d", s.Current())
	}

	s = RestoreSequencer(-3, -1)
	if s.Current() != 0 || s.Highest() != 0 {
		t.Errorf("负值应被钳制到 0/0，实际 %d/%d", s.Current(), s.Highest())
	}
}
