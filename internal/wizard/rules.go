package wizard

import (
	"regexp"
	"time"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

// FieldErrors 字段路径 → 错误信息
// 空映射表示该步骤可以提交；校验永不 panic、永不返回 Go error
type FieldErrors map[string]string

// Add 记录字段错误；同一字段按固定求值顺序只保留第一条
func (e FieldErrors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Context 一次步骤校验的完整输入
type Context struct {
	Record  *model.OnboardingRecord
	Rules   *model.EnrollmentRules
	Uniform *UniformRequirements // 仅工服步骤需要；其余步骤可为 nil
}

// UniformRequirements 工服步骤的外部配置输入
// 由 (站点, 部门, 岗位) 策略与按性别的尺码表交叉解析得出
type UniformRequirements struct {
	Items       []string
	SizesByItem map[string][]string
}

// Rule 单条校验规则：命中时返回错误信息，通过时返回空串
type Rule struct {
	Field string
	Check func(ctx *Context) string
}

// evaluate 按固定顺序求值规则表，汇总为完整错误映射
func evaluate(rules []Rule, ctx *Context) FieldErrors {
	errs := FieldErrors{}
	for _, r := range rules {
		if msg := r.Check(ctx); msg != "" {
			errs.Add(r.Field, msg)
		}
	}
	return errs
}

// StepApplicable 步骤是否适用于当前记录
// 不适用的步骤校验恒为通过，向导可直接前进
func StepApplicable(step StepKey, rec *model.OnboardingRecord, rules *model.EnrollmentRules) bool {
	switch step {
	case StepGmc:
		// 薪资低于 GMC 门槛的员工不参加团体医保
		return rec.Organization.Salary.GreaterThanOrEqual(rules.GmcSalaryThreshold)
	case StepEsi:
		// ESI 仅适用于工资不超过法定上限的员工
		return rec.Organization.Salary.LessThanOrEqual(rules.EsiWageCeiling)
	default:
		return true
	}
}

// ValidateStep 校验指定步骤的字段组切片
// 返回完整错误映射；空映射表示可以前进
func ValidateStep(step StepKey, ctx *Context) FieldErrors {
	if !StepApplicable(step, ctx.Record, ctx.Rules) {
		return FieldErrors{}
	}

	switch step {
	case StepPersonal:
		return evaluate(personalRules, ctx)
	case StepAddress:
		return evaluate(addressRules, ctx)
	case StepOrganization:
		return evaluate(organizationRules, ctx)
	case StepFamily:
		return validateFamily(ctx)
	case StepEducation:
		return validateEducation(ctx)
	case StepBank:
		return evaluate(bankRules, ctx)
	case StepUan:
		return evaluate(uanRules, ctx)
	case StepEsi:
		return evaluate(esiRules, ctx)
	case StepGmc:
		return evaluate(gmcRules, ctx)
	case StepUniform:
		return validateUniform(ctx)
	case StepBiometrics:
		return evaluate(biometricsRules, ctx)
	case StepDocuments, StepReview:
		// 材料上传为软性要求，确认页无独立字段
		return FieldErrors{}
	default:
		return FieldErrors{}
	}
}

// ── 公共校验工具 ──

var (
	reDigits  = regexp.MustCompile(`^[0-9]+$`)
	reMobile  = regexp.MustCompile(`^[0-9]{10}$`)
	rePincode = regexp.MustCompile(`^[0-9]{6}$`)
	reAadhaar = regexp.MustCompile(`^[0-9]{12}$`)
	rePAN     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	reIFSC    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	reUAN     = regexp.MustCompile(`^[0-9]{12}$`)
)

const dateLayout = "2006-01-02"

// parseDate 解析 YYYY-MM-DD；失败时返回零值
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// yearsBetween a 到 b 的完整年数（b 晚于 a 时为正）
func yearsBetween(a, b time.Time) int {
	years := b.Year() - a.Year()
	if b.Month() < a.Month() || (b.Month() == a.Month() && b.Day() < a.Day()) {
		years--
	}
	return years
}
