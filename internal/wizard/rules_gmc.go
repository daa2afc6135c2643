package wizard

import "github.com/sudhan-ops/onboarding-sub001/internal/model"

// ── 团体医保步骤规则表 ──
// 步骤适用性（薪资 ≥ GMC 门槛）由 StepApplicable 判定；
// 选择退出时必须上传自购保单并勾选声明。

var gmcRules = []Rule{
	{"gmc.policy_document_url", func(ctx *Context) string {
		if !ctx.Record.Gmc.OptOut {
			return ""
		}
		if ctx.Record.Gmc.PolicyDocumentURL == "" {
			return "选择退出团体医保时须上传自购保单凭证"
		}
		return ""
	}},
	{"gmc.declaration_accepted", func(ctx *Context) string {
		if !ctx.Record.Gmc.OptOut {
			return ""
		}
		if !ctx.Record.Gmc.DeclarationAccepted {
			return "选择退出团体医保时须勾选声明"
		}
		return ""
	}},
}

// EffectiveGmcTier 计算生效的医保档位
// 已婚员工静默升级到家庭档；记录中已有显式档位时以其为准
func EffectiveGmcTier(rec *model.OnboardingRecord, rules *model.EnrollmentRules) string {
	if rec.Gmc.Tier != "" {
		return rec.Gmc.Tier
	}
	if rec.Personal.MaritalStatus == "married" {
		return rules.MarriedGmcTier
	}
	return rules.DefaultGmcTier
}
