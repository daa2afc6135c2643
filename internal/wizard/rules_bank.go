package wizard

// ── 银行信息步骤规则表 ──

var bankRules = []Rule{
	{"bank.account_holder_name", func(ctx *Context) string {
		if ctx.Record.Bank.AccountHolderName == "" {
			return "请填写开户人姓名"
		}
		return ""
	}},
	{"bank.account_number", func(ctx *Context) string {
		num := ctx.Record.Bank.AccountNumber
		if num == "" {
			return "请填写银行账号"
		}
		if !reDigits.MatchString(num) {
			return "银行账号只能包含数字"
		}
		return ""
	}},
	{"bank.confirm_account_number", func(ctx *Context) string {
		confirm := ctx.Record.Bank.ConfirmAccountNumber
		if confirm == "" {
			return "请再次输入银行账号"
		}
		if confirm != ctx.Record.Bank.AccountNumber {
			return "两次输入的银行账号不一致"
		}
		return ""
	}},
	{"bank.ifsc", func(ctx *Context) string {
		code := ctx.Record.Bank.IFSC
		if code == "" {
			return "请填写 IFSC 代码"
		}
		if !reIFSC.MatchString(code) {
			return "IFSC 代码格式无效（如 SBIN0001234）"
		}
		return ""
	}},
	{"bank.bank_name", func(ctx *Context) string {
		if ctx.Record.Bank.BankName == "" {
			return "请填写银行名称"
		}
		return ""
	}},
}

// ── UAN/PF 步骤规则表 ──
// 子字段仅在勾选“有既往账户”时必填

var uanRules = []Rule{
	{"uan.uan_number", func(ctx *Context) string {
		if !ctx.Record.Uan.HasPrevious {
			return ""
		}
		num := ctx.Record.Uan.UANNumber
		if num == "" {
			return "请填写 UAN 号码"
		}
		if !reUAN.MatchString(num) {
			return "UAN 号码须为 12 位数字"
		}
		return ""
	}},
}

// ── ESI 步骤规则表 ──
// 适用性由薪资与 ESI 工资上限比较决定（见 StepApplicable）

var esiRules = []Rule{
	{"esi.esi_number", func(ctx *Context) string {
		if !ctx.Record.Esi.HasPrevious {
			return ""
		}
		num := ctx.Record.Esi.ESINumber
		if num == "" {
			return "请填写 ESI 号码"
		}
		if !reDigits.MatchString(num) || (len(num) != 10 && len(num) != 17) {
			return "ESI 号码须为 10 位或 17 位数字"
		}
		return ""
	}},
}
