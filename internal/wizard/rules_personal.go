package wizard

import (
	"time"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

// ── 个人信息步骤规则表 ──

var personalRules = []Rule{
	{"personal.first_name", func(ctx *Context) string {
		if ctx.Record.Personal.FirstName == "" {
			return "请填写名字"
		}
		return ""
	}},
	{"personal.last_name", func(ctx *Context) string {
		if ctx.Record.Personal.LastName == "" {
			return "请填写姓氏"
		}
		return ""
	}},
	{"personal.gender", func(ctx *Context) string {
		switch ctx.Record.Personal.Gender {
		case "male", "female":
			return ""
		case "":
			return "请选择性别"
		default:
			return "性别取值无效"
		}
	}},
	{"personal.dob", func(ctx *Context) string {
		dob := ctx.Record.Personal.DOB
		if dob == "" {
			return "请填写出生日期"
		}
		t, ok := parseDate(dob)
		if !ok {
			return "出生日期格式无效"
		}
		if t.After(time.Now()) {
			return "出生日期不能晚于今天"
		}
		return ""
	}},
	{"personal.mobile", func(ctx *Context) string {
		m := ctx.Record.Personal.Mobile
		if m == "" {
			return "请填写手机号"
		}
		if !reMobile.MatchString(m) {
			return "手机号须为 10 位数字"
		}
		return ""
	}},
	{"personal.alternate_mobile", func(ctx *Context) string {
		alt := ctx.Record.Personal.AlternateMobile
		if alt == "" {
			return ""
		}
		if !reMobile.MatchString(alt) {
			return "备用手机号须为 10 位数字"
		}
		if alt == ctx.Record.Personal.Mobile {
			return "备用手机号不能与主手机号相同"
		}
		return ""
	}},
	{"personal.email", func(ctx *Context) string {
		if ctx.Record.Personal.Email == "" {
			return "请填写邮箱"
		}
		return ""
	}},
	{"personal.id_type", func(ctx *Context) string {
		switch ctx.Record.Personal.IDType {
		case model.IDTypeAadhaar, model.IDTypePAN:
			return ""
		case "":
			return "请选择证件类型"
		default:
			return "证件类型无效"
		}
	}},
	{"personal.id_number", func(ctx *Context) string {
		num := ctx.Record.Personal.IDNumber
		if num == "" {
			return "请填写证件号码"
		}
		switch ctx.Record.Personal.IDType {
		case model.IDTypeAadhaar:
			if !reAadhaar.MatchString(num) {
				return "Aadhaar 号码须为 12 位数字"
			}
		case model.IDTypePAN:
			if !rePAN.MatchString(num) {
				return "PAN 号码格式无效（如 ABCDE1234F）"
			}
		}
		return ""
	}},
}

// ── 地址步骤规则表 ──

var addressRules = []Rule{
	{"address.present.line1", func(ctx *Context) string {
		if ctx.Record.Address.Present.Line1 == "" {
			return "请填写现住址"
		}
		return ""
	}},
	{"address.present.city", func(ctx *Context) string {
		if ctx.Record.Address.Present.City == "" {
			return "请填写城市"
		}
		return ""
	}},
	{"address.present.pincode", func(ctx *Context) string {
		p := ctx.Record.Address.Present.Pincode
		if p == "" {
			return "请填写邮编"
		}
		if !rePincode.MatchString(p) {
			return "邮编须为 6 位数字"
		}
		return ""
	}},
	{"address.permanent.line1", func(ctx *Context) string {
		if ctx.Record.Address.SameAsPresent {
			return ""
		}
		if ctx.Record.Address.Permanent.Line1 == "" {
			return "请填写户籍地址"
		}
		return ""
	}},
	{"address.permanent.pincode", func(ctx *Context) string {
		if ctx.Record.Address.SameAsPresent {
			return ""
		}
		p := ctx.Record.Address.Permanent.Pincode
		if p == "" {
			return "请填写户籍地址邮编"
		}
		if !rePincode.MatchString(p) {
			return "邮编须为 6 位数字"
		}
		return ""
	}},
}

// ── 组织信息步骤规则表 ──

var organizationRules = []Rule{
	{"organization.site_id", func(ctx *Context) string {
		if ctx.Record.Organization.SiteID == "" {
			return "请选择站点"
		}
		return ""
	}},
	{"organization.department", func(ctx *Context) string {
		if ctx.Record.Organization.Department == "" {
			return "请选择部门"
		}
		return ""
	}},
	{"organization.designation", func(ctx *Context) string {
		if ctx.Record.Organization.Designation == "" {
			return "请选择岗位"
		}
		return ""
	}},
	{"organization.date_of_joining", func(ctx *Context) string {
		doj := ctx.Record.Organization.DateOfJoining
		if doj == "" {
			return "请填写入职日期"
		}
		if _, ok := parseDate(doj); !ok {
			return "入职日期格式无效"
		}
		return ""
	}},
	{"organization.salary", func(ctx *Context) string {
		if ctx.Record.Organization.Salary.IsNegative() {
			return "薪资不能为负数"
		}
		return ""
	}},
}

// ── 生物信息步骤规则表 ──

var biometricsRules = []Rule{
	{"biometrics.signature_url", func(ctx *Context) string {
		if ctx.Record.Biometrics.SignatureURL == "" {
			return "请上传签名"
		}
		return ""
	}},
	{"biometrics.left_thumb_url", func(ctx *Context) string {
		if ctx.Record.Biometrics.LeftThumbURL == "" {
			return "请上传左手指纹"
		}
		return ""
	}},
	{"biometrics.right_thumb_url", func(ctx *Context) string {
		if ctx.Record.Biometrics.RightThumbURL == "" {
			return "请上传右手指纹"
		}
		return ""
	}},
}
