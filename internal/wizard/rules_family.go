package wizard

import (
	"fmt"
	"strings"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

// validateFamily 校验家属列表
//
// 基础校验（始终生效）：必填字段、日期格式、按归一化 (姓名, 出生日期)
// 去重。年龄差与性别-关系合理性校验仅在规则配置开启严格模式时生效。
// 错误路径按列表序号定位：family.0.name 等。
func validateFamily(ctx *Context) FieldErrors {
	errs := FieldErrors{}
	rec := ctx.Record
	rules := ctx.Rules

	empDOB, empDOBOk := parseDate(rec.Personal.DOB)
	empGender := rec.Personal.Gender

	seen := make(map[string]int, len(rec.Family))

	for i, m := range rec.Family {
		prefix := fmt.Sprintf("family.%d.", i)

		if m.Name == "" {
			errs.Add(prefix+"name", "请填写姓名")
		}
		if m.Relation == "" {
			errs.Add(prefix+"relation", "请选择与员工的关系")
		}

		memberDOB, dobOk := parseDate(m.DOB)
		if m.DOB == "" {
			errs.Add(prefix+"dob", "请填写出生日期")
		} else if !dobOk {
			errs.Add(prefix+"dob", "出生日期格式无效")
		}

		// 归一化 (姓名, 出生日期) 去重；后出现者报错
		key := strings.ToLower(strings.Join(strings.Fields(m.Name), " ")) + "|" + m.DOB
		if m.Name != "" && m.DOB != "" {
			if _, dup := seen[key]; dup {
				errs.Add(prefix+"name", "与已有家属成员重复（姓名与出生日期相同）")
			} else {
				seen[key] = i
			}
		}

		if !rules.StrictFamilyValidation {
			continue
		}

		// ── 严格模式：性别-关系合理性 ──
		switch m.Relation {
		case model.RelationFather:
			if m.Gender != "" && m.Gender != "male" {
				errs.Add(prefix+"gender", "父亲的性别应为男性")
			}
		case model.RelationMother:
			if m.Gender != "" && m.Gender != "female" {
				errs.Add(prefix+"gender", "母亲的性别应为女性")
			}
		case model.RelationSpouse:
			if m.Gender != "" && empGender != "" && m.Gender == empGender {
				errs.Add(prefix+"gender", "配偶性别应与员工不同")
			}
		}

		// ── 严格模式：年龄差合理性（员工或成员出生日期缺失时跳过） ──
		if !empDOBOk || !dobOk {
			continue
		}
		// 正值表示成员比员工年长
		gap := yearsBetween(memberDOB, empDOB)
		switch m.Relation {
		case model.RelationFather, model.RelationMother:
			if gap < rules.ParentMinAgeGap {
				errs.Add(prefix+"dob", fmt.Sprintf("父母应比员工至少年长 %d 岁", rules.ParentMinAgeGap))
			}
		case model.RelationChild:
			if -gap < rules.ChildMinAgeGap {
				errs.Add(prefix+"dob", fmt.Sprintf("子女应比员工至少年幼 %d 岁", rules.ChildMinAgeGap))
			}
		case model.RelationSpouse:
			delta := gap
			if delta < 0 {
				delta = -delta
			}
			if delta > rules.SpouseMaxAgeGap {
				errs.Add(prefix+"dob", fmt.Sprintf("配偶与员工年龄差不应超过 %d 岁", rules.SpouseMaxAgeGap))
			}
		}
	}

	return errs
}

// validateEducation 校验教育经历列表（逐项基础校验）
func validateEducation(ctx *Context) FieldErrors {
	errs := FieldErrors{}

	for i, e := range ctx.Record.Education {
		prefix := fmt.Sprintf("education.%d.", i)

		if e.Qualification == "" {
			errs.Add(prefix+"qualification", "请填写学历/资质")
		}
		if e.Institution == "" {
			errs.Add(prefix+"institution", "请填写院校名称")
		}
		if e.YearOfPassing != 0 && (e.YearOfPassing < 1950 || e.YearOfPassing > 2100) {
			errs.Add(prefix+"year_of_passing", "毕业年份无效")
		}
	}

	return errs
}
