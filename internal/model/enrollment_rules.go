package model

import "github.com/shopspring/decimal"

// EnrollmentRules 入职规则表 — 对应 enrollment_rules（单行强类型）
// 校验规则集只读消费；阈值与开关由管理端维护
type EnrollmentRules struct {
	Singleton              bool            `gorm:"primaryKey;default:true"                    json:"-"`
	EsiWageCeiling         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:21000"  json:"esi_wage_ceiling"`
	GmcSalaryThreshold     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:21000"  json:"gmc_salary_threshold"`
	DefaultGmcTier         string          `gorm:"type:varchar(20);not null;default:'standard'" json:"default_gmc_tier"`
	MarriedGmcTier         string          `gorm:"type:varchar(20);not null;default:'family'" json:"married_gmc_tier"`
	StrictFamilyValidation bool            `gorm:"not null;default:false"                     json:"strict_family_validation"`
	ParentMinAgeGap        int             `gorm:"not null;default:15"                        json:"parent_min_age_gap"`
	ChildMinAgeGap         int             `gorm:"not null;default:15"                        json:"child_min_age_gap"`
	SpouseMaxAgeGap        int             `gorm:"not null;default:20"                        json:"spouse_max_age_gap"`
	BaseModel
}

// TableName 指定表名
func (EnrollmentRules) TableName() string { return "enrollment_rules" }
