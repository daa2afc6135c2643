package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── 入职记录状态 ──

const (
	RecordStatusDraft    = "draft"
	RecordStatusPending  = "pending"
	RecordStatusApproved = "approved"
	RecordStatusRejected = "rejected"
)

// ── 证件类型 ──

const (
	IDTypeAadhaar = "aadhaar"
	IDTypePAN     = "pan"
)

// ── 家属关系 ──

const (
	RelationFather = "father"
	RelationMother = "mother"
	RelationSpouse = "spouse"
	RelationChild  = "child"
)

// Personal 个人信息字段组
type Personal struct {
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Gender          string `json:"gender,omitempty"` // male | female
	DOB             string `json:"dob,omitempty"`    // YYYY-MM-DD
	MaritalStatus   string `json:"marital_status,omitempty"`
	Mobile          string `json:"mobile,omitempty"`
	AlternateMobile string `json:"alternate_mobile,omitempty"`
	Email           string `json:"email,omitempty"`
	IDType          string `json:"id_type,omitempty"` // aadhaar | pan
	IDNumber        string `json:"id_number,omitempty"`
	BloodGroup      string `json:"blood_group,omitempty"`
	PhotoURL        string `json:"photo_url,omitempty"`
}

// AddressFields 单个地址
type AddressFields struct {
	Line1    string `json:"line1,omitempty"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
}

// Address 地址字段组（现住址 + 户籍地址）
type Address struct {
	Present       AddressFields `json:"present"`
	Permanent     AddressFields `json:"permanent"`
	SameAsPresent bool          `json:"same_as_present"`
}

// Organization 组织信息字段组
type Organization struct {
	SiteID           string          `json:"site_id,omitempty"`
	Department       string          `json:"department,omitempty"`
	Designation      string          `json:"designation,omitempty"`
	DateOfJoining    string          `json:"date_of_joining,omitempty"` // YYYY-MM-DD
	ReportingManager string          `json:"reporting_manager,omitempty"`
	Salary           decimal.Decimal `json:"salary"` // 月薪（CTC）
}

// FamilyMember 家属成员（列表项）
type FamilyMember struct {
	MemberID    string `json:"member_id"`
	Name        string `json:"name,omitempty"`
	Relation    string `json:"relation,omitempty"` // father | mother | spouse | child
	Gender      string `json:"gender,omitempty"`
	DOB         string `json:"dob,omitempty"`
	Occupation  string `json:"occupation,omitempty"`
	IsDependent bool   `json:"is_dependent"`
}

// Education 教育经历（列表项）
type Education struct {
	EducationID   string `json:"education_id"`
	Qualification string `json:"qualification,omitempty"`
	Institution   string `json:"institution,omitempty"`
	YearOfPassing int    `json:"year_of_passing,omitempty"`
	Grade         string `json:"grade,omitempty"`
}

// Bank 银行信息字段组
type Bank struct {
	AccountHolderName    string `json:"account_holder_name,omitempty"`
	AccountNumber        string `json:"account_number,omitempty"`
	ConfirmAccountNumber string `json:"confirm_account_number,omitempty"`
	IFSC                 string `json:"ifsc,omitempty"`
	BankName             string `json:"bank_name,omitempty"`
	Branch               string `json:"branch,omitempty"`
}

// UanPf UAN/PF 字段组
type UanPf struct {
	HasPrevious bool   `json:"has_previous"`
	UANNumber   string `json:"uan_number,omitempty"` // 12 位数字
	PFNumber    string `json:"pf_number,omitempty"`
}

// Esi ESI 字段组
type Esi struct {
	HasPrevious bool   `json:"has_previous"`
	ESINumber   string `json:"esi_number,omitempty"` // 10 或 17 位数字
}

// Gmc 团体医疗保险字段组
type Gmc struct {
	OptOut               bool     `json:"opt_out"`
	PolicyDocumentURL    string   `json:"policy_document_url,omitempty"` // 自购保单凭证
	DeclarationAccepted  bool     `json:"declaration_accepted"`
	Tier                 string   `json:"tier,omitempty"`
	Dependents           []string `json:"dependents,omitempty"` // 家属 member_id 列表
	DependentsOverridden bool     `json:"dependents_overridden"`
}

// UniformItem 工服选择（列表项）
type UniformItem struct {
	Item string `json:"item"`
	Size string `json:"size,omitempty"`
}

// Biometrics 生物信息字段组
type Biometrics struct {
	SignatureURL  string `json:"signature_url,omitempty"`
	LeftThumbURL  string `json:"left_thumb_url,omitempty"`
	RightThumbURL string `json:"right_thumb_url,omitempty"`
}

// SalaryChangeRequest 薪资变更申请
// 预填后的薪资被修改时创建，随记录一并提交审核
type SalaryChangeRequest struct {
	PreviousSalary  decimal.Decimal `json:"previous_salary"`
	RequestedSalary decimal.Decimal `json:"requested_salary"`
	Reason          string          `json:"reason,omitempty"`
	RequestedAt     time.Time       `json:"requested_at"`
}

// VerifiedFields 各字段组的 OCR 已验证标记
// 键为 "组名.字段名"，值为 true 表示该值来自 OCR 且未被手工改动
type VerifiedFields map[string]bool

// OnboardingRecord 入职记录表 — 对应 onboarding_records
// 各字段组以 JSONB 子文档存储，可独立局部更新
type OnboardingRecord struct {
	RecordID      string               `gorm:"type:varchar(50);primaryKey"          json:"record_id"`
	Status        string               `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	SiteID        *string              `gorm:"type:uuid"                            json:"site_id,omitempty"`
	Personal      Personal             `gorm:"type:jsonb;serializer:json"           json:"personal"`
	Address       Address              `gorm:"type:jsonb;serializer:json"           json:"address"`
	Organization  Organization         `gorm:"type:jsonb;serializer:json"           json:"organization"`
	Family        []FamilyMember       `gorm:"type:jsonb;serializer:json"           json:"family"`
	Education     []Education          `gorm:"type:jsonb;serializer:json"           json:"education"`
	Bank          Bank                 `gorm:"type:jsonb;serializer:json"           json:"bank"`
	Uan           UanPf                `gorm:"column:uan;type:jsonb;serializer:json" json:"uan"`
	Esi           Esi                  `gorm:"type:jsonb;serializer:json"           json:"esi"`
	Gmc           Gmc                  `gorm:"type:jsonb;serializer:json"           json:"gmc"`
	Uniform       []UniformItem        `gorm:"type:jsonb;serializer:json"           json:"uniform"`
	Biometrics    Biometrics           `gorm:"type:jsonb;serializer:json"           json:"biometrics"`
	SalaryChange  *SalaryChangeRequest `gorm:"column:salary_change;type:jsonb;serializer:json" json:"salary_change,omitempty"`
	Verified      VerifiedFields       `gorm:"column:verified_fields;type:jsonb;serializer:json" json:"verified_fields"`
	SubmittedAt   *time.Time           `json:"submitted_at,omitempty"`
	ReviewedAt    *time.Time           `json:"reviewed_at,omitempty"`
	ReviewedBy    *string              `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewComment string               `gorm:"type:text;not null;default:''" json:"review_comment,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (OnboardingRecord) TableName() string { return "onboarding_records" }

// IsDraft 记录是否仍处于草稿状态
func (r *OnboardingRecord) IsDraft() bool { return r.Status == RecordStatusDraft }
