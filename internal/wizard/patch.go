package wizard

import "github.com/shopspring/decimal"

// ── 字段组局部更新 ──
//
// 每个字段组一个 Patch 结构：nil 字段表示不修改。
// 合并语义（新值覆盖、未提及字段保留）由 Draft 实现，
// 此处仅是合并操作的唯一数据入口，HTTP 层直接绑定这些结构。

// PersonalPatch 个人信息局部更新
type PersonalPatch struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Gender          *string `json:"gender"`
	DOB             *string `json:"dob"`
	MaritalStatus   *string `json:"marital_status"`
	Mobile          *string `json:"mobile"`
	AlternateMobile *string `json:"alternate_mobile"`
	Email           *string `json:"email"`
	IDType          *string `json:"id_type"`
	IDNumber        *string `json:"id_number"`
	BloodGroup      *string `json:"blood_group"`
	PhotoURL        *string `json:"photo_url"`
}

// AddressFieldsPatch 单个地址局部更新
type AddressFieldsPatch struct {
	Line1   *string `json:"line1"`
	Line2   *string `json:"line2"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Pincode *string `json:"pincode"`
}

// AddressPatch 地址字段组局部更新
type AddressPatch struct {
	Present       *AddressFieldsPatch `json:"present"`
	Permanent     *AddressFieldsPatch `json:"permanent"`
	SameAsPresent *bool               `json:"same_as_present"`
}

// OrganizationPatch 组织信息局部更新
type OrganizationPatch struct {
	SiteID           *string          `json:"site_id"`
	Department       *string          `json:"department"`
	Designation      *string          `json:"designation"`
	DateOfJoining    *string          `json:"date_of_joining"`
	ReportingManager *string          `json:"reporting_manager"`
	Salary           *decimal.Decimal `json:"salary"`
	SalaryReason     *string          `json:"salary_reason"` // 修改预填薪资时的原因说明
}

// FamilyMemberPatch 家属成员局部更新
type FamilyMemberPatch struct {
	Name        *string `json:"name"`
	Relation    *string `json:"relation"`
	Gender      *string `json:"gender"`
	DOB         *string `json:"dob"`
	Occupation  *string `json:"occupation"`
	IsDependent *bool   `json:"is_dependent"`
}

// EducationPatch 教育经历局部更新
type EducationPatch struct {
	Qualification *string `json:"qualification"`
	Institution   *string `json:"institution"`
	YearOfPassing *int    `json:"year_of_passing"`
	Grade         *string `json:"grade"`
}

// BankPatch 银行信息局部更新
type BankPatch struct {
	AccountHolderName    *string `json:"account_holder_name"`
	AccountNumber        *string `json:"account_number"`
	ConfirmAccountNumber *string `json:"confirm_account_number"`
	IFSC                 *string `json:"ifsc"`
	BankName             *string `json:"bank_name"`
	Branch               *string `json:"branch"`
}

// UanPatch UAN/PF 局部更新
type UanPatch struct {
	HasPrevious *bool   `json:"has_previous"`
	UANNumber   *string `json:"uan_number"`
	PFNumber    *string `json:"pf_number"`
}

// EsiPatch ESI 局部更新
type EsiPatch struct {
	HasPrevious *bool   `json:"has_previous"`
	ESINumber   *string `json:"esi_number"`
}

// GmcPatch 团体医保局部更新
type GmcPatch struct {
	OptOut              *bool     `json:"opt_out"`
	PolicyDocumentURL   *string   `json:"policy_document_url"`
	DeclarationAccepted *bool     `json:"declaration_accepted"`
	Dependents          *[]string `json:"dependents"` // 显式提交视为人工覆盖预选
}

// UniformPatch 工服选择局部更新（整项提交）
type UniformPatch struct {
	Item string  `json:"item" binding:"required"`
	Size *string `json:"size"`
}

// BiometricsPatch 生物信息局部更新
type BiometricsPatch struct {
	SignatureURL  *string `json:"signature_url"`
	LeftThumbURL  *string `json:"left_thumb_url"`
	RightThumbURL *string `json:"right_thumb_url"`
}
