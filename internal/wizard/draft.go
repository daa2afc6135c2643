package wizard

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sudhan-ops/onboarding-sub001/internal/model"
)

var (
	ErrMemberNotFound    = errors.New("家属成员不存在")
	ErrEducationNotFound = errors.New("教育经历不存在")
	ErrUnknownGroup      = errors.New("未知字段组")
)

// DraftIDPrefix 草稿记录 ID 前缀，提交后替换为正式前缀
const (
	DraftIDPrefix  = "draft_"
	RecordIDPrefix = "onb_"
)

// NewDraftID 生成草稿 ID
func NewDraftID() string { return DraftIDPrefix + uuid.New().String() }

// Draft 在途入职记录的唯一可变数据源
//
// 所有修改都通过组级局部更新进入；每次修改先整体复制快照再落笔，
// 旧快照永不原地改动，依赖指针比较的消费方可以感知变更。
// 与浏览器端一致的单线程使用假定：并发保护由调用方（会话锁）负责。
type Draft struct {
	rec *model.OnboardingRecord
}

// NewDraft 创建带新生成草稿 ID 的空白草稿
func NewDraft(siteID *string) *Draft {
	return &Draft{rec: &model.OnboardingRecord{
		RecordID: NewDraftID(),
		Status:   model.RecordStatusDraft,
		SiteID:   siteID,
		Verified: model.VerifiedFields{},
	}}
}

// LoadDraft 从已有记录装载（按 ID 重新打开提交件的编辑流程）
func LoadDraft(rec *model.OnboardingRecord) *Draft {
	if rec.Verified == nil {
		rec.Verified = model.VerifiedFields{}
	}
	return &Draft{rec: rec}
}

// Record 当前快照；调用方不得修改
func (d *Draft) Record() *model.OnboardingRecord { return d.rec }

// SetRecord 整体替换记录（加载已有提交件时使用）
func (d *Draft) SetRecord(rec *model.OnboardingRecord) {
	if rec.Verified == nil {
		rec.Verified = model.VerifiedFields{}
	}
	d.rec = rec
}

// Reset 重置为带新 ID 的空白草稿
func (d *Draft) Reset() {
	d.rec = &model.OnboardingRecord{
		RecordID: NewDraftID(),
		Status:   model.RecordStatusDraft,
		SiteID:   d.rec.SiteID,
		Verified: model.VerifiedFields{},
	}
}

// SetRecordID 采用服务端分配的 ID（全新草稿首次保存成功后）
func (d *Draft) SetRecordID(id string) {
	next := d.clone()
	next.RecordID = id
	d.rec = next
}

// clone 浅复制快照；列表与标记映射单独复制，保证旧快照不被改动
func (d *Draft) clone() *model.OnboardingRecord {
	next := *d.rec

	next.Family = make([]model.FamilyMember, len(d.rec.Family))
	copy(next.Family, d.rec.Family)

	next.Education = make([]model.Education, len(d.rec.Education))
	copy(next.Education, d.rec.Education)

	next.Uniform = make([]model.UniformItem, len(d.rec.Uniform))
	copy(next.Uniform, d.rec.Uniform)

	next.Verified = make(model.VerifiedFields, len(d.rec.Verified))
	for k, v := range d.rec.Verified {
		next.Verified[k] = v
	}

	if d.rec.Gmc.Dependents != nil {
		next.Gmc.Dependents = append([]string(nil), d.rec.Gmc.Dependents...)
	}

	return &next
}

// touch 人工修改字段：清除该字段的 OCR 已验证标记
func touch(rec *model.OnboardingRecord, key string) {
	delete(rec.Verified, key)
}

// ────────────────────── 个人信息 ──────────────────────

// UpdatePersonal 合并个人信息局部更新
// 人名做 title-case 归一化，证件号做去空白/大写归一化
func (d *Draft) UpdatePersonal(p *PersonalPatch) {
	next := d.clone()

	if p.FirstName != nil {
		next.Personal.FirstName = normalizeName(*p.FirstName)
		touch(next, "personal.first_name")
	}
	if p.LastName != nil {
		next.Personal.LastName = normalizeName(*p.LastName)
		touch(next, "personal.last_name")
	}
	if p.Gender != nil {
		next.Personal.Gender = *p.Gender
		touch(next, "personal.gender")
	}
	if p.DOB != nil {
		next.Personal.DOB = *p.DOB
		touch(next, "personal.dob")
	}
	if p.MaritalStatus != nil {
		next.Personal.MaritalStatus = *p.MaritalStatus
		touch(next, "personal.marital_status")
	}
	if p.Mobile != nil {
		next.Personal.Mobile = normalizeDigits(*p.Mobile)
		touch(next, "personal.mobile")
	}
	if p.AlternateMobile != nil {
		next.Personal.AlternateMobile = normalizeDigits(*p.AlternateMobile)
		touch(next, "personal.alternate_mobile")
	}
	if p.Email != nil {
		next.Personal.Email = *p.Email
		touch(next, "personal.email")
	}
	if p.IDType != nil {
		next.Personal.IDType = *p.IDType
		touch(next, "personal.id_type")
	}
	if p.IDNumber != nil {
		next.Personal.IDNumber = normalizeCode(*p.IDNumber)
		touch(next, "personal.id_number")
	}
	if p.BloodGroup != nil {
		next.Personal.BloodGroup = *p.BloodGroup
	}
	if p.PhotoURL != nil {
		next.Personal.PhotoURL = *p.PhotoURL
	}

	d.rec = next
}

// ────────────────────── 地址 ──────────────────────

func mergeAddressFields(dst *model.AddressFields, p *AddressFieldsPatch) {
	if p.Line1 != nil {
		dst.Line1 = *p.Line1
	}
	if p.Line2 != nil {
		dst.Line2 = *p.Line2
	}
	if p.City != nil {
		dst.City = *p.City
	}
	if p.State != nil {
		dst.State = *p.State
	}
	if p.Pincode != nil {
		dst.Pincode = normalizeDigits(*p.Pincode)
	}
}

// UpdateAddress 合并地址局部更新
// same_as_present 置位时户籍地址同步为现住址副本
func (d *Draft) UpdateAddress(p *AddressPatch) {
	next := d.clone()

	if p.Present != nil {
		mergeAddressFields(&next.Address.Present, p.Present)
	}
	if p.Permanent != nil {
		mergeAddressFields(&next.Address.Permanent, p.Permanent)
	}
	if p.SameAsPresent != nil {
		next.Address.SameAsPresent = *p.SameAsPresent
	}
	if next.Address.SameAsPresent {
		next.Address.Permanent = next.Address.Present
	}

	d.rec = next
}

// ────────────────────── 组织信息 ──────────────────────

// UpdateOrganization 合并组织信息局部更新
// 预填薪资被修改时自动生成薪资变更申请，随记录提交审核
func (d *Draft) UpdateOrganization(p *OrganizationPatch) {
	next := d.clone()

	if p.SiteID != nil {
		next.Organization.SiteID = *p.SiteID
		next.SiteID = p.SiteID
	}
	if p.Department != nil {
		next.Organization.Department = *p.Department
	}
	if p.Designation != nil {
		next.Organization.Designation = *p.Designation
	}
	if p.DateOfJoining != nil {
		next.Organization.DateOfJoining = *p.DateOfJoining
	}
	if p.ReportingManager != nil {
		next.Organization.ReportingManager = normalizeName(*p.ReportingManager)
	}
	if p.Salary != nil {
		prev := next.Organization.Salary
		if !prev.IsZero() && !prev.Equal(*p.Salary) {
			reason := ""
			if p.SalaryReason != nil {
				reason = *p.SalaryReason
			}
			next.SalaryChange = &model.SalaryChangeRequest{
				PreviousSalary:  prev,
				RequestedSalary: *p.Salary,
				Reason:          reason,
				RequestedAt:     time.Now(),
			}
		}
		next.Organization.Salary = *p.Salary
		touch(next, "organization.salary")
	}

	d.rec = next
}

// ────────────────────── 家属列表 ──────────────────────

func applyFamilyPatch(m *model.FamilyMember, p *FamilyMemberPatch) {
	if p.Name != nil {
		m.Name = normalizeName(*p.Name)
	}
	if p.Relation != nil {
		m.Relation = *p.Relation
	}
	if p.Gender != nil {
		m.Gender = *p.Gender
	}
	if p.DOB != nil {
		m.DOB = *p.DOB
	}
	if p.Occupation != nil {
		m.Occupation = *p.Occupation
	}
	if p.IsDependent != nil {
		m.IsDependent = *p.IsDependent
	}
}

// AddFamilyMember 追加家属成员，返回生成的 member_id
func (d *Draft) AddFamilyMember(p *FamilyMemberPatch) string {
	next := d.clone()

	member := model.FamilyMember{MemberID: uuid.New().String()}
	applyFamilyPatch(&member, p)
	next.Family = append(next.Family, member)

	refreshGmcDependents(next)
	d.rec = next
	return member.MemberID
}

// UpdateFamilyMember 按 member_id 合并家属成员更新
func (d *Draft) UpdateFamilyMember(memberID string, p *FamilyMemberPatch) error {
	next := d.clone()

	found := false
	for i := range next.Family {
		if next.Family[i].MemberID == memberID {
			applyFamilyPatch(&next.Family[i], p)
			found = true
			break
		}
	}
	if !found {
		return ErrMemberNotFound
	}

	refreshGmcDependents(next)
	d.rec = next
	return nil
}

// RemoveFamilyMember 按 member_id 删除家属成员
func (d *Draft) RemoveFamilyMember(memberID string) error {
	next := d.clone()

	idx := -1
	for i := range next.Family {
		if next.Family[i].MemberID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrMemberNotFound
	}
	next.Family = append(next.Family[:idx], next.Family[idx+1:]...)

	refreshGmcDependents(next)
	d.rec = next
	return nil
}

// refreshGmcDependents 家属变化后刷新医保受益人预选
// 用户显式覆盖过选择时不再自动刷新
func refreshGmcDependents(rec *model.OnboardingRecord) {
	if rec.Gmc.OptOut || rec.Gmc.DependentsOverridden {
		return
	}
	var deps []string
	for _, m := range rec.Family {
		if m.IsDependent {
			deps = append(deps, m.MemberID)
		}
	}
	rec.Gmc.Dependents = deps
}

// ────────────────────── 教育列表 ──────────────────────

func applyEducationPatch(e *model.Education, p *EducationPatch) {
	if p.Qualification != nil {
		e.Qualification = *p.Qualification
	}
	if p.Institution != nil {
		e.Institution = *p.Institution
	}
	if p.YearOfPassing != nil {
		e.YearOfPassing = *p.YearOfPassing
	}
	if p.Grade != nil {
		e.Grade = *p.Grade
	}
}

// AddEducation 追加教育经历，返回生成的 education_id
func (d *Draft) AddEducation(p *EducationPatch) string {
	next := d.clone()

	edu := model.Education{EducationID: uuid.New().String()}
	applyEducationPatch(&edu, p)
	next.Education = append(next.Education, edu)

	d.rec = next
	return edu.EducationID
}

// UpdateEducation 按 education_id 合并教育经历更新
func (d *Draft) UpdateEducation(educationID string, p *EducationPatch) error {
	next := d.clone()

	found := false
	for i := range next.Education {
		if next.Education[i].EducationID == educationID {
			applyEducationPatch(&next.Education[i], p)
			found = true
			break
		}
	}
	if !found {
		return ErrEducationNotFound
	}

	d.rec = next
	return nil
}

// RemoveEducation 按 education_id 删除教育经历
func (d *Draft) RemoveEducation(educationID string) error {
	next := d.clone()

	idx := -1
	for i := range next.Education {
		if next.Education[i].EducationID == educationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrEducationNotFound
	}
	next.Education = append(next.Education[:idx], next.Education[idx+1:]...)

	d.rec = next
	return nil
}

// ────────────────────── 银行 / 统筹账户 ──────────────────────

// UpdateBank 合并银行信息局部更新
func (d *Draft) UpdateBank(p *BankPatch) {
	next := d.clone()

	if p.AccountHolderName != nil {
		next.Bank.AccountHolderName = normalizeName(*p.AccountHolderName)
		touch(next, "bank.account_holder_name")
	}
	if p.AccountNumber != nil {
		next.Bank.AccountNumber = normalizeDigits(*p.AccountNumber)
		touch(next, "bank.account_number")
	}
	if p.ConfirmAccountNumber != nil {
		next.Bank.ConfirmAccountNumber = normalizeDigits(*p.ConfirmAccountNumber)
	}
	if p.IFSC != nil {
		next.Bank.IFSC = normalizeCode(*p.IFSC)
		touch(next, "bank.ifsc")
	}
	if p.BankName != nil {
		next.Bank.BankName = *p.BankName
		touch(next, "bank.bank_name")
	}
	if p.Branch != nil {
		next.Bank.Branch = *p.Branch
		touch(next, "bank.branch")
	}

	d.rec = next
}

// UpdateUan 合并 UAN/PF 局部更新
func (d *Draft) UpdateUan(p *UanPatch) {
	next := d.clone()

	if p.HasPrevious != nil {
		next.Uan.HasPrevious = *p.HasPrevious
	}
	if p.UANNumber != nil {
		next.Uan.UANNumber = normalizeDigits(*p.UANNumber)
		touch(next, "uan.uan_number")
	}
	if p.PFNumber != nil {
		next.Uan.PFNumber = normalizeCode(*p.PFNumber)
	}

	d.rec = next
}

// UpdateEsi 合并 ESI 局部更新
func (d *Draft) UpdateEsi(p *EsiPatch) {
	next := d.clone()

	if p.HasPrevious != nil {
		next.Esi.HasPrevious = *p.HasPrevious
	}
	if p.ESINumber != nil {
		next.Esi.ESINumber = normalizeDigits(*p.ESINumber)
		touch(next, "esi.esi_number")
	}

	d.rec = next
}

// ────────────────────── 团体医保 ──────────────────────

// UpdateGmc 合并医保局部更新
// 显式提交 dependents 视为人工覆盖，此后家属变化不再自动刷新预选
func (d *Draft) UpdateGmc(p *GmcPatch) {
	next := d.clone()

	if p.OptOut != nil {
		next.Gmc.OptOut = *p.OptOut
	}
	if p.PolicyDocumentURL != nil {
		next.Gmc.PolicyDocumentURL = *p.PolicyDocumentURL
	}
	if p.DeclarationAccepted != nil {
		next.Gmc.DeclarationAccepted = *p.DeclarationAccepted
	}
	if p.Dependents != nil {
		next.Gmc.Dependents = append([]string(nil), (*p.Dependents)...)
		next.Gmc.DependentsOverridden = true
	} else {
		refreshGmcDependents(next)
	}

	d.rec = next
}

// ────────────────────── 工服 / 生物信息 ──────────────────────

// SetUniformSize 记录某件工服物品的尺码选择（同名物品覆盖）
func (d *Draft) SetUniformSize(p *UniformPatch) {
	next := d.clone()

	size := ""
	if p.Size != nil {
		size = *p.Size
	}

	found := false
	for i := range next.Uniform {
		if next.Uniform[i].Item == p.Item {
			next.Uniform[i].Size = size
			found = true
			break
		}
	}
	if !found {
		next.Uniform = append(next.Uniform, model.UniformItem{Item: p.Item, Size: size})
	}

	d.rec = next
}

// UpdateBiometrics 合并生物信息局部更新
func (d *Draft) UpdateBiometrics(p *BiometricsPatch) {
	next := d.clone()

	if p.SignatureURL != nil {
		next.Biometrics.SignatureURL = *p.SignatureURL
	}
	if p.LeftThumbURL != nil {
		next.Biometrics.LeftThumbURL = *p.LeftThumbURL
	}
	if p.RightThumbURL != nil {
		next.Biometrics.RightThumbURL = *p.RightThumbURL
	}

	d.rec = next
}

// ────────────────────── OCR 提取结果 ──────────────────────

// ApplyExtraction 将 OCR 字段猜测写入指定字段组
// 写入的字段打上已验证标记；此后任何人工修改会清除标记。
// 返回实际写入的字段名列表；未知字段被忽略。
func (d *Draft) ApplyExtraction(group StepKey, fields map[string]string) ([]string, error) {
	next := d.clone()
	var applied []string

	switch group {
	case StepPersonal:
		for field, val := range fields {
			switch field {
			case "first_name":
				next.Personal.FirstName = normalizeName(val)
			case "last_name":
				next.Personal.LastName = normalizeName(val)
			case "dob":
				next.Personal.DOB = val
			case "gender":
				next.Personal.Gender = val
			case "id_number":
				next.Personal.IDNumber = normalizeCode(val)
			default:
				continue
			}
			next.Verified["personal."+field] = true
			applied = append(applied, field)
		}
	case StepBank:
		for field, val := range fields {
			switch field {
			case "account_holder_name":
				next.Bank.AccountHolderName = normalizeName(val)
			case "account_number":
				next.Bank.AccountNumber = normalizeDigits(val)
			case "ifsc":
				next.Bank.IFSC = normalizeCode(val)
			case "bank_name":
				next.Bank.BankName = val
			default:
				continue
			}
			next.Verified["bank."+field] = true
			applied = append(applied, field)
		}
	default:
		return nil, ErrUnknownGroup
	}

	d.rec = next
	return applied, nil
}
