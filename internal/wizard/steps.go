package wizard

// StepKey 向导步骤标识
type StepKey string

// 固定步骤序列（与角色无关）
const (
	StepPersonal     StepKey = "personal"
	StepAddress      StepKey = "address"
	StepOrganization StepKey = "organization"
	StepFamily       StepKey = "family"
	StepEducation    StepKey = "education"
	StepBank         StepKey = "bank"
	StepUan          StepKey = "uan"
	StepEsi          StepKey = "esi"
	StepGmc          StepKey = "gmc"
	StepUniform      StepKey = "uniform"
	StepBiometrics   StepKey = "biometrics"
	StepDocuments    StepKey = "documents"
	StepReview       StepKey = "review"
)

// StepDef 步骤定义
type StepDef struct {
	Key   StepKey
	Label string
	Icon  string
}

// Steps 向导步骤表，索引即步骤序号
var Steps = []StepDef{
	{StepPersonal, "个人信息", "user"},
	{StepAddress, "地址信息", "map-pin"},
	{StepOrganization, "组织信息", "building"},
	{StepFamily, "家属信息", "users"},
	{StepEducation, "教育经历", "book"},
	{StepBank, "银行信息", "credit-card"},
	{StepUan, "UAN/PF", "file-text"},
	{StepEsi, "ESI", "shield"},
	{StepGmc, "团体医保", "heart"},
	{StepUniform, "工服选择", "shirt"},
	{StepBiometrics, "生物信息", "fingerprint"},
	{StepDocuments, "证件材料", "folder"},
	{StepReview, "确认提交", "check-circle"},
}

// StepIndex 返回步骤键对应的索引；未知键返回 -1
func StepIndex(key StepKey) int {
	for i, s := range Steps {
		if s.Key == key {
			return i
		}
	}
	return -1
}

// ── 步骤展示状态 ──

const (
	StepStatusComplete = "complete"
	StepStatusCurrent  = "current"
	StepStatusUpcoming = "upcoming"
)

// StepState 步骤在当前进度下的展示状态
type StepState struct {
	Key       StepKey `json:"key"`
	Label     string  `json:"label"`
	Icon      string  `json:"icon"`
	Status    string  `json:"status"`
	Clickable bool    `json:"clickable"`
}
