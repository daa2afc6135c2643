package model

// SiteUniformPolicy 站点工服策略表 — 对应 site_uniform_policies
// (站点, 部门, 岗位) → 必选工服物品列表
type SiteUniformPolicy struct {
	PolicyID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"policy_id"`
	SiteID      string      `gorm:"type:uuid;not null"                             json:"site_id"`
	Department  string      `gorm:"type:varchar(100);not null"                     json:"department"`
	Designation string      `gorm:"type:varchar(100);not null"                     json:"designation"`
	Items       StringArray `gorm:"type:text[];not null"                           json:"items"`
	BaseModel
}

// TableName 指定表名
func (SiteUniformPolicy) TableName() string { return "site_uniform_policies" }

// UniformSizeChart 工服尺码表 — 对应 uniform_size_charts
// (性别, 物品) → 可选尺码列表
type UniformSizeChart struct {
	ChartID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"chart_id"`
	Gender  string      `gorm:"type:varchar(10);not null"                      json:"gender"`
	Item    string      `gorm:"type:varchar(50);not null"                      json:"item"`
	Sizes   StringArray `gorm:"type:text[];not null"                           json:"sizes"`
	BaseModel
}

// TableName 指定表名
func (UniformSizeChart) TableName() string { return "uniform_size_charts" }
