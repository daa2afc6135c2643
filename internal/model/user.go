package model

// ── 角色常量 ──

const (
	RoleAdmin        = "admin"
	RoleHR           = "hr"
	RoleOperations   = "operations"
	RoleSiteManager  = "site_manager"
	RoleFieldOfficer = "field_officer"
)

// User 用户表 — 对应 users
type User struct {
	UserID             string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"user_id"`
	Name               string  `gorm:"type:varchar(100);not null"                        json:"name"`
	Email              string  `gorm:"type:varchar(255);not null"                        json:"email"`
	Phone              string  `gorm:"type:varchar(20);not null;default:''"              json:"phone"`
	PasswordHash       string  `gorm:"type:varchar(255);not null"                        json:"-"`
	Role               string  `gorm:"type:varchar(20);not null;default:'field_officer'" json:"role"`
	SiteID             *string `gorm:"type:uuid"                                         json:"site_id,omitempty"`
	MustChangePassword bool    `gorm:"not null;default:false"                            json:"must_change_password"`
	VersionedModel

	// 关联
	Site *Site `gorm:"foreignKey:SiteID;references:SiteID" json:"site,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Site 站点表 — 对应 sites
type Site struct {
	SiteID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"site_id"`
	Name       string `gorm:"type:varchar(200);not null"                     json:"name"`
	ClientName string `gorm:"type:varchar(200);not null;default:''"          json:"client_name"`
	Address    string `gorm:"type:text;not null;default:''"                  json:"address"`
	SoftDeleteModel
}

// TableName 指定表名
func (Site) TableName() string { return "sites" }
