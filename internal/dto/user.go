package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	SiteID  string `form:"site_id" binding:"omitempty,uuid"`
	Role    string `form:"role"    binding:"omitempty,oneof=admin hr operations site_manager field_officer"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=50"`
	Email    string `json:"email"    binding:"required,email"`
	Phone    string `json:"phone"    binding:"omitempty,len=10,numeric"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Role     string `json:"role"     binding:"required,oneof=admin hr operations site_manager field_officer"`
	SiteID   string `json:"site_id"  binding:"omitempty,uuid"`
}

// UpdateUserRequest 更新用户信息请求
type UpdateUserRequest struct {
	Name   *string `json:"name"    binding:"omitempty,min=2,max=50"`
	Email  *string `json:"email"   binding:"omitempty,email"`
	Phone  *string `json:"phone"   binding:"omitempty,len=10,numeric"`
	SiteID *string `json:"site_id" binding:"omitempty,uuid"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin hr operations site_manager field_officer"`
}

// ResetPasswordResponse 重置密码响应
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}

// ImportUserResponse 批量导入用户响应
type ImportUserResponse struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Errors  []ImportUserError `json:"errors,omitempty"`
}

// ImportUserError 导入错误详情
type ImportUserError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ── 站点模块 DTO ──

// CreateSiteRequest 创建站点请求
type CreateSiteRequest struct {
	Name       string `json:"name"        binding:"required,min=2,max=200"`
	ClientName string `json:"client_name" binding:"omitempty,max=200"`
	Address    string `json:"address"     binding:"omitempty,max=500"`
}

// UpdateSiteRequest 更新站点请求
type UpdateSiteRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=200"`
	ClientName *string `json:"client_name" binding:"omitempty,max=200"`
	Address    *string `json:"address"     binding:"omitempty,max=500"`
}
