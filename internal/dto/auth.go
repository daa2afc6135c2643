package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email      string `json:"email"    binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// OTPRequest 请求下发短信验证码
type OTPRequest struct {
	Phone string `json:"phone" binding:"required,len=10,numeric"`
}

// OTPVerifyRequest 验证码登录请求
type OTPVerifyRequest struct {
	Phone      string `json:"phone" binding:"required,len=10,numeric"`
	Code       string `json:"code"  binding:"required,len=6,numeric"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=20"`
}

// ResetPasswordRequest 找回密码请求
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordConfirmRequest 重置密码确认请求
type ResetPasswordConfirmRequest struct {
	Token       string `json:"token"        binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=20"`
}
