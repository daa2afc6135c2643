package dto

// ── 任务模块 DTO ──

// TaskListRequest 任务列表查询参数
type TaskListRequest struct {
	PaginationRequest
	Status     string `form:"status"      binding:"omitempty,oneof=open in_progress done escalated"`
	Priority   string `form:"priority"    binding:"omitempty,oneof=low medium high"`
	AssigneeID string `form:"assignee_id" binding:"omitempty,uuid"`
}

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string `json:"title"       binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Priority    string `json:"priority"    binding:"required,oneof=low medium high"`
	AssigneeID  string `json:"assignee_id" binding:"required,uuid"`
	DueDate     string `json:"due_date"    binding:"required"` // YYYY-MM-DD
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=2,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Priority    *string `json:"priority"    binding:"omitempty,oneof=low medium high"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
	Status      *string `json:"status"      binding:"omitempty,oneof=open in_progress done"`
	DueDate     *string `json:"due_date"`
}

// ── 请假模块 DTO ──

// LeaveListRequest 请假列表查询参数
type LeaveListRequest struct {
	PaginationRequest
	Status string `form:"status"  binding:"omitempty,oneof=pending approved rejected"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// CreateLeaveRequest 提交请假申请
type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=casual sick earned unpaid"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date"   binding:"required"` // YYYY-MM-DD
	Reason    string `json:"reason"     binding:"omitempty,max=500"`
}

// ReviewLeaveRequest 审批请假申请
type ReviewLeaveRequest struct {
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

// ── 考勤模块 DTO ──

// PunchRequest 打卡请求（坐标可选，定位失败时降级为无坐标打卡）
type PunchRequest struct {
	Type      string   `json:"type"      binding:"required,oneof=check_in check_out"`
	Latitude  *float64 `json:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Accuracy  *float64 `json:"accuracy"  binding:"omitempty,min=0"`
}

// AttendanceListRequest 考勤记录查询参数
type AttendanceListRequest struct {
	PaginationRequest
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	From   string `form:"from"    binding:"omitempty"` // YYYY-MM-DD
	To     string `form:"to"      binding:"omitempty"` // YYYY-MM-DD
}
