package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sudhan-ops/onboarding-sub001/internal/dto"
	"github.com/sudhan-ops/onboarding-sub001/internal/model"
	"github.com/sudhan-ops/onboarding-sub001/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("任务不存在")
	ErrTaskBadDate  = errors.New("日期格式错误，应为 YYYY-MM-DD")
	ErrTaskDone     = errors.New("任务已完成，不能修改")
)

// TaskService 任务业务接口
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest, callerID string) (*model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, id string, req *dto.UpdateTaskRequest, callerID string) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req *dto.TaskListRequest) ([]model.Task, int64, error)
	// EscalateOverdue 把已过升级日期且仍未完成的任务标记为 escalated
	// 定时触发，返回本轮升级的任务数
	EscalateOverdue(ctx context.Context) (int, error)
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

// escalationOffset 升级日期相对截止日期的宽限天数
// 优先级越高宽限越短
func escalationOffset(priority string) int {
	switch priority {
	case model.TaskPriorityHigh:
		return 1
	case model.TaskPriorityMedium:
		return 3
	default:
		return 7
	}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest, callerID string) (*model.Task, error) {
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, ErrTaskBadDate
	}

	if _, err := s.repo.User.GetByID(ctx, req.AssigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	escalation := dueDate.AddDate(0, 0, escalationOffset(req.Priority))
	task := &model.Task{
		Title:          req.Title,
		Description:    req.Description,
		AssigneeID:     &req.AssigneeID,
		Status:         model.TaskStatusOpen,
		Priority:       req.Priority,
		DueDate:        dueDate,
		EscalationDate: &escalation,
	}
	task.CreatedBy = &callerID

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.Error(err))
		return nil, err
	}
	return s.repo.Task.GetByID(ctx, task.TaskID)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest, callerID string) (*model.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == model.TaskStatusDone {
		return nil, ErrTaskDone
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssigneeID != nil {
		if _, err := s.repo.User.GetByID(ctx, *req.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		task.AssigneeID = req.AssigneeID
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, ErrTaskBadDate
		}
		task.DueDate = dueDate
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	// 截止日期或优先级变化时重算升级日期
	if req.DueDate != nil || req.Priority != nil {
		escalation := task.DueDate.AddDate(0, 0, escalationOffset(task.Priority))
		task.EscalationDate = &escalation
	}
	task.UpdatedBy = &callerID

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("更新任务失败", zap.String("task_id", id), zap.Error(err))
		return nil, err
	}
	return s.repo.Task.GetByID(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Task.Delete(ctx, id)
}

func (s *taskService) List(ctx context.Context, req *dto.TaskListRequest) ([]model.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:     req.Status,
		Priority:   req.Priority,
		AssigneeID: req.AssigneeID,
	}
	return s.repo.Task.List(ctx, filter, req.GetOffset(), req.GetPageSize())
}

func (s *taskService) EscalateOverdue(ctx context.Context) (int, error) {
	tasks, err := s.repo.Task.ListDueForEscalation(ctx, time.Now())
	if err != nil {
		s.logger.Error("查询待升级任务失败", zap.Error(err))
		return 0, err
	}

	count := 0
	for i := range tasks {
		tasks[i].Status = model.TaskStatusEscalated
		if err := s.repo.Task.Update(ctx, &tasks[i]); err != nil {
			s.logger.Error("升级任务失败", zap.String("task_id", tasks[i].TaskID), zap.Error(err))
			continue
		}
		count++
	}
	if count > 0 {
		s.logger.Info("任务升级完成", zap.Int("count", count))
	}
	return count, nil
}
