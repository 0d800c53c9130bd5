package services

import (
	"context"
	"log/slog"

	repository "taskflow.com/taskflow/internal/repositories"
	model "taskflow.com/taskflow/pkg/models"
)

type TaskService struct {
	repo   repository.TaskStorage
	logger *slog.Logger
}

func NewTaskService(repo repository.TaskStorage, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		repo:   repo,
		logger: logger,
	}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		s.logFailure(ctx, "list tasks", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*model.Task, bool, error) {
	task, found, err := s.repo.GetTask(ctx, id)
	if err != nil {
		s.logFailure(ctx, "get task", err, slog.Int64("task_id", id))
		return nil, false, err
	}
	return task, found, nil
}

func (s *TaskService) CreateTask(ctx context.Context, in model.NewTask) (*model.Task, error) {
	task, err := s.repo.CreateTask(ctx, in)
	if err != nil {
		s.logFailure(ctx, "create task", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "task created", slog.Int64("task_id", task.ID))
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, bool, error) {
	task, found, err := s.repo.UpdateTask(ctx, id, patch)
	if err != nil {
		s.logFailure(ctx, "update task", err, slog.Int64("task_id", id))
		return nil, false, err
	}
	return task, found, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		s.logFailure(ctx, "delete task", err, slog.Int64("task_id", id))
		return false, err
	}

	if removed {
		s.logger.InfoContext(ctx, "task deleted", slog.Int64("task_id", id))
	}
	return removed, nil
}

func (s *TaskService) logFailure(ctx context.Context, op string, err error, attrs ...any) {
	args := append([]any{slog.String("op", op), slog.Any("error", err)}, attrs...)
	s.logger.ErrorContext(ctx, "storage operation failed", args...)
}
