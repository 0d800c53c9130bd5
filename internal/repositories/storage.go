package repository

import (
	"context"
	"errors"
	"fmt"

	model "taskflow.com/taskflow/pkg/models"
)

// TaskStorage is the persistence contract for tasks. Lookups report a missing
// row through the boolean result; the error is reserved for store failures.
type TaskStorage interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, bool, error)
	CreateTask(ctx context.Context, task model.NewTask) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, bool, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

var ErrStorageUnavailable = errors.New("storage unavailable")

// StorageError wraps a failure of the backing store with the operation that
// hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrStorageUnavailable, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// newTaskRecord applies the creation defaults to an insertable task.
func newTaskRecord(in model.NewTask) *model.Task {
	task := &model.Task{
		Title:    in.Title,
		Priority: in.Priority,
	}
	if in.Description != nil && *in.Description != "" {
		desc := *in.Description
		task.Description = &desc
	}
	if in.DueDate != nil {
		due := *in.DueDate
		task.DueDate = &due
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}
	return task
}
