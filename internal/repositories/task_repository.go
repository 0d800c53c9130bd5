package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	model "taskflow.com/taskflow/pkg/models"
)

type TaskRepository struct {
	db *gorm.DB
}

var _ TaskStorage = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	if err := r.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, storageError("list tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id int64) (*model.Task, bool, error) {
	task, found, err := r.findByID(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, false, storageError("get task", err)
	}
	return task, found, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, in model.NewTask) (*model.Task, error) {
	task := newTaskRecord(in)

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, storageError("create task", err)
	}

	return task, nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, bool, error) {
	db := r.db.WithContext(ctx)

	if _, found, err := r.findByID(db, id); err != nil || !found {
		if err != nil {
			return nil, false, storageError("update task", err)
		}
		return nil, false, nil
	}

	if cols := patch.Columns(); len(cols) > 0 {
		res := db.Model(&model.Task{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, false, storageError("update task", res.Error)
		}
	}

	// The row can disappear between the write and the read back.
	task, found, err := r.findByID(db, id)
	if err != nil {
		return nil, false, storageError("update task", err)
	}
	return task, found, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return false, storageError("delete task", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *TaskRepository) findByID(db *gorm.DB, id int64) (*model.Task, bool, error) {
	var task model.Task
	err := db.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &task, true, nil
}
