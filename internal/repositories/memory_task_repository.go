package repository

import (
	"context"
	"sync"
	"time"

	model "taskflow.com/taskflow/pkg/models"
)

// MemoryTaskRepository keeps tasks in process memory. It backs DB_DRIVER=memory
// and the HTTP tests.
type MemoryTaskRepository struct {
	mu          sync.RWMutex
	tasks       map[int64]model.Task
	nextID      int64
	lastCreated time.Time
	now         func() time.Time
}

var _ TaskStorage = (*MemoryTaskRepository)(nil)

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks:  make(map[int64]model.Task),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryTaskRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageError("list tasks", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, cloneTask(task))
	}
	return tasks, nil
}

func (r *MemoryTaskRepository) GetTask(ctx context.Context, id int64) (*model.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, storageError("get task", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, false, nil
	}
	out := cloneTask(task)
	return &out, true, nil
}

func (r *MemoryTaskRepository) CreateTask(ctx context.Context, in model.NewTask) (*model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageError("create task", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task := newTaskRecord(in)
	task.ID = r.nextID
	r.nextID++

	// createdAt never goes backwards, even if the wall clock does.
	created := r.now()
	if created.Before(r.lastCreated) {
		created = r.lastCreated
	}
	r.lastCreated = created
	task.CreatedAt = created

	r.tasks[task.ID] = cloneTask(*task)
	return task, nil
}

func (r *MemoryTaskRepository) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, storageError("update task", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, false, nil
	}
	patch.Apply(&task)
	r.tasks[id] = task

	out := cloneTask(task)
	return &out, true, nil
}

func (r *MemoryTaskRepository) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storageError("delete task", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func cloneTask(t model.Task) model.Task {
	if t.Description != nil {
		desc := *t.Description
		t.Description = &desc
	}
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}
