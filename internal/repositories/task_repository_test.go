package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "taskflow.com/taskflow/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.Task{}, &model.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

// storages runs every contract test against both implementations.
func storages(t *testing.T) map[string]func(t *testing.T) TaskStorage {
	return map[string]func(t *testing.T) TaskStorage{
		"gorm": func(t *testing.T) TaskStorage {
			return NewTaskRepository(setupTestDB(t))
		},
		"memory": func(t *testing.T) TaskStorage {
			return NewMemoryTaskRepository()
		},
	}
}

func strPtr(s string) *string { return &s }

func TestTaskStorage_CreateAppliesDefaults(t *testing.T) {
	for name, newStorage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			repo := newStorage(t)
			ctx := context.Background()

			task, err := repo.CreateTask(ctx, model.NewTask{Title: "Buy milk"})
			if err != nil {
				t.Fatalf("failed to create task: %v", err)
			}

			if task.ID == 0 {
				t.Error("expected task ID to be set")
			}
			if task.CreatedAt.IsZero() {
				t.Error("expected createdAt to be set")
			}

			stored, found, err := repo.GetTask(ctx, task.ID)
			if err != nil || !found {
				t.Fatalf("expected stored task, found=%v err=%v", found, err)
			}
			if stored.Priority != model.PriorityMedium {
				t.Errorf("expected priority %s, got %s", model.PriorityMedium, stored.Priority)
			}
			if stored.Completed {
				t.Error("expected completed to default to false")
			}
			if stored.Description != nil {
				t.Errorf("expected nil description, got %q", *stored.Description)
			}
			if stored.DueDate != nil {
				t.Errorf("expected nil due date, got %v", *stored.DueDate)
			}
		})
	}
}

func TestTaskStorage_CreateKeepsSuppliedFields(t *testing.T) {
	for name, newStorage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			repo := newStorage(t)
			ctx := context.Background()
			due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
			done := true

			task, err := repo.CreateTask(ctx, model.NewTask{
				Title:       "File taxes",
				Description: strPtr("before the deadline"),
				DueDate:     &due,
				Priority:    model.PriorityHigh,
				Completed:   &done,
			})
			if err != nil {
				t.Fatalf("failed to create task: %v", err)
			}

			stored, _, err := repo.GetTask(ctx, task.ID)
			if err != nil {
				t.Fatalf("failed to get task: %v", err)
			}
			if stored.Description == nil || *stored.Description != "before the deadline" {
				t.Errorf("unexpected description %v", stored.Description)
			}
			if stored.DueDate == nil || !stored.DueDate.Equal(due) {
				t.Errorf("unexpected due date %v", stored.DueDate)
			}
			if stored.Priority != model.PriorityHigh || !stored.Completed {
				t.Errorf("unexpected priority/completed %s/%v", stored.Priority, stored.Completed)
			}
		})
	}
}

func TestTaskStorage_UpdateIsAMerge(t *testing.T) {
	for name, newStorage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			repo := newStorage(t)
			ctx := context.Background()
			due := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)

			created, err := repo.CreateTask(ctx, model.NewTask{
				Title:       "Wrap presents",
				Description: strPtr("all of them"),
				DueDate:     &due,
				Priority:    model.PriorityLow,
			})
			if err != nil {
				t.Fatalf("failed to create task: %v", err)
			}

			updated, found, err := repo.UpdateTask(ctx, created.ID, model.TaskPatch{Completed: model.Some(true)})
			if err != nil || !found {
				t.Fatalf("expected update to succeed, found=%v err=%v", found, err)
			}

			if !updated.Completed {
				t.Error("expected completed to be true")
			}
			if updated.Title != created.Title || updated.Priority != created.Priority {
				t.Errorf("title/priority changed: %q/%s", updated.Title, updated.Priority)
			}
			if updated.Description == nil || *updated.Description != "all of them" {
				t.Errorf("description changed: %v", updated.Description)
			}
			if updated.DueDate == nil || !updated.DueDate.Equal(due) {
				t.Errorf("due date changed: %v", updated.DueDate)
			}
			if !updated.CreatedAt.Equal(created.CreatedAt) {
				t.Errorf("createdAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
			}
		})
	}
}

func TestTaskStorage_UpdateClearsAndNoops(t *testing.T) {
	for name, newStorage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			repo := newStorage(t)
			ctx := context.Background()
			due := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)

			created, _ := repo.CreateTask(ctx, model.NewTask{Title: "Plan trip", DueDate: &due})

			same, found, err := repo.UpdateTask(ctx, created.ID, model.TaskPatch{})
			if err != nil || !found {
				t.Fatalf("expected empty update to succeed, found=%v err=%v", found, err)
			}
			if same.Title != "Plan trip" || same.DueDate == nil {
				t.Errorf("empty update changed the task: %+v", same)
			}

			cleared, _, err := repo.UpdateTask(ctx, created.ID, model.TaskPatch{DueDate: model.Null[time.Time]()})
			if err != nil {
				t.Fatalf("failed to clear due date: %v", err)
			}
			if cleared.DueDate != nil {
				t.Errorf("expected due date to be cleared, got %v", *cleared.DueDate)
			}
		})
	}
}

func TestTaskStorage_MissingIDsAreNotErrors(t *testing.T) {
	for name, newStorage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			repo := newStorage(t)
			ctx := context.Background()

			task, found, err := repo.GetTask(ctx, 999999)
			if err != nil || found || task != nil {
				t.Errorf("get: expected not found, got task=%v found=%v err=%v", task, found, err)
			}

			task, found, err = repo.UpdateTask(ctx, 999999, model.TaskPatch{Completed: model.Some(true)})
			if err != nil || found || task != nil {
				t.Errorf("update: expected not found, got task=%v found=%v err=%v", task, found, err)
			}

			removed, err := repo.DeleteTask(ctx, 999999)
			if err != nil || removed {
				t.Errorf("delete: expected nothing removed, got removed=%v err=%v", removed, err)
			}
		})
	}
}

func TestTaskStorage_DeleteReportsOnce(t *testing.T) {
	for name, newStorage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			repo := newStorage(t)
			ctx := context.Background()

			task, _ := repo.CreateTask(ctx, model.NewTask{Title: "Temporary"})

			removed, err := repo.DeleteTask(ctx, task.ID)
			if err != nil || !removed {
				t.Fatalf("first delete: removed=%v err=%v", removed, err)
			}

			removed, err = repo.DeleteTask(ctx, task.ID)
			if err != nil || removed {
				t.Errorf("second delete: removed=%v err=%v", removed, err)
			}

			tasks, err := repo.ListTasks(ctx)
			if err != nil {
				t.Fatalf("failed to list tasks: %v", err)
			}
			if len(tasks) != 0 {
				t.Errorf("expected no tasks, got %d", len(tasks))
			}
		})
	}
}

func TestTaskStorage_ListReturnsEveryTask(t *testing.T) {
	for name, newStorage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			repo := newStorage(t)
			ctx := context.Background()

			tasks, err := repo.ListTasks(ctx)
			if err != nil {
				t.Fatalf("failed to list tasks: %v", err)
			}
			if tasks == nil || len(tasks) != 0 {
				t.Errorf("expected empty non-nil list, got %v", tasks)
			}

			for _, title := range []string{"a", "b", "c"} {
				if _, err := repo.CreateTask(ctx, model.NewTask{Title: title}); err != nil {
					t.Fatalf("failed to create task: %v", err)
				}
			}

			tasks, _ = repo.ListTasks(ctx)
			if len(tasks) != 3 {
				t.Errorf("expected 3 tasks, got %d", len(tasks))
			}
		})
	}
}

func TestMemoryTaskRepository_CreatedAtNeverDecreases(t *testing.T) {
	repo := NewMemoryTaskRepository()
	base := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	clock := []time.Time{base, base.Add(-time.Hour), base.Add(time.Minute)}
	i := 0
	repo.now = func() time.Time {
		now := clock[i]
		i++
		return now
	}

	ctx := context.Background()
	first, _ := repo.CreateTask(ctx, model.NewTask{Title: "first"})
	second, _ := repo.CreateTask(ctx, model.NewTask{Title: "second"})
	third, _ := repo.CreateTask(ctx, model.NewTask{Title: "third"})

	if second.CreatedAt.Before(first.CreatedAt) {
		t.Errorf("createdAt went backwards: %v then %v", first.CreatedAt, second.CreatedAt)
	}
	if !third.CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("unexpected createdAt %v", third.CreatedAt)
	}
}

func TestMemoryTaskRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	task, _ := repo.CreateTask(ctx, model.NewTask{Title: "original", Description: strPtr("desc")})
	*task.Description = "mutated"
	task.Title = "mutated"

	stored, _, _ := repo.GetTask(ctx, task.ID)
	if stored.Title != "original" || *stored.Description != "desc" {
		t.Errorf("stored task was mutated through a returned pointer: %+v", stored)
	}
}

func TestTaskRepository_StoreFailureIsStorageUnavailable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	_, err := repo.ListTasks(context.Background())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "list tasks" {
		t.Errorf("expected StorageError for list tasks, got %#v", err)
	}

	_, _, err = repo.GetTask(context.Background(), 1)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable from get, got %v", err)
	}
}
