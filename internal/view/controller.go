// Package view holds the task list screen state: the active filter and sort,
// the create/edit modal, and the cached task collection that every mutation
// invalidates.
package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"taskflow.com/taskflow/pkg/client"
	model "taskflow.com/taskflow/pkg/models"
)

const formDateLayout = "2006-01-02"

var (
	ErrModalClosed   = errors.New("no task form is open")
	ErrTitleRequired = errors.New("title is required")
)

// TaskAPI is the remote side of the controller; *client.Client implements it.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, in model.NewTask) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type ModalMode int

const (
	ModalClosed ModalMode = iota
	ModalCreate
	ModalEdit
)

type TaskForm struct {
	Title       string
	Description string
	DueDate     string
	Priority    model.Priority
}

type Modal struct {
	Mode ModalMode
	// Task is the task being edited in ModalEdit.
	Task *model.Task
	// Form holds the values the modal opened with.
	Form TaskForm
}

type Snapshot struct {
	Tasks     []model.Task
	Active    int
	Completed int
	Filter    client.Filter
	Sort      client.SortOption
}

type Controller struct {
	api      TaskAPI
	notifier Notifier
	now      func() time.Time
	fetches  singleflight.Group

	mu         sync.Mutex
	filter     client.Filter
	sort       client.SortOption
	modal      Modal
	tasks      []model.Task
	stale      bool
	generation uint64
}

func NewController(api TaskAPI, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	return &Controller{
		api:      api,
		notifier: notifier,
		now:      time.Now,
		filter:   client.FilterAll,
		sort:     client.SortDueDate,
		stale:    true,
	}
}

// SelectFilter changes the filter tab. The cached collection is reused.
func (c *Controller) SelectFilter(f client.Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

// SelectSort changes the sort order. The cached collection is reused.
func (c *Controller) SelectSort(s client.SortOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = s
}

func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.modal = Modal{
		Mode: ModalCreate,
		Form: TaskForm{
			DueDate:  c.today(),
			Priority: model.PriorityMedium,
		},
	}
}

func (c *Controller) OpenEdit(task model.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	form := TaskForm{
		Title:    task.Title,
		DueDate:  c.today(),
		Priority: task.Priority,
	}
	if task.Description != nil {
		form.Description = *task.Description
	}
	if task.DueDate != nil {
		form.DueDate = task.DueDate.UTC().Format(formDateLayout)
	}
	if form.Priority == "" {
		form.Priority = model.PriorityMedium
	}

	c.modal = Modal{Mode: ModalEdit, Task: &task, Form: form}
}

func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal = Modal{}
}

func (c *Controller) Modal() Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// Save submits the open form. The modal closes as soon as the form is
// accepted, before the server answers; a create mutation is sent in create
// mode and a patch of the changed fields in edit mode.
func (c *Controller) Save(ctx context.Context, form TaskForm) error {
	if strings.TrimSpace(form.Title) == "" {
		return ErrTitleRequired
	}

	c.mu.Lock()
	modal := c.modal
	if modal.Mode != ModalClosed {
		c.modal = Modal{}
	}
	c.mu.Unlock()

	switch modal.Mode {
	case ModalCreate:
		return c.create(ctx, form)
	case ModalEdit:
		return c.update(ctx, modal.Task.ID, modal.Form, form)
	default:
		return ErrModalClosed
	}
}

func (c *Controller) create(ctx context.Context, form TaskForm) error {
	in := model.NewTask{
		Title:    form.Title,
		Priority: form.Priority,
	}
	if form.Description != "" {
		desc := form.Description
		in.Description = &desc
	}
	if form.DueDate != "" {
		due, err := time.Parse(formDateLayout, form.DueDate)
		if err != nil {
			return c.failed("create", fmt.Errorf("invalid due date %q", form.DueDate))
		}
		in.DueDate = &due
	}

	return c.mutate(ctx, "create", func() error {
		_, err := c.api.CreateTask(ctx, in)
		return err
	})
}

func (c *Controller) update(ctx context.Context, id int64, before, after TaskForm) error {
	patch, err := formPatch(before, after)
	if err != nil {
		return c.failed("update", err)
	}

	return c.mutate(ctx, "update", func() error {
		_, err := c.api.UpdateTask(ctx, id, patch)
		return err
	})
}

// formPatch keeps only the fields that differ from the values the edit form
// opened with. Emptied description and due date fields clear the column.
func formPatch(before, after TaskForm) (model.TaskPatch, error) {
	var patch model.TaskPatch

	if after.Title != before.Title {
		patch.Title = model.Some(after.Title)
	}
	if after.Description != before.Description {
		if after.Description == "" {
			patch.Description = model.Null[string]()
		} else {
			patch.Description = model.Some(after.Description)
		}
	}
	if after.DueDate != before.DueDate {
		if after.DueDate == "" {
			patch.DueDate = model.Null[time.Time]()
		} else {
			due, err := time.Parse(formDateLayout, after.DueDate)
			if err != nil {
				return model.TaskPatch{}, fmt.Errorf("invalid due date %q", after.DueDate)
			}
			patch.DueDate = model.Some(due)
		}
	}
	if after.Priority != before.Priority {
		patch.Priority = model.Some(after.Priority)
	}

	return patch, nil
}

// ToggleCompletion flips only the completed flag of task.
func (c *Controller) ToggleCompletion(ctx context.Context, task model.Task) error {
	patch := model.TaskPatch{Completed: model.Some(!task.Completed)}
	return c.mutate(ctx, "update", func() error {
		_, err := c.api.UpdateTask(ctx, task.ID, patch)
		return err
	})
}

func (c *Controller) DeleteTask(ctx context.Context, id int64) error {
	return c.mutate(ctx, "delete", func() error {
		return c.api.DeleteTask(ctx, id)
	})
}

// Invalidate marks the cached collection stale; the next read refetches it.
func (c *Controller) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
	c.generation++
}

// Tasks returns the full collection, fetching it first when the cache is
// stale. Concurrent readers share one request.
func (c *Controller) Tasks(ctx context.Context) ([]model.Task, error) {
	c.mu.Lock()
	if !c.stale {
		tasks := slices.Clone(c.tasks)
		c.mu.Unlock()
		return tasks, nil
	}
	c.mu.Unlock()

	v, err, _ := c.fetches.Do("tasks", func() (any, error) {
		c.mu.Lock()
		generation := c.generation
		c.mu.Unlock()

		tasks, err := c.api.ListTasks(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.tasks = tasks
		// A mutation that finished while the request was in flight keeps
		// the cache stale.
		if c.generation == generation {
			c.stale = false
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]model.Task)), nil
}

// Find looks a task up in the collection by id.
func (c *Controller) Find(ctx context.Context, id int64) (model.Task, bool, error) {
	tasks, err := c.Tasks(ctx)
	if err != nil {
		return model.Task{}, false, err
	}
	for _, task := range tasks {
		if task.ID == id {
			return task, true, nil
		}
	}
	return model.Task{}, false, nil
}

// View derives the visible list from the collection with the current filter
// and sort. Counts always cover the whole collection.
func (c *Controller) View(ctx context.Context) (Snapshot, error) {
	tasks, err := c.Tasks(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	filter, sortOption := c.filter, c.sort
	c.mu.Unlock()

	active, completed := client.Counts(tasks)
	return Snapshot{
		Tasks:     client.SortTasks(client.FilterTasks(tasks, filter), sortOption),
		Active:    active,
		Completed: completed,
		Filter:    filter,
		Sort:      sortOption,
	}, nil
}

func (c *Controller) mutate(ctx context.Context, op string, call func() error) error {
	if err := call(); err != nil {
		return c.failed(op, err)
	}

	c.Invalidate()
	c.notifier.Notify(Notification{
		Title:       "Task " + pastTense(op),
		Description: "Your task has been " + pastTense(op) + " successfully.",
	})
	return nil
}

func (c *Controller) failed(op string, err error) error {
	c.notifier.Notify(Notification{
		Title:       "Error",
		Description: fmt.Sprintf("Failed to %s task: %s", op, err),
		Destructive: true,
	})
	return fmt.Errorf("failed to %s task: %w", op, err)
}

func (c *Controller) today() string {
	return c.now().UTC().Format(formDateLayout)
}

func pastTense(op string) string {
	return op + "d"
}
