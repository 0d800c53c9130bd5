package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "taskflow.com/taskflow/internal/errors"
	"taskflow.com/taskflow/internal/http/validators"
	"taskflow.com/taskflow/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return apperrors.StorageFailure("Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, found, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return apperrors.StorageFailure("Failed to retrieve task")
	}
	if !found {
		return apperrors.ErrTaskNotFound
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.ErrInvalidJSON
	}

	in, err := validators.ValidateCreateTaskRequest(body)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), in)
	if err != nil {
		return apperrors.StorageFailure("Failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.ErrInvalidJSON
	}

	patch, err := validators.ValidateUpdateTaskRequest(body)
	if err != nil {
		return err
	}

	task, found, err := h.taskService.UpdateTask(c.Request().Context(), id, patch)
	if err != nil {
		return apperrors.StorageFailure("Failed to update task")
	}
	if !found {
		return apperrors.ErrTaskNotFound
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	removed, err := h.taskService.DeleteTask(c.Request().Context(), id)
	if err != nil {
		return apperrors.StorageFailure("Failed to delete task")
	}
	if !removed {
		return apperrors.ErrTaskNotFound
	}

	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidTaskID
	}
	return id, nil
}
