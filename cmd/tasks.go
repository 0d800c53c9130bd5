package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskflow.com/taskflow/internal/view"
	"taskflow.com/taskflow/pkg/client"
	model "taskflow.com/taskflow/pkg/models"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks through a running API server",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := client.ParseFilter(mustString(cmd, "filter"))
		if err != nil {
			return err
		}
		sortOption, err := client.ParseSortOption(mustString(cmd, "sort"))
		if err != nil {
			return err
		}

		c := newController()
		c.SelectFilter(filter)
		c.SelectSort(sortOption)

		snap, err := c.View(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		return view.Render(cmd.OutOrStdout(), snap)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newController()
		c.OpenCreate()

		form := c.Modal().Form
		form.Title = args[0]
		if err := applyFormFlags(cmd, &form); err != nil {
			return err
		}
		return c.Save(cmd.Context(), form)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task; only the flags given are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newController()
		task, err := findTask(cmd, c, args[0])
		if err != nil {
			return err
		}
		c.OpenEdit(task)

		form := c.Modal().Form
		if cmd.Flags().Changed("title") {
			form.Title = mustString(cmd, "title")
		}
		if err := applyFormFlags(cmd, &form); err != nil {
			return err
		}
		return c.Save(cmd.Context(), form)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a task between active and completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newController()
		task, err := findTask(cmd, c, args[0])
		if err != nil {
			return err
		}
		return c.ToggleCompletion(cmd.Context(), task)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		return newController().DeleteTask(cmd.Context(), id)
	},
}

func init() {
	listCmd.Flags().String("filter", string(client.FilterAll), "one of "+joinOptions(client.Filters))
	listCmd.Flags().String("sort", string(client.SortDueDate), "one of "+joinOptions(client.SortOptions))

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().String("description", "", "task description")
		c.Flags().String("due", "", "due date as YYYY-MM-DD; empty for none")
		c.Flags().String("priority", string(model.PriorityMedium), "low, medium or high")
	}
	editCmd.Flags().String("title", "", "new title")

	tasksCmd.AddCommand(listCmd, addCmd, editCmd, toggleCmd, deleteCmd)
	rootCmd.AddCommand(tasksCmd)
}

func newController() *view.Controller {
	cfg, _ := loadConfig()
	api := client.New(cfg.APIBaseURL)
	return view.NewController(api, view.NotifierFunc(func(n view.Notification) {
		fmt.Fprintln(os.Stdout, view.RenderNotification(n))
	}))
}

// applyFormFlags copies the form flags the user actually passed onto form.
func applyFormFlags(cmd *cobra.Command, form *view.TaskForm) error {
	if cmd.Flags().Changed("description") {
		form.Description = mustString(cmd, "description")
	}
	if cmd.Flags().Changed("due") {
		form.DueDate = mustString(cmd, "due")
	}
	if cmd.Flags().Changed("priority") {
		p := model.Priority(mustString(cmd, "priority"))
		if !p.Valid() {
			return fmt.Errorf("invalid priority %q", p)
		}
		form.Priority = p
	}
	return nil
}

func findTask(cmd *cobra.Command, c *view.Controller, arg string) (model.Task, error) {
	id, err := parseTaskID(arg)
	if err != nil {
		return model.Task{}, err
	}
	task, found, err := c.Find(cmd.Context(), id)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	if !found {
		return model.Task{}, fmt.Errorf("task %d not found", id)
	}
	return task, nil
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func joinOptions[T ~string](options []T) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = string(o)
	}
	return strings.Join(parts, ", ")
}
