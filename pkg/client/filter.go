package client

import (
	"fmt"

	model "taskflow.com/taskflow/pkg/models"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}

// FilterTasks returns the tasks matching f in their original order. The
// input slice is never modified.
func FilterTasks(tasks []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		switch f {
		case FilterActive:
			if task.Completed {
				continue
			}
		case FilterCompleted:
			if !task.Completed {
				continue
			}
		}
		out = append(out, task)
	}
	return out
}

// Counts returns how many tasks are still open and how many are done.
func Counts(tasks []model.Task) (active, completed int) {
	for _, task := range tasks {
		if task.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}
