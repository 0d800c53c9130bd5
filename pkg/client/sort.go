package client

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	model "taskflow.com/taskflow/pkg/models"
)

type SortOption string

const (
	SortDueDate      SortOption = "dueDate"
	SortDueDateDesc  SortOption = "dueDateDesc"
	SortAlphabetical SortOption = "alphabetical"
	SortCreationDate SortOption = "creationDate"
)

var SortOptions = []SortOption{SortDueDate, SortDueDateDesc, SortAlphabetical, SortCreationDate}

func ParseSortOption(s string) (SortOption, error) {
	for _, o := range SortOptions {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort option %q (want dueDate, dueDateDesc, alphabetical or creationDate)", s)
}

// SortTasks returns a sorted copy of tasks. Equal keys keep their input order.
// Tasks without a due date come last under both due-date orders.
func SortTasks(tasks []model.Task, option SortOption) []model.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []model.Task{}
	}

	switch option {
	case SortDueDate:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return compareDueDates(a.DueDate, b.DueDate, false)
		})
	case SortDueDateDesc:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return compareDueDates(a.DueDate, b.DueDate, true)
		})
	case SortAlphabetical:
		// A Collator keeps internal buffers, so each call gets its own.
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortCreationDate:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	}
	return out
}

func compareDueDates(a, b *time.Time, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case desc:
		return b.Compare(*a)
	default:
		return a.Compare(*b)
	}
}
