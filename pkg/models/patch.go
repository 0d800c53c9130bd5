package model

import (
	"encoding/json"
	"time"
)

// Optional is a patch field. Set reports whether the field was supplied;
// a supplied field with a nil Value clears the column.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// TaskPatch is a partial update. Only supplied fields are written; ID and
// CreatedAt are not part of it and can never be changed.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	DueDate     Optional[time.Time]
	Priority    Optional[Priority]
	Completed   Optional[bool]
}

func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.DueDate.Set && !p.Priority.Set && !p.Completed.Set
}

// Apply merges the supplied fields into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title.Set && p.Title.Value != nil {
		t.Title = *p.Title.Value
	}
	if p.Description.Set {
		t.Description = cloneValue(p.Description.Value)
	}
	if p.DueDate.Set {
		t.DueDate = cloneValue(p.DueDate.Value)
	}
	if p.Priority.Set && p.Priority.Value != nil {
		t.Priority = *p.Priority.Value
	}
	if p.Completed.Set && p.Completed.Value != nil {
		t.Completed = *p.Completed.Value
	}
}

// Columns returns the supplied fields keyed by column name.
func (p TaskPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Title.Set && p.Title.Value != nil {
		cols["title"] = *p.Title.Value
	}
	if p.Description.Set {
		if p.Description.Value == nil {
			cols["description"] = nil
		} else {
			cols["description"] = *p.Description.Value
		}
	}
	if p.DueDate.Set {
		if p.DueDate.Value == nil {
			cols["due_date"] = nil
		} else {
			cols["due_date"] = *p.DueDate.Value
		}
	}
	if p.Priority.Set && p.Priority.Value != nil {
		cols["priority"] = *p.Priority.Value
	}
	if p.Completed.Set && p.Completed.Value != nil {
		cols["completed"] = *p.Completed.Value
	}
	return cols
}

func (p TaskPatch) MarshalJSON() ([]byte, error) {
	body := make(map[string]any)
	if p.Title.Set {
		body["title"] = p.Title.Value
	}
	if p.Description.Set {
		body["description"] = p.Description.Value
	}
	if p.DueDate.Set {
		body["dueDate"] = p.DueDate.Value
	}
	if p.Priority.Set {
		body["priority"] = p.Priority.Value
	}
	if p.Completed.Set {
		body["completed"] = p.Completed.Value
	}
	return json.Marshal(body)
}

func cloneValue[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
