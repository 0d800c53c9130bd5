package validators

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	apperrors "taskflow.com/taskflow/internal/errors"
	model "taskflow.com/taskflow/pkg/models"
)

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ValidateCreateTaskRequest turns a create payload into an insertable task.
// Every field problem is reported; unknown fields are ignored.
func ValidateCreateTaskRequest(body []byte) (model.NewTask, error) {
	patch, err := validateTaskFields(body, false)
	if err != nil {
		return model.NewTask{}, err
	}

	task := model.NewTask{
		Title:       *patch.Title.Value,
		Description: patch.Description.Value,
		DueDate:     patch.DueDate.Value,
		Completed:   patch.Completed.Value,
	}
	if patch.Priority.Value != nil {
		task.Priority = *patch.Priority.Value
	}
	return task, nil
}

// ValidateUpdateTaskRequest accepts any subset of the task fields. An empty
// object is a valid no-op update.
func ValidateUpdateTaskRequest(body []byte) (model.TaskPatch, error) {
	return validateTaskFields(body, true)
}

func validateTaskFields(body []byte, partial bool) (model.TaskPatch, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return model.TaskPatch{}, err
	}

	verr := apperrors.NewValidationError()
	var patch model.TaskPatch

	if raw, ok := fields["title"]; ok {
		var title string
		if !decodeString(raw, &title) {
			verr.Add("title", "Expected string")
		} else if title = strings.TrimSpace(title); title == "" {
			verr.Add("title", "Title is required")
		} else {
			patch.Title = model.Some(title)
		}
	} else if !partial {
		verr.Add("title", "Required")
	}

	if raw, ok := fields["description"]; ok {
		var desc string
		switch {
		case isNull(raw):
			patch.Description = model.Null[string]()
		case decodeString(raw, &desc):
			patch.Description = model.Some(desc)
		default:
			verr.Add("description", "Expected string or null")
		}
	}

	if raw, ok := fields["dueDate"]; ok {
		due, msg := parseDueDate(raw)
		if msg != "" {
			verr.Add("dueDate", msg)
		} else {
			patch.DueDate = due
		}
	}

	if raw, ok := fields["priority"]; ok {
		var p string
		if !decodeString(raw, &p) {
			verr.Add("priority", "Expected string")
		} else if priority := model.Priority(p); !priority.Valid() {
			verr.Add("priority", "Invalid enum value. Expected 'low' | 'medium' | 'high', received '"+p+"'")
		} else {
			patch.Priority = model.Some(priority)
		}
	}

	if raw, ok := fields["completed"]; ok {
		var completed bool
		if isNull(raw) || json.Unmarshal(raw, &completed) != nil {
			verr.Add("completed", "Expected boolean")
		} else {
			patch.Completed = model.Some(completed)
		}
	}

	if err := verr.Err(); err != nil {
		return model.TaskPatch{}, err
	}
	return patch, nil
}

// parseDueDate accepts null, an empty string (both clear the date) or an
// ISO-8601 date/time string.
func parseDueDate(raw json.RawMessage) (model.Optional[time.Time], string) {
	if isNull(raw) {
		return model.Null[time.Time](), ""
	}

	var s string
	if !decodeString(raw, &s) {
		return model.Optional[time.Time]{}, "Expected ISO date string or null"
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Null[time.Time](), ""
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return model.Some(t.UTC()), ""
		}
	}
	return model.Optional[time.Time]{}, "Invalid date"
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, apperrors.ErrInvalidJSON
	}
	return fields, nil
}

func decodeString(raw json.RawMessage, dst *string) bool {
	if isNull(raw) {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
