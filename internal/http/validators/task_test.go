package validators

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskflow.com/taskflow/internal/errors"
	model "taskflow.com/taskflow/pkg/models"
)

func validationFields(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}

func TestValidateCreateTaskRequest_TitleOnly(t *testing.T) {
	task, err := ValidateCreateTaskRequest([]byte(`{"title":"Buy milk","unknown":42}`))
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", task.Title)
	assert.Nil(t, task.Description)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.Completed)
	assert.Equal(t, model.Priority(""), task.Priority)
}

func TestValidateCreateTaskRequest_AllFields(t *testing.T) {
	task, err := ValidateCreateTaskRequest([]byte(`{
		"title": "  Ship release  ",
		"description": "v1.2",
		"dueDate": "2026-10-20",
		"priority": "high",
		"completed": true
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Ship release", task.Title)
	require.NotNil(t, task.Description)
	assert.Equal(t, "v1.2", *task.Description)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, model.PriorityHigh, task.Priority)
	require.NotNil(t, task.Completed)
	assert.True(t, *task.Completed)
}

func TestValidateCreateTaskRequest_TitleRules(t *testing.T) {
	cases := map[string]string{
		"missing":    `{}`,
		"empty":      `{"title":""}`,
		"whitespace": `{"title":"   "}`,
		"null":       `{"title":null}`,
		"number":     `{"title":5}`,
		"empty body": ``,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateCreateTaskRequest([]byte(body))
			fields := validationFields(t, err)
			assert.Contains(t, fields, "title")
			assert.Equal(t, 400, apperrors.StatusCode(err))
		})
	}
}

func TestValidateCreateTaskRequest_ReportsEveryField(t *testing.T) {
	_, err := ValidateCreateTaskRequest([]byte(`{
		"title": "",
		"description": 3,
		"dueDate": "not a date",
		"priority": "urgent",
		"completed": "yes"
	}`))

	fields := validationFields(t, err)
	assert.Len(t, fields, 5)
	for _, field := range []string{"title", "description", "dueDate", "priority", "completed"} {
		assert.NotEmpty(t, fields[field], field)
	}
	assert.Contains(t, err.Error(), "Validation error:")
}

func TestValidateDueDate(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		cleared bool
		want    time.Time
	}{
		{"date only", `{"dueDate":"2026-10-15"}`, false, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", `{"dueDate":"2026-10-15T08:30:00+02:00"}`, false, time.Date(2026, 10, 15, 6, 30, 0, 0, time.UTC)},
		{"js iso", `{"dueDate":"2026-10-15T06:30:00.000Z"}`, false, time.Date(2026, 10, 15, 6, 30, 0, 0, time.UTC)},
		{"no zone", `{"dueDate":"2026-10-15T06:30:00"}`, false, time.Date(2026, 10, 15, 6, 30, 0, 0, time.UTC)},
		{"empty string", `{"dueDate":""}`, true, time.Time{}},
		{"null", `{"dueDate":null}`, true, time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			patch, err := ValidateUpdateTaskRequest([]byte(tc.body))
			require.NoError(t, err)
			require.True(t, patch.DueDate.Set)

			if tc.cleared {
				assert.Nil(t, patch.DueDate.Value)
				return
			}
			require.NotNil(t, patch.DueDate.Value)
			assert.True(t, tc.want.Equal(*patch.DueDate.Value), "got %v", *patch.DueDate.Value)
		})
	}

	_, err := ValidateUpdateTaskRequest([]byte(`{"dueDate":"15/10/2026"}`))
	assert.Contains(t, validationFields(t, err), "dueDate")

	_, err = ValidateUpdateTaskRequest([]byte(`{"dueDate":20261015}`))
	assert.Contains(t, validationFields(t, err), "dueDate")
}

func TestValidateUpdateTaskRequest_EmptyIsNoop(t *testing.T) {
	for _, body := range []string{`{}`, ``, `{"id":5,"createdAt":"2026-01-01"}`} {
		patch, err := ValidateUpdateTaskRequest([]byte(body))
		require.NoError(t, err, body)
		assert.True(t, patch.IsEmpty(), body)
	}
}

func TestValidateUpdateTaskRequest_Partial(t *testing.T) {
	patch, err := ValidateUpdateTaskRequest([]byte(`{"completed":true,"description":null}`))
	require.NoError(t, err)

	assert.False(t, patch.Title.Set)
	assert.False(t, patch.Priority.Set)
	assert.True(t, patch.Description.Set)
	assert.Nil(t, patch.Description.Value)
	require.True(t, patch.Completed.Set)
	assert.True(t, *patch.Completed.Value)
}

func TestValidateUpdateTaskRequest_StillChecksSuppliedFields(t *testing.T) {
	_, err := ValidateUpdateTaskRequest([]byte(`{"title":"","completed":null}`))
	fields := validationFields(t, err)

	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "completed")
}

func TestValidate_MalformedJSON(t *testing.T) {
	for _, body := range []string{`{"title":`, `null`, `[1,2]`, `"title"`} {
		_, err := ValidateCreateTaskRequest([]byte(body))
		assert.ErrorIs(t, err, apperrors.ErrInvalidJSON, body)

		_, err = ValidateUpdateTaskRequest([]byte(body))
		assert.ErrorIs(t, err, apperrors.ErrInvalidJSON, body)
	}
}
