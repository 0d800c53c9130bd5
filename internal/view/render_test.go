package view

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow.com/taskflow/pkg/client"
)

func TestRender(t *testing.T) {
	c, _ := newTestController(seededAPI())
	snap, err := c.View(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, snap))
	out := buf.String()

	assert.Contains(t, out, "TaskFlow")
	assert.Contains(t, out, "2 active tasks, 1 completed")
	assert.Contains(t, out, "Call bank")
	assert.Contains(t, out, "Due: Oct 20, 2026")
	assert.Contains(t, out, "two litres")
	assert.Contains(t, out, "High Priority")
	assert.Contains(t, out, "[x] #2")

	buf.Reset()
	require.NoError(t, Render(&buf, Snapshot{Filter: client.FilterAll, Sort: client.SortDueDate}))
	assert.Contains(t, buf.String(), "No tasks found")
}

func TestRenderNotification(t *testing.T) {
	out := RenderNotification(Notification{Title: "Error", Description: "Failed to delete task: boom", Destructive: true})
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "Failed to delete task: boom")
}
