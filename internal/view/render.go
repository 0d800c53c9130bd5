package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	model "taskflow.com/taskflow/pkg/models"
)

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	badgeStyles = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

// Render writes the task list screen for snap.
func Render(w io.Writer, snap Snapshot) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render("TaskFlow"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d active tasks, %d completed · filter: %s · sort: %s",
		snap.Active, snap.Completed, snap.Filter, snap.Sort)))
	b.WriteString("\n\n")

	if len(snap.Tasks) == 0 {
		b.WriteString("No tasks found\n")
		b.WriteString(mutedStyle.Render("Get started by creating your first task."))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, task := range snap.Tasks {
		b.WriteString(renderTask(task))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderTask(task model.Task) string {
	check := "[ ]"
	title := titleStyle.Render(task.Title)
	if task.Completed {
		check = "[x]"
		title = doneTitleStyle.Render(task.Title)
	}

	lines := []string{fmt.Sprintf("%s #%d %s", check, task.ID, title)}
	if task.DueDate != nil {
		lines = append(lines, "    "+mutedStyle.Render("Due: "+task.DueDate.UTC().Format("Jan 2, 2006")))
	}
	if task.Description != nil && *task.Description != "" {
		lines = append(lines, "    "+*task.Description)
	}
	lines = append(lines, "    "+priorityBadge(task.Priority))

	return strings.Join(lines, "\n")
}

func priorityBadge(p model.Priority) string {
	style, ok := badgeStyles[p]
	if !ok {
		// Unknown priorities render as low.
		style = badgeStyles[model.PriorityLow]
	}
	label := "Low Priority"
	switch p {
	case model.PriorityHigh:
		label = "High Priority"
	case model.PriorityMedium:
		label = "Medium Priority"
	}
	return style.Render(label)
}

// RenderNotification formats n for a terminal.
func RenderNotification(n Notification) string {
	style := successStyle
	if n.Destructive {
		style = errorStyle
	}
	return style.Render(n.Title) + " " + n.Description
}
