package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/taskboard/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type listTasksSuccessMsg struct {
	tasks []client.Task
	total int
}

type listTasksErrorMsg struct {
	err error
}

type taskChangedMsg struct{}

type ListModel struct {
	tasks   []client.Task
	total   int
	cursor  int
	loading bool
	err     error
	client  *client.Client
	loaded  bool
}

func NewListModel() *ListModel {
	return &ListModel{
		tasks: []client.Task{},
	}
}

func (m *ListModel) SetClient(c *client.Client) {
	m.client = c
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatDue(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}

	until := time.Until(t)
	switch {
	case until < 0:
		return "overdue"
	case until < 24*time.Hour:
		return "due today"
	case until < 48*time.Hour:
		return "due tomorrow"
	}
	return "due " + t.Format("Jan 2")
}

func listTasksCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.ListTasks(1, 100)
		if err != nil {
			return listTasksErrorMsg{err: err}
		}
		return listTasksSuccessMsg{tasks: resp.Tasks, total: resp.Total}
	}
}

func toggleTaskCmd(c *client.Client, task client.Task) tea.Cmd {
	return func() tea.Msg {
		status := "completed"
		if task.Status == "completed" {
			status = "pending"
		}
		if _, err := c.SetTaskStatus(task.ID, status); err != nil {
			return listTasksErrorMsg{err: err}
		}
		return taskChangedMsg{}
	}
}

func deleteTaskCmd(c *client.Client, taskID string) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteTask(taskID); err != nil {
			return listTasksErrorMsg{err: err}
		}
		return taskChangedMsg{}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listTasksSuccessMsg:
		m.loading = false
		m.tasks = msg.tasks
		m.total = msg.total
		m.err = nil
		m.loaded = true
		if m.cursor >= len(m.tasks) && m.cursor > 0 {
			m.cursor = len(m.tasks) - 1
		}
		return m, nil

	case listTasksErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case taskChangedMsg:
		m.loading = true
		return m, listTasksCmd(m.client)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listTasksCmd(m.client)
			}
		case " ", "enter":
			if !m.loading && m.cursor < len(m.tasks) {
				m.loading = true
				return m, toggleTaskCmd(m.client, m.tasks[m.cursor])
			}
		case "d":
			if !m.loading && m.cursor < len(m.tasks) {
				m.loading = true
				return m, deleteTaskCmd(m.client, m.tasks[m.cursor].ID)
			}
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, listTasksCmd(m.client)
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("YOUR TASKS")
	if m.total > 0 {
		header += " " + InfoStyle.Render(fmt.Sprintf("(%d)", m.total))
	}
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(80).Align(lipgloss.Center)

	if m.loading {
		b.WriteString(center.MarginTop(2).Render(InfoStyle.Render("⏳ Loading tasks...")))
		b.WriteString("\n")
	} else if m.err != nil {
		b.WriteString(center.MarginTop(2).Render(ErrorStyle.Render("❌ " + m.err.Error())))
		b.WriteString("\n")
	} else if len(m.tasks) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("📝 No tasks yet. Create one first!")
		b.WriteString(center.MarginTop(2).Render(empty))
		b.WriteString("\n")
	} else {
		for i, task := range m.tasks {
			borderColor := Muted
			if i == m.cursor {
				borderColor = Accent
			}
			cardStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(borderColor).
				Padding(0, 2).
				Width(70).
				MarginBottom(1)

			check := "[ ] "
			titleStyle := lipgloss.NewStyle().Foreground(Text).Bold(true)
			if task.Status == "completed" {
				check = "[x] "
				titleStyle = DoneStyle
			}
			titleLine := titleStyle.Render(check + truncate(task.Title, 50))

			badge := priorityStyle(task.Priority).Render(task.Priority)
			metaParts := []string{badge}
			if len(task.Category) > 0 {
				metaParts = append(metaParts, lipgloss.NewStyle().Foreground(Secondary).Render(strings.Join(task.Category, ", ")))
			}
			if task.DueDate != "" {
				metaParts = append(metaParts, lipgloss.NewStyle().Foreground(Warning).Render(formatDue(task.DueDate)))
			}
			metaLine := strings.Join(metaParts, InfoStyle.Render("  •  "))

			lines := []string{titleLine, metaLine}
			if task.Description != "" {
				lines = append(lines, lipgloss.NewStyle().Foreground(Muted).Render(truncate(task.Description, 60)))
			}

			card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
			b.WriteString(center.Render(card))
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  space toggle  •  d delete  •  r refresh  •  q back")
	b.WriteString(center.Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
