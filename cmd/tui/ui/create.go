package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/taskboard/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type createTaskSuccessMsg struct {
	task *client.Task
}

type createTaskErrorMsg struct {
	err error
}

var priorities = []string{"low", "medium", "high"}

type CreateModel struct {
	titleInput       string
	descriptionInput string
	categoryInput    string
	dueDateInput     string
	priorityIndex    int
	focusedInput     int
	loading          bool
	result           *client.Task
	err              error
	client           *client.Client
}

func NewCreateModel() *CreateModel {
	return &CreateModel{
		focusedInput:  0,
		priorityIndex: 1,
	}
}

func (m *CreateModel) SetClient(c *client.Client) {
	m.client = c
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func validateDueDate(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	// Accept a bare date and expand it to end of day.
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t.Add(23*time.Hour + 59*time.Minute).Format(time.RFC3339), nil
	}
	if _, err := time.Parse(time.RFC3339, input); err == nil {
		return input, nil
	}

	return "", fmt.Errorf("due date must be YYYY-MM-DD or an RFC3339 timestamp")
}

func parseCategories(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parts := strings.Split(input, ",")
	categories := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}

func createTaskCmd(c *client.Client, title, description, priority string, category []string, dueDate string) tea.Cmd {
	return func() tea.Msg {
		task, err := c.CreateTask(title, description, priority, category, dueDate)
		if err != nil {
			return createTaskErrorMsg{err: err}
		}
		return createTaskSuccessMsg{task: task}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createTaskSuccessMsg:
		m.loading = false
		m.result = msg.task
		m.err = nil
		m.titleInput = ""
		m.descriptionInput = ""
		m.categoryInput = ""
		m.dueDateInput = ""
		return m, nil

	case createTaskErrorMsg:
		m.loading = false
		m.err = msg.err
		m.result = nil
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % 5
		case "shift+tab":
			m.focusedInput = (m.focusedInput + 4) % 5
		case "left", "right":
			if m.focusedInput == 2 {
				if msg.String() == "right" {
					m.priorityIndex = (m.priorityIndex + 1) % len(priorities)
				} else {
					m.priorityIndex = (m.priorityIndex + len(priorities) - 1) % len(priorities)
				}
			}
		case "enter":
			if strings.TrimSpace(m.titleInput) == "" {
				m.err = fmt.Errorf("title cannot be empty")
				return m, nil
			}

			dueDate, err := validateDueDate(strings.TrimSpace(m.dueDateInput))
			if err != nil {
				m.err = err
				return m, nil
			}

			if m.client != nil {
				m.loading = true
				m.err = nil
				m.result = nil
				return m, createTaskCmd(
					m.client,
					m.titleInput,
					m.descriptionInput,
					priorities[m.priorityIndex],
					parseCategories(m.categoryInput),
					dueDate,
				)
			}
			m.err = fmt.Errorf("client not connected")
		case "backspace":
			switch m.focusedInput {
			case 0:
				if len(m.titleInput) > 0 {
					m.titleInput = m.titleInput[:len(m.titleInput)-1]
				}
			case 1:
				if len(m.descriptionInput) > 0 {
					m.descriptionInput = m.descriptionInput[:len(m.descriptionInput)-1]
				}
			case 3:
				if len(m.categoryInput) > 0 {
					m.categoryInput = m.categoryInput[:len(m.categoryInput)-1]
				}
			case 4:
				if len(m.dueDateInput) > 0 {
					m.dueDateInput = m.dueDateInput[:len(m.dueDateInput)-1]
				}
			}
		case "ctrl+l":
			m.titleInput = ""
			m.descriptionInput = ""
			m.categoryInput = ""
			m.dueDateInput = ""
			m.priorityIndex = 1
			m.result = nil
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				switch m.focusedInput {
				case 0:
					m.titleInput += msg.String()
				case 1:
					m.descriptionInput += msg.String()
				case 3:
					m.categoryInput += msg.String()
				case 4:
					m.dueDateInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *CreateModel) textField(label, value string, index int, width int) string {
	fieldLabel := LabelStyle.Render(label)
	style := InputStyle
	if m.focusedInput == index {
		style = FocusedInputStyle
	}
	fieldValue := style.Width(width).Render(value)
	return lipgloss.JoinHorizontal(lipgloss.Left, fieldLabel, fieldValue)
}

func (m *CreateModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("📝 NEW TASK")
	b.WriteString(lipgloss.NewStyle().
		Width(100).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(100).Align(lipgloss.Center)

	b.WriteString(center.Render(m.textField("Title:", m.titleInput, 0, 60)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(m.textField("Description:", m.descriptionInput, 1, 60)))
	b.WriteString("\n\n")

	// Priority picker
	priorityLabel := LabelStyle.Render("Priority:")
	var options []string
	for i, p := range priorities {
		style := ItemStyle
		if i == m.priorityIndex {
			if m.focusedInput == 2 {
				style = SelectedItemStyle
			} else {
				style = priorityStyle(p).PaddingLeft(2)
			}
			options = append(options, style.Render("["+p+"]"))
		} else {
			options = append(options, style.Render(" "+p+" "))
		}
	}
	priorityField := lipgloss.JoinHorizontal(lipgloss.Left, priorityLabel, strings.Join(options, " "))
	b.WriteString(center.Render(priorityField))
	b.WriteString("\n\n")

	b.WriteString(center.Render(m.textField("Categories:", m.categoryInput, 3, 60)))
	b.WriteString("\n")
	b.WriteString(center.Render(InfoStyle.Render("(comma separated, optional)")))
	b.WriteString("\n\n")

	b.WriteString(center.Render(m.textField("Due date:", m.dueDateInput, 4, 60)))
	b.WriteString("\n")
	b.WriteString(center.Render(InfoStyle.Render("(YYYY-MM-DD, optional)")))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(center.Render(InfoStyle.Render("Creating task...")))
		b.WriteString("\n")
	}

	if m.result != nil {
		created := SuccessStyle.Render("✓ Task created: ") +
			lipgloss.NewStyle().Foreground(Text).Bold(true).Render(m.result.Title)
		b.WriteString(center.Render(created))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(center.Render(ErrorStyle.Render("Error: " + m.err.Error())))
		b.WriteString("\n")
	}

	help := InfoStyle.Render("tab next field  •  ←/→ priority  •  enter submit  •  ctrl+l clear  •  q back")
	b.WriteString("\n")
	b.WriteString(center.Render(help))

	return BoxStyle.Width(96).Render(b.String())
}
