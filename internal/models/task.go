package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Rank orders priorities semantically (low < medium < high) instead of
// lexicographically, so "sort by priority" means what users expect.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	}
	return -1
}

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Category    []string   `json:"category"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Sort keys accepted by the task query engine.
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByTitle     = "title"
	SortByPriority  = "priority"
	SortByDueDate   = "dueDate"

	SortAsc  = "asc"
	SortDesc = "desc"
)

func ValidSortBy(s string) bool {
	switch s {
	case SortByCreatedAt, SortByUpdatedAt, SortByTitle, SortByPriority, SortByDueDate:
		return true
	}
	return false
}

func ValidSortOrder(s string) bool {
	return s == SortAsc || s == SortDesc
}

// TaskFilter describes one list query. UserID is always set by the
// caller from the authenticated identity, never from request input.
// Zero values for Status, Priority and Category mean "no constraint".
type TaskFilter struct {
	UserID    string
	Status    Status
	Priority  Priority
	Category  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Offset is the number of rows skipped before the page starts.
func (f TaskFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type TaskPage struct {
	Tasks      []*Task `json:"tasks"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
}

// TaskPatch is a partial update: nil pointer means "leave the field
// unchanged". DueDate is the one field where the wire format
// distinguishes three states - absent (keep), null or "" (clear), and
// a timestamp (set) - so it tracks presence separately.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Category    *[]string

	DueDate    *time.Time
	DueDateSet bool
}

func (p *TaskPatch) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Status      *string         `json:"status"`
		Priority    *string         `json:"priority"`
		Category    *[]string       `json:"category"`
		DueDate     json.RawMessage `json:"dueDate"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Title = raw.Title
	p.Description = raw.Description
	p.Status = raw.Status
	p.Priority = raw.Priority
	p.Category = raw.Category

	if raw.DueDate == nil {
		return nil
	}

	p.DueDateSet = true
	if string(raw.DueDate) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw.DueDate, &s); err != nil {
		return fmt.Errorf("dueDate must be a timestamp string or null")
	}
	if s == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("dueDate must be an RFC3339 timestamp")
	}
	p.DueDate = &t
	return nil
}

// Empty reports whether the patch would change nothing.
func (p *TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Category == nil && !p.DueDateSet
}
