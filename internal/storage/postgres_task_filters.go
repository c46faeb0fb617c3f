package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Varun5711/taskboard/internal/models"
)

// sortColumns whitelists the ORDER BY expressions the API exposes.
// priority sorts by semantic rank, not alphabetically; due_date keeps
// tasks without a deadline at the end in both directions.
var sortColumns = map[string]string{
	models.SortByCreatedAt: "created_at",
	models.SortByUpdatedAt: "updated_at",
	models.SortByTitle:     "title",
	models.SortByPriority:  "CASE priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END",
	models.SortByDueDate:   "due_date",
}

func (s *PostgresTaskStorage) List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, int, error) {
	where, args := buildTaskWhere(filter)

	countQuery := "SELECT COUNT(*) FROM tasks WHERE " + where

	var total int
	if err := s.db.Read().QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, status, priority, category, due_date, created_at, updated_at
		FROM tasks
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, buildTaskOrderBy(filter), len(args)+1, len(args)+2)

	args = append(args, filter.Limit, filter.Offset())

	rows, err := s.db.Read().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, total, nil
}

// buildTaskWhere produces the conjunctive filter. Ownership is always
// the first predicate; everything else is optional.
func buildTaskWhere(filter models.TaskFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{filter.UserID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("$%d = ANY(category)", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

func buildTaskOrderBy(filter models.TaskFilter) string {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if filter.SortOrder == models.SortAsc {
		direction = "ASC"
	}

	orderBy := column + " " + direction
	if filter.SortBy == models.SortByDueDate {
		orderBy += " NULLS LAST"
	}

	// Stable secondary sort so pagination never reshuffles ties.
	return orderBy + ", id ASC"
}
