package storage

import (
	"context"
	"fmt"

	"github.com/Varun5711/taskboard/internal/database"
	"github.com/Varun5711/taskboard/internal/models"
	"github.com/jackc/pgx/v5"
)

type PostgresTaskStorage struct {
	db *database.DBManager
}

func NewPostgresTaskStorage(db *database.DBManager) *PostgresTaskStorage {
	return &PostgresTaskStorage{db: db}
}

func (s *PostgresTaskStorage) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, status, priority, category, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.Write().Exec(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Category,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (s *PostgresTaskStorage) GetByID(ctx context.Context, taskID string) (*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, priority, category, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.Read().QueryRow(ctx, query, taskID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

func (s *PostgresTaskStorage) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, category = $5, due_date = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := s.db.Write().QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Category,
		task.DueDate,
		task.ID,
	).Scan(&task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

func (s *PostgresTaskStorage) Delete(ctx context.Context, taskID string) (bool, error) {
	query := `DELETE FROM tasks WHERE id = $1`

	tag, err := s.db.Write().Exec(ctx, query, taskID)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Category,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
