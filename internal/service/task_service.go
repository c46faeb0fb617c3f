package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/taskboard/internal/apperror"
	"github.com/Varun5711/taskboard/internal/logger"
	"github.com/Varun5711/taskboard/internal/models"
	"github.com/Varun5711/taskboard/internal/storage"
	"github.com/Varun5711/taskboard/internal/validation"
	"github.com/google/uuid"
)

type TaskService struct {
	tasks storage.TaskStorage
	log   *logger.Logger
}

func NewTaskService(tasks storage.TaskStorage) *TaskService {
	return &TaskService{
		tasks: tasks,
		log:   logger.New("task-service"),
	}
}

// CreateTaskInput carries the create payload after JSON decoding.
// Empty Status/Priority pick up the defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Category    []string
	DueDate     *time.Time
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	if err := validation.TaskTitle(title); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}
	if err := validation.TaskDescription(description); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	status := models.StatusPending
	if input.Status != "" {
		if err := validation.TaskStatus(input.Status); err != nil {
			return nil, apperror.NewValidation(err.Error())
		}
		status = models.Status(input.Status)
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		if err := validation.TaskPriority(input.Priority); err != nil {
			return nil, apperror.NewValidation(err.Error())
		}
		priority = models.Priority(input.Priority)
	}

	if err := validation.TaskCategory(input.Category); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	category := input.Category
	if category == nil {
		category = []string{}
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		Category:    category,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks runs the owner-scoped query. filter.UserID must come from
// the authenticated identity; the storage query is constrained to it,
// so other users' tasks can neither appear nor be counted.
func (s *TaskService) ListTasks(ctx context.Context, filter models.TaskFilter) (*models.TaskPage, error) {
	if filter.SortBy == "" {
		filter.SortBy = models.SortByCreatedAt
	}
	if filter.SortOrder == "" {
		filter.SortOrder = models.SortDesc
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}

	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + filter.Limit - 1) / filter.Limit
	}

	return &models.TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages,
	}, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, taskID, userID string) (*models.Task, error) {
	return s.getOwnedTask(ctx, taskID, userID, "access")
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID, userID string, patch *models.TaskPatch) (*models.Task, error) {
	task, err := s.getOwnedTask(ctx, taskID, userID, "update")
	if err != nil {
		return nil, err
	}

	// An empty patch changes nothing; skip the write so updatedAt
	// does not move.
	if patch.Empty() {
		return task, nil
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validation.TaskTitle(title); err != nil {
			return nil, apperror.NewValidation(err.Error())
		}
		task.Title = title
	}

	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if err := validation.TaskDescription(description); err != nil {
			return nil, apperror.NewValidation(err.Error())
		}
		task.Description = description
	}

	if patch.Status != nil {
		if err := validation.TaskStatus(*patch.Status); err != nil {
			return nil, apperror.NewValidation(err.Error())
		}
		task.Status = models.Status(*patch.Status)
	}

	if patch.Priority != nil {
		if err := validation.TaskPriority(*patch.Priority); err != nil {
			return nil, apperror.NewValidation(err.Error())
		}
		task.Priority = models.Priority(*patch.Priority)
	}

	if patch.Category != nil {
		if err := validation.TaskCategory(*patch.Category); err != nil {
			return nil, apperror.NewValidation(err.Error())
		}
		task.Category = *patch.Category
	}

	// dueDate is the one field with clear semantics: present-and-null
	// (or "") removes the deadline, absent leaves it alone.
	if patch.DueDateSet {
		task.DueDate = patch.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	if _, err := s.getOwnedTask(ctx, taskID, userID, "delete"); err != nil {
		return err
	}

	deleted, err := s.tasks.Delete(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("Task")
	}

	return nil
}

// getOwnedTask is the access policy: absent task is 404, someone
// else's task is 403, own task comes back. Runs before every
// single-task read, update and delete.
func (s *TaskService) getOwnedTask(ctx context.Context, taskID, userID, action string) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, apperror.NewNotFound("Task")
	}

	if task.UserID != userID {
		return nil, apperror.NewAuthorization(fmt.Sprintf("You do not have permission to %s this task", action))
	}

	return task, nil
}
