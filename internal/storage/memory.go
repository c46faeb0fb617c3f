package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Varun5711/taskboard/internal/models"
	usermodel "github.com/Varun5711/taskboard/internal/models/user"
	"github.com/google/uuid"
)

// In-memory implementations used by tests and local development. They
// follow the same contracts as the Postgres storages, including the
// list ordering and tie-break rules.

type MemoryUserStorage struct {
	mu    sync.RWMutex
	users map[string]*usermodel.User
}

func NewMemoryUserStorage() *MemoryUserStorage {
	return &MemoryUserStorage{
		users: make(map[string]*usermodel.User),
	}
}

func (s *MemoryUserStorage) CreateUser(ctx context.Context, email, passwordHash string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, fmt.Errorf("user with email %s already exists", email)
		}
	}

	now := time.Now()
	user := &usermodel.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *MemoryUserStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[userID]
	if !exists {
		return nil, nil
	}

	copied := *u
	return &copied, nil
}

type MemoryTaskStorage struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
}

func NewMemoryTaskStorage() *MemoryTaskStorage {
	return &MemoryTaskStorage{
		tasks: make(map[string]*models.Task),
	}
}

func (s *MemoryTaskStorage) Create(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("task with id %s already exists", task.ID)
	}

	copied := copyTask(task)
	s.tasks[task.ID] = copied
	return nil
}

func (s *MemoryTaskStorage) GetByID(ctx context.Context, taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return nil, nil
	}

	return copyTask(task), nil
}

func (s *MemoryTaskStorage) Update(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; !exists {
		return fmt.Errorf("task with id %s not found", task.ID)
	}

	task.UpdatedAt = time.Now()
	s.tasks[task.ID] = copyTask(task)
	return nil
}

func (s *MemoryTaskStorage) Delete(ctx context.Context, taskID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[taskID]; !exists {
		return false, nil
	}

	delete(s.tasks, taskID)
	return true, nil
}

func (s *MemoryTaskStorage) List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*models.Task, 0)
	for _, task := range s.tasks {
		if taskMatches(task, filter) {
			matches = append(matches, copyTask(task))
		}
	}

	sortTasks(matches, filter.SortBy, filter.SortOrder)

	total := len(matches)

	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return matches[start:end], total, nil
}

func taskMatches(task *models.Task, filter models.TaskFilter) bool {
	if task.UserID != filter.UserID {
		return false
	}
	if filter.Status != "" && task.Status != filter.Status {
		return false
	}
	if filter.Priority != "" && task.Priority != filter.Priority {
		return false
	}
	if filter.Category != "" {
		found := false
		for _, c := range task.Category {
			if c == filter.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortTasks(tasks []*models.Task, sortBy, sortOrder string) {
	desc := sortOrder != models.SortAsc

	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		// Tasks without a deadline go last in both directions.
		if sortBy == models.SortByDueDate {
			switch {
			case a.DueDate == nil && b.DueDate != nil:
				return false
			case a.DueDate != nil && b.DueDate == nil:
				return true
			}
		}

		cmp := compareTasks(a, b, sortBy)
		if cmp != 0 {
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}

		// Stable secondary sort so pagination never reshuffles ties.
		return a.ID < b.ID
	})
}

func compareTasks(a, b *models.Task, sortBy string) int {
	switch sortBy {
	case models.SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case models.SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case models.SortByDueDate:
		if a.DueDate == nil || b.DueDate == nil {
			return 0
		}
		return compareTimes(*a.DueDate, *b.DueDate)
	case models.SortByUpdatedAt:
		return compareTimes(a.UpdatedAt, b.UpdatedAt)
	default:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	}
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func copyTask(task *models.Task) *models.Task {
	copied := *task
	copied.Category = append([]string(nil), task.Category...)
	if task.DueDate != nil {
		due := *task.DueDate
		copied.DueDate = &due
	}
	return &copied
}
