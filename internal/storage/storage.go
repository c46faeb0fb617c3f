package storage

import (
	"context"

	"github.com/Varun5711/taskboard/internal/models"
	usermodel "github.com/Varun5711/taskboard/internal/models/user"
)

// UserStorage persists user records. Lookups return (nil, nil) when no
// row matches so callers can distinguish "absent" from a real failure.
type UserStorage interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*usermodel.User, error)
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, userID string) (*usermodel.User, error)
}

// TaskStorage persists task records. List executes the owner-scoped
// query described by the filter and returns the page slice plus the
// total match count before pagination. Delete reports whether a row
// was actually removed.
type TaskStorage interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, taskID string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, taskID string) (bool, error)
	List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, int, error)
}
