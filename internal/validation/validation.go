package validation

import (
	"errors"
	"regexp"

	"github.com/Varun5711/taskboard/internal/models"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxCategories        = 10
	MaxCategoryLength    = 50
	MinPasswordLength    = 6
	MaxPasswordLength    = 100
)

var (
	ErrEmailRequired      = errors.New("Email is required")
	ErrEmailInvalid       = errors.New("Invalid email address")
	ErrPasswordRequired   = errors.New("Password is required")
	ErrPasswordTooShort   = errors.New("Password must be at least 6 characters long")
	ErrPasswordTooLong    = errors.New("Password cannot exceed 100 characters")
	ErrTitleRequired      = errors.New("Title is required")
	ErrTitleTooLong       = errors.New("Title cannot exceed 200 characters")
	ErrDescriptionTooLong = errors.New("Description cannot exceed 1000 characters")
	ErrInvalidStatus      = errors.New("Status must be either 'pending' or 'completed'")
	ErrInvalidPriority    = errors.New("Priority must be 'low', 'medium' or 'high'")
	ErrTooManyCategories  = errors.New("Cannot have more than 10 categories")
	ErrCategoryTooLong    = errors.New("Category cannot exceed 50 characters")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Email(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func Password(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// TaskTitle expects an already-trimmed title.
func TaskTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len([]rune(title)) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func TaskDescription(description string) error {
	if len([]rune(description)) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func TaskStatus(status string) error {
	if !models.Status(status).Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func TaskPriority(priority string) error {
	if !models.Priority(priority).Valid() {
		return ErrInvalidPriority
	}
	return nil
}

func TaskCategory(category []string) error {
	if len(category) > MaxCategories {
		return ErrTooManyCategories
	}
	for _, c := range category {
		if len([]rune(c)) > MaxCategoryLength {
			return ErrCategoryTooLong
		}
	}
	return nil
}
