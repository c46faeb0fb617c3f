package service

import (
	"context"
	"fmt"

	"github.com/Varun5711/taskboard/internal/apperror"
	"github.com/Varun5711/taskboard/internal/auth"
	"github.com/Varun5711/taskboard/internal/logger"
	usermodel "github.com/Varun5711/taskboard/internal/models/user"
	"github.com/Varun5711/taskboard/internal/storage"
	"github.com/Varun5711/taskboard/internal/validation"
)

type AuthService struct {
	users      storage.UserStorage
	jwtManager *auth.JWTManager
	log        *logger.Logger
}

func NewAuthService(users storage.UserStorage, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		users:      users,
		jwtManager: jwtManager,
		log:        logger.New("auth-service"),
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*usermodel.AuthResult, error) {
	if err := validation.Email(email); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}
	if err := validation.Password(password); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewValidation("Email already registered")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Info("Registered user %s", user.ID)

	return &usermodel.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*usermodel.AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperror.NewValidation("Email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Identical message for unknown email and wrong password so the
	// endpoint cannot be used to enumerate accounts.
	if user == nil {
		return nil, apperror.NewAuthentication("Invalid email or password")
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, apperror.NewAuthentication("Invalid email or password")
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &usermodel.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperror.NewNotFound("User")
	}

	return user, nil
}
