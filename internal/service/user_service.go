package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/repository"
	"github.com/jg4611/mad2-by-amit/pkg/validator"

	"golang.org/x/crypto/bcrypt"
)

// UserService covers the admin-facing user management surface.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserInput struct {
	Email         string
	Password      string
	FullName      string
	Qualification string
	DateOfBirth   string
	Role          string
}

type UpdateUserInput struct {
	FullName      *string
	Qualification *string
	DateOfBirth   *string
	Role          *string
	Password      *string
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*repository.User, error) {
	email, err := validator.CleanEmail(input.Email)
	if err != nil {
		return nil, apperr.Validation("invalid email address")
	}
	if input.Password == "" {
		return nil, apperr.Validation("password is required")
	}
	if input.Role != "" && input.Role != repository.RoleAdmin && input.Role != repository.RoleUser {
		return nil, apperr.Validation("role must be admin or user")
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Validation("user already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	var dob sql.NullTime
	if input.DateOfBirth != "" {
		parsed, err := clock.ParseDate(input.DateOfBirth)
		if err != nil {
			return nil, apperr.Validation("invalid date format, use YYYY-MM-DD")
		}
		dob = sql.NullTime{Time: parsed, Valid: true}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &repository.User{
		Email:         email,
		PasswordHash:  string(hash),
		FullName:      input.FullName,
		Qualification: input.Qualification,
		DateOfBirth:   dob,
		Role:          input.Role,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*repository.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Qualification != nil {
		user.Qualification = *input.Qualification
	}
	if input.DateOfBirth != nil {
		if *input.DateOfBirth == "" {
			user.DateOfBirth = sql.NullTime{}
		} else {
			parsed, err := clock.ParseDate(*input.DateOfBirth)
			if err != nil {
				return nil, apperr.Validation("invalid date format, use YYYY-MM-DD")
			}
			user.DateOfBirth = sql.NullTime{Time: parsed, Valid: true}
		}
	}
	if input.Role != nil {
		if *input.Role != repository.RoleAdmin && *input.Role != repository.RoleUser {
			return nil, apperr.Validation("role must be admin or user")
		}
		user.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	err := s.userRepo.DeleteUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("user")
	}
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*repository.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
