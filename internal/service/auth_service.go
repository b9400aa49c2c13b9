package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/repository"
	"github.com/jg4611/mad2-by-amit/pkg/jwt"
	"github.com/jg4611/mad2-by-amit/pkg/messaging"
	"github.com/jg4611/mad2-by-amit/pkg/validator"

	"golang.org/x/crypto/bcrypt"
)

type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	userRepo  *repository.UserRepository
	blacklist TokenBlacklist
	publisher Publisher
	jwtSecret string
}

func NewAuthService(userRepo *repository.UserRepository, blacklist TokenBlacklist, publisher Publisher, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		blacklist: blacklist,
		publisher: publisher,
		jwtSecret: jwtSecret,
	}
}

type RegisterInput struct {
	Email         string
	Password      string
	FullName      string
	Qualification string
	DateOfBirth   string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*repository.User, error) {
	email, err := validator.CleanEmail(input.Email)
	if err != nil {
		return nil, apperr.Validation("invalid email address")
	}
	if input.Password == "" {
		return nil, apperr.Validation("password is required")
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
		Role:          repository.RoleUser,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publishUserRegistered(ctx, user)

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, apperr.Validation("email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// Logout blacklists the token's JTI for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	jti, err := jwt.ExtractJTI(tokenString)
	if err != nil || jti == "" {
		return apperr.Unauthorized("invalid token")
	}

	if err := s.blacklist.BlacklistToken(ctx, jti, jwt.AccessTokenDuration); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

// IsTokenBlacklisted reports whether a JTI has been revoked by logout.
func (s *AuthService) IsTokenBlacklisted(ctx context.Context, jti string) bool {
	revoked, err := s.blacklist.IsTokenBlacklisted(ctx, jti)
	if err != nil {
		log.Printf("Failed to check token blacklist: %v", err)
		// fail open on blacklist lookup: the token signature is still verified
		return false
	}
	return revoked
}

func (s *AuthService) publishUserRegistered(ctx context.Context, user *repository.User) {
	if s.publisher == nil {
		return
	}

	event := map[string]string{
		"user_id":   user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal user_registered event: %v", err)
		return
	}

	if err := s.publisher.Publish(ctx, messaging.QueueUserRegistered, eventJSON); err != nil {
		log.Printf("Failed to publish user_registered event: %v", err)
	}
}
