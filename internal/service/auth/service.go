package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/punchdesk/attendance-backend-go/internal/domain/auth"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/timeutil"
)

type AuthServiceImpl struct {
	UserRepository user.UserRepository
	JWTService     jwt.Service
	SignupSecret   string
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, signupSecret string) auth.Service {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		JWTService:     jwtService,
		SignupSecret:   signupSecret,
	}
}

// Login implements auth.Service.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	usr, err := s.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	if usr.Status != user.StatusActive {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.JWTService.GenerateAccessToken(usr.ID, usr.Username, usr.Role)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  usr.Username,
		Role:      string(usr.Role),
	}, nil
}

// Signup implements auth.Service. Creates an ADMIN account; the signup
// secret keeps the endpoint from being an open registration form.
func (s *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	if subtle.ConstantTimeCompare([]byte(req.SignupSecret), []byte(s.SignupSecret)) != 1 {
		return auth.AuthResponse{}, auth.ErrInvalidSignupSecret
	}

	if _, err := s.UserRepository.GetByUsername(ctx, req.Username); err == nil {
		return auth.AuthResponse{}, user.ErrUsernameTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.AuthResponse{}, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.UserRepository.GetByEmployeeCode(ctx, req.EmployeeCode); err == nil {
		return auth.AuthResponse{}, user.ErrEmployeeCodeTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.AuthResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	dateOfJoining := time.Now().In(timeutil.IST)
	if req.DateOfJoining != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *req.DateOfJoining, timeutil.IST)
		if err == nil {
			dateOfJoining = parsed
		}
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Username:      req.Username,
		Password:      string(hashed),
		EmployeeCode:  req.EmployeeCode,
		Role:          user.RoleAdmin,
		Status:        user.StatusActive,
		DateOfJoining: dateOfJoining,
	})
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := s.JWTService.GenerateAccessToken(created.ID, created.Username, created.Role)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  created.Username,
		Role:      string(created.Role),
	}, nil
}
