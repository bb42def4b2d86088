package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/punchdesk/attendance-backend-go/internal/domain/location"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/timeutil"
)

type UserServiceImpl struct {
	UserRepository     user.UserRepository
	LocationRepository location.LocationRepository
}

func NewUserService(userRepo user.UserRepository, locationRepo location.LocationRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository:     userRepo,
		LocationRepository: locationRepo,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	_, role, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if role != user.RoleAdmin {
		return user.UserResponse{}, user.ErrAdminAccessRequired
	}

	if _, err := s.UserRepository.GetByUsername(ctx, req.Username); err == nil {
		return user.UserResponse{}, user.ErrUsernameTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.UserRepository.GetByEmployeeCode(ctx, req.EmployeeCode); err == nil {
		return user.UserResponse{}, user.ErrEmployeeCodeTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	if req.LocationID != nil {
		if _, err := s.LocationRepository.GetByID(ctx, *req.LocationID); err != nil {
			return user.UserResponse{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
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
		Role:          user.Role(req.Role),
		Status:        user.StatusActive,
		LocationID:    req.LocationID,
		DateOfJoining: dateOfJoining,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ToResponse(created), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	_, role, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !role.IsReviewer() {
		return nil, user.ErrReviewerAccessRequired
	}

	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	return responses, nil
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	usr, err := s.UserRepository.GetWithLocation(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(usr), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	_, role, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if role != user.RoleAdmin {
		return user.UserResponse{}, user.ErrAdminAccessRequired
	}

	usr, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Role != nil {
		usr.Role = user.Role(*req.Role)
	}
	if req.Status != nil {
		usr.Status = user.Status(*req.Status)
	}
	if req.LocationID != nil {
		if *req.LocationID == "" {
			usr.LocationID = nil
		} else {
			if _, err := s.LocationRepository.GetByID(ctx, *req.LocationID); err != nil {
				return user.UserResponse{}, err
			}
			usr.LocationID = req.LocationID
		}
	}

	if err := s.UserRepository.Update(ctx, usr); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(usr), nil
}
