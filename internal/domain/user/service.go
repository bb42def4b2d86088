package user

import "context"

type UserService interface {
	// Create adds an employee account; ADMIN only.
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// List retrieves all users; ADMIN/HR only.
	List(ctx context.Context) ([]UserResponse, error)

	// Me retrieves the authenticated user's own profile.
	Me(ctx context.Context) (UserResponse, error)

	// Update changes role, status or assigned location; ADMIN only.
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
}
