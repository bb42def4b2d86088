package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	GetByUsername(ctx context.Context, username string) (User, error)

	GetByEmployeeCode(ctx context.Context, code string) (User, error)

	// GetWithLocation loads a user together with the assigned location, if any.
	GetWithLocation(ctx context.Context, id string) (User, error)

	List(ctx context.Context) ([]User, error)

	// ListActiveIDsByRoles returns IDs of ACTIVE users holding any of the roles.
	// Used for notification fan-out.
	ListActiveIDsByRoles(ctx context.Context, roles []Role) ([]string, error)

	Update(ctx context.Context, u User) error
}
