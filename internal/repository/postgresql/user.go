package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (username, password, employee_code, role, status, location_id, date_of_joining)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.Username,
		u.Password,
		u.EmployeeCode,
		u.Role,
		u.Status,
		u.LocationID,
		u.DateOfJoining,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password, employee_code, role, status, location_id,
		       date_of_joining, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Password, &u.EmployeeCode, &u.Role, &u.Status,
		&u.LocationID, &u.DateOfJoining, &u.CreatedAt, &u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// GetByUsername implements user.UserRepository.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password, employee_code, role, status, location_id,
		       date_of_joining, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Password, &u.EmployeeCode, &u.Role, &u.Status,
		&u.LocationID, &u.DateOfJoining, &u.CreatedAt, &u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return u, nil
}

// GetByEmployeeCode implements user.UserRepository.
func (r *userRepository) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password, employee_code, role, status, location_id,
		       date_of_joining, created_at, updated_at
		FROM users
		WHERE employee_code = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, code).Scan(
		&u.ID, &u.Username, &u.Password, &u.EmployeeCode, &u.Role, &u.Status,
		&u.LocationID, &u.DateOfJoining, &u.CreatedAt, &u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by employee code: %w", err)
	}

	return u, nil
}

// GetWithLocation implements user.UserRepository.
func (r *userRepository) GetWithLocation(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.username, u.password, u.employee_code, u.role, u.status,
		       u.location_id, u.date_of_joining, u.created_at, u.updated_at,
		       l.name
		FROM users u
		LEFT JOIN locations l ON l.id = u.location_id
		WHERE u.id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Password, &u.EmployeeCode, &u.Role, &u.Status,
		&u.LocationID, &u.DateOfJoining, &u.CreatedAt, &u.UpdatedAt,
		&u.LocationName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user with location: %w", err)
	}

	return u, nil
}

// List implements user.UserRepository.
func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.username, u.password, u.employee_code, u.role, u.status,
		       u.location_id, u.date_of_joining, u.created_at, u.updated_at,
		       l.name
		FROM users u
		LEFT JOIN locations l ON l.id = u.location_id
		ORDER BY u.username ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Password, &u.EmployeeCode, &u.Role, &u.Status,
			&u.LocationID, &u.DateOfJoining, &u.CreatedAt, &u.UpdatedAt,
			&u.LocationName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ListActiveIDsByRoles implements user.UserRepository.
func (r *userRepository) ListActiveIDsByRoles(ctx context.Context, roles []user.Role) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM users
		WHERE status = 'ACTIVE'
		  AND role = ANY($1)
	`

	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}

	rows, err := q.Query(ctx, query, roleStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users by roles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET username = $2, role = $3, status = $4, location_id = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, u.ID, u.Username, u.Role, u.Status, u.LocationID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
