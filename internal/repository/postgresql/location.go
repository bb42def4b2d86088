package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchdesk/attendance-backend-go/internal/domain/location"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

// Create implements location.LocationRepository.
func (r *locationRepository) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO locations (name, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, loc.Name, loc.Latitude, loc.Longitude).
		Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)

	if err != nil {
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return loc, nil
}

// GetByID implements location.LocationRepository.
func (r *locationRepository) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	var loc location.Location
	err := q.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude,
		&loc.CreatedAt, &loc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

// List implements location.LocationRepository.
func (r *locationRepository) List(ctx context.Context) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM locations
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var loc location.Location
		if err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude,
			&loc.CreatedAt, &loc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

// Update implements location.LocationRepository.
func (r *locationRepository) Update(ctx context.Context, loc location.Location) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE locations
		SET name = $2, latitude = $3, longitude = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, loc.ID, loc.Name, loc.Latitude, loc.Longitude)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

// Delete implements location.LocationRepository.
func (r *locationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
