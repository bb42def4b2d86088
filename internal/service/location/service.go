package location

import (
	"context"
	"fmt"

	"github.com/punchdesk/attendance-backend-go/internal/domain/location"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/utils"
)

type LocationServiceImpl struct {
	LocationRepository location.LocationRepository
}

func NewLocationService(locationRepo location.LocationRepository) location.LocationService {
	return &LocationServiceImpl{LocationRepository: locationRepo}
}

// Create implements location.LocationService.
func (s *LocationServiceImpl) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	lat, lng, ok := utils.ExtractLatLng(req.LocationURL)
	if !ok {
		return location.LocationResponse{}, location.ErrInvalidLocationURL
	}

	created, err := s.LocationRepository.Create(ctx, location.Location{
		Name:      req.Name,
		Latitude:  lat,
		Longitude: lng,
	})
	if err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to create location: %w", err)
	}

	return location.ToResponse(created), nil
}

// List implements location.LocationService.
func (s *LocationServiceImpl) List(ctx context.Context) ([]location.LocationResponse, error) {
	locations, err := s.LocationRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, location.ToResponse(loc))
	}

	return responses, nil
}

// Update implements location.LocationService.
func (s *LocationServiceImpl) Update(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	lat, lng, ok := utils.ExtractLatLng(req.LocationURL)
	if !ok {
		return location.LocationResponse{}, location.ErrInvalidLocationURL
	}

	loc := location.Location{
		ID:        req.ID,
		Name:      req.Name,
		Latitude:  lat,
		Longitude: lng,
	}

	if err := s.LocationRepository.Update(ctx, loc); err != nil {
		return location.LocationResponse{}, err
	}

	return location.ToResponse(loc), nil
}

// Delete implements location.LocationService.
func (s *LocationServiceImpl) Delete(ctx context.Context, id string) error {
	return s.LocationRepository.Delete(ctx, id)
}
