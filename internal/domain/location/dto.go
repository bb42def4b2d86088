package location

import (
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

// Locations are created from a Google Maps share URL; the coordinates are
// extracted server-side so admins never type raw latitudes.
type CreateLocationRequest struct {
	Name        string `json:"name"`
	LocationURL string `json:"location_url"`
}

func (r *CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.LocationURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_url",
			Message: "location_url is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLocationRequest struct {
	ID          string `json:"-"`
	Name        string `json:"name"`
	LocationURL string `json:"location_url"`
}

func (r *UpdateLocationRequest) Validate() error {
	base := CreateLocationRequest{Name: r.Name, LocationURL: r.LocationURL}
	return base.Validate()
}

type LocationResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func ToResponse(loc Location) LocationResponse {
	return LocationResponse{
		ID:        loc.ID,
		Name:      loc.Name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
}
