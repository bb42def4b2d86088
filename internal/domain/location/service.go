package location

import "context"

type LocationService interface {
	Create(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	List(ctx context.Context) ([]LocationResponse, error)
	Update(ctx context.Context, req UpdateLocationRequest) (LocationResponse, error)
	Delete(ctx context.Context, id string) error
}
