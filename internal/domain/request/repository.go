package request

import (
	"context"
	"time"
)

// RequestRepository defines data access methods for correction requests.
type RequestRepository interface {
	Create(ctx context.Context, req CorrectionRequest) (CorrectionRequest, error)

	GetByID(ctx context.Context, id string) (CorrectionRequest, error)

	// ExistsForUserAndWindow reports whether any request exists for the user
	// with a date inside [start, end]. Backs the one-request-per-day rule.
	ExistsForUserAndWindow(ctx context.Context, userID string, start, end time.Time) (bool, error)

	// UpdateStatus sets the request's status.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// List retrieves requests with filters and pagination, newest date first,
	// together with the total count as one read pair.
	List(ctx context.Context, filter RequestFilter) ([]CorrectionRequest, int64, error)
}
