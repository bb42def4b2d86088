package request

import "context"

type RequestService interface {
	// Submit files a PENDING correction request for the authenticated user.
	Submit(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)

	// Review accepts or rejects a pending request. Accepting reconciles the
	// request's punch times into the attendance ledger atomically.
	Review(ctx context.Context, req ReviewRequest) (RequestResponse, error)

	// List retrieves requests visible to the authenticated user. STAFF only
	// see their own; ADMIN/HR see everything and may filter by user.
	List(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
}
