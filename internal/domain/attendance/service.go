package attendance

import "context"

type AttendanceService interface {
	// Punch records a clock-in or clock-out for the authenticated user,
	// gated by the geofence check. The first punch of an IST day opens a
	// record, the second closes it, a third is rejected.
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// Status reports the authenticated user's punch state for the current
	// IST day. Read-only and safe to poll.
	Status(ctx context.Context) (StatusResponse, error)
}
