package request

import "errors"

// Correction request domain errors
var (
	ErrRequestNotFound      = errors.New("attendance request not found")
	ErrDuplicateRequest     = errors.New("an attendance request already exists for this date")
	ErrOutsideRequestWindow = errors.New("attendance requests can only be created for the past 7 days")
	ErrPunchOrder           = errors.New("punch-in time must be earlier than punch-out time")
	ErrAlreadyProcessed     = errors.New("attendance request has already been processed")
)
