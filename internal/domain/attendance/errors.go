package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrRecordNotFound = errors.New("attendance record not found")
)

// MaxDistanceMeters is the geofence radius enforced on punches.
const MaxDistanceMeters = 100

// OutsideRadiusError reports a punch attempted too far from the user's
// assigned location. Distance is rounded to whole meters for display.
type OutsideRadiusError struct {
	Distance int
	Unit     string
}

func (e *OutsideRadiusError) Error() string {
	return fmt.Sprintf("you must be within %d meters of your assigned location (you are %d %s away)",
		MaxDistanceMeters, e.Distance, e.Unit)
}

// AlreadyCompletedError rejects a punch on a day whose record is already
// closed. It carries the recorded times so the caller can show what was
// already punched.
type AlreadyCompletedError struct {
	PunchInTime  *string
	PunchOutTime *string
}

func (e *AlreadyCompletedError) Error() string {
	return "you have already completed your attendance for today"
}
