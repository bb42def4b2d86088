package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/location"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/timeutil"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/utils"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	AttendanceRepository attendance.AttendanceRepository
	UserRepository       user.UserRepository
	LocationRepository   location.LocationRepository
	Tx                   database.Transactor
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	locationRepo location.LocationRepository,
	tx database.Transactor,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		LocationRepository:   locationRepo,
		Tx:                   tx,
	}
}

// formatIST renders a timestamp in the ledger's calendar timezone.
func formatIST(t time.Time) string {
	return t.In(timeutil.IST).Format("2006-01-02 15:04:05")
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := formatIST(*t)
	return &formatted
}

// Punch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	usr, err := a.UserRepository.GetWithLocation(ctx, userID)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	// The geofence only applies to users with an assigned location.
	// Coordinates are required exactly when the fence is active.
	if usr.LocationID != nil {
		if err := a.checkGeofence(ctx, *usr.LocationID, req); err != nil {
			return attendance.PunchResponse{}, err
		}
	}

	now := time.Now()
	day := timeutil.ISTDayOf(now)

	var resp attendance.PunchResponse
	err = a.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := a.AttendanceRepository.GetByUserAndWindow(txCtx, userID, day.Start(), day.End())
		if err != nil {
			return err
		}

		switch {
		case record == nil:
			created, err := a.AttendanceRepository.Create(txCtx, attendance.AttendanceRecord{
				UserID:     userID,
				Date:       now,
				PunchIn:    &now,
				LocationID: usr.LocationID,
			})
			if err != nil {
				return err
			}
			resp = attendance.PunchResponse{
				Message:     "Punched in successfully",
				PunchInTime: timePtrToString(created.PunchIn),
				Location:    usr.LocationName,
			}
			return nil

		case record.IsOpen():
			record.PunchOut = &now
			if err := a.AttendanceRepository.Update(txCtx, *record); err != nil {
				return err
			}
			resp = attendance.PunchResponse{
				Message:      "Punched out successfully",
				PunchInTime:  timePtrToString(record.PunchIn),
				PunchOutTime: timePtrToString(record.PunchOut),
				Location:     usr.LocationName,
			}
			return nil

		default:
			return &attendance.AlreadyCompletedError{
				PunchInTime:  timePtrToString(record.PunchIn),
				PunchOutTime: timePtrToString(record.PunchOut),
			}
		}
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	return resp, nil
}

func (a *AttendanceServiceImpl) checkGeofence(ctx context.Context, locationID string, req attendance.PunchRequest) error {
	var errs validator.ValidationErrors
	if req.Latitude.Missing() {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	}
	if req.Longitude.Missing() {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	lat, latOK := req.Latitude.Float()
	lng, lngOK := req.Longitude.Float()
	if !latOK {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a number",
		})
	}
	if !lngOK {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a number",
		})
	}
	if latOK && (lat < -90 || lat > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lngOK && (lng < -180 || lng > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	loc, err := a.LocationRepository.GetByID(ctx, locationID)
	if err != nil {
		return fmt.Errorf("failed to load assigned location: %w", err)
	}

	distance := utils.CalculateHaversineDistance(lat, lng, loc.Latitude, loc.Longitude)
	if distance > attendance.MaxDistanceMeters {
		return &attendance.OutsideRadiusError{
			Distance: int(math.Round(distance)),
			Unit:     "meters",
		}
	}

	return nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context) (attendance.StatusResponse, error) {
	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	day := timeutil.ISTDayOf(time.Now())

	record, err := a.AttendanceRepository.GetByUserAndWindow(ctx, userID, day.Start(), day.End())
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	switch {
	case record == nil:
		return attendance.StatusResponse{
			Message: "You have not punched in today",
		}, nil

	case record.IsOpen():
		return attendance.StatusResponse{
			IsPunchedIn:   true,
			Message:       "You are currently punched in",
			LastPunchTime: timePtrToString(record.PunchIn),
			PunchInTime:   timePtrToString(record.PunchIn),
		}, nil

	default:
		return attendance.StatusResponse{
			IsCompleted:   true,
			Message:       "You have completed your attendance for today",
			LastPunchTime: timePtrToString(record.PunchOut),
			PunchInTime:   timePtrToString(record.PunchIn),
			PunchOutTime:  timePtrToString(record.PunchOut),
		}, nil
	}
}
