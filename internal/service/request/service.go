package request

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/domain/request"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/timeutil"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

// maxRequestAgeDays bounds how far back a correction request may reach.
const maxRequestAgeDays = 7

type RequestServiceImpl struct {
	RequestRepository    request.RequestRepository
	AttendanceRepository attendance.AttendanceRepository
	UserRepository       user.UserRepository
	NotificationService  notification.Service
	Tx                   database.Transactor
}

func NewRequestService(
	requestRepo request.RequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	notificationSvc notification.Service,
	tx database.Transactor,
) request.RequestService {
	return &RequestServiceImpl{
		RequestRepository:    requestRepo,
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		NotificationService:  notificationSvc,
		Tx:                   tx,
	}
}

func toResponse(req request.CorrectionRequest) request.RequestResponse {
	return request.RequestResponse{
		ID:           req.ID,
		UserID:       req.UserID,
		Username:     req.Username,
		EmployeeCode: req.EmployeeCode,
		Date:         req.Date.In(timeutil.IST).Format("2006-01-02"),
		PunchIn:      req.PunchIn.In(timeutil.IST).Format("2006-01-02 15:04:05"),
		PunchOut:     req.PunchOut.In(timeutil.IST).Format("2006-01-02 15:04:05"),
		Reason:       req.Reason,
		Status:       string(req.Status),
		CreatedAt:    req.CreatedAt.In(timeutil.IST).Format("2006-01-02 15:04:05"),
	}
}

// parsePunchTime resolves a punch field against the request's calendar day.
// Accepts a bare clock time ("09:00", "09:00:30") anchored to the day, or an
// absolute RFC3339 timestamp that must fall inside the day.
func parsePunchTime(field, value string, day timeutil.CalendarDay) (time.Time, error) {
	if clock, ok := validator.ParseTimeOfDay(value); ok {
		anchored := day.Start().Add(
			time.Duration(clock.Hour())*time.Hour +
				time.Duration(clock.Minute())*time.Minute +
				time.Duration(clock.Second())*time.Second)
		return anchored, nil
	}

	if ts, ok := validator.ParseTimestamp(value); ok {
		if !day.Contains(ts) {
			return time.Time{}, validator.ValidationErrors{{
				Field:   field,
				Message: field + " must fall on the requested date",
			}}
		}
		return ts, nil
	}

	return time.Time{}, validator.ValidationErrors{{
		Field:   field,
		Message: field + " must be a clock time (HH:MM) or an RFC3339 timestamp",
	}}
}

// Submit implements request.RequestService.
func (s *RequestServiceImpl) Submit(ctx context.Context, req request.CreateRequestRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	userID, _, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return request.RequestResponse{}, err
	}

	parsed, err := time.ParseInLocation("2006-01-02", req.Date, timeutil.IST)
	if err != nil {
		return request.RequestResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	day := timeutil.ISTDayOf(parsed)

	age := day.DaysSince(time.Now())
	if age < 0 || age > maxRequestAgeDays {
		return request.RequestResponse{}, request.ErrOutsideRequestWindow
	}

	punchIn, err := parsePunchTime("punch_in", req.PunchIn, day)
	if err != nil {
		return request.RequestResponse{}, err
	}
	punchOut, err := parsePunchTime("punch_out", req.PunchOut, day)
	if err != nil {
		return request.RequestResponse{}, err
	}

	if !punchIn.Before(punchOut) {
		return request.RequestResponse{}, request.ErrPunchOrder
	}

	exists, err := s.RequestRepository.ExistsForUserAndWindow(ctx, userID, day.Start(), day.End())
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to check for existing request: %w", err)
	}
	if exists {
		return request.RequestResponse{}, request.ErrDuplicateRequest
	}

	created, err := s.RequestRepository.Create(ctx, request.CorrectionRequest{
		UserID:   userID,
		Date:     day.Start(),
		PunchIn:  punchIn,
		PunchOut: punchOut,
		Reason:   req.Reason,
		Status:   request.StatusPending,
	})
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create attendance request: %w", err)
	}

	s.notifyReviewers(ctx, created)

	return toResponse(created), nil
}

// notifyReviewers fans the new request out to ADMIN/HR. A notification
// failure never fails the submission itself.
func (s *RequestServiceImpl) notifyReviewers(ctx context.Context, req request.CorrectionRequest) {
	usr, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		slog.Warn("Failed to load requester for notification", "request_id", req.ID, "error", err)
		return
	}

	message := fmt.Sprintf("%s requested an attendance correction for %s",
		usr.Username, req.Date.In(timeutil.IST).Format("2006-01-02"))

	err = s.NotificationService.Notify(ctx, notification.NotifyInput{
		Type:     notification.TypeAttendanceRequest,
		Title:    "New attendance request",
		Message:  &message,
		SenderID: &req.UserID,
	})
	if err != nil {
		slog.Warn("Failed to notify reviewers", "request_id", req.ID, "error", err)
	}
}

// Review implements request.RequestService. The status flip and the ledger
// reconciliation commit in one transaction.
func (s *RequestServiceImpl) Review(ctx context.Context, req request.ReviewRequest) (request.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	reviewerID, role, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return request.RequestResponse{}, err
	}
	if !role.IsReviewer() {
		return request.RequestResponse{}, user.ErrReviewerAccessRequired
	}

	var reviewed request.CorrectionRequest
	err = s.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		pending, err := s.RequestRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if pending.Status != request.StatusPending {
			return request.ErrAlreadyProcessed
		}

		if request.Decision(req.Status) == request.DecisionAccept {
			if err := s.RequestRepository.UpdateStatus(txCtx, pending.ID, request.StatusAccepted); err != nil {
				return err
			}
			if err := s.reconcile(txCtx, pending); err != nil {
				return err
			}
			pending.Status = request.StatusAccepted
		} else {
			if err := s.RequestRepository.UpdateStatus(txCtx, pending.ID, request.StatusRejected); err != nil {
				return err
			}
			pending.Status = request.StatusRejected
		}

		reviewed = pending
		return nil
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	s.notifyRequester(ctx, reviewed, reviewerID)

	return toResponse(reviewed), nil
}

// reconcile merges an accepted request into the attendance ledger: the day's
// record is created when missing, otherwise only its punch times are
// overwritten. Keyed on the same calendar day as the punch flow, so the merge
// can never land on a neighboring record.
func (s *RequestServiceImpl) reconcile(ctx context.Context, req request.CorrectionRequest) error {
	day := timeutil.ISTDayOf(req.Date)

	record, err := s.AttendanceRepository.GetByUserAndWindow(ctx, req.UserID, day.Start(), day.End())
	if err != nil {
		return err
	}

	if record == nil {
		_, err := s.AttendanceRepository.Create(ctx, attendance.AttendanceRecord{
			UserID:   req.UserID,
			Date:     req.Date,
			PunchIn:  &req.PunchIn,
			PunchOut: &req.PunchOut,
		})
		return err
	}

	record.PunchIn = &req.PunchIn
	record.PunchOut = &req.PunchOut
	return s.AttendanceRepository.Update(ctx, *record)
}

func (s *RequestServiceImpl) notifyRequester(ctx context.Context, req request.CorrectionRequest, reviewerID string) {
	var title string
	if req.Status == request.StatusAccepted {
		title = "Attendance request accepted"
	} else {
		title = "Attendance request rejected"
	}

	message := fmt.Sprintf("Your attendance request for %s was %s",
		req.Date.In(timeutil.IST).Format("2006-01-02"), string(req.Status))

	err := s.NotificationService.Notify(ctx, notification.NotifyInput{
		Type:         notification.TypeMessage,
		Title:        title,
		Message:      &message,
		TargetUserID: &req.UserID,
		SenderID:     &reviewerID,
	})
	if err != nil {
		slog.Warn("Failed to notify requester", "request_id", req.ID, "error", err)
	}
}

// List implements request.RequestService.
func (s *RequestServiceImpl) List(ctx context.Context, filter request.RequestFilter) (request.ListRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return request.ListRequestsResponse{}, err
	}

	userID, role, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return request.ListRequestsResponse{}, err
	}

	// STAFF never see anyone else's requests, whatever the filter says.
	if !role.IsReviewer() {
		filter.UserID = &userID
	}

	requests, total, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return request.ListRequestsResponse{}, fmt.Errorf("failed to list attendance requests: %w", err)
	}

	responses := make([]request.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return request.ListRequestsResponse{
		Requests:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}
