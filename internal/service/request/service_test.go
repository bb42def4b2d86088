package request

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/notification"
	"github.com/punchdesk/attendance-backend-go/internal/domain/request"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/timeutil"
)

type fakeRequestRepo struct {
	requests []request.CorrectionRequest
	nextID   int
}

func (f *fakeRequestRepo) Create(ctx context.Context, req request.CorrectionRequest) (request.CorrectionRequest, error) {
	f.nextID++
	req.ID = fmt.Sprintf("req-%d", f.nextID)
	req.CreatedAt = time.Now()
	f.requests = append(f.requests, req)
	return req, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (request.CorrectionRequest, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return request.CorrectionRequest{}, request.ErrRequestNotFound
}

func (f *fakeRequestRepo) ExistsForUserAndWindow(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.UserID == userID && !r.Date.Before(start) && !r.Date.After(end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status request.Status) error {
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests[i].Status = status
			return nil
		}
	}
	return request.ErrRequestNotFound
}

func (f *fakeRequestRepo) List(ctx context.Context, filter request.RequestFilter) ([]request.CorrectionRequest, int64, error) {
	var out []request.CorrectionRequest
	for _, r := range f.requests {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

type fakeAttendanceRepo struct {
	records []attendance.AttendanceRecord
	nextID  int
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepo) GetByUserAndWindow(ctx context.Context, userID string, start, end time.Time) (*attendance.AttendanceRecord, error) {
	for i := range f.records {
		r := f.records[i]
		if r.UserID == userID && !r.Date.Before(start) && !r.Date.After(end) {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	for i := range f.records {
		if f.records[i].ID == record.ID {
			f.records[i].PunchIn = record.PunchIn
			f.records[i].PunchOut = record.PunchOut
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Sheet(ctx context.Context, filter attendance.SheetFilter) ([]attendance.AttendanceRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListForExport(ctx context.Context, filter attendance.SheetFilter) ([]attendance.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.AttendanceRecord, error) {
	return nil, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }
func (fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{ID: id, Username: "tester", Status: user.StatusActive}, nil
}
func (fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (fakeUserRepo) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (fakeUserRepo) GetWithLocation(ctx context.Context, id string) (user.User, error) {
	return user.User{ID: id}, nil
}
func (fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }
func (fakeUserRepo) ListActiveIDsByRoles(ctx context.Context, roles []user.Role) ([]string, error) {
	return nil, nil
}
func (fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

type fakeNotifService struct {
	sent []notification.NotifyInput
}

func (f *fakeNotifService) Notify(ctx context.Context, input notification.NotifyInput) error {
	f.sent = append(f.sent, input)
	return nil
}

func (f *fakeNotifService) ListMine(ctx context.Context) ([]notification.NotificationResponse, error) {
	return nil, nil
}
func (f *fakeNotifService) MarkRead(ctx context.Context, id string) error { return nil }
func (f *fakeNotifService) Delete(ctx context.Context, id string) error   { return nil }

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func authedCtx(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"user_id":  userID,
		"username": "tester",
		"role":     string(role),
		"type":     "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type testEnv struct {
	svc            request.RequestService
	requestRepo    *fakeRequestRepo
	attendanceRepo *fakeAttendanceRepo
	notifSvc       *fakeNotifService
}

func newTestEnv() testEnv {
	requestRepo := &fakeRequestRepo{}
	attendanceRepo := &fakeAttendanceRepo{}
	notifSvc := &fakeNotifService{}

	svc := NewRequestService(requestRepo, attendanceRepo, fakeUserRepo{}, notifSvc, fakeTx{})
	return testEnv{svc: svc, requestRepo: requestRepo, attendanceRepo: attendanceRepo, notifSvc: notifSvc}
}

// istDate renders today-minus-n-days as YYYY-MM-DD in the ledger timezone.
func istDate(daysAgo int) string {
	return time.Now().In(timeutil.IST).AddDate(0, 0, -daysAgo).Format("2006-01-02")
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	env := newTestEnv()
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	resp, err := env.svc.Submit(ctx, request.CreateRequestRequest{
		Date:     istDate(2),
		PunchIn:  "09:00",
		PunchOut: "18:00",
		Reason:   "forgot to punch",
	})
	require.NoError(t, err)

	assert.Equal(t, string(request.StatusPending), resp.Status)
	assert.Equal(t, istDate(2), resp.Date)
	require.Len(t, env.requestRepo.requests, 1)
	assert.True(t, env.requestRepo.requests[0].PunchIn.Before(env.requestRepo.requests[0].PunchOut))

	// reviewers are notified
	require.Len(t, env.notifSvc.sent, 1)
	assert.Equal(t, notification.TypeAttendanceRequest, env.notifSvc.sent[0].Type)
}

func TestSubmitWindowBounds(t *testing.T) {
	env := newTestEnv()
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	// 7 days back is the oldest allowed day
	_, err := env.svc.Submit(ctx, request.CreateRequestRequest{
		Date: istDate(7), PunchIn: "09:00", PunchOut: "18:00", Reason: "sick day",
	})
	assert.NoError(t, err)

	// 8 days back is out of the window
	_, err = env.svc.Submit(ctx, request.CreateRequestRequest{
		Date: istDate(8), PunchIn: "09:00", PunchOut: "18:00", Reason: "sick day",
	})
	assert.ErrorIs(t, err, request.ErrOutsideRequestWindow)

	// future days are rejected too
	_, err = env.svc.Submit(ctx, request.CreateRequestRequest{
		Date: istDate(-1), PunchIn: "09:00", PunchOut: "18:00", Reason: "sick day",
	})
	assert.ErrorIs(t, err, request.ErrOutsideRequestWindow)
}

func TestSubmitPunchOrder(t *testing.T) {
	env := newTestEnv()
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	_, err := env.svc.Submit(ctx, request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "18:00", PunchOut: "09:00", Reason: "typo",
	})
	assert.ErrorIs(t, err, request.ErrPunchOrder)

	_, err = env.svc.Submit(ctx, request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "09:00", PunchOut: "09:00", Reason: "typo",
	})
	assert.ErrorIs(t, err, request.ErrPunchOrder)
}

func TestSubmitDuplicatePerDay(t *testing.T) {
	env := newTestEnv()
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	req := request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "09:00", PunchOut: "18:00", Reason: "forgot",
	}
	_, err := env.svc.Submit(ctx, req)
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, req)
	assert.ErrorIs(t, err, request.ErrDuplicateRequest)

	// a different user may still file for the same day
	_, err = env.svc.Submit(authedCtx(t, "user-2", user.RoleStaff), req)
	assert.NoError(t, err)
}

func TestReviewRequiresReviewerRole(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(authedCtx(t, "user-1", user.RoleStaff), request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "09:00", PunchOut: "18:00", Reason: "forgot",
	})
	require.NoError(t, err)

	_, err = env.svc.Review(authedCtx(t, "user-2", user.RoleStaff), request.ReviewRequest{
		ID: "req-1", Status: "ACCEPT",
	})
	assert.ErrorIs(t, err, user.ErrReviewerAccessRequired)
	assert.Equal(t, request.StatusPending, env.requestRepo.requests[0].Status)
}

func TestAcceptCreatesLedgerRecord(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(authedCtx(t, "user-1", user.RoleStaff), request.CreateRequestRequest{
		Date: istDate(2), PunchIn: "09:00", PunchOut: "18:00", Reason: "forgot",
	})
	require.NoError(t, err)

	resp, err := env.svc.Review(authedCtx(t, "admin-1", user.RoleAdmin), request.ReviewRequest{
		ID: "req-1", Status: "ACCEPT",
	})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusAccepted), resp.Status)

	require.Len(t, env.attendanceRepo.records, 1)
	rec := env.attendanceRepo.records[0]
	assert.Equal(t, "user-1", rec.UserID)
	require.NotNil(t, rec.PunchIn)
	require.NotNil(t, rec.PunchOut)
	assert.Equal(t, 9, rec.PunchIn.In(timeutil.IST).Hour())
	assert.Equal(t, 18, rec.PunchOut.In(timeutil.IST).Hour())

	// the requester is told the outcome
	var outcome *notification.NotifyInput
	for i := range env.notifSvc.sent {
		if env.notifSvc.sent[i].Type == notification.TypeMessage {
			outcome = &env.notifSvc.sent[i]
		}
	}
	require.NotNil(t, outcome)
	require.NotNil(t, outcome.TargetUserID)
	assert.Equal(t, "user-1", *outcome.TargetUserID)
}

func TestAcceptOverwritesExistingPunches(t *testing.T) {
	env := newTestEnv()

	day := timeutil.ISTDayOf(time.Now().In(timeutil.IST).AddDate(0, 0, -1))
	oldIn := day.Start().Add(11 * time.Hour)
	locID := "loc-1"
	existing, err := env.attendanceRepo.Create(context.Background(), attendance.AttendanceRecord{
		UserID:     "user-1",
		Date:       day.Start(),
		PunchIn:    &oldIn,
		LocationID: &locID,
	})
	require.NoError(t, err)

	_, err = env.svc.Submit(authedCtx(t, "user-1", user.RoleStaff), request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "09:00", PunchOut: "18:00", Reason: "half day recorded",
	})
	require.NoError(t, err)

	_, err = env.svc.Review(authedCtx(t, "hr-1", user.RoleHR), request.ReviewRequest{
		ID: "req-1", Status: "ACCEPT",
	})
	require.NoError(t, err)

	// still one record: punch times replaced, identity and location kept
	require.Len(t, env.attendanceRepo.records, 1)
	rec := env.attendanceRepo.records[0]
	assert.Equal(t, existing.ID, rec.ID)
	require.NotNil(t, rec.LocationID)
	assert.Equal(t, "loc-1", *rec.LocationID)
	assert.Equal(t, 9, rec.PunchIn.In(timeutil.IST).Hour())
	assert.Equal(t, 18, rec.PunchOut.In(timeutil.IST).Hour())
}

func TestRejectLeavesLedgerUntouched(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(authedCtx(t, "user-1", user.RoleStaff), request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "09:00", PunchOut: "18:00", Reason: "forgot",
	})
	require.NoError(t, err)

	resp, err := env.svc.Review(authedCtx(t, "admin-1", user.RoleAdmin), request.ReviewRequest{
		ID: "req-1", Status: "REJECT",
	})
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusRejected), resp.Status)
	assert.Empty(t, env.attendanceRepo.records)
}

func TestReviewAlreadyProcessed(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(authedCtx(t, "user-1", user.RoleStaff), request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "09:00", PunchOut: "18:00", Reason: "forgot",
	})
	require.NoError(t, err)

	adminCtx := authedCtx(t, "admin-1", user.RoleAdmin)
	_, err = env.svc.Review(adminCtx, request.ReviewRequest{ID: "req-1", Status: "ACCEPT"})
	require.NoError(t, err)

	// a second decision is rejected and the ledger does not change again
	_, err = env.svc.Review(adminCtx, request.ReviewRequest{ID: "req-1", Status: "REJECT"})
	assert.ErrorIs(t, err, request.ErrAlreadyProcessed)
	assert.Len(t, env.attendanceRepo.records, 1)
}

func TestReviewInvalidDecision(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Review(authedCtx(t, "admin-1", user.RoleAdmin), request.ReviewRequest{
		ID: "req-1", Status: "MAYBE",
	})
	assert.Error(t, err)
}

func TestListStaffSeeOnlyTheirOwn(t *testing.T) {
	env := newTestEnv()

	const (
		staffOne = "1b671a64-40d5-491e-99b0-da01ff1f3341"
		staffTwo = "2c671a64-40d5-491e-99b0-da01ff1f3342"
	)

	_, err := env.svc.Submit(authedCtx(t, staffOne, user.RoleStaff), request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "09:00", PunchOut: "18:00", Reason: "forgot",
	})
	require.NoError(t, err)
	_, err = env.svc.Submit(authedCtx(t, staffTwo, user.RoleStaff), request.CreateRequestRequest{
		Date: istDate(1), PunchIn: "10:00", PunchOut: "19:00", Reason: "forgot",
	})
	require.NoError(t, err)

	// staff asking for someone else's rows still only get their own
	other := staffTwo
	resp, err := env.svc.List(authedCtx(t, staffOne, user.RoleStaff), request.RequestFilter{UserID: &other})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, staffOne, resp.Requests[0].UserID)

	// reviewers see everything
	resp, err = env.svc.List(authedCtx(t, "admin-1", user.RoleAdmin), request.RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, resp.Requests, 2)
	assert.Equal(t, int64(2), resp.TotalCount)
}
