package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/domain/location"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

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
	var open []attendance.AttendanceRecord
	for _, r := range f.records {
		if r.PunchOut == nil && r.Date.Before(cutoff) {
			open = append(open, r)
		}
	}
	return open, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetWithLocation(ctx context.Context, id string) (user.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) ListActiveIDsByRoles(ctx context.Context, roles []user.Role) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

type fakeLocationRepo struct {
	locations map[string]location.Location
}

func (f *fakeLocationRepo) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	return loc, nil
}

func (f *fakeLocationRepo) GetByID(ctx context.Context, id string) (location.Location, error) {
	loc, ok := f.locations[id]
	if !ok {
		return location.Location{}, location.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) List(ctx context.Context) ([]location.Location, error) { return nil, nil }
func (f *fakeLocationRepo) Update(ctx context.Context, loc location.Location) error {
	return nil
}
func (f *fakeLocationRepo) Delete(ctx context.Context, id string) error { return nil }

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

func punchReq(t *testing.T, body string) attendance.PunchRequest {
	t.Helper()
	var req attendance.PunchRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

const officeID = "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"

func newTestService(withLocation bool) (attendance.AttendanceService, *fakeAttendanceRepo) {
	attendanceRepo := &fakeAttendanceRepo{}

	usr := user.User{
		ID:       "user-1",
		Username: "tester",
		Role:     user.RoleStaff,
		Status:   user.StatusActive,
	}
	if withLocation {
		locID := officeID
		locName := "HQ"
		usr.LocationID = &locID
		usr.LocationName = &locName
	}

	userRepo := &fakeUserRepo{users: map[string]user.User{"user-1": usr}}
	locationRepo := &fakeLocationRepo{locations: map[string]location.Location{
		officeID: {ID: officeID, Name: "HQ", Latitude: 12.9716, Longitude: 77.5946},
	}}

	svc := NewAttendanceService(attendanceRepo, userRepo, locationRepo, fakeTx{})
	return svc, attendanceRepo
}

func TestPunchLifecycle(t *testing.T) {
	svc, repo := newTestService(false)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	// first punch opens the day's record
	resp, err := svc.Punch(ctx, attendance.PunchRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Punched in successfully", resp.Message)
	require.NotNil(t, resp.PunchInTime)
	assert.Nil(t, resp.PunchOutTime)
	require.Len(t, repo.records, 1)
	assert.True(t, repo.records[0].IsOpen())

	// second punch closes it
	resp, err = svc.Punch(ctx, attendance.PunchRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Punched out successfully", resp.Message)
	require.NotNil(t, resp.PunchOutTime)
	assert.True(t, repo.records[0].IsCompleted())

	// a third punch on the same day is rejected, echoing the recorded times
	_, err = svc.Punch(ctx, attendance.PunchRequest{})
	var completedErr *attendance.AlreadyCompletedError
	require.ErrorAs(t, err, &completedErr)
	require.NotNil(t, completedErr.PunchInTime)
	require.NotNil(t, completedErr.PunchOutTime)
	assert.Equal(t, *resp.PunchInTime, *completedErr.PunchInTime)
	assert.Equal(t, *resp.PunchOutTime, *completedErr.PunchOutTime)
	assert.Len(t, repo.records, 1)
}

func TestPunchInsideGeofence(t *testing.T) {
	svc, repo := newTestService(true)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	resp, err := svc.Punch(ctx, punchReq(t, `{"latitude": 12.9716, "longitude": 77.5946}`))
	require.NoError(t, err)
	assert.Equal(t, "Punched in successfully", resp.Message)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "HQ", *resp.Location)
	assert.Len(t, repo.records, 1)
}

func TestPunchAcceptsStringCoordinates(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	_, err := svc.Punch(ctx, punchReq(t, `{"latitude": "12.9716", "longitude": "77.5946"}`))
	assert.NoError(t, err)
}

func TestPunchOutsideGeofence(t *testing.T) {
	svc, repo := newTestService(true)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	// ~1.6km east of the office
	_, err := svc.Punch(ctx, punchReq(t, `{"latitude": 12.9716, "longitude": 77.6100}`))

	var radiusErr *attendance.OutsideRadiusError
	require.ErrorAs(t, err, &radiusErr)
	assert.Greater(t, radiusErr.Distance, attendance.MaxDistanceMeters)
	assert.Empty(t, repo.records)
}

func TestPunchMissingCoordinatesWithFence(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	_, err := svc.Punch(ctx, attendance.PunchRequest{})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	details := errs.ToMap()
	assert.Contains(t, details, "latitude")
	assert.Contains(t, details, "longitude")
}

func TestPunchNonNumericCoordinatesWithFence(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	_, err := svc.Punch(ctx, punchReq(t, `{"latitude": "north", "longitude": "east"}`))

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
}

func TestPunchNoFenceIgnoresCoordinates(t *testing.T) {
	svc, repo := newTestService(false)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	// no assigned location: coordinates are neither required nor checked
	_, err := svc.Punch(ctx, attendance.PunchRequest{})
	assert.NoError(t, err)

	// even nonsense coordinates go through when there is no fence
	_, err = svc.Punch(ctx, punchReq(t, `{"latitude": 91.0, "longitude": "east"}`))
	assert.NoError(t, err)
	assert.Len(t, repo.records, 1)
}

func TestPunchRejectsOutOfRangeCoordinatesWithFence(t *testing.T) {
	svc, _ := newTestService(true)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	_, err := svc.Punch(ctx, punchReq(t, `{"latitude": 91.0, "longitude": 77.5946}`))

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "latitude")
}

func TestPunchUnauthenticated(t *testing.T) {
	svc, _ := newTestService(false)

	_, err := svc.Punch(context.Background(), attendance.PunchRequest{})
	assert.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	svc, _ := newTestService(false)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsPunchedIn)
	assert.False(t, status.IsCompleted)

	_, err = svc.Punch(ctx, attendance.PunchRequest{})
	require.NoError(t, err)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsPunchedIn)
	assert.False(t, status.IsCompleted)
	assert.NotNil(t, status.PunchInTime)

	_, err = svc.Punch(ctx, attendance.PunchRequest{})
	require.NoError(t, err)

	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsPunchedIn)
	assert.True(t, status.IsCompleted)
	assert.NotNil(t, status.PunchOutTime)
}

func TestStatusIsReadOnly(t *testing.T) {
	svc, repo := newTestService(false)
	ctx := authedCtx(t, "user-1", user.RoleStaff)

	for i := 0; i < 3; i++ {
		_, err := svc.Status(ctx)
		require.NoError(t, err)
	}
	assert.Empty(t, repo.records)
}

// transaction errors must surface to the caller unchanged
type failingTx struct{ err error }

func (f failingTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f.err
}

func TestPunchTransactionFailure(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{}
	userRepo := &fakeUserRepo{users: map[string]user.User{"user-1": {ID: "user-1", Status: user.StatusActive, Role: user.RoleStaff}}}
	locationRepo := &fakeLocationRepo{}
	txErr := errors.New("deadlock detected")

	svc := NewAttendanceService(attendanceRepo, userRepo, locationRepo, failingTx{err: txErr})

	_, err := svc.Punch(authedCtx(t, "user-1", user.RoleStaff), attendance.PunchRequest{})
	assert.ErrorIs(t, err, txErr)
	assert.Empty(t, attendanceRepo.records)
}
