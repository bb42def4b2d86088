package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/timeutil"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{attendanceRepo: attendanceRepo}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_attendances", 1*time.Hour, j.AutoCloseStaleAttendances)
}

// AutoCloseStaleAttendances closes records whose owner punched in on a past
// IST day and never punched out. The punch-out is pinned to the end of that
// day so the record stops counting as an open session.
func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	today := timeutil.ISTDayOf(time.Now())

	stale, err := j.attendanceRepo.ListOpenBefore(ctx, today.Start())
	if err != nil {
		return fmt.Errorf("failed to list stale open records: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	closedCount := 0
	for _, record := range stale {
		dayEnd := timeutil.ISTDayOf(record.Date).End()
		record.PunchOut = &dayEnd

		if err := j.attendanceRepo.Update(ctx, record); err != nil {
			slog.Error("Cron: failed to close stale attendance", "record_id", record.ID, "error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: closed stale attendances", "count", closedCount, "total", len(stale))
	return nil
}
