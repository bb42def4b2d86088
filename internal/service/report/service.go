package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/timeutil"
)

type ReportServiceImpl struct {
	AttendanceRepository attendance.AttendanceRepository
}

func NewReportService(attendanceRepo attendance.AttendanceRepository) attendance.ReportService {
	return &ReportServiceImpl{AttendanceRepository: attendanceRepo}
}

// scopeFilter pins STAFF to their own rows regardless of the filter.
func scopeFilter(ctx context.Context, filter *attendance.SheetFilter) error {
	userID, role, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}
	if !role.IsReviewer() {
		filter.UserID = &userID
	}
	return nil
}

func hoursWorked(in, out *time.Time) *string {
	if in == nil || out == nil {
		return nil
	}
	d := out.Sub(*in)
	if d < 0 {
		return nil
	}
	formatted := fmt.Sprintf("%dh %02dm", int(d.Hours()), int(d.Minutes())%60)
	return &formatted
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(timeutil.IST).Format("2006-01-02 15:04:05")
	return &formatted
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toSheetRow(rec attendance.AttendanceRecord) attendance.SheetRow {
	return attendance.SheetRow{
		ID:           rec.ID,
		UserID:       rec.UserID,
		Username:     strOrEmpty(rec.Username),
		EmployeeCode: strOrEmpty(rec.EmployeeCode),
		Date:         rec.Date.In(timeutil.IST).Format("2006-01-02"),
		PunchInTime:  timePtrToString(rec.PunchIn),
		PunchOutTime: timePtrToString(rec.PunchOut),
		HoursWorked:  hoursWorked(rec.PunchIn, rec.PunchOut),
	}
}

// Sheet implements attendance.ReportService.
func (s *ReportServiceImpl) Sheet(ctx context.Context, filter attendance.SheetFilter) (attendance.SheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.SheetResponse{}, err
	}
	if err := scopeFilter(ctx, &filter); err != nil {
		return attendance.SheetResponse{}, err
	}

	records, total, err := s.AttendanceRepository.Sheet(ctx, filter)
	if err != nil {
		return attendance.SheetResponse{}, fmt.Errorf("failed to load attendance sheet: %w", err)
	}

	rows := make([]attendance.SheetRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, toSheetRow(rec))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.SheetResponse{
		Records:    rows,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

var exportHeaders = []string{"Date", "Employee Code", "Employee Name", "Punch In", "Punch Out", "Hours Worked"}

// Export implements attendance.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, filter attendance.SheetFilter) ([]byte, string, error) {
	if err := filter.Validate(); err != nil {
		return nil, "", err
	}
	if err := scopeFilter(ctx, &filter); err != nil {
		return nil, "", err
	}

	records, err := s.AttendanceRepository.ListForExport(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load attendance export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Attendance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create worksheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, rec := range records {
		row := toSheetRow(rec)
		values := []string{
			row.Date,
			row.EmployeeCode,
			row.Username,
			strOrEmpty(row.PunchInTime),
			strOrEmpty(row.PunchOutTime),
			strOrEmpty(row.HoursWorked),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().In(timeutil.IST).Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
