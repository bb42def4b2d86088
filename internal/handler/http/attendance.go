package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/punchdesk/attendance-backend-go/internal/domain/attendance"
	"github.com/punchdesk/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Sheet(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	reportService     attendance.ReportService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, reportService attendance.ReportService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		reportService:     reportService,
	}
}

// Punch implements AttendanceHandler. The same endpoint opens and closes the
// day's record; the service decides which applies.
func (h *attendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.attendanceService.Punch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func sheetFilterFromQuery(r *http.Request) attendance.SheetFilter {
	return attendance.SheetFilter{
		StartDate: getStrQueryParam(r, "start_date"),
		EndDate:   getStrQueryParam(r, "end_date"),
		UserID:    getStrQueryParam(r, "user_id"),
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", 31),
	}
}

// Sheet implements AttendanceHandler.
func (h *attendanceHandlerImpl) Sheet(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Sheet(r.Context(), sheetFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Export implements AttendanceHandler. Streams the sheet as an XLSX download.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	content, filename, err := h.reportService.Export(r.Context(), sheetFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
