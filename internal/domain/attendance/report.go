package attendance

import "context"

// ReportService serves the paginated attendance sheet and its spreadsheet
// export. STAFF only see their own rows; ADMIN/HR see everything.
type ReportService interface {
	Sheet(ctx context.Context, filter SheetFilter) (SheetResponse, error)

	// Export renders all matching rows as an XLSX workbook and returns the
	// file contents plus a suggested filename.
	Export(ctx context.Context, filter SheetFilter) ([]byte, string, error)
}
