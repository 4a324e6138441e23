package analytics

// Messages returned to callers for invalid input.
const (
	MsgDateRangeRequired = "start_date and end_date parameters are required"
	MsgInvalidDate       = "Invalid date format. Use YYYY-MM-DD."
	MsgReportIDRequired  = "Missing report_id parameter"
)
