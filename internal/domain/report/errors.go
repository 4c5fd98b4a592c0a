package report

import "errors"

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrDateNotAllowed   = errors.New("reports can only be submitted for today, yesterday or, on sundays, last friday")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)
