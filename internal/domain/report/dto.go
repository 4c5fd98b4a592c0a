package report

import (
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/validator"
)

// MaxContentLength bounds a report body, counted in characters.
const MaxContentLength = 5000

// SubmitReportRequest is the body of PUT /reports/{date}
type SubmitReportRequest struct {
	Date    string `json:"-"`
	Content string `json:"content"`
}

func (r *SubmitReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	} else if !validator.MaxRunes(r.Content, MaxContentLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content must be at most 5000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DateRange is an optional inclusive [From, To] range of YYYY-MM-DD dates
type DateRange struct {
	From string
	To   string
}

func (r DateRange) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.From)
	if r.From != "" && !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.To)
	if r.To != "" && !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReportFilter is the admin review query
type ReportFilter struct {
	CompanyID string
	UserID    string
	Date      string
	DateRange
	Page     int
	PageSize int
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.UserID != "" && !validator.IsValidUUID(f.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}
	if err := f.DateRange.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Normalize applies pagination defaults
func (f *ReportFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

// ReportResponse represents a report in API responses
type ReportResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserFullName string    `json:"user_full_name,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	Date         string    `json:"date"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubmitReportResponse tells whether the submission created a new report
type SubmitReportResponse struct {
	Report  ReportResponse `json:"report"`
	Created bool           `json:"created"`
}

// ReportListResponse represents a paginated list of reports
type ReportListResponse struct {
	Reports    []ReportResponse `json:"reports"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// AllowedDatesResponse lists the dates a report can currently be submitted for
type AllowedDatesResponse struct {
	Today        string   `json:"today"`
	AllowedDates []string `json:"allowed_dates"`
}
