package dashboard

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	Submission DailySubmissionResponse `json:"submission"`
	Trend      []DaySubmissionItem     `json:"trend"`
}

// ========== DAILY SUBMISSION ==========

// DailySubmissionResponse summarises report submissions for one date
type DailySubmissionResponse struct {
	Date             string                `json:"date"` // Format: "YYYY-MM-DD"
	IsWorkingDay     bool                  `json:"is_working_day"`
	TotalEmployees   int64                 `json:"total_employees"`
	Submitted        int64                 `json:"submitted"`
	Missing          int64                 `json:"missing"`
	SubmissionRate   float64               `json:"submission_rate"` // percent
	MissingEmployees []MissingEmployeeItem `json:"missing_employees"`
}

// MissingEmployeeItem is an active employee without a report for the date
type MissingEmployeeItem struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ========== TREND ==========

// DaySubmissionItem is the submission count of one day in the trend window
type DaySubmissionItem struct {
	Date         string `json:"date"`
	IsWorkingDay bool   `json:"is_working_day"`
	Submitted    int64  `json:"submitted"`
}
