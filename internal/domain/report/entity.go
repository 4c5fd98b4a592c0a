package report

import "time"

// Report is one employee's daily status report. There is at most one report
// per (CompanyID, UserID, Date).
type Report struct {
	ID        string
	CompanyID string
	UserID    string
	Date      string // YYYY-MM-DD
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserFullName string
	UserEmail    string
}

// ToResponse converts a Report entity to ReportResponse
func (r Report) ToResponse() ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		UserFullName: r.UserFullName,
		UserEmail:    r.UserEmail,
		Date:         r.Date,
		Content:      r.Content,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
