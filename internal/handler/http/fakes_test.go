package http

import (
	"context"
	"net/url"
	"sync"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/oauth"
	"golang.org/x/oauth2"
)

type fakeAuthService struct {
	mu          sync.Mutex
	tokens      auth.TokenResponse
	err         error
	lastSession auth.SessionTrackingRequest
	lastEmail   string
	loggedOut   string
}

func (f *fakeAuthService) record(s auth.SessionTrackingRequest, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSession = s
	f.lastEmail = email
}

func (f *fakeAuthService) Register(_ context.Context, req auth.RegisterRequest, s auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	f.record(s, req.Email)
	return f.tokens, f.err
}

func (f *fakeAuthService) Login(_ context.Context, req auth.LoginRequest, s auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	f.record(s, req.Email)
	return f.tokens, f.err
}

func (f *fakeAuthService) LoginWithGoogle(_ context.Context, email string, _ string, s auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	f.record(s, email)
	return f.tokens, f.err
}

func (f *fakeAuthService) Logout(_ context.Context, refreshToken string) error {
	f.loggedOut = refreshToken
	return f.err
}

func (f *fakeAuthService) RefreshToken(_ context.Context, _ auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	return auth.AccessTokenResponse{
		AccessToken:          f.tokens.AccessToken,
		AccessTokenExpiresIn: f.tokens.AccessTokenExpiresIn,
	}, f.err
}

type fakeGoogleService struct {
	state string
	info  oauth.GoogleInformation
}

func (f *fakeGoogleService) GenerateState() (string, error) {
	return f.state, nil
}

func (f *fakeGoogleService) RedirectURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (f *fakeGoogleService) VerifyToken(_ context.Context, _ string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "google-token"}, nil
}

func (f *fakeGoogleService) VerifyUser(_ context.Context, _ *oauth2.Token) (oauth.GoogleInformation, error) {
	return f.info, nil
}

type fakeReportService struct {
	submitResult report.SubmitReportResponse
	err          error
	lastCompany  string
	lastUser     string
	lastSubmit   report.SubmitReportRequest
	lastFilter   report.ReportFilter
	listResult   report.ReportListResponse
}

func (f *fakeReportService) Submit(_ context.Context, companyID, userID string, req report.SubmitReportRequest) (report.SubmitReportResponse, error) {
	f.lastCompany, f.lastUser, f.lastSubmit = companyID, userID, req
	return f.submitResult, f.err
}

func (f *fakeReportService) AllowedDates(_ context.Context) report.AllowedDatesResponse {
	return report.AllowedDatesResponse{Today: "2024-03-13", AllowedDates: []string{"2024-03-13", "2024-03-12"}}
}

func (f *fakeReportService) GetMine(_ context.Context, companyID, userID, date string) (report.ReportResponse, error) {
	f.lastCompany, f.lastUser = companyID, userID
	return report.ReportResponse{UserID: userID, Date: date}, f.err
}

func (f *fakeReportService) ListMine(_ context.Context, companyID, userID string, _ report.DateRange) ([]report.ReportResponse, error) {
	f.lastCompany, f.lastUser = companyID, userID
	return []report.ReportResponse{}, f.err
}

func (f *fakeReportService) List(_ context.Context, filter report.ReportFilter) (report.ReportListResponse, error) {
	f.lastFilter = filter
	if f.listResult.Reports == nil {
		f.listResult.Reports = []report.ReportResponse{}
	}
	return f.listResult, f.err
}

func (f *fakeReportService) GetByID(_ context.Context, companyID, id string) (report.ReportResponse, error) {
	f.lastCompany = companyID
	return report.ReportResponse{ID: id}, f.err
}

type fakeNotificationService struct {
	missed      []notification.NotificationResponse
	err         error
	lastUser    string
	lastFilter  notification.Filter
	lastDryRun  bool
	lastPage    int
	lastUnseen  bool
	markSeenErr error
}

func (f *fakeNotificationService) Missed(_ context.Context, _ string, userID string) ([]notification.NotificationResponse, error) {
	f.lastUser = userID
	return f.missed, f.err
}

func (f *fakeNotificationService) Sync(_ context.Context, _ string, userID string) (*notification.SyncResponse, error) {
	f.lastUser = userID
	return &notification.SyncResponse{Computed: len(f.missed), Inserted: len(f.missed)}, f.err
}

func (f *fakeNotificationService) GetNotifications(_ context.Context, userID string, page, _ int, unseenOnly bool) (*notification.NotificationListResponse, error) {
	f.lastUser, f.lastPage, f.lastUnseen = userID, page, unseenOnly
	return &notification.NotificationListResponse{Notifications: f.missed, Page: page}, f.err
}

func (f *fakeNotificationService) MarkSeen(_ context.Context, userID, _ string) error {
	f.lastUser = userID
	return f.markSeenErr
}

func (f *fakeNotificationService) MarkAllSeen(_ context.Context, userID string) (*notification.MarkAllSeenResponse, error) {
	f.lastUser = userID
	return &notification.MarkAllSeenResponse{Updated: 2}, f.err
}

func (f *fakeNotificationService) Cleanup(_ context.Context, filter notification.Filter, dryRun bool) (*notification.CleanupResult, error) {
	f.lastFilter, f.lastDryRun = filter, dryRun
	return &notification.CleanupResult{DryRun: dryRun}, f.err
}

func (f *fakeNotificationService) PublishReportSubmitted(string, string) {}

type fakeDashboardService struct {
	lastDate string
	err      error
}

func (f *fakeDashboardService) GetDashboard(_ context.Context, date string) (*dashboard.DashboardResponse, error) {
	f.lastDate = date
	if f.err != nil {
		return nil, f.err
	}
	return &dashboard.DashboardResponse{}, nil
}

type fakeUserService struct {
	err      error
	lastRole *user.Role
}

func (f *fakeUserService) Me(_ context.Context, userID string) (user.UserResponse, error) {
	return user.UserResponse{ID: userID}, f.err
}

func (f *fakeUserService) List(_ context.Context, _ string, role *user.Role) ([]user.UserResponse, error) {
	f.lastRole = role
	return []user.UserResponse{}, f.err
}

func (f *fakeUserService) CreateEmployee(_ context.Context, companyID string, req user.CreateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{CompanyID: companyID, Email: req.Email}, f.err
}

type fakeCompanyService struct{}

func (fakeCompanyService) GetByID(_ context.Context, id string) (company.CompanyResponse, error) {
	return company.CompanyResponse{ID: id, Name: "Acme"}, nil
}
