package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	// Employee
	Submit(w http.ResponseWriter, r *http.Request)
	AllowedDates(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)

	// Admin review
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Submit handles PUT /reports/{date}
func (h *reportHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	companyID, ok := getCompanyIDFromContext(r)
	if userID == "" || !ok {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	var req report.SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Date = chi.URLParam(r, "date")

	result, err := h.reportService.Submit(r.Context(), companyID, userID, req)
	if err != nil {
		slog.Error("Submit report service error", "error", err, "user_id", userID, "date", req.Date)
		response.HandleError(w, err)
		return
	}

	if result.Created {
		response.Created(w, "Report submitted successfully", result)
		return
	}
	response.SuccessWithMessage(w, "Report updated successfully", result)
}

// AllowedDates handles GET /reports/allowed-dates
func (h *reportHandlerImpl) AllowedDates(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.reportService.AllowedDates(r.Context()))
}

// ListMine handles GET /reports/me
func (h *reportHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	companyID, ok := getCompanyIDFromContext(r)
	if userID == "" || !ok {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	dateRange := report.DateRange{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	reports, err := h.reportService.ListMine(r.Context(), companyID, userID, dateRange)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// GetMine handles GET /reports/me/{date}
func (h *reportHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	companyID, ok := getCompanyIDFromContext(r)
	if userID == "" || !ok {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	result, err := h.reportService.GetMine(r.Context(), companyID, userID, chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /reports
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	query := r.URL.Query()
	filter := report.ReportFilter{
		CompanyID: companyID,
		UserID:    query.Get("user_id"),
		Date:      query.Get("date"),
		DateRange: report.DateRange{
			From: query.Get("from"),
			To:   query.Get("to"),
		},
		Page:     getIntQueryParam(r, "page", 1),
		PageSize: getIntQueryParam(r, "page_size", 20),
	}

	result, err := h.reportService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Reports, &response.Meta{
		Page:       result.Page,
		Limit:      result.PageSize,
		TotalItems: int64(result.Total),
		TotalPages: result.TotalPages,
	})
}

// GetByID handles GET /reports/{id}
func (h *reportHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.HandleError(w, report.ErrReportNotFound)
		return
	}

	result, err := h.reportService.GetByID(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
