package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", validator.ValidationErrors{{Field: "content", Message: "content is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"locked", auth.ErrAccountLocked, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"inactive", auth.ErrUserInactive, http.StatusForbidden, "FORBIDDEN"},
		{"company username taken", company.ErrCompanyUsernameExists, http.StatusConflict, "CONFLICT"},
		{"wrapped user not found", fmt.Errorf("failed to get user: %w", user.ErrUserNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"admin required", user.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{"report date", report.ErrDateNotAllowed, http.StatusUnprocessableEntity, "DATE_NOT_ALLOWED"},
		{"notification not found", notification.ErrNotificationNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid argument", fmt.Errorf("%w: empty user id", notification.ErrInvalidArgument), http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestValidationErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, validator.ValidationErrors{
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		{Field: "content", Message: "content is required"},
	})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{
		"date":    "date must be in YYYY-MM-DD format",
		"content": "content is required",
	}, body.Error.Details)
}
