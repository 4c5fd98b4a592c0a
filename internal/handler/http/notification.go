package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const sseKeepaliveInterval = 30 * time.Second

// EventSubscriber hands out per-user event streams
type EventSubscriber interface {
	Subscribe(userID string) (<-chan sse.Event, func())
}

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	// Missed-report notifications
	Missed(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MarkSeen(w http.ResponseWriter, r *http.Request)
	MarkAllSeen(w http.ResponseWriter, r *http.Request)

	// Maintenance
	Cleanup(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
	jwtService   jwt.Service
	events       EventSubscriber
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService notification.Service, jwtService jwt.Service, events EventSubscriber) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
		jwtService:   jwtService,
		events:       events,
	}
}

// Missed computes the caller's notifications without storing them
func (h *notificationHandlerImpl) Missed(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	companyID, ok := getCompanyIDFromContext(r)
	if userID == "" || !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.notifService.Missed(r.Context(), companyID, userID)
	if err != nil {
		slog.Error("Missed notifications error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Sync stores the caller's computed notifications
func (h *notificationHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	companyID, ok := getCompanyIDFromContext(r)
	if userID == "" || !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.notifService.Sync(r.Context(), companyID, userID)
	if err != nil {
		slog.Error("Sync notifications error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List returns paginated notifications for the authenticated user
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	page := getIntQueryParam(r, "page", 1)
	pageSize := getIntQueryParam(r, "page_size", 20)
	unseenOnly := getBoolQueryParam(r, "unseen_only", false)

	result, err := h.notifService.GetNotifications(r.Context(), userID, page, pageSize, unseenOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkSeen marks one notification as seen
func (h *notificationHandlerImpl) MarkSeen(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	notificationID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(notificationID) {
		response.HandleError(w, notification.ErrNotificationNotFound)
		return
	}

	if err := h.notifService.MarkSeen(r.Context(), userID, notificationID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as seen", nil)
}

// MarkAllSeen marks all notifications of the caller as seen
func (h *notificationHandlerImpl) MarkAllSeen(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.notifService.MarkAllSeen(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Cleanup removes duplicate notifications of the admin's company
func (h *notificationHandlerImpl) Cleanup(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.HandleError(w, user.ErrCompanyIDRequired)
		return
	}

	dryRun := getBoolQueryParam(r, "dry_run", false)
	result, err := h.notifService.Cleanup(r.Context(), notification.Filter{CompanyID: companyID}, dryRun)
	if err != nil {
		slog.Error("Notification cleanup error", "error", err, "company_id", companyID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSSEToken issues a short-lived token for the stream endpoint
func (h *notificationHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	companyID, _ := getCompanyIDFromContext(r)

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID, companyID)
	if err != nil {
		slog.Error("Failed to generate SSE token", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, notification.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes notification events to the client until it disconnects
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, the token comes in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, _, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.events.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(sseKeepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("SSE encode error", "error", err, "event", event.Event)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
